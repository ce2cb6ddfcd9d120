package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score <node-id>...",
	Short: "Print the reply probability of forum nodes",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		scorer := a.scorer()
		for _, id := range args {
			node, err := a.forum.Node(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.3f\n", id, scorer.Score(ctx, node))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}
