package main

import (
	"github.com/sandevgo/threadbot/internal/transport/cli"
	"github.com/spf13/cobra"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Generate a new self-text submission (nothing is posted)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		resp, err := a.responder(ctx)
		if err != nil {
			return err
		}

		sub, err := resp.Compose(ctx)
		if err != nil {
			return err
		}

		cli.PrintSubmission(cmd.OutOrStdout(), sub)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(submitCmd)
}
