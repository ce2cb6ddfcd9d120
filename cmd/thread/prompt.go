package main

import (
	"fmt"

	"github.com/sandevgo/threadbot/internal/core"
	"github.com/sandevgo/threadbot/internal/service/responder"
	"github.com/sandevgo/threadbot/pkg/log"
	"github.com/spf13/cobra"
)

var promptDepth int

var promptCmd = &cobra.Command{
	Use:   "prompt <node-id>",
	Short: "Print the tagged history the model would be asked to continue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		node, err := a.forum.Node(ctx, args[0])
		if err != nil {
			return err
		}

		depth := a.heuristics.HistoryDepth
		if promptDepth > 0 {
			depth = promptDepth
		}
		prompt := a.collator().CollateDepth(ctx, node, depth) + core.ReplyTag

		log.FromCtx(ctx).Info().
			Int("chars", len([]rune(prompt))).
			Int("tokens", responder.CountTokens(prompt)).
			Msg("prompt collated")

		fmt.Fprintln(cmd.OutOrStdout(), prompt)
		return nil
	},
}

func init() {
	promptCmd.Flags().IntVar(&promptDepth, "depth", 0, "ancestors to include (default HISTORY_DEPTH)")
	rootCmd.AddCommand(promptCmd)
}
