package main

import (
	"errors"
	"fmt"

	"github.com/sandevgo/threadbot/internal/service/responder"
	"github.com/sandevgo/threadbot/internal/transport/cli"
	"github.com/spf13/cobra"
)

var replyForce bool

var replyCmd = &cobra.Command{
	Use:   "reply <node-id>",
	Short: "Decide on a node and generate a reply (nothing is posted)",
	Args:  cobra.ExactArgs(1),
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

		node, err := a.forum.Node(ctx, args[0])
		if err != nil {
			return err
		}

		var d responder.Decision
		if replyForce {
			d, err = resp.Answer(ctx, node)
		} else {
			d, err = resp.Decide(ctx, node)
		}
		if err != nil && !errors.Is(err, responder.ErrNoContent) {
			return err
		}

		cli.PrintDecision(cmd.OutOrStdout(), d)
		if err != nil {
			return fmt.Errorf("node %s: %w", d.NodeID, err)
		}
		return nil
	},
}

func init() {
	replyCmd.Flags().BoolVarP(&replyForce, "force", "f", false, "generate even if the score says no")
	rootCmd.AddCommand(replyCmd)
}
