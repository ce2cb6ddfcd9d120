package main

import (
	"os"
	"os/signal"

	"github.com/sandevgo/threadbot/pkg/log"
	"github.com/sandevgo/threadbot/pkg/srv"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the interactive console",
	Long:  `Opens the forum snapshot and the text generator, then answers node IDs typed at the prompt.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting threadbot")

		services := NewServices(ctx)

		if err := srv.Run(ctx, services); err != nil {
			return err
		}
		logger.Info().Msg("threadbot has been shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
