package main

import (
	"context"
	"os"

	"github.com/sandevgo/threadbot/internal/config"
	"github.com/sandevgo/threadbot/internal/service/ui"
	"github.com/sandevgo/threadbot/pkg/log"
	"github.com/spf13/cobra"
)

var (
	debug   bool
	jsonLog bool
)

var rootCmd = &cobra.Command{
	Use:   "thread",
	Short: "ThreadBot, a forum reply bot",
	Long: `ThreadBot decides whether to answer forum posts and comments, builds the
tagged conversation history for a fine-tuned text model and validates what it writes.`,
}

func Execute() {
	ui.StyleHelp(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", config.IsDebug(), "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "json-log", config.IsJSONLog(), "log as JSON instead of console text")
}

func setupLogger(ctx context.Context) (context.Context, func()) {
	return log.NewContextWithLogger(ctx, log.Options{
		Debug: debug || config.IsDebug(),
		JSON:  jsonLog || config.IsJSONLog(),
	})
}
