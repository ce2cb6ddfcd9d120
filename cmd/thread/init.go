package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sandevgo/threadbot/internal/config"
	"github.com/sandevgo/threadbot/internal/service/installer"
	"github.com/sandevgo/threadbot/pkg/log"
	"github.com/spf13/cobra"
)

var (
	initUsername string
	initPositive []string
	initNegative []string
	initProvider string
	initBaseURL  string
	initAPIKey   string
	initModel    string
	initForce    bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the bot settings to the runtime .env",
	Long: `Without --username on a terminal, init runs an interactive setup wizard.
Otherwise the settings come from flags and the current environment.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		logger := log.FromCtx(ctx)

		paths := config.AppConfig{RuntimePath: config.GetRuntimePath()}

		// flags override whatever the environment already holds
		gen := config.NewGenerationConfig(ctx)
		if initProvider != "" {
			gen.Provider = initProvider
		}
		if initBaseURL != "" {
			gen.BaseURL = initBaseURL
		}
		if initAPIKey != "" {
			gen.APIKey = initAPIKey
		}
		if initModel != "" {
			gen.Model = initModel
		}

		state := installer.NewInstallState(paths.GetEnvPath(), *gen)
		state.App.BotUsername = initUsername
		state.App.PositiveKeywords = initPositive
		state.App.NegativeKeywords = initNegative
		state.Force = initForce

		if initUsername == "" && isatty.IsTerminal(os.Stdin.Fd()) {
			if _, err := installer.RunWizard(state); err != nil {
				return err
			}
		} else {
			if initUsername == "" {
				return fmt.Errorf("--username is required when not running interactively")
			}
			if err := installer.Save(state); err != nil {
				return err
			}
		}

		logger.Info().
			Str("path", state.EnvPath).
			Str("provider", state.Generation.Provider).
			Msg("configuration written")
		return nil
	},
}

func init() {
	initCmd.Flags().StringVarP(&initUsername, "username", "u", "", "forum username of the bot (skips the wizard)")
	initCmd.Flags().StringSliceVar(&initPositive, "positive", nil, "keywords that raise the reply probability")
	initCmd.Flags().StringSliceVar(&initNegative, "negative", nil, "keywords that block a reply")
	initCmd.Flags().StringVar(&initProvider, "provider", "", "text generation provider: custom, ollama, openai, openrouter")
	initCmd.Flags().StringVar(&initBaseURL, "base-url", "", "completion server URL (custom, ollama)")
	initCmd.Flags().StringVar(&initAPIKey, "api-key", "", "provider API key")
	initCmd.Flags().StringVar(&initModel, "model", "", "model name")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing .env")
	rootCmd.AddCommand(initCmd)
}
