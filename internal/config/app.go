package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/threadbot/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"THREAD_RUNTIME_PATH" envDefault:".threadbot"`

	// Identity of the bot on the forum, used for self-recognition
	BotUsername string `env:"BOT_USERNAME,required,notEmpty"`

	// Keyword lists are case-insensitive substrings
	PositiveKeywords []string `env:"POSITIVE_KEYWORDS" envSeparator:","`
	NegativeKeywords []string `env:"NEGATIVE_KEYWORDS" envSeparator:","`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	c.RuntimePath = resolveRuntimePath(c.RuntimePath)
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "forum.db")
}

func (c AppConfig) GetHistoryPath() string {
	return filepath.Join(c.RuntimePath, "input_history")
}

func (c AppConfig) GetEnvPath() string {
	return filepath.Join(c.RuntimePath, ".env")
}
