package config

import (
	"context"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/threadbot/pkg/log"
)

// Providers lists the supported LLM_PROVIDER values.
var Providers = []string{"custom", "ollama", "openai", "openrouter"}

type GenerationConfig struct {
	Provider string `env:"LLM_PROVIDER" envDefault:"custom"`
	Model    string `env:"LLM_MODEL" envDefault:"gpt2"`
	BaseURL  string `env:"LLM_BASE_URL"`
	APIKey   string `env:"LLM_API_KEY"`

	MaxTokens   int     `env:"LLM_MAX_TOKENS" envDefault:"300"`
	Temperature float64 `env:"LLM_TEMPERATURE" envDefault:"0.8"`

	// Generations attempted before giving up on output without usable content
	Attempts int `env:"GENERATION_ATTEMPTS" envDefault:"3"`
}

func NewGenerationConfig(ctx context.Context) *GenerationConfig {
	c := &GenerationConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Generation config")
	}
	return c
}

// Validate reports settings the text generator would reject at startup.
func (c GenerationConfig) Validate() error {
	switch c.Provider {
	case "openai", "openrouter", "ollama":
		return nil
	case "custom":
		if c.BaseURL == "" {
			return fmt.Errorf("custom provider requires LLM_BASE_URL")
		}
		return nil
	default:
		return fmt.Errorf("unknown llm provider: %s", c.Provider)
	}
}
