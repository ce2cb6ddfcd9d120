package llm

import (
	"context"

	"github.com/sandevgo/threadbot/internal/config"
	"github.com/sandevgo/threadbot/internal/core"
	"github.com/sandevgo/threadbot/pkg/log"
)

const (
	openAIBaseURL     = "https://api.openai.com"
	openRouterBaseURL = "https://openrouter.ai/api"
	ollamaBaseURL     = "http://localhost:11434"
)

// NewGenerator creates the completion client for the configured provider.
func NewGenerator(ctx context.Context, cfg *config.GenerationConfig) (core.Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.FromCtx(ctx).Info().
		Str("provider", cfg.Provider).
		Str("model", cfg.Model).
		Msg("starting text generator")

	cc := CompletionConfig{
		BaseURL:     cfg.BaseURL,
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		AuthHeader:  "Authorization",
		AuthPrefix:  "Bearer ",
	}

	switch cfg.Provider {
	case "openai":
		cc.BaseURL = openAIBaseURL
	case "openrouter":
		cc.BaseURL = openRouterBaseURL
		cc.ExtraHeaders = map[string]string{
			"HTTP-Referer": core.BotRepositoryURL,
			"X-Title":      core.BotName,
		}
	case "ollama":
		if cc.BaseURL == "" {
			cc.BaseURL = ollamaBaseURL
		}
	}

	return NewCompletion(cc), nil
}
