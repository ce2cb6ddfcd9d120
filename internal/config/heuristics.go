package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/threadbot/pkg/log"
)

// HeuristicsConfig holds the protocol constants of the prompt and scoring logic.
// The defaults match the data the generation model was trained on.
type HeuristicsConfig struct {
	ContextBudget   int           `env:"CONTEXT_BUDGET" envDefault:"1500"`
	ContextTail     int           `env:"CONTEXT_TAIL" envDefault:"1450"`
	HistoryDepth    int           `env:"HISTORY_DEPTH" envDefault:"6"`
	ReplyDepthLimit int           `env:"REPLY_DEPTH_LIMIT" envDefault:"9"`
	DecayHorizon    time.Duration `env:"DECAY_HORIZON" envDefault:"48h"`
}

func NewHeuristicsConfig(ctx context.Context) *HeuristicsConfig {
	c := &HeuristicsConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Heuristics config")
	}
	return c
}

func DefaultHeuristics() HeuristicsConfig {
	return HeuristicsConfig{
		ContextBudget:   1500,
		ContextTail:     1450,
		HistoryDepth:    6,
		ReplyDepthLimit: 9,
		DecayHorizon:    48 * time.Hour,
	}
}
