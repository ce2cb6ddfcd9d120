package installer

import "github.com/sandevgo/threadbot/internal/config"

// InstallState collects the settings that end up in the runtime .env.
type InstallState struct {
	App        config.AppConfig
	Heuristics config.HeuristicsConfig
	Generation config.GenerationConfig

	EnvPath string
	// Force allows replacing an existing .env
	Force bool
}

func NewInstallState(envPath string, gen config.GenerationConfig) *InstallState {
	return &InstallState{
		Heuristics: config.DefaultHeuristics(),
		Generation: gen,
		EnvPath:    envPath,
	}
}
