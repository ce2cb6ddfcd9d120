package installer

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/threadbot/pkg/env"
)

// Save validates the collected settings and writes them to state.EnvPath.
func Save(state *InstallState) error {
	if state.App.BotUsername == "" {
		return fmt.Errorf("bot username is required")
	}
	if err := state.Generation.Validate(); err != nil {
		return err
	}

	if _, err := os.Stat(state.EnvPath); err == nil && !state.Force {
		return fmt.Errorf("%s already exists, use --force to overwrite", state.EnvPath)
	}

	// the runtime path is where this file lives, so it is not written into it
	app := state.App
	app.RuntimePath = ""

	content, err := env.MarshalEnv(&app, &state.Heuristics, &state.Generation)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(state.EnvPath), 0755); err != nil {
		return fmt.Errorf("failed to create runtime directory: %w", err)
	}
	return os.WriteFile(state.EnvPath, []byte(content), 0600)
}

// SaveEnvStep writes the collected configuration to .env
type SaveEnvStep struct {
	err error
}

func NewSaveEnvStep() Step {
	return &SaveEnvStep{}
}

func (s *SaveEnvStep) Init() tea.Cmd {
	return next
}

func (s *SaveEnvStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if _, ok := msg.(nextMsg); !ok {
		return s, nil
	}
	if s.err = Save(state); s.err != nil {
		return s, nil
	}
	return nil, nil
}

func (s *SaveEnvStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	return "Saving configuration...\n"
}
