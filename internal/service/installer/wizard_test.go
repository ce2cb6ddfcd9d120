package installer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/caarlos0/env/v11"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/sandevgo/threadbot/internal/config"
	"github.com/sandevgo/threadbot/internal/providers/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func typed(s string) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func drive(m model, msgs ...tea.Msg) model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

func defaultGeneration() config.GenerationConfig {
	return config.GenerationConfig{Provider: "custom", Model: "gpt2", MaxTokens: 300, Temperature: 0.8, Attempts: 3}
}

func newTestState(t *testing.T) *InstallState {
	return NewInstallState(filepath.Join(t.TempDir(), "rt", ".env"), defaultGeneration())
}

// loadWritten parses the written .env back into config structs the way the commands do.
func loadWritten(t *testing.T, path string) (config.AppConfig, config.GenerationConfig) {
	vars, err := godotenv.Read(path)
	require.NoError(t, err)

	var app config.AppConfig
	var gen config.GenerationConfig
	opts := env.Options{Environment: vars}
	require.NoError(t, env.ParseWithOptions(&app, opts))
	require.NoError(t, env.ParseWithOptions(&gen, opts))
	return app, gen
}

func TestWizard_CustomProvider(t *testing.T) {
	state := newTestState(t)
	m := newModel(state)

	m = drive(m,
		typed("gpt2_bot"), enter,
		typed("gpt, language model"), enter,
		enter,
		enter, // custom is preselected
	)
	_, onBaseURL := m.steps[m.currentStep].(*BaseURLStep)
	require.True(t, onBaseURL)

	// a custom provider cannot continue without a URL
	m = drive(m, enter)
	_, onBaseURL = m.steps[m.currentStep].(*BaseURLStep)
	require.True(t, onBaseURL)
	assert.Contains(t, m.View(), "needs a base URL")

	m = drive(m,
		typed("http://localhost:8000/"), enter,
		enter, // optional key
		typed("my-finetune"), enter,
		nextMsg{},
	)
	require.True(t, m.done())

	app, gen := loadWritten(t, state.EnvPath)
	assert.Equal(t, "gpt2_bot", app.BotUsername)
	assert.Equal(t, []string{"gpt", "language model"}, app.PositiveKeywords)
	assert.Empty(t, app.NegativeKeywords)
	assert.Equal(t, "custom", gen.Provider)
	assert.Equal(t, "http://localhost:8000", gen.BaseURL)
	assert.Equal(t, "my-finetune", gen.Model)

	_, err := llm.NewGenerator(context.Background(), &gen)
	assert.NoError(t, err)
}

func TestWizard_HostedProviderSkipsBaseURL(t *testing.T) {
	state := newTestState(t)
	state.Generation.BaseURL = "http://stale:8000"
	m := newModel(state)

	m = drive(m,
		typed("bot"), enter,
		enter,
		enter,
		tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, enter, // openai
	)
	require.Equal(t, "openai", state.Generation.Provider)
	assert.Empty(t, state.Generation.BaseURL)
	_, onKey := m.steps[m.currentStep].(*APIKeyStep)
	require.True(t, onKey)

	// hosted providers need a key
	m = drive(m, enter)
	_, onKey = m.steps[m.currentStep].(*APIKeyStep)
	require.True(t, onKey)

	m = drive(m, typed("sk-test"), enter, enter, nextMsg{})
	require.True(t, m.done())

	_, gen := loadWritten(t, state.EnvPath)
	assert.Equal(t, "openai", gen.Provider)
	assert.Equal(t, "sk-test", gen.APIKey)
	assert.Equal(t, "gpt2", gen.Model)
}

func TestWizard_UsernameRequired(t *testing.T) {
	m := drive(newModel(newTestState(t)), enter)
	_, onUsername := m.steps[m.currentStep].(*UsernameStep)
	assert.True(t, onUsername)
	assert.Contains(t, m.View(), "username is required")
}

func TestWizard_PrefilledFromState(t *testing.T) {
	state := newTestState(t)
	state.App.BotUsername = "from_flag"
	state.App.NegativeKeywords = []string{"politics"}

	m := drive(newModel(state), enter, enter, enter)
	assert.Equal(t, "from_flag", state.App.BotUsername)
	assert.Equal(t, []string{"politics"}, state.App.NegativeKeywords)
	_, onProvider := m.steps[m.currentStep].(*ProviderStep)
	assert.True(t, onProvider)
}

func TestWizard_Cancel(t *testing.T) {
	m := drive(newModel(newTestState(t)), tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, m.quitting)
	assert.Equal(t, "Setup cancelled.\n", m.View())
}

func TestSave(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(s *InstallState)
		existing bool
		wantErr  string
	}{
		{name: "custom with url", mutate: func(s *InstallState) { s.Generation.BaseURL = "http://gpt2:8000" }},
		{name: "ollama without url", mutate: func(s *InstallState) { s.Generation.Provider = "ollama" }},
		{name: "custom without url", mutate: func(s *InstallState) {}, wantErr: "requires LLM_BASE_URL"},
		{name: "unknown provider", mutate: func(s *InstallState) { s.Generation.Provider = "anthropic" }, wantErr: "unknown llm provider"},
		{name: "missing username", mutate: func(s *InstallState) { s.App.BotUsername = ""; s.Generation.Provider = "ollama" }, wantErr: "username is required"},
		{
			name:     "existing file",
			mutate:   func(s *InstallState) { s.Generation.Provider = "ollama" },
			existing: true,
			wantErr:  "already exists",
		},
		{
			name:     "existing file forced",
			mutate:   func(s *InstallState) { s.Generation.Provider = "ollama"; s.Force = true },
			existing: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := newTestState(t)
			state.App.BotUsername = "bot"
			state.App.RuntimePath = "/somewhere"
			tt.mutate(state)

			if tt.existing {
				require.NoError(t, os.MkdirAll(filepath.Dir(state.EnvPath), 0755))
				require.NoError(t, os.WriteFile(state.EnvPath, []byte("OLD=1\n"), 0600))
			}

			err := Save(state)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)

			vars, err := godotenv.Read(state.EnvPath)
			require.NoError(t, err)
			assert.Equal(t, "bot", vars["BOT_USERNAME"])
			assert.Equal(t, "1500", vars["CONTEXT_BUDGET"])
			assert.NotContains(t, vars, "THREAD_RUNTIME_PATH")
			assert.NotContains(t, vars, "OLD")
		})
	}
}
