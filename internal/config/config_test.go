package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppConfig_Paths(t *testing.T) {
	c := AppConfig{RuntimePath: filepath.Join("/tmp", "rt")}

	assert.Equal(t, filepath.Join("/tmp", "rt", "forum.db"), c.GetDatabasePath())
	assert.Equal(t, filepath.Join("/tmp", "rt", "input_history"), c.GetHistoryPath())
	assert.Equal(t, filepath.Join("/tmp", "rt", ".env"), c.GetEnvPath())
}

func TestResolveRuntimePath(t *testing.T) {
	assert.Equal(t, "/srv/bot", resolveRuntimePath("/srv/bot"))
	assert.True(t, filepath.IsAbs(resolveRuntimePath("")))
	assert.Equal(t, defaultRuntimePath, filepath.Base(resolveRuntimePath("")))
}

func TestGenerationConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     GenerationConfig
		wantErr string
	}{
		{name: "custom with url", cfg: GenerationConfig{Provider: "custom", BaseURL: "http://gpt2:8000"}},
		{name: "custom without url", cfg: GenerationConfig{Provider: "custom"}, wantErr: "requires LLM_BASE_URL"},
		{name: "ollama default url", cfg: GenerationConfig{Provider: "ollama"}},
		{name: "openai", cfg: GenerationConfig{Provider: "openai"}},
		{name: "openrouter", cfg: GenerationConfig{Provider: "openrouter"}},
		{name: "unknown", cfg: GenerationConfig{Provider: "anthropic"}, wantErr: "unknown llm provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
