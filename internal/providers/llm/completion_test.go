package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sandevgo/threadbot/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletion_Generate(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		want     string
		wantErr  bool
		errMatch string
	}{
		{
			name: "continuation is appended to prompt",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"choices":[{"text":" hello<|eor|>"}]}`)
			},
			want: "<|sor|> hello<|eor|>",
		},
		{
			name: "echoed prompt is kept once",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"choices":[{"text":"<|sor|> echoed<|eor|>"}]}`)
			},
			want: "<|sor|> echoed<|eor|>",
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				fmt.Fprint(w, "upstream down")
			},
			wantErr:  true,
			errMatch: "http 502: upstream down",
		},
		{
			name: "no choices",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"choices":[]}`)
			},
			wantErr:  true,
			errMatch: "empty choices",
		},
		{
			name: "invalid json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `not json`)
			},
			wantErr:  true,
			errMatch: "decode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := NewCompletion(CompletionConfig{BaseURL: srv.URL, Model: "gpt2", MaxTokens: 10})
			got, err := c.Generate(context.Background(), "<|sor|>")

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMatch)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompletion_Request(t *testing.T) {
	var (
		gotPath    string
		gotAuth    string
		gotTitle   string
		gotPayload map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotTitle = r.Header.Get("X-Title")
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
		fmt.Fprint(w, `{"choices":[{"text":"x"}]}`)
	}))
	defer srv.Close()

	c := NewCompletion(CompletionConfig{
		BaseURL:      srv.URL + "/",
		APIKey:       "secret",
		Model:        "my-gpt2",
		MaxTokens:    42,
		Temperature:  0.5,
		AuthHeader:   "Authorization",
		AuthPrefix:   "Bearer ",
		ExtraHeaders: map[string]string{"X-Title": "ThreadBot"},
	})

	_, err := c.Generate(context.Background(), "prompt")
	require.NoError(t, err)

	assert.Equal(t, "/v1/completions", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "ThreadBot", gotTitle)
	assert.Equal(t, "my-gpt2", gotPayload["model"])
	assert.Equal(t, "prompt", gotPayload["prompt"])
	assert.EqualValues(t, 42, gotPayload["max_tokens"])
	assert.EqualValues(t, 0.5, gotPayload["temperature"])
}

func TestNewGenerator(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		cfg     config.GenerationConfig
		wantURL string
		wantErr bool
	}{
		{name: "openai", cfg: config.GenerationConfig{Provider: "openai"}, wantURL: openAIBaseURL},
		{name: "openrouter", cfg: config.GenerationConfig{Provider: "openrouter"}, wantURL: openRouterBaseURL},
		{name: "ollama default", cfg: config.GenerationConfig{Provider: "ollama"}, wantURL: ollamaBaseURL},
		{name: "custom", cfg: config.GenerationConfig{Provider: "custom", BaseURL: "http://gpu:8000/"}, wantURL: "http://gpu:8000"},
		{name: "custom without url", cfg: config.GenerationConfig{Provider: "custom"}, wantErr: true},
		{name: "unknown", cfg: config.GenerationConfig{Provider: "anthropic"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := NewGenerator(ctx, &tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			c, ok := gen.(*Completion)
			require.True(t, ok)
			assert.Equal(t, tt.wantURL, c.baseURL)
		})
	}
}
