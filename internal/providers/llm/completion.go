package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sandevgo/threadbot/pkg/log"
)

// Completion talks to an OpenAI-compatible /v1/completions endpoint. Chat endpoints
// are not used: the model continues raw tagged text.
type Completion struct {
	baseProvider
	maxTokens    int
	temperature  float64
	authHeader   string
	authPrefix   string
	extraHeaders map[string]string
}

type CompletionConfig struct {
	BaseURL      string
	APIKey       string
	Model        string
	MaxTokens    int
	Temperature  float64
	AuthHeader   string // e.g., "Authorization"
	AuthPrefix   string // e.g., "Bearer "
	ExtraHeaders map[string]string
}

func NewCompletion(cfg CompletionConfig) *Completion {
	return &Completion{
		baseProvider: newBaseProvider(cfg.BaseURL, cfg.APIKey, cfg.Model),
		maxTokens:    cfg.MaxTokens,
		temperature:  cfg.Temperature,
		authHeader:   cfg.AuthHeader,
		authPrefix:   cfg.AuthPrefix,
		extraHeaders: cfg.ExtraHeaders,
	}
}

// Generate returns prompt followed by the model's continuation.
func (c *Completion) Generate(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"model":       c.model,
		"prompt":      prompt,
		"max_tokens":  c.maxTokens,
		"temperature": c.temperature,
	}

	headers := make(map[string]string)
	if c.authHeader != "" && c.apiKey != "" {
		headers[c.authHeader] = c.authPrefix + c.apiKey
	}
	for k, v := range c.extraHeaders {
		headers[k] = v
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/completions", payload, headers)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	text, err := parseCompletionResponse(resp)
	if err != nil {
		return "", err
	}

	log.FromCtx(ctx).Debug().
		Str("model", c.model).
		Int("prompt_len", len(prompt)).
		Int("completion_len", len(text)).
		Msg("completion received")

	// some servers echo the prompt, most do not
	if !strings.HasPrefix(text, prompt) {
		text = prompt + text
	}
	return text, nil
}

func parseCompletionResponse(resp *http.Response) (string, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}

	var result struct {
		Choices []struct {
			Text string `json:"text"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("empty choices: %s", string(data))
	}
	return result.Choices[0].Text, nil
}
