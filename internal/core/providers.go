package core

import "context"

// Generator continues a prompt. The returned text starts with the prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
