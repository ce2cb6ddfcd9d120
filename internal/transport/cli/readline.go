package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sandevgo/threadbot/internal/config"
	"github.com/sandevgo/threadbot/internal/core"
	"github.com/sandevgo/threadbot/internal/service/extract"
	"github.com/sandevgo/threadbot/internal/service/responder"
	"github.com/sandevgo/threadbot/pkg/log"
)

const composeCommand = "compose"

type NodeSource interface {
	Node(ctx context.Context, id string) (core.Node, error)
}

type Responder interface {
	Decide(ctx context.Context, node core.Node) (responder.Decision, error)
	Compose(ctx context.Context) (extract.Submission, error)
}

// ReadLine is an interactive console: type a node ID to see what the bot would do.
type ReadLine struct {
	forum     NodeSource
	responder Responder
	rl        *readline.Instance
}

func NewReadLine(cfg *config.AppConfig, forum NodeSource, resp Responder) (*ReadLine, error) {
	// Ensure runtime directory exists
	if err := os.MkdirAll(cfg.GetRuntimePath(), 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "node> ",
		HistoryFile:     cfg.GetHistoryPath(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		forum:     forum,
		responder: resp,
		rl:        rl,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msgf("console started. Enter a node ID, '%s' for a new post, or 'exit' to quit.", composeCommand)

	for {
		// Check context before blocking read
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if len(line) == 0 {
					return nil // Exit on Ctrl+C
				}
				continue
			} else if err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		if err := r.handle(ctx, r.rl.Stdout(), line); err != nil {
			logger.Error().Err(err).Str("input", line).Msg("request failed")
			fmt.Fprintf(r.rl.Stdout(), "Error: %v\n", err)
		}
	}
}

func (r *ReadLine) handle(ctx context.Context, out io.Writer, line string) error {
	if line == composeCommand {
		sub, err := r.responder.Compose(ctx)
		if err != nil {
			return err
		}
		PrintSubmission(out, sub)
		return nil
	}

	node, err := r.forum.Node(ctx, line)
	if err != nil {
		return err
	}

	d, err := r.responder.Decide(ctx, node)
	if errors.Is(err, responder.ErrNoContent) {
		PrintDecision(out, d)
		fmt.Fprintln(out, "[no usable reply generated]")
		return nil
	}
	if err != nil {
		return err
	}
	PrintDecision(out, d)
	return nil
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}
