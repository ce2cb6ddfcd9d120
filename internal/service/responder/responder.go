package responder

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/sandevgo/threadbot/internal/config"
	"github.com/sandevgo/threadbot/internal/core"
	"github.com/sandevgo/threadbot/internal/service/extract"
	"github.com/sandevgo/threadbot/pkg/log"
	"github.com/sandevgo/threadbot/pkg/retry"
)

// ErrNoContent means every generation attempt came back without a usable reply or submission.
var ErrNoContent = errors.New("no actionable content generated")

type Scorer interface {
	Score(ctx context.Context, node core.Node) float64
}

type Collator interface {
	Collate(ctx context.Context, start core.Node) string
}

type Decision struct {
	NodeID       string
	Score        float64
	Roll         float64
	Respond      bool
	Prompt       string
	PromptTokens int
	Reply        string
}

type Option func(*Responder)

// WithRoll replaces the uniform [0,1) source used to act on a score.
func WithRoll(roll func() float64) Option {
	return func(r *Responder) {
		r.roll = roll
	}
}

func WithTokenCounter(count func(string) int) Option {
	return func(r *Responder) {
		r.countTokens = count
	}
}

type Responder struct {
	scorer      Scorer
	collator    Collator
	gen         core.Generator
	retrier     *retry.Retrier
	roll        func() float64
	countTokens func(string) int
}

func NewResponder(scorer Scorer, collator Collator, gen core.Generator, cfg config.GenerationConfig, opts ...Option) *Responder {
	r := &Responder{
		scorer:      scorer,
		collator:    collator,
		gen:         gen,
		retrier:     retry.NewRetrier(retry.NewImmediateConfig(cfg.Attempts)),
		roll:        rand.Float64,
		countTokens: CountTokens,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Prompt is the collated history of node followed by the reply tag.
func (r *Responder) Prompt(ctx context.Context, node core.Node) (string, int) {
	prompt := r.collator.Collate(ctx, node) + core.ReplyTag
	return prompt, r.countTokens(prompt)
}

// Decide scores node and, if a uniform roll lands under the score, generates a reply.
func (r *Responder) Decide(ctx context.Context, node core.Node) (Decision, error) {
	logger := log.FromCtx(ctx)

	d := Decision{
		NodeID: node.NodeID(),
		Score:  r.scorer.Score(ctx, node),
		Roll:   r.roll(),
	}
	d.Respond = d.Roll < d.Score

	logger.Info().
		Str("node", d.NodeID).
		Float64("score", d.Score).
		Float64("roll", d.Roll).
		Bool("respond", d.Respond).
		Msg("engagement decided")

	if !d.Respond {
		return d, nil
	}
	return r.reply(ctx, node, d)
}

// Answer generates a reply regardless of the score.
func (r *Responder) Answer(ctx context.Context, node core.Node) (Decision, error) {
	d := Decision{
		NodeID:  node.NodeID(),
		Score:   r.scorer.Score(ctx, node),
		Respond: true,
	}
	return r.reply(ctx, node, d)
}

func (r *Responder) reply(ctx context.Context, node core.Node, d Decision) (Decision, error) {
	d.Prompt, d.PromptTokens = r.Prompt(ctx, node)

	log.FromCtx(ctx).Debug().
		Str("node", d.NodeID).
		Int("prompt_tokens", d.PromptTokens).
		Msg("generating reply")

	err := r.retrier.Do(ctx, func() error {
		text, err := r.gen.Generate(ctx, d.Prompt)
		if err != nil {
			return retry.Permanent(fmt.Errorf("generate reply: %w", err))
		}

		reply, ok := extract.ExtractReply(d.Prompt, text, core.TagEndReply)
		if !ok {
			log.FromCtx(ctx).Debug().Str("node", d.NodeID).Msg("no reply in generated text")
			return ErrNoContent
		}
		d.Reply = reply.Body
		return nil
	})
	return d, err
}

// Compose asks the model for a brand new self-text submission.
func (r *Responder) Compose(ctx context.Context) (extract.Submission, error) {
	var sub extract.Submission

	err := r.retrier.Do(ctx, func() error {
		text, err := r.gen.Generate(ctx, core.NewSubmissionTag)
		if err != nil {
			return retry.Permanent(fmt.Errorf("generate submission: %w", err))
		}

		s, ok := extract.ExtractSubmission(text)
		if !ok {
			log.FromCtx(ctx).Debug().Msg("no submission in generated text")
			return ErrNoContent
		}
		sub = s
		return nil
	})
	return sub, err
}
