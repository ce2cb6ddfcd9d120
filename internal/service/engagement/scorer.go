package engagement

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/sandevgo/threadbot/internal/config"
	"github.com/sandevgo/threadbot/internal/core"
	"github.com/sandevgo/threadbot/pkg/log"
)

const (
	announcementFlair = "announcement"
	verifiedBotFlair  = "verified gpt-2 bot"

	automatedWeight  = -0.1
	humanWeight      = 0.3
	keywordWeight    = 0.3
	submissionWeight = 0.4
	ownParentWeight  = 0.1
	questionWeight   = 0.3
	ownThreadWeight  = 0.1
)

var (
	botNameSuffixes = []string{"ssi", "bot", "gpt2"}
	questionMarkers = []string{"?", " you"}
)

type Option func(*Scorer)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) {
		s.now = now
	}
}

// Scorer estimates the probability that the bot should answer a node.
type Scorer struct {
	tree       core.ContentTree
	identity   string
	positive   []string
	negative   []string
	depthLimit int
	horizon    time.Duration
	now        func() time.Time
}

func NewScorer(tree core.ContentTree, app config.AppConfig, h config.HeuristicsConfig, opts ...Option) *Scorer {
	s := &Scorer{
		tree:       tree,
		identity:   app.BotUsername,
		positive:   app.PositiveKeywords,
		negative:   app.NegativeKeywords,
		depthLimit: h.ReplyDepthLimit,
		horizon:    h.DecayHorizon,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score returns the reply probability for node. Hard filters yield exactly 0,
// a mention of the bot yields exactly 1. Otherwise the weighted sum is capped at 1
// and decayed linearly over the age of the thread. The sum is not floored, so an
// automated-looking author with no other signal scores below zero.
func (s *Scorer) Score(ctx context.Context, node core.Node) float64 {
	logger := log.FromCtx(ctx).With().Str("node", node.NodeID()).Logger()

	author := node.AuthorName()
	if author == "" {
		logger.Debug().Msg("author deleted")
		return 0
	}
	if s.isSelf(author) {
		return 0
	}

	var (
		text    string
		flair   string
		root    *core.Submission
		comment *core.Comment
	)

	switch n := node.(type) {
	case *core.Submission:
		text = n.Title + " " + n.Body
		flair = n.Flair
		root = n
	case *core.Comment:
		sub, err := s.tree.Submission(ctx, n)
		if err != nil {
			logger.Debug().Err(err).Msg("submission lookup failed")
			return 0
		}
		text = n.Body
		flair = sub.Flair
		root = sub
		comment = n
	default:
		return 0
	}

	if kw, ok := matchAny(text, s.negative); ok {
		logger.Debug().Str("keyword", kw).Msg("negative keyword")
		return 0
	}

	if strings.EqualFold(flair, announcementFlair) {
		return 0
	}

	if (comment != nil && comment.Mention) || (s.identity != "" && containsFold(text, s.identity)) {
		return 1
	}

	if comment != nil {
		if depth := s.depth(ctx, comment); depth > s.depthLimit {
			logger.Debug().Int("depth", depth).Msg("reply chain too deep")
			return 0
		}
	}

	base := 0.0

	if looksAutomated(node) {
		base += automatedWeight
	} else {
		base += humanWeight
	}

	if _, ok := matchAny(text, s.positive); ok {
		base += keywordWeight
	}

	if comment == nil {
		base += submissionWeight
	} else {
		if parent, err := s.tree.Parent(ctx, comment); err == nil && parent != nil && s.isSelf(parent.AuthorName()) {
			base += ownParentWeight
		}

		if _, ok := matchAny(comment.Body, questionMarkers); ok {
			base += questionWeight
		}

		if s.isSelf(root.Author) {
			base += ownThreadWeight
		}
	}

	probability := math.Min(base, 1)
	decay := s.decay(root.CreatedAt)

	logger.Debug().
		Float64("base", base).
		Float64("decay", decay).
		Msg("scored")

	return probability * decay
}

// decay falls linearly from 1 at creation to 0 at the horizon.
func (s *Scorer) decay(created time.Time) float64 {
	age := s.now().Sub(created)
	d := 1 - age.Hours()/s.horizon.Hours()
	return math.Max(0, math.Min(1, d))
}

// depth counts comment ancestors; a top-level comment has depth 0. Counting stops
// past the limit or at the first failed lookup.
func (s *Scorer) depth(ctx context.Context, c *core.Comment) int {
	depth := 0
	for cur := c; !cur.IsTopLevel() && depth <= s.depthLimit; {
		parent, err := s.tree.Parent(ctx, cur)
		if err != nil {
			break
		}
		pc, ok := parent.(*core.Comment)
		if !ok {
			break
		}
		depth++
		cur = pc
	}
	return depth
}

func (s *Scorer) isSelf(name string) bool {
	return name != "" && strings.EqualFold(name, s.identity)
}

func looksAutomated(node core.Node) bool {
	var flair string
	switch n := node.(type) {
	case *core.Submission:
		flair = n.AuthorFlair
	case *core.Comment:
		flair = n.AuthorFlair
	}
	if containsFold(flair, verifiedBotFlair) {
		return true
	}

	name := strings.ToLower(node.AuthorName())
	for _, suffix := range botNameSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

func matchAny(text string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if kw != "" && containsFold(text, kw) {
			return kw, true
		}
	}
	return "", false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
