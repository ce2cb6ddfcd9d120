package history

import (
	"context"
	"unicode/utf8"

	"github.com/sandevgo/threadbot/internal/config"
	"github.com/sandevgo/threadbot/internal/core"
	"github.com/sandevgo/threadbot/pkg/log"
)

// Collator turns the ancestor chain of a node into a tagged prompt.
type Collator struct {
	tree   core.ContentTree
	budget int
	tail   int
	depth  int
}

func NewCollator(tree core.ContentTree, cfg config.HeuristicsConfig) *Collator {
	return &Collator{
		tree:   tree,
		budget: cfg.ContextBudget,
		tail:   cfg.ContextTail,
		depth:  cfg.HistoryDepth,
	}
}

// Collate renders start and its ancestors, oldest first, using the configured depth.
func (c *Collator) Collate(ctx context.Context, start core.Node) string {
	return c.CollateDepth(ctx, start, c.depth)
}

// CollateDepth visits at most maxDepth nodes. The walk stops before the first
// fragment that would push the prompt over budget; the starting fragment is
// always kept and, if it alone is over budget, only its tail is returned.
func (c *Collator) CollateDepth(ctx context.Context, start core.Node, maxDepth int) string {
	logger := log.FromCtx(ctx)

	var prefix string
	prefixLen := 0

	node := start
	for visited := 0; node != nil && visited < maxDepth; visited++ {
		fragment := render(node)
		fragmentLen := utf8.RuneCountInString(fragment)

		if visited > 0 && fragmentLen+prefixLen > c.budget {
			logger.Debug().
				Str("node", node.NodeID()).
				Int("length", prefixLen).
				Msg("history budget reached")
			break
		}

		prefix = fragment + prefix
		prefixLen += fragmentLen

		switch n := node.(type) {
		case *core.Submission:
			// nothing above a root post
			node = nil
		case *core.Comment:
			parent, err := c.tree.Parent(ctx, n)
			if err != nil {
				logger.Debug().Err(err).Str("node", n.ID).Msg("ancestor lookup failed, truncating history")
				node = nil
				continue
			}
			node = parent
		default:
			node = nil
		}
	}

	if prefixLen > c.budget {
		return lastRunes(prefix, c.tail)
	}
	return prefix
}

func render(node core.Node) string {
	switch n := node.(type) {
	case *core.Submission:
		if n.IsLink {
			return core.TagStartLinkSubmission +
				core.TagStartTitle + n.Title + core.TagEndTitle +
				core.TagStartLink + n.Body + core.TagEndLink
		}
		return core.TagStartSelfSubmission +
			core.TagStartTitle + n.Title + core.TagEndTitle +
			core.TagStartSelfText + n.Body + core.TagEndSelfText
	case *core.Comment:
		return core.TagStartReply + n.Body + core.TagEndReply
	default:
		return ""
	}
}

func lastRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}
