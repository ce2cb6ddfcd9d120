package test

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/threadbot/internal/core"
)

// MemTree is an in-memory forum for tests.
type MemTree struct {
	nodes map[string]core.Node
	// Broken lists IDs whose lookup fails as if the forum were unreachable
	Broken map[string]bool
	Calls  int
}

func NewMemTree(nodes ...core.Node) *MemTree {
	t := &MemTree{
		nodes:  make(map[string]core.Node),
		Broken: make(map[string]bool),
	}
	for _, n := range nodes {
		t.nodes[n.NodeID()] = n
	}
	return t
}

func (t *MemTree) Node(_ context.Context, id string) (core.Node, error) {
	t.Calls++
	if t.Broken[id] {
		return nil, fmt.Errorf("fetch %s: connection reset", id)
	}
	n, ok := t.nodes[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return n, nil
}

func (t *MemTree) Parent(ctx context.Context, c *core.Comment) (core.Node, error) {
	return t.Node(ctx, c.ParentID)
}

func (t *MemTree) Submission(ctx context.Context, c *core.Comment) (*core.Submission, error) {
	n, err := t.Node(ctx, c.SubmissionID)
	if err != nil {
		return nil, err
	}
	s, ok := n.(*core.Submission)
	if !ok {
		return nil, fmt.Errorf("%s is not a submission", c.SubmissionID)
	}
	return s, nil
}

// Chain builds a self-text submission "s" followed by depth nested comments
// c1..cN, each replying to the previous one, all by author.
func Chain(depth int, author string, created time.Time) (*MemTree, []*core.Comment) {
	sub := &core.Submission{ID: "s", Author: author, Title: "Title", Body: "Body", CreatedAt: created}
	tree := NewMemTree(sub)

	comments := make([]*core.Comment, 0, depth)
	parent := sub.ID
	for i := 1; i <= depth; i++ {
		c := &core.Comment{
			ID:           fmt.Sprintf("c%d", i),
			SubmissionID: sub.ID,
			ParentID:     parent,
			Author:       author,
			Body:         fmt.Sprintf("comment %d", i),
			CreatedAt:    created,
		}
		tree.nodes[c.ID] = c
		comments = append(comments, c)
		parent = c.ID
	}
	return tree, comments
}
