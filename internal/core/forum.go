package core

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("node not found")

// ContentTree resolves ancestors of a comment. The tree is owned by the forum,
// callers only hold IDs.
type ContentTree interface {
	// Parent returns the comment's parent, which is a *Comment or a *Submission.
	Parent(ctx context.Context, c *Comment) (Node, error)
	// Submission returns the root post the comment belongs to.
	Submission(ctx context.Context, c *Comment) (*Submission, error)
}

type ForumRepository interface {
	ContentTree
	Node(ctx context.Context, id string) (Node, error)
	SaveSubmission(ctx context.Context, s *Submission) error
	SaveComment(ctx context.Context, c *Comment) error
}
