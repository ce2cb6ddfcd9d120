package core

import "time"

// Node is either a *Submission or a *Comment.
type Node interface {
	NodeID() string
	AuthorName() string
	isNode()
}

// Submission is a root post. An empty Author means the post was deleted.
type Submission struct {
	ID          string
	Author      string
	AuthorFlair string
	Title       string
	Body        string
	Flair       string
	IsLink      bool
	URL         string
	CreatedAt   time.Time
}

// Comment is a reply to a submission or to another comment.
// ParentID equals SubmissionID for top-level comments.
type Comment struct {
	ID           string
	SubmissionID string
	ParentID     string
	Author       string
	AuthorFlair  string
	Body         string
	CreatedAt    time.Time
	// Mention is set when the comment arrived as a direct mention of the bot.
	Mention bool
}

func (s *Submission) NodeID() string     { return s.ID }
func (s *Submission) AuthorName() string { return s.Author }
func (*Submission) isNode()              {}

func (c *Comment) NodeID() string     { return c.ID }
func (c *Comment) AuthorName() string { return c.Author }
func (*Comment) isNode()              {}

func (c *Comment) IsTopLevel() bool {
	return c.ParentID == "" || c.ParentID == c.SubmissionID
}
