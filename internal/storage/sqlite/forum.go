package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sandevgo/threadbot/internal/core"
)

// execer is satisfied by *sql.DB and *sql.Tx
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// ForumRepo serves a local snapshot of a forum as a core.ContentTree.
type ForumRepo struct {
	db *sql.DB
}

func NewForumRepo(db *sql.DB) *ForumRepo {
	return &ForumRepo{db: db}
}

func (r *ForumRepo) Node(ctx context.Context, id string) (core.Node, error) {
	s, err := r.submission(ctx, id)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return nil, err
	}

	c, err := r.comment(ctx, id)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ForumRepo) Parent(ctx context.Context, c *core.Comment) (core.Node, error) {
	if c.IsTopLevel() {
		s, err := r.submission(ctx, c.SubmissionID)
		if err != nil {
			return nil, err
		}
		return s, nil
	}

	parent, err := r.comment(ctx, c.ParentID)
	if err != nil {
		return nil, err
	}
	return parent, nil
}

func (r *ForumRepo) Submission(ctx context.Context, c *core.Comment) (*core.Submission, error) {
	return r.submission(ctx, c.SubmissionID)
}

func (r *ForumRepo) SaveSubmission(ctx context.Context, s *core.Submission) error {
	return saveSubmission(ctx, r.db, s)
}

func (r *ForumRepo) SaveComment(ctx context.Context, c *core.Comment) error {
	return saveComment(ctx, r.db, c)
}

// Comments lists the comments of a submission, oldest first.
func (r *ForumRepo) Comments(ctx context.Context, submissionID string) ([]*core.Comment, error) {
	query := `SELECT id, submission_id, parent_id, author, author_flair, body, mention, created_utc
		FROM comments WHERE submission_id = ? ORDER BY created_utc, id`

	rows, err := r.db.QueryContext(ctx, query, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []*core.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *ForumRepo) submission(ctx context.Context, id string) (*core.Submission, error) {
	query := `SELECT id, author, author_flair, title, body, flair, is_link, url, created_utc
		FROM submissions WHERE id = ?`

	var (
		s       core.Submission
		author  sql.NullString
		created int64
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &author, &s.AuthorFlair, &s.Title, &s.Body, &s.Flair, &s.IsLink, &s.URL, &created,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("submission %s: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load submission %s: %w", id, err)
	}

	s.Author = author.String
	s.CreatedAt = time.Unix(created, 0).UTC()
	return &s, nil
}

func (r *ForumRepo) comment(ctx context.Context, id string) (*core.Comment, error) {
	query := `SELECT id, submission_id, parent_id, author, author_flair, body, mention, created_utc
		FROM comments WHERE id = ?`

	c, err := scanComment(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("comment %s: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load comment %s: %w", id, err)
	}
	return c, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanComment(row scanner) (*core.Comment, error) {
	var (
		c       core.Comment
		author  sql.NullString
		created int64
	)
	if err := row.Scan(&c.ID, &c.SubmissionID, &c.ParentID, &author, &c.AuthorFlair, &c.Body, &c.Mention, &created); err != nil {
		return nil, err
	}
	c.Author = author.String
	c.CreatedAt = time.Unix(created, 0).UTC()
	return &c, nil
}

func saveSubmission(ctx context.Context, db execer, s *core.Submission) error {
	query := `INSERT OR REPLACE INTO submissions
		(id, author, author_flair, title, body, flair, is_link, url, created_utc)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := db.ExecContext(ctx, query,
		s.ID, nullable(s.Author), s.AuthorFlair, s.Title, s.Body, s.Flair, s.IsLink, s.URL, s.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save submission %s: %w", s.ID, err)
	}
	return nil
}

func saveComment(ctx context.Context, db execer, c *core.Comment) error {
	query := `INSERT OR REPLACE INTO comments
		(id, submission_id, parent_id, author, author_flair, body, mention, created_utc)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	parentID := c.ParentID
	if parentID == "" {
		parentID = c.SubmissionID
	}

	_, err := db.ExecContext(ctx, query,
		c.ID, c.SubmissionID, parentID, nullable(c.Author), c.AuthorFlair, c.Body, c.Mention, c.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save comment %s: %w", c.ID, err)
	}
	return nil
}

// nullable stores deleted authors as NULL
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
