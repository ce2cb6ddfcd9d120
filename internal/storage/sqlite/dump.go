package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"math"
	"strings"
	"time"

	"github.com/inbucket/html2text"
	"github.com/sandevgo/threadbot/internal/core"
	"github.com/sandevgo/threadbot/pkg/log"
)

const deletedAuthor = "[deleted]"

// Dump is a thread export in the shape of the forum's JSON API.
type Dump struct {
	Submissions []DumpSubmission `json:"submissions"`
	Comments    []DumpComment    `json:"comments"`
}

type DumpSubmission struct {
	ID           string  `json:"id"`
	Author       string  `json:"author"`
	AuthorFlair  string  `json:"author_flair_text"`
	Title        string  `json:"title"`
	Selftext     string  `json:"selftext"`
	SelftextHTML string  `json:"selftext_html"`
	Flair        string  `json:"link_flair_text"`
	IsSelf       bool    `json:"is_self"`
	URL          string  `json:"url"`
	CreatedUTC   float64 `json:"created_utc"`
}

type DumpComment struct {
	ID          string  `json:"id"`
	LinkID      string  `json:"link_id"`
	ParentID    string  `json:"parent_id"`
	Author      string  `json:"author"`
	AuthorFlair string  `json:"author_flair_text"`
	Body        string  `json:"body"`
	BodyHTML    string  `json:"body_html"`
	Mention     bool    `json:"mention"`
	CreatedUTC  float64 `json:"created_utc"`
}

type ImportStats struct {
	Submissions int
	Comments    int
}

// ImportDump loads a JSON dump in a single transaction.
func (r *ForumRepo) ImportDump(ctx context.Context, src io.Reader) (ImportStats, error) {
	var dump Dump
	if err := json.NewDecoder(src).Decode(&dump); err != nil {
		return ImportStats{}, fmt.Errorf("failed to decode dump: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return ImportStats{}, err
	}
	defer tx.Rollback()

	var stats ImportStats
	for _, ds := range dump.Submissions {
		s, err := ds.toSubmission()
		if err != nil {
			return ImportStats{}, err
		}
		if err := saveSubmission(ctx, tx, s); err != nil {
			return ImportStats{}, err
		}
		stats.Submissions++
	}

	for _, dc := range dump.Comments {
		c, err := dc.toComment()
		if err != nil {
			return ImportStats{}, err
		}
		if err := saveComment(ctx, tx, c); err != nil {
			return ImportStats{}, err
		}
		stats.Comments++
	}

	if err := tx.Commit(); err != nil {
		return ImportStats{}, fmt.Errorf("failed to commit import: %w", err)
	}

	log.FromCtx(ctx).Info().
		Int("submissions", stats.Submissions).
		Int("comments", stats.Comments).
		Msg("dump imported")
	return stats, nil
}

func (d DumpSubmission) toSubmission() (*core.Submission, error) {
	id := stripKind(d.ID)
	if id == "" {
		return nil, fmt.Errorf("submission without id")
	}

	body, err := plainText(d.Selftext, d.SelftextHTML)
	if err != nil {
		return nil, fmt.Errorf("submission %s: %w", id, err)
	}

	return &core.Submission{
		ID:          id,
		Author:      authorName(d.Author),
		AuthorFlair: d.AuthorFlair,
		Title:       d.Title,
		Body:        body,
		Flair:       d.Flair,
		IsLink:      !d.IsSelf,
		URL:         d.URL,
		CreatedAt:   fromUnix(d.CreatedUTC),
	}, nil
}

func (d DumpComment) toComment() (*core.Comment, error) {
	id := stripKind(d.ID)
	if id == "" {
		return nil, fmt.Errorf("comment without id")
	}
	if d.LinkID == "" {
		return nil, fmt.Errorf("comment %s has no link_id", id)
	}

	body, err := plainText(d.Body, d.BodyHTML)
	if err != nil {
		return nil, fmt.Errorf("comment %s: %w", id, err)
	}

	return &core.Comment{
		ID:           id,
		SubmissionID: stripKind(d.LinkID),
		ParentID:     stripKind(d.ParentID),
		Author:       authorName(d.Author),
		AuthorFlair:  d.AuthorFlair,
		Body:         body,
		Mention:      d.Mention,
		CreatedAt:    fromUnix(d.CreatedUTC),
	}, nil
}

// stripKind drops fullname prefixes such as "t1_" and "t3_".
func stripKind(id string) string {
	if len(id) > 3 && id[0] == 't' && id[2] == '_' && id[1] >= '0' && id[1] <= '9' {
		return id[3:]
	}
	return id
}

func authorName(name string) string {
	if name == deletedAuthor {
		return ""
	}
	return name
}

// plainText prefers the markdown source and falls back to rendering the escaped HTML.
func plainText(text, escapedHTML string) (string, error) {
	if text != "" || escapedHTML == "" {
		return text, nil
	}
	out, err := html2text.FromString(html.UnescapeString(escapedHTML), html2text.Options{
		OmitLinks: true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to convert html body: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func fromUnix(sec float64) time.Time {
	whole, frac := math.Modf(sec)
	return time.Unix(int64(whole), int64(frac*1e9)).UTC()
}
