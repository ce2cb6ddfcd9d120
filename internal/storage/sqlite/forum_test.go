package sqlite

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sandevgo/threadbot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dumpJSON = `{
  "submissions": [
    {"id": "t3_abc", "author": "alice", "title": "Hello", "selftext": "First post", "is_self": true,
     "link_flair_text": "Discussion", "created_utc": 1709294400},
    {"id": "t3_lnk", "author": "[deleted]", "title": "A link", "is_self": false,
     "url": "https://example.com", "created_utc": 1709294400}
  ],
  "comments": [
    {"id": "t1_c1", "link_id": "t3_abc", "parent_id": "t3_abc", "author": "bob", "body": "Top level",
     "author_flair_text": "Verified GPT-2 Bot", "created_utc": 1709298000},
    {"id": "t1_c2", "link_id": "t3_abc", "parent_id": "t1_c1", "author": "carol",
     "body_html": "&lt;div class=\"md\"&gt;&lt;p&gt;Nested reply&lt;/p&gt;&lt;/div&gt;",
     "created_utc": 1709301600, "mention": true}
  ]
}`

func newRepo(t *testing.T) *ForumRepo {
	t.Helper()
	db, err := NewDB(context.Background(), filepath.Join(t.TempDir(), "forum.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewForumRepo(db)
}

func importFixture(t *testing.T, repo *ForumRepo) {
	t.Helper()
	stats, err := repo.ImportDump(context.Background(), strings.NewReader(dumpJSON))
	require.NoError(t, err)
	require.Equal(t, ImportStats{Submissions: 2, Comments: 2}, stats)
}

func TestForumRepo_ImportDump(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	importFixture(t, repo)

	n, err := repo.Node(ctx, "abc")
	require.NoError(t, err)
	sub, ok := n.(*core.Submission)
	require.True(t, ok)
	assert.Equal(t, "alice", sub.Author)
	assert.Equal(t, "Hello", sub.Title)
	assert.Equal(t, "First post", sub.Body)
	assert.Equal(t, "Discussion", sub.Flair)
	assert.False(t, sub.IsLink)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), sub.CreatedAt)

	n, err = repo.Node(ctx, "lnk")
	require.NoError(t, err)
	link := n.(*core.Submission)
	assert.Empty(t, link.Author)
	assert.True(t, link.IsLink)
	assert.Equal(t, "https://example.com", link.URL)

	n, err = repo.Node(ctx, "c2")
	require.NoError(t, err)
	c2, ok := n.(*core.Comment)
	require.True(t, ok)
	assert.Equal(t, "abc", c2.SubmissionID)
	assert.Equal(t, "c1", c2.ParentID)
	assert.Equal(t, "Nested reply", c2.Body)
	assert.True(t, c2.Mention)
}

func TestForumRepo_Tree(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	importFixture(t, repo)

	n, err := repo.Node(ctx, "c2")
	require.NoError(t, err)
	c2 := n.(*core.Comment)

	parent, err := repo.Parent(ctx, c2)
	require.NoError(t, err)
	c1, ok := parent.(*core.Comment)
	require.True(t, ok)
	assert.Equal(t, "c1", c1.ID)
	assert.True(t, c1.IsTopLevel())
	assert.Equal(t, "Verified GPT-2 Bot", c1.AuthorFlair)

	root, err := repo.Parent(ctx, c1)
	require.NoError(t, err)
	assert.Equal(t, "abc", root.NodeID())

	sub, err := repo.Submission(ctx, c2)
	require.NoError(t, err)
	assert.Equal(t, "Hello", sub.Title)

	comments, err := repo.Comments(ctx, "abc")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "c1", comments[0].ID)
	assert.Equal(t, "c2", comments[1].ID)
}

func TestForumRepo_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	_, err := repo.Node(ctx, "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)

	orphan := &core.Comment{ID: "x", SubmissionID: "gone", ParentID: "also-gone"}
	_, err = repo.Parent(ctx, orphan)
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = repo.Submission(ctx, orphan)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestForumRepo_Save(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	require.NoError(t, repo.SaveSubmission(ctx, &core.Submission{ID: "s", Author: "alice", Title: "T", CreatedAt: created}))
	require.NoError(t, repo.SaveComment(ctx, &core.Comment{ID: "c", SubmissionID: "s", Body: "first", CreatedAt: created}))
	require.NoError(t, repo.SaveComment(ctx, &core.Comment{ID: "c", SubmissionID: "s", Author: "bob", Body: "edited", CreatedAt: created}))

	n, err := repo.Node(ctx, "c")
	require.NoError(t, err)
	c := n.(*core.Comment)
	assert.Equal(t, "edited", c.Body)
	assert.Equal(t, "bob", c.Author)
	assert.Equal(t, "s", c.ParentID)
	assert.Equal(t, created, c.CreatedAt)
}

func TestForumRepo_ImportDumpRejectsBadInput(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		dump string
	}{
		{name: "not json", dump: "{"},
		{name: "submission without id", dump: `{"submissions":[{"title":"x"}]}`},
		{name: "comment without link", dump: `{"comments":[{"id":"t1_a","body":"x"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newRepo(t)
			_, err := repo.ImportDump(ctx, strings.NewReader(tt.dump))
			assert.Error(t, err)

			comments, err := repo.Comments(ctx, "a")
			require.NoError(t, err)
			assert.Empty(t, comments)
		})
	}
}

func TestStripKind(t *testing.T) {
	assert.Equal(t, "abc", stripKind("t3_abc"))
	assert.Equal(t, "xyz", stripKind("t1_xyz"))
	assert.Equal(t, "plain", stripKind("plain"))
	assert.Equal(t, "tx_abc", stripKind("tx_abc"))
}
