package comment

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wahlandcase/tickethook/internal/git/gittest"
)

var ticketRegex = regexp.MustCompile("(?i)([A-Z]{3}-[0-9]{1,6})")

func testBackend() *gittest.Backend {
	return gittest.NewBackend().Add(
		gittest.Commit{
			SHA:         "c0ffee",
			AuthorName:  "Ada Lovelace",
			AuthorEmail: "ada@example.com",
			Date:        time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
			Message:     "Fixes ABC-123 and also ABC-124\n\nDetails here.",
		},
		gittest.Commit{
			SHA:         "bead",
			AuthorName:  "Grace Hopper",
			AuthorEmail: "grace@example.com",
			Date:        time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC),
		},
		gittest.Commit{
			SHA:         "f00d",
			AuthorName:  "Grace Hopper",
			AuthorEmail: "grace@example.com",
			Date:        time.Date(2024, 3, 2, 11, 0, 0, 0, time.UTC),
			Message:     "ABC-7 twice ABC-7",
		},
	)
}

func TestBuild(t *testing.T) {
	ctx := context.Background()

	t.Run("formats comment and extracts tickets", func(t *testing.T) {
		b := NewBuilder(testBackend(), ticketRegex)

		comment, tickets, err := b.Build(ctx, "c0ffee", "refs/heads/master")
		require.NoError(t, err)

		want := "Branch: refs/heads/master\n" +
			"Commit: c0ffee\n" +
			"Author: Ada Lovelace - ada@example.com\n" +
			"Date:   Fri Mar 1 09:30:00 2024 +0000\n" +
			"\n" +
			"Fixes ABC-123 and also ABC-124\n\nDetails here."
		assert.Equal(t, want, comment.Text)
		assert.Equal(t, "c0ffee", comment.SHA)
		assert.Equal(t, "refs/heads/master", comment.RefName)
		assert.Equal(t, []string{"ABC-123", "ABC-124"}, tickets)
	})

	t.Run("source link is appended when configured", func(t *testing.T) {
		b := NewBuilder(testBackend(), ticketRegex, WithSourceURL("https://git.example.com/commit/"))

		comment, _, err := b.Build(ctx, "c0ffee", "refs/heads/master")
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(comment.Text, "Details here.\n\nhttps://git.example.com/commit/c0ffee"))
	})

	t.Run("no source link line without a source url", func(t *testing.T) {
		b := NewBuilder(testBackend(), ticketRegex)

		comment, _, err := b.Build(ctx, "c0ffee", "refs/heads/master")
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(comment.Text, "Details here."))
		assert.NotContains(t, comment.Text, "http")
	})

	t.Run("commit without message body", func(t *testing.T) {
		b := NewBuilder(testBackend(), ticketRegex)

		comment, tickets, err := b.Build(ctx, "bead", "refs/heads/master")
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(comment.Text, "+0000\n\n"))
		assert.Empty(t, tickets)
	})

	t.Run("repeated ids are kept unless deduped", func(t *testing.T) {
		_, tickets, err := NewBuilder(testBackend(), ticketRegex).Build(ctx, "f00d", "refs/heads/master")
		require.NoError(t, err)
		assert.Equal(t, []string{"ABC-7", "ABC-7"}, tickets)

		_, tickets, err = NewBuilder(testBackend(), ticketRegex, WithDedupe(true)).Build(ctx, "f00d", "refs/heads/master")
		require.NoError(t, err)
		assert.Equal(t, []string{"ABC-7"}, tickets)
	})

	t.Run("unknown commit", func(t *testing.T) {
		_, _, err := NewBuilder(testBackend(), ticketRegex).Build(ctx, "missing", "refs/heads/master")
		assert.Error(t, err)
	})
}

func TestMessageBody(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"subject and body", "tree t\nauthor a\n\nSubject\n\nBody\n", "Subject\n\nBody"},
		{"subject only", "tree t\n\nSubject\n", "Subject"},
		{"no blank line", "tree t\nauthor a\n", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MessageBody(tt.raw))
		})
	}
}
