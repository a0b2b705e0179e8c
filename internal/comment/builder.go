// Package comment renders the ticket comment for a pushed commit.
package comment

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/wahlandcase/tickethook/internal/git"
	"github.com/wahlandcase/tickethook/internal/models"
)

// GitDateFormat is the layout git uses for its default date output
const GitDateFormat = "Mon Jan 2 15:04:05 2006 -0700"

// Builder turns commits into ticket comments
type Builder struct {
	backend     git.Backend
	ticketRegex *regexp.Regexp
	dedupe      bool
	sourceURL   string
}

// Option configures a Builder
type Option func(*Builder)

// WithSourceURL appends <url><sha> to every comment. The sha is concatenated as is.
func WithSourceURL(url string) Option {
	return func(b *Builder) {
		b.sourceURL = url
	}
}

// WithDedupe collapses repeated ticket ids within one message
func WithDedupe(dedupe bool) Option {
	return func(b *Builder) {
		b.dedupe = dedupe
	}
}

// NewBuilder creates a Builder reading commits from backend
func NewBuilder(backend git.Backend, ticketRegex *regexp.Regexp, opts ...Option) *Builder {
	b := &Builder{
		backend:     backend,
		ticketRegex: ticketRegex,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build loads the commit and returns its comment along with the ticket ids in its message
func (b *Builder) Build(ctx context.Context, sha, refName string) (models.TicketComment, []string, error) {
	record, err := b.backend.CommitMetadata(ctx, sha)
	if err != nil {
		return models.TicketComment{}, nil, fmt.Errorf("reading metadata of %s: %w", sha, err)
	}

	raw, err := b.backend.RawCommit(ctx, sha)
	if err != nil {
		return models.TicketComment{}, nil, fmt.Errorf("reading commit %s: %w", sha, err)
	}

	record = record.WithMessage(MessageBody(raw))
	if record.SHA == "" {
		record.SHA = sha
	}

	comment := models.TicketComment{
		RefName: refName,
		SHA:     record.SHA,
		Text:    b.Format(refName, record),
	}

	return comment, git.ExtractTickets(record.Message, b.ticketRegex, b.dedupe), nil
}

// Format renders the comment text for a commit
func (b *Builder) Format(refName string, record models.CommitRecord) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Branch: %s\n", refName)
	fmt.Fprintf(&sb, "Commit: %s\n", record.SHA)
	fmt.Fprintf(&sb, "Author: %s - %s\n", record.AuthorName, record.AuthorEmail)
	fmt.Fprintf(&sb, "Date:   %s\n", record.CommitDate.Format(GitDateFormat))
	sb.WriteString("\n")
	sb.WriteString(record.Message)

	if b.sourceURL != "" {
		sb.WriteString("\n\n")
		sb.WriteString(b.sourceURL + record.SHA)
	}

	return sb.String()
}

// MessageBody returns everything after the first blank line of a raw commit object.
// An object without a blank line has no message.
func MessageBody(raw string) string {
	_, body, found := strings.Cut(raw, "\n\n")
	if !found {
		return ""
	}
	return strings.TrimRight(body, "\n")
}
