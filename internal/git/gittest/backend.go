// Package gittest provides an in-memory git.Backend with linear history for tests.
package gittest

import (
	"context"
	"fmt"
	"time"

	"github.com/wahlandcase/tickethook/internal/models"
)

// Commit is one commit of the fake history
type Commit struct {
	SHA         string
	AuthorName  string
	AuthorEmail string
	Date        time.Time
	Message     string
	parent      string
}

// Backend is a linear history; each added commit is the child of the previous one
type Backend struct {
	commits map[string]Commit
	head    string

	// RevListErr, when set, is returned by RevList
	RevListErr error
	// RevListCalls records every range passed to RevList
	RevListCalls []models.RevisionRange
}

// NewBackend creates an empty history
func NewBackend() *Backend {
	return &Backend{commits: make(map[string]Commit)}
}

// Add appends commits on top of the current head
func (b *Backend) Add(commits ...Commit) *Backend {
	for _, c := range commits {
		c.parent = b.head
		b.commits[c.SHA] = c
		b.head = c.SHA
	}
	return b
}

// RevList implements git.Backend, newest first
func (b *Backend) RevList(_ context.Context, rng models.RevisionRange) ([]string, error) {
	b.RevListCalls = append(b.RevListCalls, rng)
	if b.RevListErr != nil {
		return nil, b.RevListErr
	}
	if rng.IsEmpty() {
		return nil, nil
	}

	if _, ok := b.commits[rng.New]; !ok {
		return nil, fmt.Errorf("bad revision %q", rng.New)
	}

	var shas []string
	for sha := rng.New; sha != ""; sha = b.commits[sha].parent {
		if rng.Kind == models.RangeUpdate && sha == rng.Old {
			break
		}
		shas = append(shas, sha)
	}
	return shas, nil
}

// CommitMetadata implements git.Backend
func (b *Backend) CommitMetadata(_ context.Context, sha string) (models.CommitRecord, error) {
	c, ok := b.commits[sha]
	if !ok {
		return models.CommitRecord{}, fmt.Errorf("unknown commit %q", sha)
	}
	return models.NewCommitRecord(c.SHA, c.AuthorName, c.AuthorEmail, c.Date), nil
}

// RawCommit implements git.Backend
func (b *Backend) RawCommit(_ context.Context, sha string) (string, error) {
	c, ok := b.commits[sha]
	if !ok {
		return "", fmt.Errorf("unknown commit %q", sha)
	}

	raw := "tree 4b825dc642cb6eb9a060e54bf8d69288fbee4904\n"
	if c.parent != "" {
		raw += "parent " + c.parent + "\n"
	}
	sig := fmt.Sprintf("%s <%s> %d +0000", c.AuthorName, c.AuthorEmail, c.Date.Unix())
	raw += "author " + sig + "\n"
	raw += "committer " + sig + "\n"
	if c.Message == "" {
		return raw, nil
	}
	return raw + "\n" + c.Message + "\n", nil
}
