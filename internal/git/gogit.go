package git

import (
	"context"
	"fmt"
	"io"

	"github.com/wahlandcase/tickethook/internal/models"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GoGitBackend reads commits in-process with go-git
type GoGitBackend struct {
	repo *git.Repository
}

// NewGoGitBackend wraps an already opened repository
func NewGoGitBackend(repo *git.Repository) *GoGitBackend {
	return &GoGitBackend{repo: repo}
}

// OpenGoGitBackend opens the repository at path (bare or not)
func OpenGoGitBackend(path string) (*GoGitBackend, error) {
	if path == "" {
		path = "."
	}
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening repository %s: %w", path, err)
	}
	return NewGoGitBackend(repo), nil
}

// RevList implements Backend
func (b *GoGitBackend) RevList(ctx context.Context, rng models.RevisionRange) ([]string, error) {
	if rng.IsEmpty() {
		return nil, nil
	}

	newHash, err := b.repo.ResolveRevision(plumbing.Revision(rng.New))
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", rng.New, err)
	}

	// Build set of commits reachable from old
	excluded := make(map[plumbing.Hash]bool)
	if rng.Kind == models.RangeUpdate {
		oldHash, err := b.repo.ResolveRevision(plumbing.Revision(rng.Old))
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", rng.Old, err)
		}
		oldIter, err := b.repo.Log(&git.LogOptions{From: *oldHash})
		if err != nil {
			return nil, err
		}
		err = oldIter.ForEach(func(c *object.Commit) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			excluded[c.Hash] = true
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	newIter, err := b.repo.Log(&git.LogOptions{From: *newHash, Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, err
	}

	var shas []string
	err = newIter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		// Don't stop iteration - merge commits have multiple parents
		// and the other side may still hold new commits.
		if excluded[c.Hash] {
			return nil
		}
		shas = append(shas, c.Hash.String())
		return nil
	})
	if err != nil {
		return nil, err
	}

	return shas, nil
}

// CommitMetadata implements Backend
func (b *GoGitBackend) CommitMetadata(ctx context.Context, sha string) (models.CommitRecord, error) {
	c, err := b.repo.CommitObject(plumbing.NewHash(sha))
	if err != nil {
		return models.CommitRecord{}, fmt.Errorf("loading commit %s: %w", sha, err)
	}
	return models.NewCommitRecord(c.Hash.String(), c.Author.Name, c.Author.Email, c.Author.When), nil
}

// RawCommit implements Backend
func (b *GoGitBackend) RawCommit(ctx context.Context, sha string) (string, error) {
	obj, err := b.repo.Storer.EncodedObject(plumbing.CommitObject, plumbing.NewHash(sha))
	if err != nil {
		return "", fmt.Errorf("loading commit object %s: %w", sha, err)
	}

	r, err := obj.Reader()
	if err != nil {
		return "", err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
