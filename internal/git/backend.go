package git

import (
	"context"

	"github.com/wahlandcase/tickethook/internal/models"
)

// Backend is the version-control collaborator the hook reads commits from
type Backend interface {
	// RevList returns the commit ids selected by rng, newest first
	RevList(ctx context.Context, rng models.RevisionRange) ([]string, error)
	// CommitMetadata returns author name, email and date for a commit (Message is left empty)
	CommitMetadata(ctx context.Context, sha string) (models.CommitRecord, error)
	// RawCommit returns the raw commit object text: headers, a blank line, then the message
	RawCommit(ctx context.Context, sha string) (string, error)
}

const (
	BackendCLI   = "git"
	BackendGoGit = "go-git"
)

// NewBackend returns the backend named kind rooted at repoPath
func NewBackend(kind, repoPath string) (Backend, error) {
	switch kind {
	case BackendCLI, "":
		return NewCLIBackend(repoPath), nil
	case BackendGoGit:
		return OpenGoGitBackend(repoPath)
	default:
		return nil, &UnknownBackendError{Name: kind}
	}
}
