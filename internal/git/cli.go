package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/wahlandcase/tickethook/internal/models"
)

// commandRunner runs git with args in dir and returns stdout
type commandRunner func(ctx context.Context, dir string, args ...string) ([]byte, error)

// CLIBackend reads commits by running the git binary, so it sees exactly what the
// receiving repository sees (GIT_DIR and friends are inherited from the hook)
type CLIBackend struct {
	repoPath string
	run      commandRunner
}

// NewCLIBackend creates a backend that runs git in repoPath (empty = current directory)
func NewCLIBackend(repoPath string) *CLIBackend {
	return &CLIBackend{
		repoPath: repoPath,
		run:      execGit,
	}
}

func execGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	output, err := cmd.Output()
	if err != nil {
		outputStr := ""
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			outputStr = strings.TrimSpace(string(exitErr.Stderr))
		}
		if outputStr == "" {
			outputStr = err.Error()
		}
		return nil, &GitError{Command: args[0], Output: outputStr}
	}
	return output, nil
}

// RevList implements Backend
func (b *CLIBackend) RevList(ctx context.Context, rng models.RevisionRange) ([]string, error) {
	args := revListArgs(rng)
	if args == nil {
		return nil, nil
	}

	output, err := b.run(ctx, b.repoPath, args...)
	if err != nil {
		return nil, err
	}

	return strings.Fields(string(output)), nil
}

func revListArgs(rng models.RevisionRange) []string {
	switch rng.Kind {
	case models.RangeCreate:
		return []string{"rev-list", rng.New}
	case models.RangeUpdate:
		return []string{"rev-list", rng.New, "^" + rng.Old}
	default:
		return nil
	}
}

// NUL-separated so names containing spaces or punctuation survive
const metadataFormat = "--format=%H%x00%an%x00%ae%x00%aI"

// CommitMetadata implements Backend
func (b *CLIBackend) CommitMetadata(ctx context.Context, sha string) (models.CommitRecord, error) {
	output, err := b.run(ctx, b.repoPath, "show", "-s", metadataFormat, sha)
	if err != nil {
		return models.CommitRecord{}, err
	}

	parts := strings.Split(strings.TrimRight(string(output), "\n"), "\x00")
	if len(parts) != 4 {
		return models.CommitRecord{}, &GitError{Command: "show", Output: fmt.Sprintf("unexpected metadata for %s: %q", sha, output)}
	}

	date, err := time.Parse(time.RFC3339, parts[3])
	if err != nil {
		return models.CommitRecord{}, fmt.Errorf("parsing author date of %s: %w", sha, err)
	}

	return models.NewCommitRecord(parts[0], parts[1], parts[2], date), nil
}

// RawCommit implements Backend
func (b *CLIBackend) RawCommit(ctx context.Context, sha string) (string, error) {
	output, err := b.run(ctx, b.repoPath, "cat-file", "commit", sha)
	if err != nil {
		return "", err
	}
	return string(output), nil
}
