package git

import (
	"context"
	"slices"

	"github.com/wahlandcase/tickethook/internal/models"
)

// Walk returns the commits in rng oldest first
func Walk(ctx context.Context, backend Backend, rng models.RevisionRange) ([]string, error) {
	if rng.IsEmpty() {
		return nil, nil
	}

	shas, err := backend.RevList(ctx, rng)
	if err != nil {
		return nil, err
	}

	// Backends list newest first
	slices.Reverse(shas)
	return shas, nil
}
