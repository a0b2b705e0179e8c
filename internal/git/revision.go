package git

import (
	"strings"

	"github.com/wahlandcase/tickethook/internal/models"
)

// IsZeroRevision reports whether rev is git's "no object" marker (all zeros, any hash length)
func IsZeroRevision(rev string) bool {
	return strings.Trim(rev, "0") == ""
}

// ResolveRange classifies a ref update and returns the commits it introduced
func ResolveRange(oldRev, newRev string) models.RevisionRange {
	switch {
	case IsZeroRevision(oldRev):
		return models.RevisionRange{Kind: models.RangeCreate, New: newRev}
	case IsZeroRevision(newRev):
		return models.RevisionRange{Kind: models.RangeDelete}
	default:
		return models.RevisionRange{Kind: models.RangeUpdate, Old: oldRev, New: newRev}
	}
}
