package models

import "fmt"

// RangeKind classifies a ref update
type RangeKind int

const (
	// RangeCreate means the ref was just created; every commit reachable from New is new
	RangeCreate RangeKind = iota
	// RangeUpdate means the ref moved; the commits are Old..New
	RangeUpdate
	// RangeDelete means the ref was deleted; nothing to walk
	RangeDelete
)

// String returns a display string for this kind
func (k RangeKind) String() string {
	switch k {
	case RangeCreate:
		return "create"
	case RangeUpdate:
		return "update"
	case RangeDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// RevisionRange is the set of commits a push introduced on a ref
type RevisionRange struct {
	Kind RangeKind
	// Old is only set for RangeUpdate
	Old string
	// New is empty for RangeDelete
	New string
}

// IsEmpty returns true if the range selects no commits
func (r RevisionRange) IsEmpty() bool {
	return r.Kind == RangeDelete
}

// String renders the range the way git rev-list would take it
func (r RevisionRange) String() string {
	switch r.Kind {
	case RangeCreate:
		return r.New
	case RangeUpdate:
		return fmt.Sprintf("%s..%s", r.Old, r.New)
	default:
		return ""
	}
}
