package models

import "strings"

// PushEvent is one ref update reported by git to a post-receive hook
type PushEvent struct {
	// OldRev is the revision the ref pointed at before the push
	OldRev string
	// NewRev is the revision the ref points at after the push
	NewRev string
	// RefName is the full ref name (e.g., "refs/heads/master")
	RefName string
}

// NewPushEvent creates a new PushEvent
func NewPushEvent(oldRev, newRev, refName string) PushEvent {
	return PushEvent{
		OldRev:  oldRev,
		NewRev:  newRev,
		RefName: refName,
	}
}

// ParsePushEvent parses one "<old> <new> <ref>" line.
// Returns false unless the line has exactly three whitespace-separated tokens.
func ParsePushEvent(line string) (PushEvent, bool) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return PushEvent{}, false
	}
	return NewPushEvent(fields[0], fields[1], fields[2]), true
}
