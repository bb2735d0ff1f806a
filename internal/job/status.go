// Package job defines the job lifecycle for marketplace postings.
//
// Valid status graph:
//
//	OPEN ──► IN_PROGRESS ──► COMPLETED
//
// COMPLETED is a terminal state.
package job

import "fmt"

// Status values stored in the jobs.status column.
type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

// validTransitions lists every allowed (from → to) pair.
var validTransitions = map[Status][]Status{
	StatusOpen:       {StatusInProgress},
	StatusInProgress: {StatusCompleted},
	// COMPLETED is terminal — no outgoing transitions
}

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusOpen, StatusInProgress, StatusCompleted:
		return st, nil
	}
	return "", fmt.Errorf("unknown job status %q", s)
}

// IsTransitionAllowed returns true when moving from → to is permitted by the
// lifecycle.
func IsTransitionAllowed(from, to Status) bool {
	allowed, ok := validTransitions[from]
	if !ok {
		return false // terminal state — no outgoing transitions
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// IsCompleted returns true when status is COMPLETED (triggers the completion
// event).
func IsCompleted(s Status) bool { return s == StatusCompleted }
