package order

import (
	"fmt"
	"strings"
)

// validTransitions defines the allowed status state machine.
var validTransitions = map[Status][]Status{
	StatusNew:        {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// ParseStatus validates a status name.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := validTransitions[st]; !ok {
		return "", fmt.Errorf("%w: unknown status %q", ErrValidation, s)
	}
	return st, nil
}

// Terminal reports whether no transition leaves s.
func (s Status) Terminal() bool {
	return len(validTransitions[s]) == 0
}

// CanTransition returns ErrInvalidTransition unless the graph has an edge from -> to.
// Replaying the current status is not an edge.
func CanTransition(from, to Status) error {
	for _, next := range validTransitions[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: cannot transition order from %s to %s", ErrInvalidTransition, from, to)
}

// NextStatuses lists the statuses reachable from s, for admin UIs.
func NextStatuses(s Status) []Status {
	return append([]Status(nil), validTransitions[s]...)
}
