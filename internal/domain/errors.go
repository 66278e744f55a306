package domain

import (
	"errors"
	"fmt"
)

// Blocker protocol precondition violations. All are detected before any
// mutation; callers can recover by re-prompting.
var (
	ErrAlreadyBlocked  = errors.New("estimate is already blocked")
	ErrNotBlocked      = errors.New("estimate is not blocked")
	ErrNoActiveBlocker = errors.New("no active blocker found for estimate")
)

// InvalidTransitionError reports a requested status edge that is not in the
// allowed table. The message names both statuses so the UI can surface a
// specific rejection rather than a generic failure.
type InvalidTransitionError struct {
	From EstimateStatus
	To   EstimateStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition from %q to %q", e.From, e.To)
}

// ValidationError reports malformed input to a scalar field edit. The stored
// value is left unchanged when one of these is returned.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}
