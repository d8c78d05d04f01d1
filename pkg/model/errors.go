package model

import (
	"fmt"
	"strings"
)

// ConflictError reports a scheduling conflict between a candidate event and
// events already on the target date. Recoverable; the outcome depends on the
// configured conflict policy.
type ConflictError struct {
	EventName   string
	Date        string
	Conflicting []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("scheduling conflict for %q on %s: conflicts with %s",
		e.EventName, e.Date, strings.Join(e.Conflicting, ", "))
}

// ValidationError reports a malformed event or processing context. Events
// failing validation are never scheduled; contexts failing validation reject
// the result before any processor runs.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// InvalidTransitionError is returned when an event lifecycle transition is invalid.
type InvalidTransitionError struct {
	EventID string
	From    EventState
	To      EventState
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid event state transition: %s → %s (event %s)", e.From, e.To, e.EventID)
}
