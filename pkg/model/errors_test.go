package model

import (
	"strings"
	"testing"
)

func TestConflictError(t *testing.T) {
	err := &ConflictError{
		EventName:   "Sharks vs Comets",
		Date:        "2026-09-07",
		Conflicting: []string{"Sharks vs Bears", "Sharks recovery day"},
	}
	got := err.Error()
	for _, want := range []string{"Sharks vs Comets", "2026-09-07", "Sharks vs Bears", "Sharks recovery day"} {
		if !strings.Contains(got, want) {
			t.Errorf("Error() = %q, missing %q", got, want)
		}
	}
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "week", Message: "season week 30 out of range [0,26]"}
	if got := err.Error(); got != "week: season week 30 out of range [0,26]" {
		t.Errorf("Error() = %q", got)
	}

	bare := &ValidationError{Message: "event is nil"}
	if got := bare.Error(); got != "event is nil" {
		t.Errorf("Error() = %q", got)
	}
}

func TestInvalidTransitionError(t *testing.T) {
	err := &InvalidTransitionError{
		EventID: "evt_abc123",
		From:    EventStateExecuted,
		To:      EventStateScheduled,
	}
	want := "invalid event state transition: EXECUTED → SCHEDULED (event evt_abc123)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
