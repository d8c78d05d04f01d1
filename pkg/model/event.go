package model

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"time"
)

// Event is a schedulable unit of simulated activity. Implementations live
// outside the core; the core only relies on this contract.
//
// Execute must encode expected failure modes as a Result with Success=false
// rather than returning an error; the error return is reserved for genuinely
// unexpected conditions (which the day loop converts into a failed event).
type Event interface {
	// ID returns the event's identity. Empty until the event is scheduled;
	// assigned by the calendar via EventID.
	ID() string

	// Name is a short human-readable label ("Week 3: Sharks vs Comets").
	Name() string

	// Kind returns the result kind this event produces.
	Kind() Kind

	// Date returns the event's current date (midnight UTC).
	Date() time.Time

	// SetDate re-dates the event. Only legal before scheduling; the calendar
	// uses it when the Reschedule policy moves an event.
	SetDate(t time.Time)

	// SetID assigns the scheduling-time identity. Called once by the calendar.
	SetID(id string)

	// Participants returns the non-empty set of participant IDs.
	Participants() []string

	// DurationHours returns the event's duration. Always > 0 for valid events.
	DurationHours() int

	// ValidatePreconditions reports whether the event is ready to execute.
	ValidatePreconditions() (bool, string)

	// Execute runs the event and produces its typed result.
	Execute(ctx context.Context) (*Result, error)
}

// EventID derives the deterministic scheduling-time identity of an event from
// its date, participant set, and name. The participant set is order-insensitive.
func EventID(date time.Time, participants []string, name string) string {
	sorted := make([]string, len(participants))
	copy(sorted, participants)
	sort.Strings(sorted)

	h := sha256.New()
	h.Write([]byte(date.UTC().Format("2006-01-02")))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(sorted, ",")))
	h.Write([]byte{0})
	h.Write([]byte(name))

	return "evt_" + hex.EncodeToString(h.Sum(nil))[:12]
}

// NormalizeDate truncates a time to midnight UTC. All calendar indices key on
// normalized dates.
func NormalizeDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
