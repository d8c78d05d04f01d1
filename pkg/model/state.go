package model

// EventState represents the day-lifecycle state of a scheduled event.
type EventState string

const (
	EventStateScheduled   EventState = "SCHEDULED"
	EventStateRejected    EventState = "REJECTED"
	EventStateRescheduled EventState = "RESCHEDULED"
	EventStateAccepted    EventState = "ACCEPTED"
	EventStateExecuted    EventState = "EXECUTED"
	EventStateProcessed   EventState = "PROCESSED"
	EventStateFolded      EventState = "FOLDED"
	EventStateFailed      EventState = "FAILED"
)

// String returns the string representation of the event state.
func (s EventState) String() string {
	return string(s)
}

// IsTerminal returns true if the event reached a final state.
func (s EventState) IsTerminal() bool {
	switch s {
	case EventStateFolded, EventStateFailed, EventStateRejected:
		return true
	}
	return false
}

// ValidEventTransitions defines the allowed lifecycle transitions.
var ValidEventTransitions = map[EventState][]EventState{
	EventStateScheduled:   {EventStateRejected, EventStateRescheduled, EventStateAccepted},
	EventStateRescheduled: {EventStateAccepted},
	EventStateAccepted:    {EventStateExecuted, EventStateFailed},
	EventStateExecuted:    {EventStateProcessed, EventStateFailed},
	EventStateProcessed:   {EventStateFolded, EventStateFailed},
}

// CanTransitionTo returns true if moving from the current state to next is valid.
func (s EventState) CanTransitionTo(next EventState) bool {
	for _, allowed := range ValidEventTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
