// Package calendar implements the date-indexed event scheduler: conflict
// detection and resolution, availability queries, and the day/season
// simulation loop.
package calendar

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/me/seasonsim/internal/config"
	"github.com/me/seasonsim/internal/processor"
	"github.com/me/seasonsim/internal/season"
	"github.com/me/seasonsim/pkg/model"
)

// entry tracks one scheduled event and its lifecycle state.
type entry struct {
	event model.Event
	state model.EventState
}

// Calendar owns every scheduled event and keeps three mutually consistent
// indices: date→events, date→busy participants, id→event. All mutation goes
// through the single mutex; an individual event's execute+process step runs
// outside it.
type Calendar struct {
	mu sync.RWMutex

	byDate map[time.Time][]*entry
	busy   map[time.Time]map[string]bool
	byID   map[string]*entry

	current  time.Time
	cfg      config.Simulation
	registry *processor.Registry
	state    *season.State
	logger   *slog.Logger
}

// New creates an empty calendar starting at the given date.
func New(start time.Time, cfg config.Simulation, reg *processor.Registry, st *season.State, logger *slog.Logger) *Calendar {
	return &Calendar{
		byDate:   make(map[time.Time][]*entry),
		busy:     make(map[time.Time]map[string]bool),
		byID:     make(map[string]*entry),
		current:  model.NormalizeDate(start),
		cfg:      cfg,
		registry: reg,
		state:    st,
		logger:   logger.With("component", "calendar"),
	}
}

// CurrentDate returns the calendar's cursor: the next date to be simulated.
func (c *Calendar) CurrentDate() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// ScheduleOutcome reports the result of one scheduling call. Expected
// conflicts are not errors; they are outcomes (spec'd by policy).
type ScheduleOutcome struct {
	OK      bool
	State   model.EventState
	EventID string
	Date    time.Time
	Message string
}

// Schedule places an event on its own date under the configured policy.
func (c *Calendar) Schedule(ev model.Event) ScheduleOutcome {
	return c.ScheduleOn(ev, ev.Date())
}

// ScheduleOn places an event on target under the configured policy.
func (c *Calendar) ScheduleOn(ev model.Event, target time.Time) ScheduleOutcome {
	return c.schedule(ev, target, c.cfg.ConflictPolicy)
}

// ScheduleWithPolicy places an event under an explicit policy, overriding the
// configured default for this one call.
func (c *Calendar) ScheduleWithPolicy(ev model.Event, target time.Time, policy model.ConflictPolicy) ScheduleOutcome {
	return c.schedule(ev, target, policy)
}

func (c *Calendar) schedule(ev model.Event, target time.Time, policy model.ConflictPolicy) ScheduleOutcome {
	if msg, ok := validateEvent(ev); !ok {
		return ScheduleOutcome{OK: false, State: model.EventStateRejected, Message: msg}
	}
	date := model.NormalizeDate(target)

	c.mu.Lock()
	defer c.mu.Unlock()

	conflicts := c.conflictsOn(date, ev)
	if len(conflicts) == 0 || policy == model.PolicyForce {
		if len(conflicts) > 0 {
			c.logger.Warn("forcing conflicting event onto date",
				"event", ev.Name(), "date", date.Format("2006-01-02"), "conflicts", len(conflicts))
		}
		id := c.place(ev, date)
		return ScheduleOutcome{OK: true, State: model.EventStateAccepted, EventID: id, Date: date,
			Message: fmt.Sprintf("scheduled %q on %s", ev.Name(), date.Format("2006-01-02"))}
	}

	switch policy {
	case model.PolicyReject:
		conflictErr := &model.ConflictError{
			EventName:   ev.Name(),
			Date:        date.Format("2006-01-02"),
			Conflicting: conflictNames(conflicts),
		}
		c.logger.Debug("event rejected", "event", ev.Name(), "date", date.Format("2006-01-02"))
		return ScheduleOutcome{OK: false, State: model.EventStateRejected, Message: conflictErr.Error()}

	case model.PolicyReschedule:
		newDate, found := c.firstFreeDate(ev, date.AddDate(0, 0, 1), c.cfg.RescheduleHorizonDays)
		if !found {
			return ScheduleOutcome{OK: false, State: model.EventStateRejected,
				Message: fmt.Sprintf("no free date for %q within %d days of %s",
					ev.Name(), c.cfg.RescheduleHorizonDays, date.Format("2006-01-02"))}
		}
		ev.SetDate(newDate)
		id := c.place(ev, newDate)
		c.logger.Info("event rescheduled", "event", ev.Name(),
			"from", date.Format("2006-01-02"), "to", newDate.Format("2006-01-02"))
		return ScheduleOutcome{OK: true, State: model.EventStateRescheduled, EventID: id, Date: newDate,
			Message: fmt.Sprintf("rescheduled %q to %s", ev.Name(), newDate.Format("2006-01-02"))}
	}

	return ScheduleOutcome{OK: false, State: model.EventStateRejected,
		Message: fmt.Sprintf("unknown conflict policy %q", policy)}
}

// place inserts the event into all three indices. Caller holds the lock.
func (c *Calendar) place(ev model.Event, date time.Time) string {
	ev.SetDate(date)
	id := model.EventID(date, ev.Participants(), ev.Name())
	ev.SetID(id)

	// Placement means the conflict check passed (or was forced).
	e := &entry{event: ev, state: model.EventStateAccepted}
	c.byDate[date] = append(c.byDate[date], e)
	c.byID[id] = e
	if c.busy[date] == nil {
		c.busy[date] = make(map[string]bool)
	}
	for _, p := range ev.Participants() {
		c.busy[date][p] = true
	}
	return id
}

// Remove deletes an event from all three indices. Returns false if the id is
// unknown.
func (c *Calendar) Remove(eventID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.byID[eventID]
	if !ok {
		return false
	}
	date := model.NormalizeDate(e.event.Date())

	delete(c.byID, eventID)

	bucket := c.byDate[date]
	for i, cand := range bucket {
		if cand == e {
			c.byDate[date] = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(c.byDate[date]) == 0 {
		delete(c.byDate, date)
	}

	// Rebuild the busy set from the surviving events; under Force two events
	// may share a participant, so per-event deletion would over-free.
	c.rebuildBusy(date)

	c.logger.Debug("event removed", "event_id", eventID, "date", date.Format("2006-01-02"))
	return true
}

// rebuildBusy recomputes one date's busy set. Caller holds the lock.
func (c *Calendar) rebuildBusy(date time.Time) {
	delete(c.busy, date)
	for _, e := range c.byDate[date] {
		if c.busy[date] == nil {
			c.busy[date] = make(map[string]bool)
		}
		for _, p := range e.event.Participants() {
			c.busy[date][p] = true
		}
	}
}

// EventsForDate returns the events scheduled on a date, in scheduling order.
func (c *Calendar) EventsForDate(date time.Time) []model.Event {
	c.mu.RLock()
	defer c.mu.RUnlock()

	bucket := c.byDate[model.NormalizeDate(date)]
	events := make([]model.Event, 0, len(bucket))
	for _, e := range bucket {
		events = append(events, e.event)
	}
	return events
}

// Event returns the scheduled event with the given id, or nil.
func (c *Calendar) Event(eventID string) model.Event {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if e, ok := c.byID[eventID]; ok {
		return e.event
	}
	return nil
}

// IsAvailable reports whether a participant has no event on a date.
func (c *Calendar) IsAvailable(participantID string, date time.Time) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.busy[model.NormalizeDate(date)][participantID]
}

// ParticipantSchedule returns the participant's events per date in [from, to].
func (c *Calendar) ParticipantSchedule(participantID string, from, to time.Time) map[time.Time][]model.Event {
	c.mu.RLock()
	defer c.mu.RUnlock()

	sched := make(map[time.Time][]model.Event)
	for d := model.NormalizeDate(from); !d.After(model.NormalizeDate(to)); d = d.AddDate(0, 0, 1) {
		for _, e := range c.byDate[d] {
			if hasParticipant(e.event, participantID) {
				sched[d] = append(sched[d], e.event)
			}
		}
	}
	return sched
}

// FindAvailableDates returns every start date in [from, to] where all the
// given participants are free for durationDays consecutive days.
func (c *Calendar) FindAvailableDates(participantIDs []string, durationDays int, from, to time.Time) []time.Time {
	if durationDays <= 0 {
		durationDays = 1
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var dates []time.Time
	end := model.NormalizeDate(to)
	for d := model.NormalizeDate(from); !d.After(end); d = d.AddDate(0, 0, 1) {
		if c.windowFree(participantIDs, d, durationDays) {
			dates = append(dates, d)
		}
	}
	return dates
}

// windowFree reports whether all ids are free on every day of the window.
// Caller holds at least a read lock.
func (c *Calendar) windowFree(ids []string, start time.Time, days int) bool {
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		for _, id := range ids {
			if c.busy[day][id] {
				return false
			}
		}
	}
	return true
}

func validateEvent(ev model.Event) (string, bool) {
	if ev == nil {
		return "event is nil", false
	}
	if len(ev.Participants()) == 0 {
		return fmt.Sprintf("event %q has no participants", ev.Name()), false
	}
	if ev.DurationHours() <= 0 {
		return fmt.Sprintf("event %q has non-positive duration", ev.Name()), false
	}
	if !ev.Kind().Valid() {
		return fmt.Sprintf("event %q has unknown kind %q", ev.Name(), ev.Kind()), false
	}
	return "", true
}

func hasParticipant(ev model.Event, id string) bool {
	for _, p := range ev.Participants() {
		if p == id {
			return true
		}
	}
	return false
}
