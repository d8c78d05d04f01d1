package calendar

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/me/seasonsim/pkg/model"
)

// EventDescriptor is the serializable form of one scheduled event. The
// opaque payload round-trips whatever the event implementation needs to
// rebuild itself; events that don't implement PayloadSnapshotter restore
// from the envelope alone.
type EventDescriptor struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Kind          model.Kind       `json:"kind"`
	Date          time.Time        `json:"date"`
	Participants  []string         `json:"participants"`
	DurationHours int              `json:"duration_hours"`
	State         model.EventState `json:"state"`
	Payload       json.RawMessage  `json:"payload,omitempty"`
}

// PayloadSnapshotter is implemented by events that carry state beyond the
// scheduling envelope.
type PayloadSnapshotter interface {
	SnapshotPayload() ([]byte, error)
}

// EventFactory rebuilds an executable event from its descriptor on restore.
type EventFactory func(EventDescriptor) (model.Event, error)

// Snapshot is the serializable form of the calendar.
type Snapshot struct {
	CurrentDate time.Time         `json:"current_date"`
	Events      []EventDescriptor `json:"events"`
}

// Snapshot captures the calendar for checkpointing: cursor plus every
// scheduled event, ordered by date then id for a stable serialization.
func (c *Calendar) Snapshot() (*Snapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := &Snapshot{CurrentDate: c.current}
	for id, e := range c.byID {
		d := EventDescriptor{
			ID:            id,
			Name:          e.event.Name(),
			Kind:          e.event.Kind(),
			Date:          model.NormalizeDate(e.event.Date()),
			Participants:  append([]string(nil), e.event.Participants()...),
			DurationHours: e.event.DurationHours(),
			State:         e.state,
		}
		if snapper, ok := e.event.(PayloadSnapshotter); ok {
			payload, err := snapper.SnapshotPayload()
			if err != nil {
				return nil, fmt.Errorf("snapshot event %s: %w", id, err)
			}
			d.Payload = payload
		}
		snap.Events = append(snap.Events, d)
	}

	sort.Slice(snap.Events, func(i, j int) bool {
		if !snap.Events[i].Date.Equal(snap.Events[j].Date) {
			return snap.Events[i].Date.Before(snap.Events[j].Date)
		}
		return snap.Events[i].ID < snap.Events[j].ID
	})
	return snap, nil
}

// Restore replaces the calendar's contents from a snapshot, rebuilding every
// event through the factory and every index from the rebuilt events.
func (c *Calendar) Restore(snap *Snapshot, factory EventFactory) error {
	if factory == nil {
		return fmt.Errorf("restore requires an event factory")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.byDate = make(map[time.Time][]*entry)
	c.busy = make(map[time.Time]map[string]bool)
	c.byID = make(map[string]*entry)
	c.current = model.NormalizeDate(snap.CurrentDate)

	for _, d := range snap.Events {
		ev, err := factory(d)
		if err != nil {
			return fmt.Errorf("rebuild event %s (%s): %w", d.ID, d.Name, err)
		}
		ev.SetDate(d.Date)
		ev.SetID(d.ID)

		e := &entry{event: ev, state: d.State}
		c.byDate[d.Date] = append(c.byDate[d.Date], e)
		c.byID[d.ID] = e
		if c.busy[d.Date] == nil {
			c.busy[d.Date] = make(map[string]bool)
		}
		for _, p := range ev.Participants() {
			c.busy[d.Date][p] = true
		}
	}
	return nil
}
