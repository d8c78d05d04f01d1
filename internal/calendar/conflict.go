package calendar

import (
	"time"

	"github.com/me/seasonsim/pkg/model"
)

// coexistAllowed lists kind pairs whose events may share participants on one
// date. Order-insensitive; checked both ways. Exclusive kinds (game) ignore
// this table entirely.
var coexistAllowed = map[[2]model.Kind]bool{
	{model.KindAdministrative, model.KindRest}: true,
}

// canCoexist reports whether two events sharing at least one participant may
// still occupy the same date.
func canCoexist(a, b model.Event) bool {
	if a.Kind().Exclusive() || b.Kind().Exclusive() {
		return false
	}
	return coexistAllowed[[2]model.Kind{a.Kind(), b.Kind()}] ||
		coexistAllowed[[2]model.Kind{b.Kind(), a.Kind()}]
}

// conflictsOn returns every event already on date that conflicts with the
// candidate: shared participant and no coexistence exemption. Caller holds
// the lock.
func (c *Calendar) conflictsOn(date time.Time, candidate model.Event) []model.Event {
	var conflicts []model.Event
	for _, e := range c.byDate[date] {
		if !shareParticipant(e.event, candidate) {
			continue
		}
		if canCoexist(e.event, candidate) {
			continue
		}
		conflicts = append(conflicts, e.event)
	}
	return conflicts
}

// firstFreeDate searches forward from start for the first date where the
// candidate conflicts with nothing, bounded by horizonDays. Caller holds the
// lock.
func (c *Calendar) firstFreeDate(candidate model.Event, start time.Time, horizonDays int) (time.Time, bool) {
	d := model.NormalizeDate(start)
	for i := 0; i < horizonDays; i++ {
		if len(c.conflictsOn(d, candidate)) == 0 {
			return d, true
		}
		d = d.AddDate(0, 0, 1)
	}
	return time.Time{}, false
}

func shareParticipant(a, b model.Event) bool {
	set := make(map[string]bool, len(a.Participants()))
	for _, p := range a.Participants() {
		set[p] = true
	}
	for _, p := range b.Participants() {
		if set[p] {
			return true
		}
	}
	return false
}

func conflictNames(events []model.Event) []string {
	names := make([]string, 0, len(events))
	for _, ev := range events {
		names = append(names, ev.Name())
	}
	return names
}
