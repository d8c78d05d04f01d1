package model

import (
	"sort"
	"time"
)

// DaySummary accumulates the outcome of simulating one calendar day.
type DaySummary struct {
	Date               time.Time           `json:"date"`
	EventsRun          int                 `json:"events_run"`
	Successful         int                 `json:"successful"`
	Failed             int                 `json:"failed"`
	TotalDurationHours int                 `json:"total_duration_hours"`
	Participants       map[string]bool     `json:"-"`
	Errors             []string            `json:"errors,omitempty"`
	Results            []*ProcessingResult `json:"results,omitempty"`
}

// NewDaySummary creates an empty summary for the given date.
func NewDaySummary(date time.Time) *DaySummary {
	return &DaySummary{
		Date:         NormalizeDate(date),
		Participants: make(map[string]bool),
	}
}

// RecordSuccess folds one successful event into the summary.
func (d *DaySummary) RecordSuccess(r *Result, pr *ProcessingResult) {
	d.EventsRun++
	d.Successful++
	d.TotalDurationHours += r.DurationHours
	for _, id := range r.Participants {
		d.Participants[id] = true
	}
	if pr != nil {
		d.Results = append(d.Results, pr)
	}
}

// RecordFailure folds one failed event into the summary.
func (d *DaySummary) RecordFailure(name string, durationHours int, participants []string, msg string) {
	d.EventsRun++
	d.Failed++
	d.TotalDurationHours += durationHours
	for _, id := range participants {
		d.Participants[id] = true
	}
	d.Errors = append(d.Errors, name+": "+msg)
}

// ParticipantIDs returns the sorted set of participants touched this day.
func (d *DaySummary) ParticipantIDs() []string {
	ids := make([]string, 0, len(d.Participants))
	for id := range d.Participants {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
