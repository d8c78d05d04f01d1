package model

import (
	"fmt"
	"time"
)

// SeasonPhase identifies where in the season a processing pass happens.
type SeasonPhase string

const (
	PhasePreseason SeasonPhase = "preseason"
	PhaseRegular   SeasonPhase = "regular"
	PhasePlayoffs  SeasonPhase = "playoffs"
	PhaseOffseason SeasonPhase = "offseason"
)

// MaxSeasonWeek bounds the valid season week range (0 = preseason week).
const MaxSeasonWeek = 26

// ProcessingContext is the read-only snapshot handed to every processor for
// one day's processing pass.
type ProcessingContext struct {
	Date      time.Time        `json:"date"`
	Week      int              `json:"week"`
	Phase     SeasonPhase      `json:"phase"`
	Standings []StandingsEntry `json:"standings,omitempty"`
}

// Validate checks the context before any processor runs. Dates are simulated
// time, not wall time, so only structural invariants are checked.
func (c *ProcessingContext) Validate() error {
	if c.Date.IsZero() {
		return &ValidationError{Field: "date", Message: "context date is zero"}
	}
	if c.Week < 0 || c.Week > MaxSeasonWeek {
		return &ValidationError{Field: "week", Message: fmt.Sprintf("season week %d out of range [0,%d]", c.Week, MaxSeasonWeek)}
	}
	return nil
}

// StandingsEntry is one row of a standings snapshot.
type StandingsEntry struct {
	ParticipantID string  `json:"participant_id"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	WinPct        float64 `json:"win_pct"`
	PointDiff     int     `json:"point_diff"`
}

// DeltaField names an aggregate a state delta may target. The aggregator
// routes on this enum and never parses convention-encoded strings.
type DeltaField string

const (
	FieldWins          DeltaField = "wins"
	FieldLosses        DeltaField = "losses"
	FieldTies          DeltaField = "ties"
	FieldPointsFor     DeltaField = "points_for"
	FieldPointsAgainst DeltaField = "points_against"
	FieldChemistry     DeltaField = "chemistry"
	FieldFatigue       DeltaField = "fatigue"
	FieldMorale        DeltaField = "morale"
	FieldIntel         DeltaField = "intel"
)

// GameOnly reports whether the field may only be changed by game results.
func (f DeltaField) GameOnly() bool {
	switch f {
	case FieldWins, FieldLosses, FieldTies, FieldPointsFor, FieldPointsAgainst:
		return true
	}
	return false
}

// RecoveryOnly reports whether the field may only be changed by training or
// rest results.
func (f DeltaField) RecoveryOnly() bool {
	return f == FieldChemistry || f == FieldFatigue
}

// DeltaOp is the operation a state delta applies.
type DeltaOp string

const (
	OpAdd DeltaOp = "add"
	OpSet DeltaOp = "set"
)

// StateDelta is one structured change to a participant aggregate.
type StateDelta struct {
	Participant string     `json:"participant"`
	Field       DeltaField `json:"field"`
	Op          DeltaOp    `json:"op"`
	Value       float64    `json:"value"`
}

// HistoryEntry is a narrative line destined for the season history log.
type HistoryEntry struct {
	Week int    `json:"week"`
	Text string `json:"text"`
	Tag  string `json:"tag,omitempty"`
}

// ProcessingResult is the write-once record of what one processor did with
// one result. Built by the processor, finalized by the dispatch adapter,
// folded into season state, then discarded.
type ProcessingResult struct {
	ID                  string             `json:"id"`
	SourceKind          Kind               `json:"source_kind"`
	SourceName          string             `json:"source_name"`
	ProcessorName       string             `json:"processor_name"`
	Strategy            ProcessingStrategy `json:"strategy"`
	Week                int                `json:"week"`
	ParticipantsUpdated []string           `json:"participants_updated"`
	Statistics          map[string]float64 `json:"statistics,omitempty"`
	StateChanges        []StateDelta       `json:"state_changes,omitempty"`
	SideEffects         []string           `json:"side_effects,omitempty"`
	History             []HistoryEntry     `json:"history,omitempty"`
	Errors              []string           `json:"errors,omitempty"`
	Success             bool               `json:"success"`
	ProcessedIn         time.Duration      `json:"processed_in"`
}

// AddStat records a named statistic, initializing the map on first use.
func (p *ProcessingResult) AddStat(name string, value float64) {
	if p.Statistics == nil {
		p.Statistics = make(map[string]float64)
	}
	p.Statistics[name] += value
}

// AddDelta appends a state change.
func (p *ProcessingResult) AddDelta(participant string, field DeltaField, op DeltaOp, value float64) {
	p.StateChanges = append(p.StateChanges, StateDelta{
		Participant: participant,
		Field:       field,
		Op:          op,
		Value:       value,
	})
}

// AddError records a processing error and marks the result unsuccessful.
func (p *ProcessingResult) AddError(msg string) {
	p.Errors = append(p.Errors, msg)
	p.Success = false
}
