package model

import "time"

// Result is the immutable, typed outcome of executing one event. Exactly one
// payload field matching Kind is non-nil; the rest stay nil.
type Result struct {
	Kind          Kind              `json:"kind"`
	Name          string            `json:"name"`
	Date          time.Time         `json:"date"`
	Participants  []string          `json:"participants"`
	DurationHours int               `json:"duration_hours"`
	Success       bool              `json:"success"`
	Err           string            `json:"error,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`

	Game     *GamePayload     `json:"game,omitempty"`
	Training *TrainingPayload `json:"training,omitempty"`
	Scouting *ScoutingPayload `json:"scouting,omitempty"`
	Admin    *AdminPayload    `json:"admin,omitempty"`
	Rest     *RestPayload     `json:"rest,omitempty"`
}

// GamePayload carries the outcome of a played game.
type GamePayload struct {
	HomeID    string `json:"home_id"`
	AwayID    string `json:"away_id"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
	Overtime  bool   `json:"overtime,omitempty"`
	Attend    int    `json:"attendance,omitempty"`
}

// Winner returns the winning participant ID, or "" on a tie.
func (g *GamePayload) Winner() string {
	switch {
	case g.HomeScore > g.AwayScore:
		return g.HomeID
	case g.AwayScore > g.HomeScore:
		return g.AwayID
	}
	return ""
}

// Loser returns the losing participant ID, or "" on a tie.
func (g *GamePayload) Loser() string {
	switch {
	case g.HomeScore > g.AwayScore:
		return g.AwayID
	case g.AwayScore > g.HomeScore:
		return g.HomeID
	}
	return ""
}

// TrainingPayload carries the outcome of a training session.
type TrainingPayload struct {
	Focus          string  `json:"focus"`
	Intensity      int     `json:"intensity"`
	ChemistryGain  float64 `json:"chemistry_gain"`
	FatigueCost    float64 `json:"fatigue_cost"`
	InjuryOccurred bool    `json:"injury_occurred,omitempty"`
	InjuredPlayer  string  `json:"injured_player,omitempty"`
}

// ScoutingPayload carries the outcome of a scouting mission.
type ScoutingPayload struct {
	TargetID     string  `json:"target_id"`
	IntelQuality float64 `json:"intel_quality"`
	Report       string  `json:"report,omitempty"`
}

// AdminPayload carries the outcome of an administrative activity.
type AdminPayload struct {
	Activity string `json:"activity"`
	Notes    string `json:"notes,omitempty"`
}

// RestPayload carries the outcome of a scheduled rest day.
type RestPayload struct {
	RecoveryLevel float64 `json:"recovery_level"`
}

// RequiresStandingsUpdate reports whether folding this result can move the
// standings. Only successful games do.
func (r *Result) RequiresStandingsUpdate() bool {
	return r.Kind == KindGame && r.Success && r.Game != nil
}

// RequiresInjuryProcessing reports whether an injury occurred during this
// result's event.
func (r *Result) RequiresInjuryProcessing() bool {
	return r.Kind == KindTraining && r.Training != nil && r.Training.InjuryOccurred
}

// RequiresIntelUpdate reports whether this result carries scouting intel.
func (r *Result) RequiresIntelUpdate() bool {
	return r.Kind == KindScouting && r.Success && r.Scouting != nil
}

// Failed builds a failed result preserving the event envelope. Used when
// execution itself blows up (panic, timeout) and the event produced nothing.
func Failed(ev Event, msg string) *Result {
	return &Result{
		Kind:          ev.Kind(),
		Name:          ev.Name(),
		Date:          ev.Date(),
		Participants:  ev.Participants(),
		DurationHours: ev.DurationHours(),
		Success:       false,
		Err:           msg,
	}
}
