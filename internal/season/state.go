// Package season maintains the long-lived projection of every processed
// result: per-participant aggregates, standings, and narrative logs.
package season

import (
	"log/slog"
	"sync"

	"github.com/me/seasonsim/pkg/model"
)

// TeamRecord is one participant's running aggregates.
type TeamRecord struct {
	ParticipantID string  `json:"participant_id"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	PointsFor     int     `json:"points_for"`
	PointsAgainst int     `json:"points_against"`
	Chemistry     float64 `json:"chemistry"`
	Fatigue       float64 `json:"fatigue"`
	Morale        float64 `json:"morale"`
	Intel         float64 `json:"intel"`
}

// WinPct returns the participant's win percentage; ties count half.
func (r *TeamRecord) WinPct() float64 {
	games := r.Wins + r.Losses + r.Ties
	if games == 0 {
		return 0
	}
	return (float64(r.Wins) + 0.5*float64(r.Ties)) / float64(games)
}

// PointDiff returns points for minus points against.
func (r *TeamRecord) PointDiff() int {
	return r.PointsFor - r.PointsAgainst
}

// State is the season-long aggregate. Folding is serialized by the mutex so
// two concurrently processed results targeting the same participant cannot
// race.
type State struct {
	mu sync.Mutex

	records      map[string]*TeamRecord
	highlights   map[int][]string
	achievements []string

	// significant overrides the keyword classifier when set (custom strategy).
	significant func(text string, week int) bool

	logger *slog.Logger
}

// NewState creates an empty season state.
func NewState(logger *slog.Logger) *State {
	return &State{
		records:    make(map[string]*TeamRecord),
		highlights: make(map[int][]string),
		logger:     logger.With("component", "season"),
	}
}

// SetSignificanceFunc replaces the keyword-based highlight classifier.
func (s *State) SetSignificanceFunc(fn func(text string, week int) bool) {
	s.mu.Lock()
	s.significant = fn
	s.mu.Unlock()
}

// Fold applies one processing result to the season state: routed state
// deltas, weekly highlights, and achievements. It is the single mutation
// entry point.
func (s *State) Fold(pr *model.ProcessingResult) {
	if pr == nil || !pr.Success {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, delta := range pr.StateChanges {
		s.applyDelta(pr.SourceKind, delta)
	}
	for _, entry := range pr.History {
		s.highlights[entry.Week] = append(s.highlights[entry.Week], entry.Text)
	}
	for _, effect := range pr.SideEffects {
		s.routeSideEffect(effect, pr.Week)
	}
}

// applyDelta routes one state change, enforcing field provenance: win/loss
// aggregates move only on game results, chemistry/fatigue only on
// training/rest results. Caller holds the lock.
func (s *State) applyDelta(source model.Kind, d model.StateDelta) {
	if d.Field.GameOnly() && source != model.KindGame {
		s.logger.Warn("dropping game-only delta from non-game result",
			"field", string(d.Field), "source", source.String())
		return
	}
	if d.Field.RecoveryOnly() && source != model.KindTraining && source != model.KindRest {
		s.logger.Warn("dropping recovery delta from non-recovery result",
			"field", string(d.Field), "source", source.String())
		return
	}

	rec := s.record(d.Participant)
	switch d.Field {
	case model.FieldWins:
		rec.Wins = applyInt(rec.Wins, d)
	case model.FieldLosses:
		rec.Losses = applyInt(rec.Losses, d)
	case model.FieldTies:
		rec.Ties = applyInt(rec.Ties, d)
	case model.FieldPointsFor:
		rec.PointsFor = applyInt(rec.PointsFor, d)
	case model.FieldPointsAgainst:
		rec.PointsAgainst = applyInt(rec.PointsAgainst, d)
	case model.FieldChemistry:
		rec.Chemistry = clamp(applyFloat(rec.Chemistry, d), 0, 100)
	case model.FieldFatigue:
		rec.Fatigue = clampLow(applyFloat(rec.Fatigue, d), 0)
	case model.FieldMorale:
		rec.Morale = clamp(applyFloat(rec.Morale, d), 0, 100)
	case model.FieldIntel:
		rec.Intel = clampLow(applyFloat(rec.Intel, d), 0)
	default:
		s.logger.Debug("ignoring unknown delta field",
			"field", string(d.Field), "participant", d.Participant)
	}
}

// record returns the participant's record, creating it on first reference.
// Caller holds the lock.
func (s *State) record(id string) *TeamRecord {
	rec, ok := s.records[id]
	if !ok {
		rec = &TeamRecord{ParticipantID: id, Morale: 50}
		s.records[id] = rec
	}
	return rec
}

// Record returns a copy of a participant's aggregates.
func (s *State) Record(id string) (TeamRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return TeamRecord{}, false
	}
	return *rec, true
}

// Highlights returns the narrative log for one week.
func (s *State) Highlights(week int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.highlights[week]...)
}

// Achievements returns the milestone/record log.
func (s *State) Achievements() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.achievements...)
}

// Reset clears everything. Called only at season rollover.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]*TeamRecord)
	s.highlights = make(map[int][]string)
	s.achievements = nil
	s.logger.Info("season state reset")
}

func applyInt(current int, d model.StateDelta) int {
	if d.Op == model.OpSet {
		return int(d.Value)
	}
	return current + int(d.Value)
}

func applyFloat(current float64, d model.StateDelta) float64 {
	if d.Op == model.OpSet {
		return d.Value
	}
	return current + d.Value
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampLow(v, lo float64) float64 {
	if v < lo {
		return lo
	}
	return v
}
