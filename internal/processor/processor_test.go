package processor

import (
	"testing"
	"time"

	"github.com/me/seasonsim/internal/logging"
	"github.com/me/seasonsim/pkg/model"
)

func testCtx() *model.ProcessingContext {
	return &model.ProcessingContext{
		Date:  time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC),
		Week:  3,
		Phase: model.PhaseRegular,
	}
}

func gameResult(home, away string, homeScore, awayScore int) *model.Result {
	return &model.Result{
		Kind:          model.KindGame,
		Name:          home + " vs " + away,
		Date:          time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC),
		Participants:  []string{home, away},
		DurationHours: 3,
		Success:       true,
		Game:          &model.GamePayload{HomeID: home, AwayID: away, HomeScore: homeScore, AwayScore: awayScore},
	}
}

func defaultConfig() Config {
	return Config{Strategy: model.StrategyFullProgression, SideEffectCap: 10}
}

func TestDefaultRegistryCoversEveryKind(t *testing.T) {
	reg := DefaultRegistry(defaultConfig(), logging.Discard())

	for _, kind := range model.AllKinds {
		claims := 0
		res := &model.Result{Kind: kind, Name: "probe", Participants: []string{"x"}, Success: true}
		for _, p := range reg.Processors() {
			if p.CanProcess(res) {
				claims++
			}
		}
		if claims != 1 {
			t.Errorf("kind %s claimed by %d processors, want exactly 1", kind, claims)
		}
	}
}

func TestDispatchGame(t *testing.T) {
	reg := DefaultRegistry(defaultConfig(), logging.Discard())

	pr := reg.Dispatch(gameResult("sharks", "comets", 24, 17), testCtx())
	if pr == nil || !pr.Success {
		t.Fatalf("dispatch failed: %+v", pr)
	}
	if pr.ProcessorName != "game-processor" {
		t.Errorf("ProcessorName = %q", pr.ProcessorName)
	}
	if pr.SourceKind != model.KindGame || pr.Week != 3 {
		t.Errorf("stamping wrong: kind=%s week=%d", pr.SourceKind, pr.Week)
	}
	if pr.ID == "" {
		t.Error("missing processing id")
	}
	if pr.Statistics["points_total"] != 41 {
		t.Errorf("points_total = %v", pr.Statistics["points_total"])
	}

	wantDeltas := map[string]map[model.DeltaField]float64{
		"sharks": {model.FieldWins: 1, model.FieldPointsFor: 24, model.FieldPointsAgainst: 17},
		"comets": {model.FieldLosses: 1, model.FieldPointsFor: 17, model.FieldPointsAgainst: 24},
	}
	got := map[string]map[model.DeltaField]float64{}
	for _, d := range pr.StateChanges {
		if got[d.Participant] == nil {
			got[d.Participant] = map[model.DeltaField]float64{}
		}
		got[d.Participant][d.Field] += d.Value
	}
	for team, fields := range wantDeltas {
		for field, want := range fields {
			if got[team][field] != want {
				t.Errorf("%s %s = %v, want %v", team, field, got[team][field], want)
			}
		}
	}
}

func TestDispatchGameTie(t *testing.T) {
	reg := DefaultRegistry(defaultConfig(), logging.Discard())

	pr := reg.Dispatch(gameResult("sharks", "comets", 14, 14), testCtx())
	ties := 0
	for _, d := range pr.StateChanges {
		if d.Field == model.FieldTies {
			ties++
		}
		if d.Field == model.FieldWins || d.Field == model.FieldLosses {
			t.Errorf("tie produced %s delta for %s", d.Field, d.Participant)
		}
	}
	if ties != 2 {
		t.Errorf("tie deltas = %d, want one per side", ties)
	}
}

func TestDispatchUnsupportedStrategy(t *testing.T) {
	// The game processor opts out of intelligence gathering.
	reg := DefaultRegistry(Config{Strategy: model.StrategyIntelligenceGathering}, logging.Discard())

	if pr := reg.Dispatch(gameResult("sharks", "comets", 24, 17), testCtx()); pr != nil {
		t.Errorf("expected nil for unsupported strategy, got %+v", pr)
	}
}

func TestDispatchUnclaimedKind(t *testing.T) {
	reg := NewRegistry(defaultConfig(), logging.Discard())
	reg.Register(NewGameProcessor(defaultConfig()))

	res := &model.Result{Kind: model.KindRest, Name: "off day", Participants: []string{"sharks"}, Success: true}
	if pr := reg.Dispatch(res, testCtx()); pr != nil {
		t.Errorf("expected nil for unclaimed kind, got %+v", pr)
	}
}

func TestAdapterValidation(t *testing.T) {
	reg := DefaultRegistry(defaultConfig(), logging.Discard())

	tests := []struct {
		name string
		res  *model.Result
		pctx *model.ProcessingContext
	}{
		{"zero date", gameResult("a", "b", 1, 0), &model.ProcessingContext{Week: 1}},
		{"week out of range", gameResult("a", "b", 1, 0), &model.ProcessingContext{
			Date: time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC), Week: model.MaxSeasonWeek + 1}},
		{"no participants", &model.Result{Kind: model.KindGame, Name: "empty", Success: true,
			Game: &model.GamePayload{}}, testCtx()},
		{"failed result outside stats-only", &model.Result{Kind: model.KindGame, Name: "lost",
			Participants: []string{"a", "b"}, Success: false, Game: &model.GamePayload{}}, testCtx()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pr := reg.Dispatch(tt.res, tt.pctx)
			if pr == nil {
				t.Fatal("adapter should return a failed result, not nil")
			}
			if pr.Success {
				t.Error("expected failed processing result")
			}
			if len(pr.Errors) == 0 {
				t.Error("expected a recorded error")
			}
			if len(pr.StateChanges) != 0 {
				t.Error("rejected result must not carry deltas")
			}
		})
	}
}

func TestAdapterContainsProcessorError(t *testing.T) {
	reg := DefaultRegistry(defaultConfig(), logging.Discard())

	// A game result with a nil payload makes the processor error out.
	res := &model.Result{Kind: model.KindGame, Name: "broken",
		Participants: []string{"a", "b"}, Success: true}
	pr := reg.Dispatch(res, testCtx())
	if pr == nil || pr.Success {
		t.Fatalf("expected failed result, got %+v", pr)
	}
	if pr.ProcessorName != "game-processor" {
		t.Errorf("failed result should still be stamped: %+v", pr)
	}
}

type panickyProcessor struct{}

func (panickyProcessor) Name() string     { return "panicky" }
func (panickyProcessor) Kind() model.Kind { return model.KindRest }
func (panickyProcessor) Strategies() []model.ProcessingStrategy {
	return []model.ProcessingStrategy{model.StrategyFullProgression}
}
func (panickyProcessor) CanProcess(res *model.Result) bool { return res.Kind == model.KindRest }
func (panickyProcessor) Process(res *model.Result, pctx *model.ProcessingContext) (*model.ProcessingResult, error) {
	panic("boom")
}

func TestAdapterContainsPanic(t *testing.T) {
	reg := NewRegistry(defaultConfig(), logging.Discard())
	reg.Register(panickyProcessor{})

	res := &model.Result{Kind: model.KindRest, Name: "off day",
		Participants: []string{"sharks"}, Success: true, Rest: &model.RestPayload{}}
	pr := reg.Dispatch(res, testCtx())
	if pr == nil {
		t.Fatal("panic should become a failed result, not nil")
	}
	if pr.Success || len(pr.Errors) == 0 {
		t.Errorf("expected recorded panic error, got %+v", pr)
	}
}

func TestAdapterTruncatesSideEffects(t *testing.T) {
	cfg := Config{Strategy: model.StrategyFullProgression, SideEffectCap: 1}
	reg := DefaultRegistry(cfg, logging.Discard())

	res := &model.Result{
		Kind: model.KindTraining, Name: "brutal camp",
		Participants: []string{"sharks"}, Success: true,
		Training: &model.TrainingPayload{
			Focus: "conditioning", Intensity: 9,
			ChemistryGain: 1, FatigueCost: 5,
			InjuryOccurred: true, InjuredPlayer: "p7",
		},
	}
	pr := reg.Dispatch(res, testCtx())
	if pr == nil || !pr.Success {
		t.Fatalf("dispatch failed: %+v", pr)
	}
	// Injury plus grueling-session narrative would be two effects.
	if len(pr.SideEffects) != 1 {
		t.Errorf("side effects = %d, want capped at 1", len(pr.SideEffects))
	}
}

func TestAdapterBackfillsParticipants(t *testing.T) {
	reg := DefaultRegistry(defaultConfig(), logging.Discard())

	res := &model.Result{
		Kind: model.KindRest, Name: "off day",
		Participants: []string{"sharks"}, Success: true,
		Rest: &model.RestPayload{RecoveryLevel: 4},
	}
	pr := reg.Dispatch(res, testCtx())
	if len(pr.ParticipantsUpdated) != 1 || pr.ParticipantsUpdated[0] != "sharks" {
		t.Errorf("ParticipantsUpdated = %v", pr.ParticipantsUpdated)
	}
}

func TestStatisticsOnlyEmitsNoDeltas(t *testing.T) {
	reg := DefaultRegistry(Config{Strategy: model.StrategyStatisticsOnly}, logging.Discard())

	pr := reg.Dispatch(gameResult("sharks", "comets", 35, 3), testCtx())
	if pr == nil || !pr.Success {
		t.Fatalf("dispatch failed: %+v", pr)
	}
	if len(pr.StateChanges) != 0 {
		t.Errorf("statistics-only produced %d deltas", len(pr.StateChanges))
	}
	if len(pr.SideEffects) != 0 || len(pr.History) != 0 {
		t.Error("statistics-only should skip narrative")
	}
	if pr.Statistics["games_played"] != 1 {
		t.Error("statistics must still accumulate")
	}
}

func TestStatisticsOnlyCountsFailedResults(t *testing.T) {
	reg := DefaultRegistry(Config{Strategy: model.StrategyStatisticsOnly}, logging.Discard())

	res := gameResult("sharks", "comets", 0, 0)
	res.Success = false
	res.Err = "abandoned at halftime"

	pr := reg.Dispatch(res, testCtx())
	if pr == nil || !pr.Success {
		t.Fatalf("stats-only should process failed results: %+v", pr)
	}
	if pr.Statistics["games_abandoned"] != 1 {
		t.Errorf("games_abandoned = %v", pr.Statistics["games_abandoned"])
	}
}

func TestGameFocusedSkipsProgression(t *testing.T) {
	reg := DefaultRegistry(Config{Strategy: model.StrategyGameFocused, SideEffectCap: 10}, logging.Discard())

	res := &model.Result{
		Kind: model.KindTraining, Name: "drills",
		Participants: []string{"sharks"}, Success: true,
		Training: &model.TrainingPayload{Focus: "passing", Intensity: 5, ChemistryGain: 2, FatigueCost: 1},
	}
	pr := reg.Dispatch(res, testCtx())
	if len(pr.StateChanges) != 0 {
		t.Errorf("game-focused should not emit training deltas, got %d", len(pr.StateChanges))
	}

	game := reg.Dispatch(gameResult("sharks", "comets", 24, 17), testCtx())
	if len(game.StateChanges) == 0 {
		t.Error("game-focused should still move standings")
	}
}

func TestDevelopmentFocusedSkipsStandings(t *testing.T) {
	reg := DefaultRegistry(Config{Strategy: model.StrategyDevelopmentFocused, SideEffectCap: 10}, logging.Discard())

	game := reg.Dispatch(gameResult("sharks", "comets", 24, 17), testCtx())
	if len(game.StateChanges) != 0 {
		t.Errorf("development-focused should not move standings, got %d deltas", len(game.StateChanges))
	}

	res := &model.Result{
		Kind: model.KindTraining, Name: "drills",
		Participants: []string{"sharks"}, Success: true,
		Training: &model.TrainingPayload{Focus: "passing", Intensity: 5, ChemistryGain: 2, FatigueCost: 1},
	}
	pr := reg.Dispatch(res, testCtx())
	if len(pr.StateChanges) == 0 {
		t.Error("development-focused should emit training deltas")
	}
}

func TestBlowoutAndOvertimeHighlights(t *testing.T) {
	reg := DefaultRegistry(defaultConfig(), logging.Discard())

	blowout := reg.Dispatch(gameResult("sharks", "comets", 42, 7), testCtx())
	if len(blowout.History) != 1 || blowout.History[0].Week != 3 {
		t.Errorf("blowout history = %+v", blowout.History)
	}

	otRes := gameResult("sharks", "comets", 27, 24)
	otRes.Game.Overtime = true
	ot := reg.Dispatch(otRes, testCtx())
	if len(ot.History) != 1 {
		t.Errorf("overtime history = %+v", ot.History)
	}
	if ot.Statistics["overtime_games"] != 1 {
		t.Errorf("overtime_games = %v", ot.Statistics["overtime_games"])
	}
}

func TestAdminTeamBuilding(t *testing.T) {
	reg := DefaultRegistry(defaultConfig(), logging.Discard())

	res := &model.Result{
		Kind: model.KindAdministrative, Name: "retreat",
		Participants: []string{"sharks"}, Success: true,
		Admin: &model.AdminPayload{Activity: "team_building", Notes: "lake trip"},
	}
	pr := reg.Dispatch(res, testCtx())
	if len(pr.StateChanges) != 1 || pr.StateChanges[0].Field != model.FieldMorale {
		t.Errorf("team building deltas = %+v", pr.StateChanges)
	}
	if len(pr.SideEffects) != 1 {
		t.Errorf("side effects = %v", pr.SideEffects)
	}
}

func TestScoutingIntelAccrual(t *testing.T) {
	reg := DefaultRegistry(defaultConfig(), logging.Discard())

	res := &model.Result{
		Kind: model.KindScouting, Name: "scout comets",
		Participants: []string{"sharks"}, Success: true,
		Scouting: &model.ScoutingPayload{TargetID: "comets", IntelQuality: 7.5, Report: "weak secondary"},
	}
	pr := reg.Dispatch(res, testCtx())
	if len(pr.StateChanges) != 1 {
		t.Fatalf("deltas = %+v", pr.StateChanges)
	}
	d := pr.StateChanges[0]
	if d.Participant != "sharks" || d.Field != model.FieldIntel || d.Value != 7.5 {
		t.Errorf("intel delta = %+v; intel must accrue to the scout, not the target", d)
	}
}
