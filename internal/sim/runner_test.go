package sim

import (
	"context"
	"testing"
	"time"

	"github.com/me/seasonsim/internal/calendar"
	"github.com/me/seasonsim/internal/checkpoint"
	"github.com/me/seasonsim/internal/config"
	"github.com/me/seasonsim/internal/logging"
	"github.com/me/seasonsim/pkg/model"
)

func simDay(offset int) time.Time {
	return time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func gameSpec(name string, date time.Time, home, away string, homeScore, awayScore int) config.EventSpec {
	return config.EventSpec{
		Date: date, Kind: "game", Name: name,
		Participants: []string{home, away}, DurationHours: 3,
		Game: &config.GameSpec{HomeID: home, AwayID: away, HomeScore: homeScore, AwayScore: awayScore},
	}
}

func testSchedule() *config.ScheduleFile {
	return &config.ScheduleFile{Events: []config.EventSpec{
		gameSpec("opener", simDay(0), "sharks", "comets", 24, 17),
		{
			Date: simDay(1), Kind: "training", Name: "recovery drills",
			Participants: []string{"comets"}, DurationHours: 2,
			Training: &config.TrainingSpec{Focus: "defense", Intensity: 6, ChemistryGain: 2, FatigueCost: 1},
		},
		{
			Date: simDay(1), Kind: "rest", Name: "off day",
			Participants: []string{"sharks"}, DurationHours: 8,
			Rest: &config.RestSpec{RecoveryLevel: 4},
		},
		gameSpec("rematch", simDay(2), "comets", "sharks", 10, 31),
	}}
}

func testConfig() config.Simulation {
	cfg := config.Default()
	cfg.SeasonStart = simDay(0)
	cfg.DBPath = ":memory:"
	return cfg
}

func testRunner(t *testing.T, cfg config.Simulation) (*Runner, checkpoint.Store) {
	t.Helper()
	store, err := checkpoint.NewSQLiteStore(":memory:", logging.Discard())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewRunner(cfg, simDay(0), store, logging.Discard()), store
}

func TestScheduleAll(t *testing.T) {
	runner, _ := testRunner(t, testConfig())

	scheduled, rejected, err := runner.ScheduleAll(testSchedule())
	if err != nil {
		t.Fatalf("ScheduleAll: %v", err)
	}
	if scheduled != 4 || len(rejected) != 0 {
		t.Errorf("scheduled=%d rejected=%v", scheduled, rejected)
	}
}

func TestScheduleAllReportsRejections(t *testing.T) {
	runner, _ := testRunner(t, testConfig()) // reject policy

	sched := &config.ScheduleFile{Events: []config.EventSpec{
		gameSpec("game one", simDay(0), "sharks", "comets", 20, 10),
		gameSpec("game two", simDay(0), "sharks", "bears", 14, 7),
	}}
	scheduled, rejected, err := runner.ScheduleAll(sched)
	if err != nil {
		t.Fatalf("ScheduleAll: %v", err)
	}
	if scheduled != 1 || len(rejected) != 1 {
		t.Errorf("scheduled=%d rejected=%v", scheduled, rejected)
	}
}

func TestRunSeason(t *testing.T) {
	runner, store := testRunner(t, testConfig())
	if _, _, err := runner.ScheduleAll(testSchedule()); err != nil {
		t.Fatal(err)
	}

	summaries, err := runner.Run(context.Background(), simDay(2))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("got %d day summaries, want 3", len(summaries))
	}

	rec, ok := runner.State().Record("sharks")
	if !ok {
		t.Fatal("sharks record missing")
	}
	if rec.Wins != 2 || rec.Losses != 0 {
		t.Errorf("sharks = %+v, want 2-0", rec)
	}
	if rec.Fatigue != 0 {
		t.Errorf("sharks fatigue = %v, rest day should have floored it", rec.Fatigue)
	}

	standings := runner.State().Standings()
	if len(standings) != 2 || standings[0].ParticipantID != "sharks" {
		t.Errorf("standings = %+v", standings)
	}

	// Run writes a final checkpoint.
	cp, err := store.Latest(context.Background(), runner.RunID())
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if cp == nil || cp.Label != "final" {
		t.Errorf("final checkpoint = %+v", cp)
	}
	if !cp.SimDate.Equal(simDay(3)) {
		t.Errorf("checkpoint sim date = %s, want cursor after last day", cp.SimDate.Format("2006-01-02"))
	}
}

func TestCheckpointRestore(t *testing.T) {
	cfg := testConfig()
	runner, store := testRunner(t, cfg)
	if _, _, err := runner.ScheduleAll(testSchedule()); err != nil {
		t.Fatal(err)
	}

	// Simulate the first two days, then checkpoint by hand.
	if _, err := runner.Run(context.Background(), simDay(1)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := runner.Checkpoint(context.Background(), "midseason"); err != nil {
		t.Fatalf("Checkpoint: %v", err)
	}
	cps, err := store.List(context.Background(), runner.RunID())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var cp *checkpoint.Checkpoint
	for _, cand := range cps {
		if cand.Label == "midseason" {
			cp = cand
			break
		}
	}
	if cp == nil {
		t.Fatal("midseason checkpoint not saved")
	}

	// A fresh runner picks up where the old one stopped.
	restored := NewRunner(cfg, simDay(0), store, logging.Discard())
	if err := restored.Restore(context.Background(), cp.ID); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if restored.RunID() != runner.RunID() {
		t.Error("restored runner should adopt the checkpoint's run id")
	}
	if !restored.Calendar().CurrentDate().Equal(simDay(2)) {
		t.Errorf("restored cursor = %s, want day 2",
			restored.Calendar().CurrentDate().Format("2006-01-02"))
	}

	rec, ok := restored.State().Record("sharks")
	if !ok || rec.Wins != 1 {
		t.Errorf("restored sharks = %+v, want the opener's win", rec)
	}

	// The rematch is still scheduled and simulates to the same outcome.
	if _, err := restored.Run(context.Background(), simDay(2)); err != nil {
		t.Fatalf("Run after restore: %v", err)
	}
	rec, _ = restored.State().Record("sharks")
	if rec.Wins != 2 {
		t.Errorf("sharks after restored rematch = %+v", rec)
	}
}

func TestRunRejectsPastTarget(t *testing.T) {
	runner, _ := testRunner(t, testConfig())
	if _, err := runner.Run(context.Background(), simDay(-1)); err == nil {
		t.Fatal("expected error for a target before the cursor")
	}
}

func TestScriptedEvent(t *testing.T) {
	ev, err := NewScriptedEvent(gameSpec("opener", simDay(0), "sharks", "comets", 24, 17))
	if err != nil {
		t.Fatalf("NewScriptedEvent: %v", err)
	}

	if ok, msg := ev.ValidatePreconditions(); !ok {
		t.Fatalf("preconditions failed: %s", msg)
	}
	res, err := ev.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !res.Success || res.Game == nil || res.Game.Winner() != "sharks" {
		t.Errorf("result = %+v", res)
	}
}

func TestScriptedEventFailWith(t *testing.T) {
	spec := config.EventSpec{
		Date: simDay(0), Kind: "game", Name: "cancelled",
		Participants: []string{"sharks", "comets"}, DurationHours: 3,
		FailWith: "stadium flooded",
	}
	ev, err := NewScriptedEvent(spec)
	if err != nil {
		t.Fatal(err)
	}
	res, err := ev.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Success || res.Err != "stadium flooded" {
		t.Errorf("result = %+v", res)
	}
}

func TestScriptedEventRejectsUnknownKind(t *testing.T) {
	_, err := NewScriptedEvent(config.EventSpec{Kind: "parade", Name: "confetti"})
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestScriptedEventMissingPayload(t *testing.T) {
	spec := config.EventSpec{
		Date: simDay(0), Kind: "game", Name: "no script",
		Participants: []string{"sharks", "comets"}, DurationHours: 3,
	}
	ev, err := NewScriptedEvent(spec)
	if err != nil {
		t.Fatal(err)
	}
	if ok, _ := ev.ValidatePreconditions(); ok {
		t.Error("game without a scripted outcome should fail preconditions")
	}
}

func TestFactoryRoundTrip(t *testing.T) {
	ev, err := NewScriptedEvent(gameSpec("opener", simDay(0), "sharks", "comets", 24, 17))
	if err != nil {
		t.Fatal(err)
	}
	payload, err := ev.SnapshotPayload()
	if err != nil {
		t.Fatalf("SnapshotPayload: %v", err)
	}

	rebuilt, err := Factory(calendar.EventDescriptor{
		ID: "evt_x", Name: "opener", Kind: model.KindGame,
		Date: simDay(0), Participants: []string{"sharks", "comets"},
		DurationHours: 3, Payload: payload,
	})
	if err != nil {
		t.Fatalf("Factory: %v", err)
	}
	res, err := rebuilt.Execute(context.Background())
	if err != nil || res.Game == nil || res.Game.HomeScore != 24 {
		t.Errorf("rebuilt result = %+v err=%v", res, err)
	}
}
