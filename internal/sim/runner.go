// Package sim wires the scheduler, processor registry, and season state into
// a season runner, and provides the scripted event implementations the CLI
// and integration tests drive through it.
package sim

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/me/seasonsim/internal/calendar"
	"github.com/me/seasonsim/internal/checkpoint"
	"github.com/me/seasonsim/internal/config"
	"github.com/me/seasonsim/internal/processor"
	"github.com/me/seasonsim/internal/rules"
	"github.com/me/seasonsim/internal/season"
	"github.com/me/seasonsim/pkg/model"
)

// Runner drives a whole season: schedule, advance day by day, checkpoint.
type Runner struct {
	cfg    config.Simulation
	cal    *calendar.Calendar
	state  *season.State
	store  checkpoint.Store
	runID  string
	logger *slog.Logger
}

// NewRunner assembles the full simulation stack. store may be nil to run
// without checkpointing.
func NewRunner(cfg config.Simulation, start time.Time, store checkpoint.Store, logger *slog.Logger) *Runner {
	state := season.NewState(logger)

	pcfg := processor.Config{
		Strategy:      cfg.Strategy,
		SideEffectCap: cfg.SideEffectCap,
	}
	if cfg.Strategy == model.StrategyCustom {
		eval := rules.New(cfg.Rules, logger)
		pcfg.Rules = eval
		if eval.HasSignificanceRule() {
			state.SetSignificanceFunc(eval.Significant)
		}
	}
	reg := processor.DefaultRegistry(pcfg, logger)

	return &Runner{
		cfg:    cfg,
		cal:    calendar.New(start, cfg, reg, state, logger),
		state:  state,
		store:  store,
		runID:  "run_" + uuid.New().String(),
		logger: logger.With("component", "runner"),
	}
}

// RunID identifies this run in checkpoints and logs.
func (r *Runner) RunID() string { return r.runID }

// Calendar exposes the underlying scheduler.
func (r *Runner) Calendar() *calendar.Calendar { return r.cal }

// State exposes the season aggregate.
func (r *Runner) State() *season.State { return r.state }

// ScheduleAll places every event of a schedule file under the configured
// conflict policy. Rejections are reported, not fatal.
func (r *Runner) ScheduleAll(sched *config.ScheduleFile) (scheduled int, rejected []string, err error) {
	for _, spec := range sched.Events {
		ev, buildErr := NewScriptedEvent(spec)
		if buildErr != nil {
			return scheduled, rejected, buildErr
		}
		outcome := r.cal.Schedule(ev)
		if !outcome.OK {
			rejected = append(rejected, outcome.Message)
			continue
		}
		scheduled++
	}
	r.logger.Info("schedule loaded", "scheduled", scheduled, "rejected", len(rejected))
	return scheduled, rejected, nil
}

// Run advances the season from the calendar's current date through target,
// checkpointing on the configured cadence and once at the end. Cancellation
// between days stops the run after the last fully simulated day.
func (r *Runner) Run(ctx context.Context, target time.Time) ([]*model.DaySummary, error) {
	end := model.NormalizeDate(target)
	start := r.cal.CurrentDate()
	if end.Before(start) {
		return nil, &model.ValidationError{Field: "target",
			Message: fmt.Sprintf("target %s is before current date %s",
				end.Format("2006-01-02"), start.Format("2006-01-02"))}
	}

	var summaries []*model.DaySummary
	daysRun := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return summaries, err
		}

		dayResults, err := r.cal.AdvanceTo(ctx, d)
		summaries = append(summaries, dayResults...)
		if err != nil {
			return summaries, err
		}
		daysRun++

		if r.store != nil && r.cfg.CheckpointEveryDays > 0 && daysRun%r.cfg.CheckpointEveryDays == 0 {
			if err := r.Checkpoint(ctx, fmt.Sprintf("day %d", daysRun)); err != nil {
				r.logger.Error("periodic checkpoint failed", "error", err)
			}
		}
	}

	if r.store != nil {
		if err := r.Checkpoint(ctx, "final"); err != nil {
			r.logger.Error("final checkpoint failed", "error", err)
		}
	}
	return summaries, nil
}

// Checkpoint snapshots the calendar and season state into the store.
func (r *Runner) Checkpoint(ctx context.Context, label string) error {
	if r.store == nil {
		return fmt.Errorf("no checkpoint store configured")
	}

	calSnap, err := r.cal.Snapshot()
	if err != nil {
		return fmt.Errorf("snapshot calendar: %w", err)
	}
	calJSON, err := json.Marshal(calSnap)
	if err != nil {
		return fmt.Errorf("marshal calendar snapshot: %w", err)
	}
	seasonJSON, err := json.Marshal(r.state.Snapshot())
	if err != nil {
		return fmt.Errorf("marshal season snapshot: %w", err)
	}

	simDate := r.cal.CurrentDate()
	cp := &checkpoint.Checkpoint{
		ID:        "ckpt_" + uuid.New().String(),
		RunID:     r.runID,
		Label:     label,
		SimDate:   simDate,
		Week:      r.cfg.Week(simDate),
		Calendar:  calJSON,
		Season:    seasonJSON,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.store.Save(ctx, cp); err != nil {
		return fmt.Errorf("save checkpoint: %w", err)
	}
	r.logger.Info("checkpoint saved", "checkpoint_id", cp.ID, "label", label,
		"sim_date", simDate.Format("2006-01-02"))
	return nil
}

// Restore loads a checkpoint back into the runner, rebuilding scripted
// events through the factory. The runner adopts the checkpoint's run id so
// subsequent checkpoints continue the same run.
func (r *Runner) Restore(ctx context.Context, checkpointID string) error {
	if r.store == nil {
		return fmt.Errorf("no checkpoint store configured")
	}

	cp, err := r.store.Get(ctx, checkpointID)
	if err != nil {
		return fmt.Errorf("load checkpoint %s: %w", checkpointID, err)
	}
	if cp == nil {
		return fmt.Errorf("checkpoint %s not found", checkpointID)
	}

	var calSnap calendar.Snapshot
	if err := json.Unmarshal(cp.Calendar, &calSnap); err != nil {
		return fmt.Errorf("decode calendar snapshot: %w", err)
	}
	if err := r.cal.Restore(&calSnap, Factory); err != nil {
		return fmt.Errorf("restore calendar: %w", err)
	}

	var seasonSnap season.Snapshot
	if err := json.Unmarshal(cp.Season, &seasonSnap); err != nil {
		return fmt.Errorf("decode season snapshot: %w", err)
	}
	r.state.Restore(&seasonSnap)

	r.runID = cp.RunID
	r.logger.Info("checkpoint restored", "checkpoint_id", cp.ID,
		"sim_date", cp.SimDate.Format("2006-01-02"))
	return nil
}
