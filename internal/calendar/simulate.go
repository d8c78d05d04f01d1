package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/me/seasonsim/pkg/model"
)

// SimulateDay executes every event on the date: validate, execute (with
// timeout), dispatch the result, fold it into season state. A failure in one
// event never aborts the rest of the day.
func (c *Calendar) SimulateDay(ctx context.Context, date time.Time) *model.DaySummary {
	day := model.NormalizeDate(date)
	summary := model.NewDaySummary(day)
	pctx := c.processingContext(day)

	events := c.EventsForDate(day)
	c.logger.Debug("simulating day", "date", day.Format("2006-01-02"), "events", len(events))

	for _, ev := range events {
		c.runEvent(ctx, ev, pctx, summary)
	}

	c.logger.Info("day simulated",
		"date", day.Format("2006-01-02"),
		"events", summary.EventsRun,
		"successful", summary.Successful,
		"failed", summary.Failed)
	return summary
}

// AdvanceTo simulates every day from the current date through target,
// inclusive. On completion the current date becomes target+1. Cancellation
// is honored only between days, so each returned summary covers a fully
// attempted day.
func (c *Calendar) AdvanceTo(ctx context.Context, target time.Time) ([]*model.DaySummary, error) {
	end := model.NormalizeDate(target)
	start := c.CurrentDate()
	if end.Before(start) {
		return nil, &model.ValidationError{Field: "target",
			Message: fmt.Sprintf("target %s is before current date %s",
				end.Format("2006-01-02"), start.Format("2006-01-02"))}
	}

	var summaries []*model.DaySummary
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			c.setCurrent(d)
			return summaries, err
		}
		summaries = append(summaries, c.SimulateDay(ctx, d))
	}

	c.setCurrent(end.AddDate(0, 0, 1))
	return summaries, nil
}

func (c *Calendar) setCurrent(d time.Time) {
	c.mu.Lock()
	c.current = d
	c.mu.Unlock()
}

// runEvent drives one event through its day lifecycle. Any panic escaping
// execution or processing is converted into a failure for this event alone.
func (c *Calendar) runEvent(ctx context.Context, ev model.Event, pctx *model.ProcessingContext, summary *model.DaySummary) {
	defer func() {
		if r := recover(); r != nil {
			c.setState(ev.ID(), model.EventStateFailed)
			summary.RecordFailure(ev.Name(), ev.DurationHours(), ev.Participants(), fmt.Sprintf("panic: %v", r))
			c.logger.Error("event panicked", "event", ev.Name(), "panic", fmt.Sprint(r))
		}
	}()

	if ok, msg := ev.ValidatePreconditions(); !ok {
		c.setState(ev.ID(), model.EventStateFailed)
		summary.RecordFailure(ev.Name(), ev.DurationHours(), ev.Participants(), "precondition failed: "+msg)
		return
	}

	res := c.executeWithTimeout(ctx, ev)
	c.setState(ev.ID(), model.EventStateExecuted)

	if !res.Success {
		c.setState(ev.ID(), model.EventStateFailed)
		summary.RecordFailure(ev.Name(), ev.DurationHours(), ev.Participants(), res.Err)

		// Statistics-only still counts failed results; nothing is folded.
		if c.cfg.ProcessingEnabled && c.cfg.Strategy == model.StrategyStatisticsOnly {
			if pr := c.registry.Dispatch(res, pctx); pr != nil {
				summary.Results = append(summary.Results, pr)
			}
		}
		return
	}

	var pr *model.ProcessingResult
	if c.cfg.ProcessingEnabled {
		pr = c.registry.Dispatch(res, pctx)
		if pr != nil {
			c.setState(ev.ID(), model.EventStateProcessed)
			if c.state != nil {
				c.state.Fold(pr)
			}
			c.setState(ev.ID(), model.EventStateFolded)
		}
	}
	summary.RecordSuccess(res, pr)
}

// executeWithTimeout runs Execute in a goroutine so a hang becomes a failed
// result instead of stalling the day.
func (c *Calendar) executeWithTimeout(ctx context.Context, ev model.Event) *model.Result {
	timeout := c.cfg.EventTimeout.Std()
	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		res *model.Result
		err error
	}
	ch := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- outcome{err: fmt.Errorf("panic in execute: %v", r)}
			}
		}()
		res, err := ev.Execute(execCtx)
		ch <- outcome{res: res, err: err}
	}()

	select {
	case out := <-ch:
		if out.err != nil {
			return model.Failed(ev, out.err.Error())
		}
		if out.res == nil {
			return model.Failed(ev, "execute returned no result")
		}
		return out.res
	case <-execCtx.Done():
		c.logger.Warn("event execution timed out", "event", ev.Name(), "timeout", timeout)
		return model.Failed(ev, "execution timed out after "+timeout.String())
	}
}

// processingContext builds the read-only snapshot valid for one day's pass.
func (c *Calendar) processingContext(day time.Time) *model.ProcessingContext {
	pctx := &model.ProcessingContext{
		Date:  day,
		Week:  c.cfg.Week(day),
		Phase: c.cfg.Phase(day),
	}
	if c.state != nil {
		pctx.Standings = c.state.Standings()
	}
	return pctx
}

// setState advances an event's lifecycle state, logging invalid transitions.
func (c *Calendar) setState(eventID string, next model.EventState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.byID[eventID]
	if !ok {
		return
	}
	if !e.state.CanTransitionTo(next) {
		c.logger.Warn("invalid event state transition",
			"event_id", eventID, "from", e.state.String(), "to", next.String())
		return
	}
	e.state = next
}

// EventState returns the lifecycle state of a scheduled event.
func (c *Calendar) EventState(eventID string) (model.EventState, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.byID[eventID]
	if !ok {
		return "", false
	}
	return e.state, true
}
