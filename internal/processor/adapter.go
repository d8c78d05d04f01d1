package processor

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/me/seasonsim/pkg/model"
)

// adapter wraps every processor invocation: precondition validation, panic
// containment, back-filling, truncation, identity stamping, and timing. A
// processor bug becomes a failed ProcessingResult, never an aborted day.
type adapter struct {
	cfg    Config
	logger *slog.Logger
	now    func() time.Time
}

func newAdapter(cfg Config, logger *slog.Logger) *adapter {
	return &adapter{
		cfg:    cfg,
		logger: logger.With("component", "processor-adapter"),
		now:    time.Now,
	}
}

func (a *adapter) invoke(p ResultProcessor, res *model.Result, pctx *model.ProcessingContext) *model.ProcessingResult {
	if msg := a.validate(res, pctx); msg != "" {
		a.logger.Warn("result rejected before processing", "processor", p.Name(), "reason", msg)
		return a.failed(p, res, pctx, msg, 0)
	}

	start := a.now()
	pr, err := a.safeProcess(p, res, pctx)
	elapsed := a.now().Sub(start)

	if err != nil {
		a.logger.Error("processor failed", "processor", p.Name(), "result", res.Name, "error", err)
		return a.failed(p, res, pctx, err.Error(), elapsed)
	}
	if pr == nil {
		return a.failed(p, res, pctx, "processor returned no result", elapsed)
	}

	a.finalize(p, res, pctx, pr, elapsed)
	return pr
}

// safeProcess invokes Process, converting a panic into an error.
func (a *adapter) safeProcess(p ResultProcessor, res *model.Result, pctx *model.ProcessingContext) (pr *model.ProcessingResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			pr = nil
			err = fmt.Errorf("panic in %s: %v", p.Name(), r)
		}
	}()
	return p.Process(res, pctx)
}

// validate applies the dispatch preconditions. Empty string means valid.
func (a *adapter) validate(res *model.Result, pctx *model.ProcessingContext) string {
	if err := pctx.Validate(); err != nil {
		return err.Error()
	}
	if len(res.Participants) == 0 {
		return "result has no participants"
	}
	if !res.Success && a.cfg.Strategy != model.StrategyStatisticsOnly {
		return fmt.Sprintf("result %q did not succeed", res.Name)
	}
	return ""
}

// finalize back-fills and stamps a processor-built result.
func (a *adapter) finalize(p ResultProcessor, res *model.Result, pctx *model.ProcessingContext, pr *model.ProcessingResult, elapsed time.Duration) {
	pr.ID = "proc_" + uuid.New().String()
	pr.SourceKind = res.Kind
	pr.SourceName = res.Name
	pr.ProcessorName = p.Name()
	pr.Strategy = a.cfg.Strategy
	pr.Week = pctx.Week
	pr.ProcessedIn = elapsed

	if len(pr.ParticipantsUpdated) == 0 {
		pr.ParticipantsUpdated = append([]string(nil), res.Participants...)
	}
	if a.cfg.SideEffectCap > 0 && len(pr.SideEffects) > a.cfg.SideEffectCap {
		a.logger.Debug("truncating side effects",
			"processor", p.Name(), "have", len(pr.SideEffects), "cap", a.cfg.SideEffectCap)
		pr.SideEffects = pr.SideEffects[:a.cfg.SideEffectCap]
	}
}

// failed builds a stamped, failed processing result.
func (a *adapter) failed(p ResultProcessor, res *model.Result, pctx *model.ProcessingContext, msg string, elapsed time.Duration) *model.ProcessingResult {
	pr := &model.ProcessingResult{Success: false}
	pr.Errors = append(pr.Errors, msg)
	a.finalize(p, res, pctx, pr, elapsed)
	return pr
}
