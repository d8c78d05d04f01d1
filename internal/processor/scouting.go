package processor

import (
	"fmt"

	"github.com/me/seasonsim/pkg/model"
)

// ScoutingProcessor folds scouting missions into intel aggregates.
type ScoutingProcessor struct {
	cfg Config
}

// NewScoutingProcessor creates the scouting result processor.
func NewScoutingProcessor(cfg Config) *ScoutingProcessor {
	return &ScoutingProcessor{cfg: cfg}
}

func (p *ScoutingProcessor) Name() string     { return "scouting-processor" }
func (p *ScoutingProcessor) Kind() model.Kind { return model.KindScouting }

func (p *ScoutingProcessor) Strategies() []model.ProcessingStrategy {
	return []model.ProcessingStrategy{
		model.StrategyStatisticsOnly,
		model.StrategyFullProgression,
		model.StrategyGameFocused,
		model.StrategyIntelligenceGathering,
		model.StrategyCustom,
	}
}

func (p *ScoutingProcessor) CanProcess(res *model.Result) bool {
	return res.Kind == model.KindScouting
}

func (p *ScoutingProcessor) Process(res *model.Result, pctx *model.ProcessingContext) (*model.ProcessingResult, error) {
	sc := res.Scouting
	if sc == nil {
		return nil, fmt.Errorf("scouting result %q has no scouting payload", res.Name)
	}

	pr := &model.ProcessingResult{Success: true}
	pr.AddStat("scouting_missions", 1)
	pr.AddStat("intel_quality", sc.IntelQuality)

	if !res.Success {
		pr.AddStat("scouting_failed", 1)
		return pr, nil
	}

	if p.cfg.Strategy.MutatesState() && p.cfg.enabled(featIntel, res.Kind, pr.Statistics, pctx.Week) {
		// Intel accrues to the scouting team, not the target.
		for _, id := range res.Participants {
			pr.AddDelta(id, model.FieldIntel, model.OpAdd, sc.IntelQuality)
		}
	}

	if sc.Report != "" && p.cfg.enabled(featNarrative, res.Kind, pr.Statistics, pctx.Week) {
		pr.SideEffects = append(pr.SideEffects,
			fmt.Sprintf("scouting report on %s: %s", sc.TargetID, sc.Report))
	}

	return pr, nil
}
