package processor

import (
	"fmt"

	"github.com/me/seasonsim/pkg/model"
)

// RestProcessor folds rest days into fatigue recovery.
type RestProcessor struct {
	cfg Config
}

// NewRestProcessor creates the rest result processor.
func NewRestProcessor(cfg Config) *RestProcessor {
	return &RestProcessor{cfg: cfg}
}

func (p *RestProcessor) Name() string     { return "rest-processor" }
func (p *RestProcessor) Kind() model.Kind { return model.KindRest }

func (p *RestProcessor) Strategies() []model.ProcessingStrategy {
	return []model.ProcessingStrategy{
		model.StrategyStatisticsOnly,
		model.StrategyFullProgression,
		model.StrategyGameFocused,
		model.StrategyDevelopmentFocused,
		model.StrategyCustom,
	}
}

func (p *RestProcessor) CanProcess(res *model.Result) bool {
	return res.Kind == model.KindRest
}

func (p *RestProcessor) Process(res *model.Result, pctx *model.ProcessingContext) (*model.ProcessingResult, error) {
	rest := res.Rest
	if rest == nil {
		return nil, fmt.Errorf("rest result %q has no rest payload", res.Name)
	}

	pr := &model.ProcessingResult{Success: true}
	pr.AddStat("rest_days", 1)
	pr.AddStat("recovery", rest.RecoveryLevel)

	if !res.Success {
		return pr, nil
	}

	if p.cfg.Strategy.MutatesState() && p.cfg.enabled(featProgression, res.Kind, pr.Statistics, pctx.Week) {
		for _, id := range res.Participants {
			pr.AddDelta(id, model.FieldFatigue, model.OpAdd, -rest.RecoveryLevel)
		}
	}

	return pr, nil
}
