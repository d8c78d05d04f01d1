package processor

import (
	"fmt"

	"github.com/me/seasonsim/pkg/model"
)

// AdminProcessor records administrative activity. It touches no standings or
// recovery aggregates; team-building bumps morale under progression.
type AdminProcessor struct {
	cfg Config
}

// NewAdminProcessor creates the administrative result processor.
func NewAdminProcessor(cfg Config) *AdminProcessor {
	return &AdminProcessor{cfg: cfg}
}

func (p *AdminProcessor) Name() string     { return "admin-processor" }
func (p *AdminProcessor) Kind() model.Kind { return model.KindAdministrative }

func (p *AdminProcessor) Strategies() []model.ProcessingStrategy {
	// Cheap enough to run under every strategy.
	return []model.ProcessingStrategy{
		model.StrategyStatisticsOnly,
		model.StrategyFullProgression,
		model.StrategyGameFocused,
		model.StrategyDevelopmentFocused,
		model.StrategyIntelligenceGathering,
		model.StrategyCustom,
	}
}

func (p *AdminProcessor) CanProcess(res *model.Result) bool {
	return res.Kind == model.KindAdministrative
}

func (p *AdminProcessor) Process(res *model.Result, pctx *model.ProcessingContext) (*model.ProcessingResult, error) {
	ad := res.Admin
	if ad == nil {
		return nil, fmt.Errorf("administrative result %q has no admin payload", res.Name)
	}

	pr := &model.ProcessingResult{Success: true}
	pr.AddStat("admin_activities", 1)

	if !res.Success {
		return pr, nil
	}

	if ad.Activity == "team_building" && p.cfg.Strategy.MutatesState() &&
		p.cfg.enabled(featProgression, res.Kind, pr.Statistics, pctx.Week) {
		for _, id := range res.Participants {
			pr.AddDelta(id, model.FieldMorale, model.OpAdd, 1)
		}
	}

	if ad.Notes != "" && p.cfg.enabled(featNarrative, res.Kind, pr.Statistics, pctx.Week) {
		pr.SideEffects = append(pr.SideEffects, fmt.Sprintf("%s: %s", ad.Activity, ad.Notes))
	}

	return pr, nil
}
