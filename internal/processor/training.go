package processor

import (
	"fmt"

	"github.com/me/seasonsim/pkg/model"
)

// TrainingProcessor folds training sessions into chemistry/fatigue/morale
// progression and injury narrative.
type TrainingProcessor struct {
	cfg Config
}

// NewTrainingProcessor creates the training result processor.
func NewTrainingProcessor(cfg Config) *TrainingProcessor {
	return &TrainingProcessor{cfg: cfg}
}

func (p *TrainingProcessor) Name() string     { return "training-processor" }
func (p *TrainingProcessor) Kind() model.Kind { return model.KindTraining }

func (p *TrainingProcessor) Strategies() []model.ProcessingStrategy {
	return []model.ProcessingStrategy{
		model.StrategyStatisticsOnly,
		model.StrategyFullProgression,
		model.StrategyGameFocused,
		model.StrategyDevelopmentFocused,
		model.StrategyCustom,
	}
}

func (p *TrainingProcessor) CanProcess(res *model.Result) bool {
	return res.Kind == model.KindTraining
}

func (p *TrainingProcessor) Process(res *model.Result, pctx *model.ProcessingContext) (*model.ProcessingResult, error) {
	tr := res.Training
	if tr == nil {
		return nil, fmt.Errorf("training result %q has no training payload", res.Name)
	}

	pr := &model.ProcessingResult{Success: true}
	pr.AddStat("training_sessions", 1)
	pr.AddStat("training_intensity", float64(tr.Intensity))
	pr.AddStat("chemistry_gained", tr.ChemistryGain)

	if !res.Success {
		pr.AddStat("training_aborted", 1)
		return pr, nil
	}

	if p.cfg.Strategy.MutatesState() && p.cfg.enabled(featProgression, res.Kind, pr.Statistics, pctx.Week) {
		for _, id := range res.Participants {
			pr.AddDelta(id, model.FieldChemistry, model.OpAdd, tr.ChemistryGain)
			pr.AddDelta(id, model.FieldFatigue, model.OpAdd, tr.FatigueCost)
			if tr.Intensity >= 8 {
				pr.AddDelta(id, model.FieldMorale, model.OpAdd, 0.5)
			}
		}
	}

	if res.RequiresInjuryProcessing() && p.cfg.enabled(featInjuries, res.Kind, pr.Statistics, pctx.Week) {
		pr.AddStat("injuries", 1)
		pr.SideEffects = append(pr.SideEffects,
			fmt.Sprintf("%s was injured during %s training", tr.InjuredPlayer, tr.Focus))
		if p.cfg.Strategy.MutatesState() {
			for _, id := range res.Participants {
				pr.AddDelta(id, model.FieldMorale, model.OpAdd, -1)
			}
		}
	}

	if p.cfg.enabled(featNarrative, res.Kind, pr.Statistics, pctx.Week) && tr.Intensity >= 9 {
		pr.SideEffects = append(pr.SideEffects,
			fmt.Sprintf("grueling %s session for %s", tr.Focus, res.Participants[0]))
	}

	return pr, nil
}
