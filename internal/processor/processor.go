// Package processor turns typed results into processing results and routes
// each result to the single processor that claims it.
package processor

import (
	"log/slog"

	"github.com/me/seasonsim/internal/rules"
	"github.com/me/seasonsim/pkg/model"
)

// ResultProcessor handles exactly one result variant. Process must be a pure
// function of its inputs and the processor's configuration; no processor
// carries mutable state across calls.
type ResultProcessor interface {
	// Name identifies the processor in logs and processing results.
	Name() string

	// Kind returns the result variant this processor claims.
	Kind() model.Kind

	// Strategies lists the processing strategies this processor supports.
	Strategies() []model.ProcessingStrategy

	// CanProcess reports whether this processor claims the result.
	CanProcess(res *model.Result) bool

	// Process builds the processing result for a claimed result.
	Process(res *model.Result, pctx *model.ProcessingContext) (*model.ProcessingResult, error)
}

// Config is the shared, immutable configuration every processor reads.
type Config struct {
	Strategy      model.ProcessingStrategy
	SideEffectCap int

	// Rules backs feature decisions under the custom strategy. Nil otherwise.
	Rules *rules.Evaluator
}

// Feature names used by processors to gate sub-work.
const (
	featStandings   = "standings"
	featProgression = "progression"
	featInjuries    = "injuries"
	featNarrative   = "narrative"
	featIntel       = "intel"
)

// enabled decides whether a category of processing work runs under the
// active strategy. The custom strategy defers to operator-supplied rules,
// defaulting to full-progression behavior when no rule is given.
func (c Config) enabled(feature string, kind model.Kind, stats map[string]float64, week int) bool {
	switch c.Strategy {
	case model.StrategyStatisticsOnly:
		return false
	case model.StrategyFullProgression:
		return true
	case model.StrategyGameFocused:
		return feature == featStandings || feature == featNarrative
	case model.StrategyDevelopmentFocused:
		return feature == featProgression || feature == featInjuries || feature == featNarrative
	case model.StrategyIntelligenceGathering:
		return feature == featIntel
	case model.StrategyCustom:
		if c.Rules == nil {
			return true
		}
		return c.Rules.Feature(feature, kind, stats, week)
	}
	return false
}

// supportsStrategy reports whether the processor declared support for s.
func supportsStrategy(p ResultProcessor, s model.ProcessingStrategy) bool {
	for _, supported := range p.Strategies() {
		if supported == s {
			return true
		}
	}
	return false
}

// DefaultRegistry builds a registry with every built-in processor registered
// in the canonical order.
func DefaultRegistry(cfg Config, logger *slog.Logger) *Registry {
	reg := NewRegistry(cfg, logger)
	reg.Register(NewGameProcessor(cfg))
	reg.Register(NewTrainingProcessor(cfg))
	reg.Register(NewScoutingProcessor(cfg))
	reg.Register(NewAdminProcessor(cfg))
	reg.Register(NewRestProcessor(cfg))
	return reg
}
