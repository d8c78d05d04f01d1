package model

// ProcessingStrategy selects which categories of processing work a processor
// performs for a given run. It is fixed at calendar construction.
type ProcessingStrategy string

const (
	StrategyStatisticsOnly        ProcessingStrategy = "statistics-only"
	StrategyFullProgression       ProcessingStrategy = "full-progression"
	StrategyGameFocused           ProcessingStrategy = "game-focused"
	StrategyDevelopmentFocused    ProcessingStrategy = "development-focused"
	StrategyIntelligenceGathering ProcessingStrategy = "intelligence-gathering"
	StrategyCustom                ProcessingStrategy = "custom"
)

// String returns the string representation of the strategy.
func (s ProcessingStrategy) String() string {
	return string(s)
}

// Valid returns true for known strategies.
func (s ProcessingStrategy) Valid() bool {
	switch s {
	case StrategyStatisticsOnly, StrategyFullProgression, StrategyGameFocused,
		StrategyDevelopmentFocused, StrategyIntelligenceGathering, StrategyCustom:
		return true
	}
	return false
}

// MutatesState reports whether processors may emit state deltas under this
// strategy. Statistics-only collects numbers without touching season state.
func (s ProcessingStrategy) MutatesState() bool {
	return s != StrategyStatisticsOnly
}
