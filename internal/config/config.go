// Package config holds the immutable simulation configuration. A Simulation
// value is built once (defaults, optionally overlaid from a YAML file) and
// passed into the calendar and processors at construction; nothing in the
// core reads configuration from globals.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/me/seasonsim/pkg/model"
	"gopkg.in/yaml.v3"
)

// Simulation is the full configuration for one season run.
type Simulation struct {
	// Strategy selects which categories of processing work processors perform.
	Strategy model.ProcessingStrategy `yaml:"strategy"`

	// ConflictPolicy is the default policy applied when scheduling conflicts.
	ConflictPolicy model.ConflictPolicy `yaml:"conflict_policy"`

	// RescheduleHorizonDays bounds the forward search of the reschedule
	// policy. A single horizon applies everywhere.
	RescheduleHorizonDays int `yaml:"reschedule_horizon_days"`

	// ProcessingEnabled gates dispatch+fold after event execution. When
	// false, SimulateDay only executes and counts.
	ProcessingEnabled bool `yaml:"processing_enabled"`

	// SideEffectCap truncates each ProcessingResult's side-effect list.
	SideEffectCap int `yaml:"side_effect_cap"`

	// EventTimeout converts a hung Execute into a failed result.
	EventTimeout Duration `yaml:"event_timeout"`

	// SeasonStart anchors week numbering; week 0 is preseason.
	SeasonStart time.Time `yaml:"season_start"`

	// RegularSeasonWeeks and PlayoffWeeks delimit season phases.
	RegularSeasonWeeks int `yaml:"regular_season_weeks"`
	PlayoffWeeks       int `yaml:"playoff_weeks"`

	// CheckpointEveryDays sets the checkpoint cadence for season runs.
	// Zero disables periodic checkpoints (a final one is still written).
	CheckpointEveryDays int `yaml:"checkpoint_every_days"`

	// DBPath is the sqlite checkpoint database (":memory:" for testing).
	DBPath string `yaml:"db_path"`

	// Rules configures the custom strategy's JS predicates. Ignored unless
	// Strategy is "custom".
	Rules CustomRules `yaml:"rules"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// CustomRules holds operator-supplied JavaScript predicates evaluated by the
// rules engine under the custom strategy.
type CustomRules struct {
	// Significant decides whether a side effect reaches the weekly highlight
	// log. Evaluated with `text` and `week` in scope.
	Significant string `yaml:"significant"`

	// Features maps feature names (e.g. "injuries", "chemistry") to boolean
	// expressions evaluated with `kind`, `stats`, and `week` in scope.
	Features map[string]string `yaml:"features"`
}

// Default returns the baseline configuration.
func Default() Simulation {
	return Simulation{
		Strategy:              model.StrategyFullProgression,
		ConflictPolicy:        model.PolicyReject,
		RescheduleHorizonDays: 14,
		ProcessingEnabled:     true,
		SideEffectCap:         10,
		EventTimeout:          Duration(5 * time.Second),
		RegularSeasonWeeks:    17,
		PlayoffWeeks:          4,
		CheckpointEveryDays:   7,
		DBPath:                "seasonsim.db",
		LogLevel:              "info",
		LogFormat:             "text",
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (Simulation, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations the core cannot run with.
func (c Simulation) Validate() error {
	if !c.Strategy.Valid() {
		return fmt.Errorf("unknown strategy %q", c.Strategy)
	}
	if !c.ConflictPolicy.Valid() {
		return fmt.Errorf("unknown conflict policy %q", c.ConflictPolicy)
	}
	if c.RescheduleHorizonDays <= 0 {
		return fmt.Errorf("reschedule_horizon_days must be positive, got %d", c.RescheduleHorizonDays)
	}
	if c.SideEffectCap < 0 {
		return fmt.Errorf("side_effect_cap must not be negative, got %d", c.SideEffectCap)
	}
	if c.EventTimeout <= 0 {
		return fmt.Errorf("event_timeout must be positive, got %s", c.EventTimeout)
	}
	return nil
}

// Week returns the season week for a date: 0 before SeasonStart (preseason),
// 1-based thereafter. Unanchored configs report week 1.
func (c Simulation) Week(date time.Time) int {
	if c.SeasonStart.IsZero() {
		return 1
	}
	d := model.NormalizeDate(date)
	start := model.NormalizeDate(c.SeasonStart)
	if d.Before(start) {
		return 0
	}
	week := int(d.Sub(start).Hours()/24)/7 + 1
	if week > model.MaxSeasonWeek {
		week = model.MaxSeasonWeek
	}
	return week
}

// Phase returns the season phase for a date based on the configured week spans.
func (c Simulation) Phase(date time.Time) model.SeasonPhase {
	week := c.Week(date)
	switch {
	case week == 0:
		return model.PhasePreseason
	case week <= c.RegularSeasonWeeks:
		return model.PhaseRegular
	case week <= c.RegularSeasonWeeks+c.PlayoffWeeks:
		return model.PhasePlayoffs
	}
	return model.PhaseOffseason
}
