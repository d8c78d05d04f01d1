package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ScheduleFile is a YAML-described season schedule of scripted events. The
// core treats event internals as external collaborators; a schedule file only
// replays predetermined outcomes.
type ScheduleFile struct {
	Events []EventSpec `yaml:"events"`
}

// EventSpec describes one scripted event.
type EventSpec struct {
	Date          time.Time `yaml:"date"`
	Kind          string    `yaml:"kind"`
	Name          string    `yaml:"name"`
	Participants  []string  `yaml:"participants"`
	DurationHours int       `yaml:"duration_hours"`

	// FailWith scripts an expected failure: the event executes but reports
	// Success=false with this message.
	FailWith string `yaml:"fail_with,omitempty"`

	Game     *GameSpec     `yaml:"game,omitempty"`
	Training *TrainingSpec `yaml:"training,omitempty"`
	Scouting *ScoutingSpec `yaml:"scouting,omitempty"`
	Admin    *AdminSpec    `yaml:"admin,omitempty"`
	Rest     *RestSpec     `yaml:"rest,omitempty"`
}

// GameSpec scripts a game outcome.
type GameSpec struct {
	HomeID    string `yaml:"home_id"`
	AwayID    string `yaml:"away_id"`
	HomeScore int    `yaml:"home_score"`
	AwayScore int    `yaml:"away_score"`
	Overtime  bool   `yaml:"overtime,omitempty"`
}

// TrainingSpec scripts a training outcome.
type TrainingSpec struct {
	Focus         string  `yaml:"focus"`
	Intensity     int     `yaml:"intensity"`
	ChemistryGain float64 `yaml:"chemistry_gain"`
	FatigueCost   float64 `yaml:"fatigue_cost"`
	InjuredPlayer string  `yaml:"injured_player,omitempty"`
}

// ScoutingSpec scripts a scouting outcome.
type ScoutingSpec struct {
	TargetID     string  `yaml:"target_id"`
	IntelQuality float64 `yaml:"intel_quality"`
	Report       string  `yaml:"report,omitempty"`
}

// AdminSpec scripts an administrative activity.
type AdminSpec struct {
	Activity string `yaml:"activity"`
	Notes    string `yaml:"notes,omitempty"`
}

// RestSpec scripts a rest day.
type RestSpec struct {
	RecoveryLevel float64 `yaml:"recovery_level"`
}

// LoadSchedule reads and validates a schedule file.
func LoadSchedule(path string) (*ScheduleFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schedule %s: %w", path, err)
	}

	var sched ScheduleFile
	if err := yaml.Unmarshal(data, &sched); err != nil {
		return nil, fmt.Errorf("parse schedule %s: %w", path, err)
	}

	for i, ev := range sched.Events {
		if ev.Date.IsZero() {
			return nil, fmt.Errorf("schedule event %d (%s): missing date", i, ev.Name)
		}
		if len(ev.Participants) == 0 {
			return nil, fmt.Errorf("schedule event %d (%s): no participants", i, ev.Name)
		}
		if ev.DurationHours <= 0 {
			return nil, fmt.Errorf("schedule event %d (%s): duration must be positive", i, ev.Name)
		}
	}

	return &sched, nil
}
