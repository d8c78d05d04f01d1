package sim

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/me/seasonsim/internal/calendar"
	"github.com/me/seasonsim/internal/config"
	"github.com/me/seasonsim/pkg/model"
)

// ScriptedEvent replays a predetermined outcome from a schedule file. It is
// the stand-in for the external event implementations the core orchestrates:
// no domain logic runs here, only the configured result is emitted.
type ScriptedEvent struct {
	id   string
	spec config.EventSpec
}

// NewScriptedEvent builds an event from its schedule entry.
func NewScriptedEvent(spec config.EventSpec) (*ScriptedEvent, error) {
	kind := model.Kind(spec.Kind)
	if !kind.Valid() {
		return nil, fmt.Errorf("event %q: unknown kind %q", spec.Name, spec.Kind)
	}
	spec.Date = model.NormalizeDate(spec.Date)
	return &ScriptedEvent{spec: spec}, nil
}

func (e *ScriptedEvent) ID() string             { return e.id }
func (e *ScriptedEvent) SetID(id string)        { e.id = id }
func (e *ScriptedEvent) Name() string           { return e.spec.Name }
func (e *ScriptedEvent) Kind() model.Kind       { return model.Kind(e.spec.Kind) }
func (e *ScriptedEvent) Date() time.Time        { return e.spec.Date }
func (e *ScriptedEvent) SetDate(t time.Time)    { e.spec.Date = model.NormalizeDate(t) }
func (e *ScriptedEvent) Participants() []string { return e.spec.Participants }
func (e *ScriptedEvent) DurationHours() int     { return e.spec.DurationHours }

// ValidatePreconditions checks the scripted payload matches the kind.
func (e *ScriptedEvent) ValidatePreconditions() (bool, string) {
	switch e.Kind() {
	case model.KindGame:
		if e.spec.Game == nil && e.spec.FailWith == "" {
			return false, "game event has no scripted game outcome"
		}
	case model.KindTraining:
		if e.spec.Training == nil && e.spec.FailWith == "" {
			return false, "training event has no scripted training outcome"
		}
	}
	return true, ""
}

// Execute emits the scripted result.
func (e *ScriptedEvent) Execute(ctx context.Context) (*model.Result, error) {
	res := &model.Result{
		Kind:          e.Kind(),
		Name:          e.spec.Name,
		Date:          e.spec.Date,
		Participants:  e.spec.Participants,
		DurationHours: e.spec.DurationHours,
		Success:       true,
	}

	if e.spec.FailWith != "" {
		res.Success = false
		res.Err = e.spec.FailWith
		return res, nil
	}

	switch e.Kind() {
	case model.KindGame:
		res.Game = &model.GamePayload{
			HomeID:    e.spec.Game.HomeID,
			AwayID:    e.spec.Game.AwayID,
			HomeScore: e.spec.Game.HomeScore,
			AwayScore: e.spec.Game.AwayScore,
			Overtime:  e.spec.Game.Overtime,
		}
	case model.KindTraining:
		res.Training = &model.TrainingPayload{
			Focus:          e.spec.Training.Focus,
			Intensity:      e.spec.Training.Intensity,
			ChemistryGain:  e.spec.Training.ChemistryGain,
			FatigueCost:    e.spec.Training.FatigueCost,
			InjuryOccurred: e.spec.Training.InjuredPlayer != "",
			InjuredPlayer:  e.spec.Training.InjuredPlayer,
		}
	case model.KindScouting:
		sc := e.spec.Scouting
		if sc == nil {
			sc = &config.ScoutingSpec{}
		}
		res.Scouting = &model.ScoutingPayload{
			TargetID:     sc.TargetID,
			IntelQuality: sc.IntelQuality,
			Report:       sc.Report,
		}
	case model.KindAdministrative:
		ad := e.spec.Admin
		if ad == nil {
			ad = &config.AdminSpec{Activity: "paperwork"}
		}
		res.Admin = &model.AdminPayload{Activity: ad.Activity, Notes: ad.Notes}
	case model.KindRest:
		level := 5.0
		if e.spec.Rest != nil {
			level = e.spec.Rest.RecoveryLevel
		}
		res.Rest = &model.RestPayload{RecoveryLevel: level}
	}

	return res, nil
}

// SnapshotPayload serializes the script so checkpoints can rebuild the event.
func (e *ScriptedEvent) SnapshotPayload() ([]byte, error) {
	return json.Marshal(e.spec)
}

// Factory rebuilds scripted events from checkpoint descriptors.
func Factory(d calendar.EventDescriptor) (model.Event, error) {
	if len(d.Payload) == 0 {
		return nil, fmt.Errorf("event %s has no scripted payload", d.ID)
	}
	var spec config.EventSpec
	if err := json.Unmarshal(d.Payload, &spec); err != nil {
		return nil, fmt.Errorf("decode event %s payload: %w", d.ID, err)
	}
	return NewScriptedEvent(spec)
}
