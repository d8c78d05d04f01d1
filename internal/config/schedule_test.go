package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSchedule(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "season.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSchedule(t *testing.T) {
	path := writeSchedule(t, `
events:
  - date: 2026-09-07T00:00:00Z
    kind: game
    name: "Sharks vs Comets"
    participants: [sharks, comets]
    duration_hours: 3
    game:
      home_id: sharks
      away_id: comets
      home_score: 24
      away_score: 17
  - date: 2026-09-08T00:00:00Z
    kind: training
    name: "Passing drills"
    participants: [sharks]
    duration_hours: 2
    training:
      focus: passing
      intensity: 6
      chemistry_gain: 1.5
      fatigue_cost: 2
`)

	sched, err := LoadSchedule(path)
	if err != nil {
		t.Fatalf("LoadSchedule() error: %v", err)
	}
	if len(sched.Events) != 2 {
		t.Fatalf("got %d events, want 2", len(sched.Events))
	}

	game := sched.Events[0]
	if game.Kind != "game" || game.Game == nil {
		t.Fatalf("first event not a game: %+v", game)
	}
	if game.Game.HomeScore != 24 || game.Game.AwayID != "comets" {
		t.Errorf("game payload = %+v", game.Game)
	}
	if sched.Events[1].Training.Intensity != 6 {
		t.Errorf("training payload = %+v", sched.Events[1].Training)
	}
}

func TestLoadScheduleRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{
			"missing date",
			"events:\n  - kind: rest\n    name: off day\n    participants: [sharks]\n    duration_hours: 8\n",
			"missing date",
		},
		{
			"no participants",
			"events:\n  - date: 2026-09-07T00:00:00Z\n    kind: rest\n    name: off day\n    duration_hours: 8\n",
			"no participants",
		},
		{
			"zero duration",
			"events:\n  - date: 2026-09-07T00:00:00Z\n    kind: rest\n    name: off day\n    participants: [sharks]\n",
			"duration",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSchedule(writeSchedule(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}
