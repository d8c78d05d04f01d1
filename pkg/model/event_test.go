package model

import (
	"testing"
	"time"
)

func TestEventID_Deterministic(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	a := EventID(date, []string{"sharks", "comets"}, "Week 3: Sharks vs Comets")
	b := EventID(date, []string{"comets", "sharks"}, "Week 3: Sharks vs Comets")
	if a != b {
		t.Errorf("participant order changed identity: %s vs %s", a, b)
	}

	c := EventID(date.AddDate(0, 0, 1), []string{"sharks", "comets"}, "Week 3: Sharks vs Comets")
	if a == c {
		t.Error("different dates produced the same identity")
	}

	d := EventID(date, []string{"sharks", "comets"}, "rematch")
	if a == d {
		t.Error("different names produced the same identity")
	}
}

func TestNormalizeDate(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	in := time.Date(2026, 3, 14, 22, 15, 3, 0, loc) // 03:15 UTC on the 15th
	got := NormalizeDate(in)
	want := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("NormalizeDate = %v, want %v", got, want)
	}
}
