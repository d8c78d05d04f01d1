package season

import (
	"sort"

	"github.com/me/seasonsim/pkg/model"
)

// Standings derives the current table: win percentage descending, point
// differential as tie-break, participant id as a stable final ordering.
func (s *State) Standings() []model.StandingsEntry {
	s.mu.Lock()
	entries := make([]model.StandingsEntry, 0, len(s.records))
	for _, rec := range s.records {
		entries = append(entries, model.StandingsEntry{
			ParticipantID: rec.ParticipantID,
			Wins:          rec.Wins,
			Losses:        rec.Losses,
			Ties:          rec.Ties,
			WinPct:        rec.WinPct(),
			PointDiff:     rec.PointDiff(),
		})
	}
	s.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].WinPct != entries[j].WinPct {
			return entries[i].WinPct > entries[j].WinPct
		}
		if entries[i].PointDiff != entries[j].PointDiff {
			return entries[i].PointDiff > entries[j].PointDiff
		}
		return entries[i].ParticipantID < entries[j].ParticipantID
	})
	return entries
}
