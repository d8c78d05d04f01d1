package season

// Snapshot is the serializable form of the season state.
type Snapshot struct {
	Records      map[string]*TeamRecord `json:"records"`
	Highlights   map[int][]string       `json:"highlights"`
	Achievements []string               `json:"achievements"`
}

// Snapshot captures a deep copy of the season state for checkpointing.
func (s *State) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := &Snapshot{
		Records:      make(map[string]*TeamRecord, len(s.records)),
		Highlights:   make(map[int][]string, len(s.highlights)),
		Achievements: append([]string(nil), s.achievements...),
	}
	for id, rec := range s.records {
		cp := *rec
		snap.Records[id] = &cp
	}
	for week, lines := range s.highlights {
		snap.Highlights[week] = append([]string(nil), lines...)
	}
	return snap
}

// Restore replaces the season state with a checkpointed snapshot.
func (s *State) Restore(snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]*TeamRecord, len(snap.Records))
	for id, rec := range snap.Records {
		cp := *rec
		s.records[id] = &cp
	}
	s.highlights = make(map[int][]string, len(snap.Highlights))
	for week, lines := range snap.Highlights {
		s.highlights[week] = append([]string(nil), lines...)
	}
	s.achievements = append([]string(nil), snap.Achievements...)
}
