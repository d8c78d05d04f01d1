package season

import "strings"

// highlightVocabulary marks a side effect as worth the weekly narrative log.
var highlightVocabulary = []string{
	"defeated", "outlasted", "upset", "blew out", "overtime",
	"injured", "streak", "comeback", "shutout",
}

// milestoneVocabulary routes a side effect to the achievements log.
var milestoneVocabulary = []string{
	"record", "milestone", "championship", "clinched", "first career",
	"perfect season", "100th",
}

// routeSideEffect classifies one side effect: milestones go to the
// achievements log, significant lines to the weekly highlights, the rest
// nowhere. Caller holds the lock.
func (s *State) routeSideEffect(text string, week int) {
	if matchesVocabulary(text, milestoneVocabulary) {
		s.achievements = append(s.achievements, text)
		return
	}
	if s.isSignificant(text, week) {
		s.highlights[week] = append(s.highlights[week], text)
	}
}

// isSignificant applies the custom rule when set, the keyword vocabulary
// otherwise. Caller holds the lock.
func (s *State) isSignificant(text string, week int) bool {
	if s.significant != nil {
		return s.significant(text, week)
	}
	return matchesVocabulary(text, highlightVocabulary)
}

func matchesVocabulary(text string, vocabulary []string) bool {
	lower := strings.ToLower(text)
	for _, word := range vocabulary {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}
