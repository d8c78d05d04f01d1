package model

// Kind is the self-describing discriminant shared by events and the results
// they produce. Processor dispatch is keyed by Kind.
type Kind string

const (
	KindGame           Kind = "game"
	KindTraining       Kind = "training"
	KindScouting       Kind = "scouting"
	KindAdministrative Kind = "administrative"
	KindRest           Kind = "rest"
)

// AllKinds lists every known kind in registration order.
var AllKinds = []Kind{
	KindGame,
	KindTraining,
	KindScouting,
	KindAdministrative,
	KindRest,
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// Valid returns true if the kind is one of the known variants.
func (k Kind) Valid() bool {
	switch k {
	case KindGame, KindTraining, KindScouting, KindAdministrative, KindRest:
		return true
	}
	return false
}

// Exclusive returns true if events of this kind never coexist with any other
// event sharing a participant, regardless of the coexistence allowlist.
func (k Kind) Exclusive() bool {
	return k == KindGame
}
