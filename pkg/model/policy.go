package model

// ConflictPolicy governs how a scheduling conflict is resolved.
type ConflictPolicy string

const (
	// PolicyReject refuses the conflicting event without mutating any index.
	PolicyReject ConflictPolicy = "reject"

	// PolicyForce schedules anyway, bypassing the conflict check. The busy
	// index is still updated. Unsafe; intended for debugging and repairs.
	PolicyForce ConflictPolicy = "force"

	// PolicyReschedule searches forward for the first date where every
	// participant is free, bounded by the configured horizon.
	PolicyReschedule ConflictPolicy = "reschedule"
)

// String returns the string representation of the policy.
func (p ConflictPolicy) String() string {
	return string(p)
}

// Valid returns true for known policies.
func (p ConflictPolicy) Valid() bool {
	switch p {
	case PolicyReject, PolicyForce, PolicyReschedule:
		return true
	}
	return false
}
