package models

type VisitStatus string

// Visit lifecycle statuses. invited and pending are both valid entry points:
// invited for host-initiated visits (token issued, visitor details still
// null), pending for gate self-registration (details complete, awaiting the
// host's decision).
const (
	StatusInvited   VisitStatus = "invited"
	StatusPending   VisitStatus = "pending"
	StatusApproved  VisitStatus = "approved"
	StatusRejected  VisitStatus = "rejected"
	StatusActive    VisitStatus = "active"
	StatusCompleted VisitStatus = "completed"
)

// visitTransitions is the full lifecycle: invite acceptance, host decision,
// gate check-in and check-out. Anything not listed is illegal.
var visitTransitions = map[VisitStatus][]VisitStatus{
	StatusInvited:  {StatusPending},
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusActive},
	StatusActive:   {StatusCompleted},
}

// CanTransition reports whether a visit may move from one status to another.
func CanTransition(from, to VisitStatus) bool {
	for _, next := range visitTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are defined for a status.
func (s VisitStatus) IsTerminal() bool {
	return len(visitTransitions[s]) == 0
}

// ParseDecision maps a host decision string to its target status.
func ParseDecision(status string) (VisitStatus, bool) {
	switch VisitStatus(status) {
	case StatusApproved:
		return StatusApproved, true
	case StatusRejected:
		return StatusRejected, true
	default:
		return "", false
	}
}
