package scheduling

// transitionTable is the single source of truth for the appointment
// lifecycle. A status with an empty entry is terminal. Every mutation,
// including the shortcut actions below, must pass through this table.
var transitionTable = map[Status][]Status{
	StatusPending:     {StatusConfirmed, StatusCancelled, StatusRejected, StatusRescheduled},
	StatusConfirmed:   {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress:  {StatusCompleted, StatusCancelled},
	StatusCompleted:   {},
	StatusCancelled:   {},
	StatusRejected:    {},
	StatusNoShow:      {StatusRescheduled},
	StatusRescheduled: {StatusConfirmed, StatusCancelled},
}

// CanTransition reports whether from -> to is a legal lifecycle edge.
// Self transitions are never legal.
func CanTransition(from, to Status) bool {
	for _, next := range transitionTable[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns an *InvalidTransitionError when from -> to is
// not in the table. Callers must not apply any side effect in that case.
func ValidateTransition(from, to Status) error {
	if !CanTransition(from, to) {
		return &InvalidTransitionError{From: from, To: to}
	}
	return nil
}

// Action is a named shortcut for a specific target status. Shortcut
// endpoints dispatch through TargetForAction so the shortcut and generic
// paths cannot drift apart.
type Action string

const (
	ActionAccept   Action = "accept"
	ActionReject   Action = "reject"
	ActionCancel   Action = "cancel"
	ActionComplete Action = "complete"
	ActionStart    Action = "start"
)

var actionTargets = map[Action]Status{
	ActionAccept:   StatusConfirmed,
	ActionReject:   StatusRejected,
	ActionCancel:   StatusCancelled,
	ActionComplete: StatusCompleted,
	ActionStart:    StatusInProgress,
}

// TargetForAction resolves a shortcut to its target status.
func TargetForAction(a Action) (Status, bool) {
	s, ok := actionTargets[a]
	return s, ok
}

// reservesSlot reports whether entering to marks the appointment's slot as
// booked in the ledger. Only confirmation reserves; a pending appointment
// holds no reservation, so two patients may race to request the same slot
// and only one can reach confirmed.
func reservesSlot(to Status) bool {
	return to == StatusConfirmed
}

// releasesSlot reports whether entering to ends the appointment's claim on
// its slot.
func releasesSlot(to Status) bool {
	switch to {
	case StatusCancelled, StatusRejected, StatusNoShow, StatusCompleted:
		return true
	}
	return false
}

// holdsReservation reports whether an appointment in status from has its
// slot marked booked. Releasing from any other status would unbook a slot
// that a different appointment may hold.
func holdsReservation(from Status) bool {
	return from == StatusConfirmed || from == StatusInProgress
}
