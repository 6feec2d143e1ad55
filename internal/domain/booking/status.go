package booking

import "github.com/agendalivre/agenda-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// transitions is the closed state machine:
// scheduled -> confirmed -> completed, with cancellation allowed from
// scheduled and confirmed. Completed and cancelled are terminal.
var transitions = map[Status][]Status{
	StatusScheduled: {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCancelled: {},
	StatusCompleted: {},
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func checkTransition(from, to Status) error {
	if !CanTransition(from, to) {
		return httperr.ErrBusiness("invalid_transition")
	}
	return nil
}

func CanConfirm(current Status) error {
	return checkTransition(current, StatusConfirmed)
}

func CanCancel(current Status) error {
	return checkTransition(current, StatusCancelled)
}

func CanComplete(current Status) error {
	return checkTransition(current, StatusCompleted)
}

func InitialStatus() Status {
	return StatusScheduled
}

// ActiveStatuses are the statuses that consume slot capacity.
func ActiveStatuses() []string {
	return []string{string(StatusScheduled), string(StatusConfirmed)}
}
