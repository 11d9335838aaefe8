package visit

import (
	"github.com/pkg/errors"

	"github.com/tundavala/escola/core"
)

var ErrInvalidStatus = errors.New("invalid status")

// Status of an appointment: pending -> confirmed | cancelled. confirmed and cancelled are final.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether an appointment in `s` may move to `to`.
func (s Status) CanTransitionTo(to Status) bool {
	switch s {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	default:
		return false
	}
}

// transition returns the status an appointment in `from` ends up in when asked to move to `to`.
// Asking for the current status is a no-op.
func transition(from, to Status) (Status, error) {
	if !to.IsValid() {
		return from, core.NewValidationError(ErrInvalidStatus)
	}
	if from == to {
		return from, nil
	}
	if !from.CanTransitionTo(to) {
		return from, core.NewValidationError(errors.Errorf("cannot change status from %s to %s", from, to))
	}
	return to, nil
}
