package consultation

import "github.com/nutriplan/consultation-api/internal/httperr"

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Active statuses occupy their slot.
func IsActive(s Status) bool {
	return s == StatusScheduled || s == StatusConfirmed
}

func IsTerminal(s Status) bool {
	return s == StatusCancelled || s == StatusCompleted
}

// CanCancel permits cancellation from any non-terminal state.
func CanCancel(current Status) error {
	if IsTerminal(current) {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func CanConfirm(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func CanComplete(current Status) error {
	if !IsActive(current) {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
