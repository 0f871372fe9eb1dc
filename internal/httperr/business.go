package httperr

import "errors"

// Stable reason codes surfaced to clients. Handlers map them onto
// HTTP statuses; no internal error detail crosses the boundary.
const (
	CodeConflict        = "conflict"
	CodeSlotTaken       = "slot_taken"
	CodeInvalidState    = "invalid_state"
	CodeNotFound        = "not_found"
	CodeExpired         = "expired"
	CodeTransportError  = "transport_error"
	CodeValidationError = "validation_error"
	CodePhoneMissing    = "phone_missing"
	CodePhoneUnverified = "phone_unverified"
	CodePhoneConflict   = "phone_conflict"
	CodeCooldownActive  = "cooldown_active"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode extracts the reason code, or "" for non-business errors.
func BusinessCode(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
