package consultation

import (
	"time"

	"github.com/nutriplan/consultation-api/internal/httperr"
)

// Eligibility is the outcome of the free-consultation gate. Ineligible
// outcomes carry a reason code, never an error: the gate fails closed.
type Eligibility struct {
	Eligible  bool       `json:"eligible"`
	Reason    string     `json:"reason,omitempty"`
	LastClaim *time.Time `json:"last_claim,omitempty"`
}

func Eligible() Eligibility {
	return Eligibility{Eligible: true}
}

func IneligibleNoPhone() Eligibility {
	return Eligibility{Eligible: false, Reason: httperr.CodePhoneMissing}
}

func IneligibleUnverified() Eligibility {
	return Eligibility{Eligible: false, Reason: httperr.CodePhoneUnverified}
}

// IneligiblePhoneConflict covers the number having been re-verified by
// another account since this user last checked.
func IneligiblePhoneConflict() Eligibility {
	return Eligibility{Eligible: false, Reason: httperr.CodePhoneConflict}
}

func IneligibleCooldown(lastClaim time.Time) Eligibility {
	return Eligibility{
		Eligible:  false,
		Reason:    httperr.CodeCooldownActive,
		LastClaim: &lastClaim,
	}
}
