package phone

import (
	"context"

	"github.com/nutriplan/consultation-api/internal/audit"
	domain "github.com/nutriplan/consultation-api/internal/domain/phone"
	"github.com/nutriplan/consultation-api/internal/httperr"
	"github.com/nutriplan/consultation-api/internal/validators"
)

// ======================================================
// USE CASE
// ======================================================

type SetPhone struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSetPhone(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SetPhone {
	return &SetPhone{
		repo:  repo,
		audit: audit,
	}
}

// Execute attaches a phone number to the account in the unverified
// state, replacing any pending verification.
func (uc *SetPhone) Execute(
	ctx context.Context,
	userID uint,
	phoneNumber string,
) error {

	if !validators.IsPhoneValid(phoneNumber) {
		return httperr.ErrBusiness(httperr.CodeValidationError)
	}

	taken, err := uc.repo.IsPhoneVerifiedByOther(ctx, phoneNumber, userID)
	if err != nil {
		return err
	}
	if taken {
		return httperr.ErrBusiness(httperr.CodeConflict)
	}

	if err := uc.repo.SetPhone(ctx, userID, phoneNumber); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID: &userID,
		Action: "phone_set",
		Entity: "user",
	})

	return nil
}
