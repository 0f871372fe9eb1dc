package phone

import (
	"context"
	"time"

	"github.com/nutriplan/consultation-api/internal/audit"
	domain "github.com/nutriplan/consultation-api/internal/domain/phone"
	"github.com/nutriplan/consultation-api/internal/httperr"
	"github.com/nutriplan/consultation-api/internal/models"
	"github.com/nutriplan/consultation-api/internal/verification"
)

// ======================================================
// USE CASE
// ======================================================

type ConfirmCode struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewConfirmCode(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ConfirmCode {
	return &ConfirmCode{
		repo:  repo,
		audit: audit,
	}
}

func isSixDigits(code string) bool {
	if len(code) != 6 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Execute confirms a one-time code. A match against any unexpired,
// unconsumed record of the caller is accepted: repeated requests may
// briefly leave several live codes, and the user should not be failed
// for typing a still-valid one.
func (uc *ConfirmCode) Execute(
	ctx context.Context,
	userID uint,
	code string,
) error {

	if !isSixDigits(code) {
		return httperr.ErrBusiness(httperr.CodeValidationError)
	}

	now := time.Now()

	live, err := uc.repo.ListLiveVerifications(ctx, userID, now)
	if err != nil {
		return err
	}

	var matched *models.PhoneVerification
	for i := range live {
		if verification.Verify(code, live[i].CodeHash) {
			matched = &live[i]
			break
		}
	}

	if matched == nil {
		expired, err := uc.repo.CountExpiredUnconsumed(ctx, userID, now)
		if err != nil {
			return err
		}
		if expired > 0 {
			return httperr.ErrBusiness(httperr.CodeExpired)
		}
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}

	if err := uc.repo.ConsumeVerification(ctx, matched.ID, userID, now); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "phone_verified",
		Entity:   "phone_verification",
		EntityID: matched.ID.String(),
	})

	return nil
}
