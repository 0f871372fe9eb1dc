package phone

import (
	"context"
	"time"

	"github.com/nutriplan/consultation-api/internal/audit"
	domain "github.com/nutriplan/consultation-api/internal/domain/phone"
	"github.com/nutriplan/consultation-api/internal/httperr"
	"github.com/nutriplan/consultation-api/internal/models"
	"github.com/nutriplan/consultation-api/internal/sms"
	"github.com/nutriplan/consultation-api/internal/verification"
)

// ======================================================
// USE CASE
// ======================================================

type RequestCode struct {
	repo   domain.Repository
	sender sms.Sender
	audit  *audit.Dispatcher
	ttl    time.Duration
}

func NewRequestCode(
	repo domain.Repository,
	sender sms.Sender,
	audit *audit.Dispatcher,
	ttl time.Duration,
) *RequestCode {
	return &RequestCode{
		repo:   repo,
		sender: sender,
		audit:  audit,
		ttl:    ttl,
	}
}

// Execute issues a fresh one-time code for an unverified phone. Prior
// unconsumed codes are dropped first, and the record is persisted only
// after dispatch succeeds so a transport failure leaves no unusable
// code behind.
func (uc *RequestCode) Execute(
	ctx context.Context,
	userID uint,
) error {

	user, err := uc.repo.GetUserByID(ctx, userID)
	if err != nil {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}

	if user.Phone == nil || *user.Phone == "" {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	if user.PhoneVerified {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}

	if err := uc.repo.DeleteUnconsumedVerifications(ctx, userID); err != nil {
		return err
	}

	code, err := verification.GenerateCode()
	if err != nil {
		return err
	}

	smsID, err := uc.sender.Send(ctx, *user.Phone, code)
	if err != nil {
		if httperr.BusinessCode(err) != "" {
			return err
		}
		return httperr.ErrBusiness(httperr.CodeTransportError)
	}

	record := models.PhoneVerification{
		UserID:    userID,
		Phone:     *user.Phone,
		CodeHash:  verification.Hash(code),
		SmsID:     smsID,
		ExpiresAt: time.Now().Add(uc.ttl),
	}

	if err := uc.repo.CreateVerification(ctx, &record); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "phone_code_sent",
		Entity:   "phone_verification",
		EntityID: record.ID.String(),
	})

	return nil
}
