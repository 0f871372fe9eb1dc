package consultation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nutriplan/consultation-api/internal/audit"
	domain "github.com/nutriplan/consultation-api/internal/domain/consultation"
	"github.com/nutriplan/consultation-api/internal/httperr"
	"github.com/nutriplan/consultation-api/internal/models"
)

// Admin-side status transitions: scheduled -> confirmed -> completed.

type ConfirmBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewConfirmBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ConfirmBooking {
	return &ConfirmBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *ConfirmBooking) Execute(
	ctx context.Context,
	adminID uint,
	bookingID uuid.UUID,
) (*models.Consultation, error) {

	booking, err := uc.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	if err := domain.Confirm(booking); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, booking); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "consultation_confirmed",
		Entity:   "consultation",
		EntityID: booking.ID.String(),
	})

	return booking, nil
}

type CompleteBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	loc   *time.Location
}

func NewCompleteBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	loc *time.Location,
) *CompleteBooking {
	return &CompleteBooking{
		repo:  repo,
		audit: audit,
		loc:   loc,
	}
}

func (uc *CompleteBooking) Execute(
	ctx context.Context,
	adminID uint,
	bookingID uuid.UUID,
) (*models.Consultation, error) {

	booking, err := uc.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	now := time.Now().In(uc.loc)
	if err := domain.Complete(booking, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, booking); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "consultation_completed",
		Entity:   "consultation",
		EntityID: booking.ID.String(),
	})

	return booking, nil
}
