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

type CancelBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	loc   *time.Location
}

func NewCancelBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	loc *time.Location,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		audit: audit,
		loc:   loc,
	}
}

// Execute cancels the caller's own booking. Cancellation frees the
// slot: the partial unique index only covers active statuses.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	userID uint,
	bookingID uuid.UUID,
) (*models.Consultation, error) {

	booking, err := uc.repo.GetBookingForUser(ctx, bookingID, userID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	now := time.Now().In(uc.loc)
	if err := domain.Cancel(booking, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, booking); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "consultation_cancelled",
		Entity:   "consultation",
		EntityID: booking.ID.String(),
	})

	return booking, nil
}
