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

// ======================================================
// INPUT
// ======================================================

type BookInput struct {
	UserID uint
	Date   string
	Time   string
	FormID *uuid.UUID
}

// ======================================================
// USE CASE
// ======================================================

type Book struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cal   domain.Calendar
	loc   *time.Location

	firstPrice    int
	standardPrice int
}

func NewBook(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cal domain.Calendar,
	loc *time.Location,
	firstPrice int,
	standardPrice int,
) *Book {
	return &Book{
		repo:          repo,
		audit:         audit,
		cal:           cal,
		loc:           loc,
		firstPrice:    firstPrice,
		standardPrice: standardPrice,
	}
}

// Execute validates that the request names a slot the calendar
// actually generates, then hands the atomic work to the repository:
// availability re-check, insert, price/isFirst snapshot and the
// first-flag flip all commit together.
func (uc *Book) Execute(
	ctx context.Context,
	in BookInput,
) (*models.Consultation, error) {

	date, err := time.ParseInLocation(domain.DateLayout, in.Date, uc.loc)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeValidationError)
	}

	if !uc.cal.IsValidSlot(in.Time) {
		return nil, httperr.ErrBusiness(httperr.CodeValidationError)
	}

	now := time.Now().In(uc.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc)
	if date.Before(today) {
		return nil, httperr.ErrBusiness(httperr.CodeValidationError)
	}

	booking, err := uc.repo.BookSlot(ctx, domain.BookSlotInput{
		UserID:        in.UserID,
		Date:          date,
		Time:          in.Time,
		FormID:        in.FormID,
		FirstPrice:    uc.firstPrice,
		StandardPrice: uc.standardPrice,
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "consultation_booked",
		Entity:   "consultation",
		EntityID: booking.ID.String(),
		Metadata: map[string]any{
			"date":     in.Date,
			"time":     in.Time,
			"is_first": booking.IsFirst,
		},
	})

	return booking, nil
}
