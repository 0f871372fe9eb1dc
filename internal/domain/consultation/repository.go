package consultation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nutriplan/consultation-api/internal/models"
)

// BookSlotInput carries everything the atomic booking transaction
// needs. Prices are injected so the repository snapshots them without
// reaching into configuration.
type BookSlotInput struct {
	UserID uint
	Date   time.Time
	Time   string
	FormID *uuid.UUID

	FirstPrice    int
	StandardPrice int
}

type Repository interface {
	// -------- User (trust-relevant fields only) --------
	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Calendar occupancy --------
	ListActiveBookingsBetween(
		ctx context.Context,
		from time.Time,
		to time.Time,
	) ([]models.Consultation, error)

	// -------- Booking (atomic create) --------
	// BookSlot re-checks availability, inserts the booking and flips
	// the user's first-consultation flag in one transaction. A lost
	// race returns the slot_taken business error.
	BookSlot(
		ctx context.Context,
		in BookSlotInput,
	) (*models.Consultation, error)

	// -------- Booking (state change) --------
	GetBookingForUser(
		ctx context.Context,
		bookingID uuid.UUID,
		userID uint,
	) (*models.Consultation, error)

	GetBookingByID(
		ctx context.Context,
		bookingID uuid.UUID,
	) (*models.Consultation, error)

	UpdateBooking(
		ctx context.Context,
		c *models.Consultation,
	) error

	ListBookingsForUser(
		ctx context.Context,
		userID uint,
	) ([]models.Consultation, error)

	// -------- Free-consultation claims --------
	EvaluateEligibility(
		ctx context.Context,
		userID uint,
		window time.Duration,
	) (Eligibility, error)

	// ClaimFree re-evaluates eligibility and inserts the usage-log row
	// atomically, serialized per phone. An ineligible outcome is
	// returned with a nil log and a nil error.
	ClaimFree(
		ctx context.Context,
		userID uint,
		window time.Duration,
	) (*models.ConsultationLog, Eligibility, error)

	ListClaimsForUser(
		ctx context.Context,
		userID uint,
	) ([]models.ConsultationLog, error)
}
