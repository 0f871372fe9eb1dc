package phone

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nutriplan/consultation-api/internal/models"
)

// Repository is the persistence contract for the phone trust state:
// a user moves NoPhone -> PhoneUnverified -> PhoneVerified, and back
// to PhoneUnverified when the number changes.
type Repository interface {
	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// IsPhoneVerifiedByOther reports whether another account already
	// holds this number verified.
	IsPhoneVerifiedByOther(
		ctx context.Context,
		phoneNumber string,
		userID uint,
	) (bool, error)

	// SetPhone stores the number, clears the verification flag and
	// timestamp, and deletes the user's pending verification records,
	// all in one transaction.
	SetPhone(
		ctx context.Context,
		userID uint,
		phoneNumber string,
	) error

	DeleteUnconsumedVerifications(
		ctx context.Context,
		userID uint,
	) error

	CreateVerification(
		ctx context.Context,
		v *models.PhoneVerification,
	) error

	// ListLiveVerifications returns unexpired, unconsumed records,
	// newest first.
	ListLiveVerifications(
		ctx context.Context,
		userID uint,
		now time.Time,
	) ([]models.PhoneVerification, error)

	CountExpiredUnconsumed(
		ctx context.Context,
		userID uint,
		now time.Time,
	) (int64, error)

	// ConsumeVerification marks the matched record verified, flips the
	// user's phone-verified flag with a timestamp, and deletes the
	// user's other unconsumed records in one transaction. It re-checks
	// that no other account verified the number in the meantime and
	// returns the conflict business error if one did.
	ConsumeVerification(
		ctx context.Context,
		verificationID uuid.UUID,
		userID uint,
		now time.Time,
	) error
}
