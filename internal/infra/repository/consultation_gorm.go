package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/nutriplan/consultation-api/internal/domain/consultation"
	"github.com/nutriplan/consultation-api/internal/httperr"
	"github.com/nutriplan/consultation-api/internal/models"
)

type ConsultationGormRepository struct {
	db *gorm.DB
}

func NewConsultationGormRepository(db *gorm.DB) *ConsultationGormRepository {
	return &ConsultationGormRepository{db: db}
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// --------------------------------------------------
// User
// --------------------------------------------------

func (r *ConsultationGormRepository) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// --------------------------------------------------
// Calendar occupancy
// --------------------------------------------------

func (r *ConsultationGormRepository) ListActiveBookingsBetween(
	ctx context.Context,
	from time.Time,
	to time.Time,
) ([]models.Consultation, error) {

	var bookings []models.Consultation
	if err := r.db.WithContext(ctx).
		Select("date", "time", "status").
		Where(
			"status IN ('scheduled', 'confirmed') AND date >= ? AND date < ?",
			from, to,
		).
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// --------------------------------------------------
// Booking (atomic create)
// --------------------------------------------------

// BookSlot holds a row lock on the user so two concurrent bookings by
// the same account cannot both snapshot isFirst=true, and relies on
// the partial unique index over active (date, time) pairs for the
// slot itself. The index violation, not the calendar snapshot, is the
// authoritative availability check.
func (r *ConsultationGormRepository) BookSlot(
	ctx context.Context,
	in domain.BookSlotInput,
) (*models.Consultation, error) {

	var created models.Consultation

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var user models.User
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, in.UserID).Error; err != nil {

			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness(httperr.CodeNotFound)
			}
			return err
		}

		isFirst := !user.HasConsultation
		price := in.StandardPrice
		if isFirst {
			price = in.FirstPrice
		}

		booking := models.Consultation{
			UserID:  in.UserID,
			FormID:  in.FormID,
			Date:    in.Date,
			Time:    in.Time,
			Price:   price,
			IsFirst: isFirst,
			Status:  string(domain.InitialStatus()),
		}

		if err := tx.Create(&booking).Error; err != nil {
			if isUniqueViolation(err) {
				return httperr.ErrBusiness(httperr.CodeSlotTaken)
			}
			return err
		}

		if isFirst {
			if err := tx.Model(&models.User{}).
				Where("id = ?", in.UserID).
				Update("has_consultation", true).Error; err != nil {
				return err
			}
		}

		created = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	return &created, nil
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

func (r *ConsultationGormRepository) GetBookingForUser(
	ctx context.Context,
	bookingID uuid.UUID,
	userID uint,
) (*models.Consultation, error) {

	var booking models.Consultation
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", bookingID, userID).
		First(&booking).Error; err != nil {
		return nil, err
	}

	return &booking, nil
}

func (r *ConsultationGormRepository) GetBookingByID(
	ctx context.Context,
	bookingID uuid.UUID,
) (*models.Consultation, error) {

	var booking models.Consultation
	if err := r.db.WithContext(ctx).
		First(&booking, "id = ?", bookingID).Error; err != nil {
		return nil, err
	}

	return &booking, nil
}

func (r *ConsultationGormRepository) UpdateBooking(
	ctx context.Context,
	c *models.Consultation,
) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ConsultationGormRepository) ListBookingsForUser(
	ctx context.Context,
	userID uint,
) ([]models.Consultation, error) {

	var bookings []models.Consultation
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, time DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// --------------------------------------------------
// Free-consultation claims
// --------------------------------------------------

// evaluate runs the eligibility checks against the given handle so
// ClaimFree can reuse them inside its transaction.
func (r *ConsultationGormRepository) evaluate(
	tx *gorm.DB,
	userID uint,
	window time.Duration,
	now time.Time,
) (string, domain.Eligibility, error) {

	var user models.User
	if err := tx.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.IneligibleNoPhone(), nil
		}
		return "", domain.Eligibility{}, err
	}

	if user.Phone == nil || *user.Phone == "" {
		return "", domain.IneligibleNoPhone(), nil
	}
	if !user.PhoneVerified {
		return "", domain.IneligibleUnverified(), nil
	}

	phoneNumber := *user.Phone

	// The number may have been re-verified by another account since
	// this user confirmed it.
	var owner models.User
	err := tx.
		Where("phone = ? AND phone_verified", phoneNumber).
		First(&owner).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.Eligibility{}, err
		}
		return "", domain.IneligiblePhoneConflict(), nil
	}
	if owner.ID != userID {
		return "", domain.IneligiblePhoneConflict(), nil
	}

	// Cooldown is keyed by phone: accounts sharing a number share the
	// benefit window.
	var last models.ConsultationLog
	err = tx.
		Where("phone = ? AND created_at >= ?", phoneNumber, now.Add(-window)).
		Order("created_at DESC").
		First(&last).Error
	if err == nil {
		return phoneNumber, domain.IneligibleCooldown(last.CreatedAt), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", domain.Eligibility{}, err
	}

	return phoneNumber, domain.Eligible(), nil
}

func (r *ConsultationGormRepository) EvaluateEligibility(
	ctx context.Context,
	userID uint,
	window time.Duration,
) (domain.Eligibility, error) {

	_, result, err := r.evaluate(r.db.WithContext(ctx), userID, window, time.Now())
	return result, err
}

// ClaimFree serializes claims per phone with an advisory transaction
// lock, so the eligibility re-check and the log insert form a single
// atomic unit with no check-then-act window.
func (r *ConsultationGormRepository) ClaimFree(
	ctx context.Context,
	userID uint,
	window time.Duration,
) (*models.ConsultationLog, domain.Eligibility, error) {

	var (
		claim  *models.ConsultationLog
		result domain.Eligibility
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result = domain.IneligibleNoPhone()
				return nil
			}
			return err
		}

		if user.Phone != nil && *user.Phone != "" {
			if err := tx.Exec(
				"SELECT pg_advisory_xact_lock(hashtext(?))",
				*user.Phone,
			).Error; err != nil {
				return err
			}
		}

		phoneNumber, res, err := r.evaluate(tx, userID, window, time.Now())
		if err != nil {
			return err
		}
		result = res
		if !res.Eligible {
			return nil
		}

		row := models.ConsultationLog{
			UserID: userID,
			Phone:  phoneNumber,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}

		claim = &row
		return nil
	})

	if err != nil {
		return nil, domain.Eligibility{}, err
	}

	return claim, result, nil
}

func (r *ConsultationGormRepository) ListClaimsForUser(
	ctx context.Context,
	userID uint,
) ([]models.ConsultationLog, error) {

	var claims []models.ConsultationLog
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&claims).Error; err != nil {
		return nil, err
	}

	return claims, nil
}

// Compile-time check
var _ domain.Repository = (*ConsultationGormRepository)(nil)
