package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/nutriplan/consultation-api/internal/domain/phone"
	"github.com/nutriplan/consultation-api/internal/httperr"
	"github.com/nutriplan/consultation-api/internal/models"
)

type PhoneGormRepository struct {
	db *gorm.DB
}

func NewPhoneGormRepository(db *gorm.DB) *PhoneGormRepository {
	return &PhoneGormRepository{db: db}
}

func (r *PhoneGormRepository) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PhoneGormRepository) IsPhoneVerifiedByOther(
	ctx context.Context,
	phoneNumber string,
	userID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("phone = ? AND phone_verified AND id <> ?", phoneNumber, userID).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// SetPhone replaces the number and resets any pending trust state. A
// new number always starts unverified.
func (r *PhoneGormRepository) SetPhone(
	ctx context.Context,
	userID uint,
	phoneNumber string,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Updates(map[string]any{
				"phone":             phoneNumber,
				"phone_verified":    false,
				"phone_verified_at": nil,
			}).Error; err != nil {
			return err
		}

		return tx.
			Where("user_id = ? AND verified = false", userID).
			Delete(&models.PhoneVerification{}).Error
	})
}

func (r *PhoneGormRepository) DeleteUnconsumedVerifications(
	ctx context.Context,
	userID uint,
) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND verified = false", userID).
		Delete(&models.PhoneVerification{}).Error
}

func (r *PhoneGormRepository) CreateVerification(
	ctx context.Context,
	v *models.PhoneVerification,
) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *PhoneGormRepository) ListLiveVerifications(
	ctx context.Context,
	userID uint,
	now time.Time,
) ([]models.PhoneVerification, error) {

	var records []models.PhoneVerification
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND verified = false AND expires_at > ?", userID, now).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *PhoneGormRepository) CountExpiredUnconsumed(
	ctx context.Context,
	userID uint,
	now time.Time,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PhoneVerification{}).
		Where("user_id = ? AND verified = false AND expires_at <= ?", userID, now).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

// ConsumeVerification is the trust handover: it re-checks that the
// phone still belongs to this account and is not verified elsewhere
// before flipping the flag, all under the user's row lock. The partial
// unique index on verified phones backs the check under concurrency.
func (r *PhoneGormRepository) ConsumeVerification(
	ctx context.Context,
	verificationID uuid.UUID,
	userID uint,
	now time.Time,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var record models.PhoneVerification
		if err := tx.
			Where("id = ? AND user_id = ? AND verified = false", verificationID, userID).
			First(&record).Error; err != nil {

			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness(httperr.CodeNotFound)
			}
			return err
		}

		var user models.User
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, userID).Error; err != nil {
			return err
		}

		// The number may have been replaced after the code was sent.
		if user.Phone == nil || *user.Phone != record.Phone {
			return httperr.ErrBusiness(httperr.CodeInvalidState)
		}
		if user.PhoneVerified {
			return httperr.ErrBusiness(httperr.CodeInvalidState)
		}

		var count int64
		if err := tx.Model(&models.User{}).
			Where("phone = ? AND phone_verified AND id <> ?", record.Phone, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrBusiness(httperr.CodeConflict)
		}

		if err := tx.Model(&record).Update("verified", true).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Updates(map[string]any{
				"phone_verified":    true,
				"phone_verified_at": now,
			}).Error; err != nil {

			if isUniqueViolation(err) {
				return httperr.ErrBusiness(httperr.CodeConflict)
			}
			return err
		}

		return tx.
			Where("user_id = ? AND verified = false AND id <> ?", userID, verificationID).
			Delete(&models.PhoneVerification{}).Error
	})

	return err
}

// Compile-time check
var _ domain.Repository = (*PhoneGormRepository)(nil)
