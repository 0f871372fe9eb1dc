package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PhoneVerification stores the sha256 digest of a one-time code, never
// the code itself. Unconsumed records are deleted when superseded by a
// new request or once the phone is verified.
type PhoneVerification struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	UserID uint   `gorm:"index;not null" json:"user_id"`
	Phone  string `gorm:"size:20;not null;index" json:"phone"`

	CodeHash string `gorm:"size:64;not null" json:"-"`
	SmsID    string `gorm:"size:64" json:"sms_id"`

	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	Verified  bool      `gorm:"not null;default:false" json:"verified"`

	CreatedAt time.Time `json:"created_at"`
}

func (v *PhoneVerification) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
