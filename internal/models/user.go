package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;default:'client'" json:"role"`

	// Uniqueness among verified phones is enforced by a partial
	// unique index created in internal/db.
	Phone           *string    `gorm:"size:20" json:"phone"`
	PhoneVerified   bool       `gorm:"not null;default:false" json:"phone_verified"`
	PhoneVerifiedAt *time.Time `json:"phone_verified_at"`

	// Flips false->true exactly once, inside the first booking's
	// transaction. Never reset.
	HasConsultation bool `gorm:"not null;default:false" json:"has_consultation"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
