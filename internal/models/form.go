package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Form holds a submitted health survey as an opaque document. The
// survey pipeline lives outside this service; bookings only reference
// the form id.
type Form struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	UserID uint `gorm:"index;not null" json:"user_id"`

	Answers string `gorm:"type:jsonb" json:"answers"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (f *Form) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
