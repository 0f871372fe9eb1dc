package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConsultationLog is the append-only record of free-consultation
// claims. The phone is a snapshot of the claimer's verified number;
// the 30-day cooldown is keyed by it, not by user id.
type ConsultationLog struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	UserID uint   `gorm:"index;not null" json:"user_id"`
	Phone  string `gorm:"size:20;not null;index" json:"phone"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (l *ConsultationLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
