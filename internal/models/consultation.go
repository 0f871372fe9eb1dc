package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Consultation struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	FormID *uuid.UUID `gorm:"type:uuid" json:"form_id"`
	Form   *Form      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Date time.Time `gorm:"type:date;not null" json:"date"`
	Time string    `gorm:"size:5;not null" json:"time"`

	// Snapshots taken at booking time, never re-derived.
	Price   int  `gorm:"not null" json:"price"`
	IsFirst bool `gorm:"not null;default:false" json:"is_first"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	Notes       string `gorm:"size:255" json:"notes"`
	MeetingLink string `gorm:"size:255" json:"meeting_link"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Consultation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
