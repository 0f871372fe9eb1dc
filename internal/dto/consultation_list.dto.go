package dto

import (
	"time"

	"github.com/google/uuid"
)

type ConsultationListDTO struct {
	ID          uuid.UUID `json:"id"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Status      string    `json:"status"`
	Price       int       `json:"price"`
	IsFirst     bool      `json:"is_first"`
	Notes       string    `json:"notes,omitempty"`
	MeetingLink string    `json:"meeting_link,omitempty"`
	HasForm     bool      `json:"has_form"`
	CreatedAt   time.Time `json:"created_at"`
}

type ClaimListDTO struct {
	ID        uuid.UUID `json:"id"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}
