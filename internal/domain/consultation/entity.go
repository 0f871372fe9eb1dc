package consultation

import (
	"time"

	"github.com/nutriplan/consultation-api/internal/models"
)

// Domain actions over a booking's lifecycle.

func Cancel(c *models.Consultation, now time.Time) error {
	if err := CanCancel(Status(c.Status)); err != nil {
		return err
	}

	c.Status = string(StatusCancelled)
	c.CancelledAt = &now
	return nil
}

func Confirm(c *models.Consultation) error {
	if err := CanConfirm(Status(c.Status)); err != nil {
		return err
	}

	c.Status = string(StatusConfirmed)
	return nil
}

func Complete(c *models.Consultation, now time.Time) error {
	if err := CanComplete(Status(c.Status)); err != nil {
		return err
	}

	c.Status = string(StatusCompleted)
	c.CompletedAt = &now
	return nil
}
