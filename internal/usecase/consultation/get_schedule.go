package consultation

import (
	"context"
	"time"

	domain "github.com/nutriplan/consultation-api/internal/domain/consultation"
)

const (
	defaultScheduleDays = 14
	maxScheduleDays     = 60
)

// ======================================================
// USE CASE
// ======================================================

type GetSchedule struct {
	repo domain.Repository
	cal  domain.Calendar
	loc  *time.Location

	firstPrice    int
	standardPrice int
}

func NewGetSchedule(
	repo domain.Repository,
	cal domain.Calendar,
	loc *time.Location,
	firstPrice int,
	standardPrice int,
) *GetSchedule {
	return &GetSchedule{
		repo:          repo,
		cal:           cal,
		loc:           loc,
		firstPrice:    firstPrice,
		standardPrice: standardPrice,
	}
}

type ScheduleResult struct {
	Schedule        []domain.DaySchedule `json:"schedule"`
	HasConsultation bool                 `json:"user_has_consultation"`
}

// Execute builds the caller's view of the next N days. Occupancy comes
// from one range query over active bookings; pricing from the caller's
// current first-consultation status.
func (uc *GetSchedule) Execute(
	ctx context.Context,
	userID uint,
	days int,
) (*ScheduleResult, error) {

	if days <= 0 {
		days = defaultScheduleDays
	}
	if days > maxScheduleDays {
		days = maxScheduleDays
	}

	user, err := uc.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().In(uc.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc)

	bookings, err := uc.repo.ListActiveBookingsBetween(
		ctx,
		today,
		today.AddDate(0, 0, days),
	)
	if err != nil {
		return nil, err
	}

	occupied := domain.OccupiedSlots(bookings)

	isFirst := !user.HasConsultation
	price := uc.standardPrice
	if isFirst {
		price = uc.firstPrice
	}

	schedule := make([]domain.DaySchedule, 0, days)
	for i := 0; i < days; i++ {
		day := today.AddDate(0, 0, i)
		schedule = append(schedule, uc.cal.DaySchedule(day, occupied, price, isFirst))
	}

	return &ScheduleResult{
		Schedule:        schedule,
		HasConsultation: user.HasConsultation,
	}, nil
}
