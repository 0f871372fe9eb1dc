package consultation

import (
	"context"

	domain "github.com/nutriplan/consultation-api/internal/domain/consultation"
	"github.com/nutriplan/consultation-api/internal/dto"
)

type ListMyBookings struct {
	repo domain.Repository
}

func NewListMyBookings(repo domain.Repository) *ListMyBookings {
	return &ListMyBookings{repo: repo}
}

func (uc *ListMyBookings) Execute(
	ctx context.Context,
	userID uint,
) ([]dto.ConsultationListDTO, error) {

	bookings, err := uc.repo.ListBookingsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ConsultationListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, dto.ConsultationListDTO{
			ID:          b.ID,
			Date:        b.Date.Format(domain.DateLayout),
			Time:        b.Time,
			Status:      b.Status,
			Price:       b.Price,
			IsFirst:     b.IsFirst,
			Notes:       b.Notes,
			MeetingLink: b.MeetingLink,
			HasForm:     b.FormID != nil,
			CreatedAt:   b.CreatedAt,
		})
	}

	return out, nil
}
