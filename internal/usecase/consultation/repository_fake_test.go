package consultation

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/nutriplan/consultation-api/internal/domain/consultation"
	"github.com/nutriplan/consultation-api/internal/httperr"
	"github.com/nutriplan/consultation-api/internal/models"
)

// fakeRepo is an in-memory Repository honoring the same atomicity
// contracts as the gorm implementation: BookSlot and ClaimFree run
// under one lock, so their check-and-insert is a single unit.
type fakeRepo struct {
	mu       sync.Mutex
	users    map[uint]*models.User
	bookings map[uuid.UUID]*models.Consultation
	claims   []models.ConsultationLog
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:    make(map[uint]*models.User),
		bookings: make(map[uuid.UUID]*models.Consultation),
	}
}

func (f *fakeRepo) addUser(u models.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user := u
	f.users[u.ID] = &user
}

func (f *fakeRepo) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeRepo) ListActiveBookingsBetween(ctx context.Context, from, to time.Time) ([]models.Consultation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Consultation
	for _, b := range f.bookings {
		if domain.IsActive(domain.Status(b.Status)) && !b.Date.Before(from) && b.Date.Before(to) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeRepo) slotTakenLocked(date time.Time, slotTime string) bool {
	for _, b := range f.bookings {
		if b.Date.Equal(date) && b.Time == slotTime && domain.IsActive(domain.Status(b.Status)) {
			return true
		}
	}
	return false
}

func (f *fakeRepo) BookSlot(ctx context.Context, in domain.BookSlotInput) (*models.Consultation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[in.UserID]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	if f.slotTakenLocked(in.Date, in.Time) {
		return nil, httperr.ErrBusiness(httperr.CodeSlotTaken)
	}

	isFirst := !user.HasConsultation
	price := in.StandardPrice
	if isFirst {
		price = in.FirstPrice
	}

	booking := &models.Consultation{
		ID:        uuid.New(),
		UserID:    in.UserID,
		FormID:    in.FormID,
		Date:      in.Date,
		Time:      in.Time,
		Price:     price,
		IsFirst:   isFirst,
		Status:    string(domain.InitialStatus()),
		CreatedAt: time.Now(),
	}
	f.bookings[booking.ID] = booking

	if isFirst {
		user.HasConsultation = true
	}

	copied := *booking
	return &copied, nil
}

func (f *fakeRepo) GetBookingForUser(ctx context.Context, bookingID uuid.UUID, userID uint) (*models.Consultation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[bookingID]
	if !ok || b.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeRepo) GetBookingByID(ctx context.Context, bookingID uuid.UUID) (*models.Consultation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[bookingID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeRepo) UpdateBooking(ctx context.Context, c *models.Consultation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *c
	f.bookings[c.ID] = &copied
	return nil
}

func (f *fakeRepo) ListBookingsForUser(ctx context.Context, userID uint) ([]models.Consultation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Consultation
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].Time > out[j].Time
	})
	return out, nil
}

func (f *fakeRepo) evaluateLocked(userID uint, window time.Duration, now time.Time) (string, domain.Eligibility) {
	user, ok := f.users[userID]
	if !ok {
		return "", domain.IneligibleNoPhone()
	}
	if user.Phone == nil || *user.Phone == "" {
		return "", domain.IneligibleNoPhone()
	}
	if !user.PhoneVerified {
		return "", domain.IneligibleUnverified()
	}

	phoneNumber := *user.Phone

	// Lowest ID wins, matching a primary-key ordered lookup.
	var owner *models.User
	for _, u := range f.users {
		if u.Phone != nil && *u.Phone == phoneNumber && u.PhoneVerified {
			if owner == nil || u.ID < owner.ID {
				owner = u
			}
		}
	}
	if owner == nil || owner.ID != userID {
		return "", domain.IneligiblePhoneConflict()
	}

	var last *models.ConsultationLog
	for i := range f.claims {
		c := &f.claims[i]
		if c.Phone == phoneNumber && c.CreatedAt.After(now.Add(-window)) {
			if last == nil || c.CreatedAt.After(last.CreatedAt) {
				last = c
			}
		}
	}
	if last != nil {
		return phoneNumber, domain.IneligibleCooldown(last.CreatedAt)
	}

	return phoneNumber, domain.Eligible()
}

func (f *fakeRepo) EvaluateEligibility(ctx context.Context, userID uint, window time.Duration) (domain.Eligibility, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, result := f.evaluateLocked(userID, window, time.Now())
	return result, nil
}

func (f *fakeRepo) ClaimFree(ctx context.Context, userID uint, window time.Duration) (*models.ConsultationLog, domain.Eligibility, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	phoneNumber, result := f.evaluateLocked(userID, window, time.Now())
	if !result.Eligible {
		return nil, result, nil
	}

	row := models.ConsultationLog{
		ID:        uuid.New(),
		UserID:    userID,
		Phone:     phoneNumber,
		CreatedAt: time.Now(),
	}
	f.claims = append(f.claims, row)

	return &row, result, nil
}

func (f *fakeRepo) ListClaimsForUser(ctx context.Context, userID uint) ([]models.ConsultationLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ConsultationLog
	for _, c := range f.claims {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Compile-time check
var _ domain.Repository = (*fakeRepo)(nil)
