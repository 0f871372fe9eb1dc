package phone

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/nutriplan/consultation-api/internal/domain/phone"
	"github.com/nutriplan/consultation-api/internal/httperr"
	"github.com/nutriplan/consultation-api/internal/models"
)

// fakeRepo is an in-memory Repository with the same transactional
// semantics as the gorm implementation: SetPhone and
// ConsumeVerification each run under one lock.
type fakeRepo struct {
	mu      sync.Mutex
	users   map[uint]*models.User
	records map[uuid.UUID]*models.PhoneVerification
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:   make(map[uint]*models.User),
		records: make(map[uuid.UUID]*models.PhoneVerification),
	}
}

func (f *fakeRepo) addUser(u models.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user := u
	f.users[u.ID] = &user
}

func (f *fakeRepo) recordCount(userID uint) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.records {
		if r.UserID == userID {
			n++
		}
	}
	return n
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

func (f *fakeRepo) IsPhoneVerifiedByOther(ctx context.Context, phoneNumber string, userID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.verifiedByOtherLocked(phoneNumber, userID), nil
}

func (f *fakeRepo) verifiedByOtherLocked(phoneNumber string, userID uint) bool {
	for _, u := range f.users {
		if u.ID != userID && u.Phone != nil && *u.Phone == phoneNumber && u.PhoneVerified {
			return true
		}
	}
	return false
}

func (f *fakeRepo) SetPhone(ctx context.Context, userID uint, phoneNumber string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Phone = &phoneNumber
	u.PhoneVerified = false
	u.PhoneVerifiedAt = nil
	f.deleteUnconsumedLocked(userID, uuid.Nil)
	return nil
}

func (f *fakeRepo) deleteUnconsumedLocked(userID uint, keep uuid.UUID) {
	for id, r := range f.records {
		if r.UserID == userID && !r.Verified && id != keep {
			delete(f.records, id)
		}
	}
}

func (f *fakeRepo) DeleteUnconsumedVerifications(ctx context.Context, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteUnconsumedLocked(userID, uuid.Nil)
	return nil
}

func (f *fakeRepo) CreateVerification(ctx context.Context, v *models.PhoneVerification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}
	copied := *v
	f.records[v.ID] = &copied
	return nil
}

func (f *fakeRepo) ListLiveVerifications(ctx context.Context, userID uint, now time.Time) ([]models.PhoneVerification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.PhoneVerification
	for _, r := range f.records {
		if r.UserID == userID && !r.Verified && r.ExpiresAt.After(now) {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeRepo) CountExpiredUnconsumed(ctx context.Context, userID uint, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, r := range f.records {
		if r.UserID == userID && !r.Verified && !r.ExpiresAt.After(now) {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) ConsumeVerification(ctx context.Context, verificationID uuid.UUID, userID uint, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	record, ok := f.records[verificationID]
	if !ok || record.UserID != userID || record.Verified {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}

	user, ok := f.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if user.Phone == nil || *user.Phone != record.Phone {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	if user.PhoneVerified {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	if f.verifiedByOtherLocked(record.Phone, userID) {
		return httperr.ErrBusiness(httperr.CodeConflict)
	}

	record.Verified = true
	user.PhoneVerified = true
	user.PhoneVerifiedAt = &now
	f.deleteUnconsumedLocked(userID, verificationID)
	return nil
}

// Compile-time check
var _ domain.Repository = (*fakeRepo)(nil)

// fakeSender captures dispatched codes instead of sending them.
type fakeSender struct {
	mu    sync.Mutex
	codes []string
	fail  error
}

func (s *fakeSender) Send(ctx context.Context, phone, code string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return "", s.fail
	}
	s.codes = append(s.codes, code)
	return "fake_sms_id", nil
}

func (s *fakeSender) lastCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.codes) == 0 {
		return ""
	}
	return s.codes[len(s.codes)-1]
}
