package consultation

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	domain "github.com/nutriplan/consultation-api/internal/domain/consultation"
	"github.com/nutriplan/consultation-api/internal/httperr"
	"github.com/nutriplan/consultation-api/internal/models"
)

const (
	testFirstPrice    = 1
	testStandardPrice = 1500
)

func newBookUC(repo domain.Repository) *Book {
	cal := domain.NewCalendar(9, 18)
	return NewBook(repo, nil, cal, time.UTC, testFirstPrice, testStandardPrice)
}

// futureDate returns a bookable date n days from now.
func futureDate(n int) string {
	return time.Now().UTC().AddDate(0, 0, n).Format(domain.DateLayout)
}

func TestBookFirstThenStandardPricing(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(models.User{ID: 1, HasConsultation: false})
	uc := newBookUC(repo)

	first, err := uc.Execute(context.Background(), BookInput{
		UserID: 1, Date: futureDate(3), Time: "10:00",
	})
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if !first.IsFirst || first.Price != testFirstPrice {
		t.Fatalf("first booking: isFirst=%v price=%d, want true/%d", first.IsFirst, first.Price, testFirstPrice)
	}

	second, err := uc.Execute(context.Background(), BookInput{
		UserID: 1, Date: futureDate(4), Time: "11:00",
	})
	if err != nil {
		t.Fatalf("second booking: %v", err)
	}
	if second.IsFirst || second.Price != testStandardPrice {
		t.Fatalf("second booking: isFirst=%v price=%d, want false/%d", second.IsFirst, second.Price, testStandardPrice)
	}
}

func TestBookSlotTaken(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(models.User{ID: 1})
	repo.addUser(models.User{ID: 2})
	uc := newBookUC(repo)

	date := futureDate(3)

	if _, err := uc.Execute(context.Background(), BookInput{UserID: 1, Date: date, Time: "10:00"}); err != nil {
		t.Fatalf("booking: %v", err)
	}

	_, err := uc.Execute(context.Background(), BookInput{UserID: 2, Date: date, Time: "10:00"})
	if !httperr.IsBusiness(err, httperr.CodeSlotTaken) {
		t.Fatalf("got %v, want slot_taken", err)
	}
}

func TestBookValidation(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(models.User{ID: 1})
	uc := newBookUC(repo)

	cases := []BookInput{
		{UserID: 1, Date: futureDate(3), Time: "10:30"}, // off-grid minute
		{UserID: 1, Date: futureDate(3), Time: "08:00"}, // before opening
		{UserID: 1, Date: futureDate(3), Time: "19:00"}, // after closing
		{UserID: 1, Date: "not-a-date", Time: "10:00"},
		{UserID: 1, Date: futureDate(-2), Time: "10:00"}, // past date
	}

	for _, in := range cases {
		if _, err := uc.Execute(context.Background(), in); !httperr.IsBusiness(err, httperr.CodeValidationError) {
			t.Errorf("input %+v: got %v, want validation_error", in, err)
		}
	}
}

func TestConcurrentBookingSameSlot(t *testing.T) {
	repo := newFakeRepo()
	const workers = 16
	for i := 1; i <= workers; i++ {
		repo.addUser(models.User{ID: uint(i)})
	}
	uc := newBookUC(repo)

	date := futureDate(5)

	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), BookInput{
				UserID: uint(i + 1), Date: date, Time: "12:00",
			})
		}(i)
	}
	wg.Wait()

	successes, taken := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case httperr.IsBusiness(err, httperr.CodeSlotTaken):
			taken++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if successes != 1 {
		t.Fatalf("%d bookings succeeded for one slot, want exactly 1", successes)
	}
	if taken != workers-1 {
		t.Fatalf("%d slot_taken failures, want %d", taken, workers-1)
	}
}

func TestConcurrentFirstBookingSingleDiscount(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(models.User{ID: 1, HasConsultation: false})
	uc := newBookUC(repo)

	const workers = 8
	date := futureDate(6)

	var wg sync.WaitGroup
	results := make([]*models.Consultation, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			slot := fmt.Sprintf("%02d:00", 9+i)
			booking, err := uc.Execute(context.Background(), BookInput{
				UserID: 1, Date: date, Time: slot,
			})
			if err == nil {
				results[i] = booking
			}
		}(i)
	}
	wg.Wait()

	discounted := 0
	for _, b := range results {
		if b != nil && b.IsFirst {
			discounted++
			if b.Price != testFirstPrice {
				t.Errorf("first booking priced %d, want %d", b.Price, testFirstPrice)
			}
		}
	}

	if discounted != 1 {
		t.Fatalf("%d discounted bookings, want exactly 1", discounted)
	}
}

func TestCancelFreesSlot(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(models.User{ID: 1})
	repo.addUser(models.User{ID: 2})
	bookUC := newBookUC(repo)
	cancelUC := NewCancelBooking(repo, nil, time.UTC)

	date := futureDate(3)

	booking, err := bookUC.Execute(context.Background(), BookInput{UserID: 1, Date: date, Time: "10:00"})
	if err != nil {
		t.Fatalf("booking: %v", err)
	}

	cancelled, err := cancelUC.Execute(context.Background(), 1, booking.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != string(domain.StatusCancelled) {
		t.Fatalf("status = %q", cancelled.Status)
	}

	if _, err := bookUC.Execute(context.Background(), BookInput{UserID: 2, Date: date, Time: "10:00"}); err != nil {
		t.Fatalf("rebooking a freed slot: %v", err)
	}
}

func TestCancelRules(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(models.User{ID: 1})
	repo.addUser(models.User{ID: 2})
	bookUC := newBookUC(repo)
	cancelUC := NewCancelBooking(repo, nil, time.UTC)

	booking, err := bookUC.Execute(context.Background(), BookInput{UserID: 1, Date: futureDate(3), Time: "10:00"})
	if err != nil {
		t.Fatalf("booking: %v", err)
	}

	// Not the owner.
	if _, err := cancelUC.Execute(context.Background(), 2, booking.ID); !httperr.IsBusiness(err, httperr.CodeNotFound) {
		t.Fatalf("foreign cancel: got %v, want not_found", err)
	}

	// Completed is terminal.
	booking.Status = string(domain.StatusCompleted)
	if err := repo.UpdateBooking(context.Background(), booking); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := cancelUC.Execute(context.Background(), 1, booking.ID); !httperr.IsBusiness(err, httperr.CodeInvalidState) {
		t.Fatalf("cancel completed: got %v, want invalid_state", err)
	}
}

func TestListMyBookingsOrder(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(models.User{ID: 1})
	bookUC := newBookUC(repo)
	listUC := NewListMyBookings(repo)

	early := futureDate(2)
	late := futureDate(9)

	if _, err := bookUC.Execute(context.Background(), BookInput{UserID: 1, Date: early, Time: "10:00"}); err != nil {
		t.Fatalf("booking: %v", err)
	}
	if _, err := bookUC.Execute(context.Background(), BookInput{UserID: 1, Date: late, Time: "11:00"}); err != nil {
		t.Fatalf("booking: %v", err)
	}

	out, err := listUC.Execute(context.Background(), 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d bookings, want 2", len(out))
	}
	if out[0].Date != late || out[1].Date != early {
		t.Fatalf("not ordered by date descending: %s, %s", out[0].Date, out[1].Date)
	}
}

func TestGetScheduleReflectsBookingsAndPricing(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(models.User{ID: 1, HasConsultation: false})
	repo.addUser(models.User{ID: 2, HasConsultation: true})

	cal := domain.NewCalendar(9, 18)
	bookUC := newBookUC(repo)
	scheduleUC := NewGetSchedule(repo, cal, time.UTC, testFirstPrice, testStandardPrice)

	if _, err := bookUC.Execute(context.Background(), BookInput{UserID: 2, Date: futureDate(1), Time: "10:00"}); err != nil {
		t.Fatalf("booking: %v", err)
	}

	result, err := scheduleUC.Execute(context.Background(), 1, 3)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if len(result.Schedule) != 3 {
		t.Fatalf("got %d days, want 3", len(result.Schedule))
	}
	if result.HasConsultation {
		t.Error("new user reported as having consulted")
	}

	day := result.Schedule[1]
	for _, slot := range day.Slots {
		if slot.Price != testFirstPrice || !slot.IsFirst {
			t.Fatalf("slot %s priced %d for a new user, want %d", slot.Time, slot.Price, testFirstPrice)
		}
		wantAvailable := slot.Time != "10:00"
		if slot.Available != wantAvailable {
			t.Errorf("slot %s: available=%v, want %v", slot.Time, slot.Available, wantAvailable)
		}
	}

	// The returning user sees standard pricing on the same grid.
	result2, err := scheduleUC.Execute(context.Background(), 2, 1)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if got := result2.Schedule[0].Slots[0].Price; got != testStandardPrice {
		t.Fatalf("returning user sees price %d, want %d", got, testStandardPrice)
	}
}
