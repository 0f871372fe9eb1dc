package consultation

import (
	"fmt"
	"time"

	"github.com/nutriplan/consultation-api/internal/models"
)

const DateLayout = "2006-01-02"

type Slot struct {
	ID        string `json:"id"`
	Time      string `json:"time"`
	Available bool   `json:"available"`
	Price     int    `json:"price"`
	IsFirst   bool   `json:"is_first"`
}

type DaySchedule struct {
	Date    string `json:"date"`
	DayName string `json:"day_name"`
	Slots   []Slot `json:"slots"`
}

// Calendar generates the fixed daily slot grid. Hours are inclusive:
// OpenHour 9 and CloseHour 18 yield slots 09:00 through 18:00.
type Calendar struct {
	OpenHour  int
	CloseHour int
}

func NewCalendar(openHour, closeHour int) Calendar {
	return Calendar{OpenHour: openHour, CloseHour: closeHour}
}

func (cal Calendar) SlotTimes() []string {
	times := make([]string, 0, cal.CloseHour-cal.OpenHour+1)
	for hour := cal.OpenHour; hour <= cal.CloseHour; hour++ {
		times = append(times, fmt.Sprintf("%02d:00", hour))
	}
	return times
}

// IsValidSlot rejects times that the grid never generates; arbitrary
// minute values or out-of-window hours are not bookable.
func (cal Calendar) IsValidSlot(slotTime string) bool {
	for _, t := range cal.SlotTimes() {
		if t == slotTime {
			return true
		}
	}
	return false
}

// SlotKey identifies a slot as a global resource.
func SlotKey(date time.Time, slotTime string) string {
	return date.Format(DateLayout) + "-" + slotTime
}

// OccupiedSlots projects active bookings onto slot keys.
func OccupiedSlots(bookings []models.Consultation) map[string]bool {
	occupied := make(map[string]bool, len(bookings))
	for _, b := range bookings {
		if IsActive(Status(b.Status)) {
			occupied[SlotKey(b.Date, b.Time)] = true
		}
	}
	return occupied
}

// DaySchedule builds one day's slot list. Price is a property of the
// requesting user, not of the slot: callers pass the price their
// first-consultation status currently earns.
func (cal Calendar) DaySchedule(
	date time.Time,
	occupied map[string]bool,
	price int,
	isFirst bool,
) DaySchedule {

	dateStr := date.Format(DateLayout)

	slots := make([]Slot, 0, cal.CloseHour-cal.OpenHour+1)
	for _, t := range cal.SlotTimes() {
		slots = append(slots, Slot{
			ID:        dateStr + "-" + t,
			Time:      t,
			Available: !occupied[SlotKey(date, t)],
			Price:     price,
			IsFirst:   isFirst,
		})
	}

	return DaySchedule{
		Date:    dateStr,
		DayName: date.Weekday().String(),
		Slots:   slots,
	}
}
