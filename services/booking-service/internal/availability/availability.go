// Package availability resolves a ground's weekly slot template against
// its active bookings into the free slots for the coming days.
package availability

import (
	"sort"
	"strings"
	"time"

	"github.com/farhanms/playfield/common/models"
)

const DefaultWindowDays = 7

// Window returns the calendar dates of the booking window, today
// inclusive, in ascending order.
func Window(today time.Time, days int) []string {
	if days <= 0 {
		days = DefaultWindowDays
	}

	dates := make([]string, 0, days)
	for i := 0; i < days; i++ {
		dates = append(dates, today.AddDate(0, 0, i).Format(models.BookingDateLayout))
	}
	return dates
}

// Resolve computes the free slots per date for the window starting at
// today. A slot is taken when a pending or confirmed booking exists for
// that exact (date, slot label) pair; labels are opaque strings and are
// never normalized. Slot order follows the template. Dates with no free
// slots are omitted.
func Resolve(template models.WeeklyTemplate, bookings []models.Booking, today time.Time, windowDays int) map[string][]string {
	booked := make(map[string]map[string]struct{})
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if booked[b.Date] == nil {
			booked[b.Date] = make(map[string]struct{})
		}
		booked[b.Date][b.TimeSlot] = struct{}{}
	}

	result := make(map[string][]string)
	for i, date := range Window(today, windowDays) {
		weekday := today.AddDate(0, 0, i).Weekday().String()

		slots := template[weekday]
		if len(slots) == 0 {
			continue
		}

		free := make([]string, 0, len(slots))
		for _, slot := range slots {
			if _, taken := booked[date][slot]; taken {
				continue
			}
			free = append(free, slot)
		}

		if len(free) > 0 {
			result[date] = free
		}
	}

	return result
}

// AddSlot inserts a slot label into a weekday's template list, keeping
// the list sorted by parsed start time. Duplicates are ignored.
func AddSlot(template models.WeeklyTemplate, weekday, slot string) models.WeeklyTemplate {
	if template == nil {
		template = make(models.WeeklyTemplate)
	}

	for _, existing := range template[weekday] {
		if existing == slot {
			return template
		}
	}

	slots := append([]string{}, template[weekday]...)
	slots = append(slots, slot)
	sort.SliceStable(slots, func(i, j int) bool {
		return slotStart(slots[i]).Before(slotStart(slots[j]))
	})

	template[weekday] = slots
	return template
}

// RemoveSlot removes a slot label from a weekday's template list. A
// weekday left empty is dropped from the template.
func RemoveSlot(template models.WeeklyTemplate, weekday, slot string) models.WeeklyTemplate {
	slots := template[weekday]
	kept := make([]string, 0, len(slots))
	for _, existing := range slots {
		if existing != slot {
			kept = append(kept, existing)
		}
	}

	if len(kept) == 0 {
		delete(template, weekday)
	} else {
		template[weekday] = kept
	}
	return template
}

// slotStart parses the leading clock time of a slot label such as
// "9:00 AM-11:00 AM". Labels that do not parse sort to the end, between
// themselves by a stable order.
func slotStart(slot string) time.Time {
	start, _, found := strings.Cut(slot, "-")
	if !found {
		start = slot
	}

	t, err := time.Parse("3:04 PM", strings.TrimSpace(start))
	if err != nil {
		return time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return t
}
