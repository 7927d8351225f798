// Package scheduling holds the working-hours calendar and the rules that
// decide which slots are bookable and whether a proposed appointment
// collides with an existing one.
package scheduling

import (
	"fmt"
	"time"

	"spa-booking-server/internal/models"
)

// Calendar is the fixed ordered set of permissible start times per day.
// It is process-wide configuration, not persisted per client.
type Calendar struct {
	slots []timeOfDay
}

type timeOfDay struct {
	hour   int
	minute int
}

// NewCalendar parses working hours given as "HH:MM" strings, e.g.
// ["08:00", "10:00", "12:00"]. Entries must be valid and ascending.
func NewCalendar(hours []string) (Calendar, error) {
	if len(hours) == 0 {
		return Calendar{}, fmt.Errorf("working hours: empty calendar")
	}
	slots := make([]timeOfDay, 0, len(hours))
	for _, h := range hours {
		var tod timeOfDay
		if _, err := fmt.Sscanf(h, "%d:%d", &tod.hour, &tod.minute); err != nil {
			return Calendar{}, fmt.Errorf("working hours: cannot parse %q: %w", h, err)
		}
		if tod.hour < 0 || tod.hour > 23 || tod.minute < 0 || tod.minute > 59 {
			return Calendar{}, fmt.Errorf("working hours: %q out of range", h)
		}
		if n := len(slots); n > 0 {
			prev := slots[n-1]
			if tod.hour < prev.hour || (tod.hour == prev.hour && tod.minute <= prev.minute) {
				return Calendar{}, fmt.Errorf("working hours: %q not ascending", h)
			}
		}
		slots = append(slots, tod)
	}
	return Calendar{slots: slots}, nil
}

// Slots materializes every working-hour start time on the given date,
// in the date's location.
func (c Calendar) Slots(date time.Time) []time.Time {
	year, month, day := date.Date()
	slots := make([]time.Time, 0, len(c.slots))
	for _, tod := range c.slots {
		slots = append(slots, time.Date(year, month, day, tod.hour, tod.minute, 0, 0, date.Location()))
	}
	return slots
}

// AvailableSlots returns the working-hour slots on date that are still
// bookable given the appointments already booked that day.
//
// A slot is hidden only when a non-cancelled appointment starts at exactly
// that time. Exclusion is deliberately not duration-aware: a slot stays
// hidden even if the appointment occupying it would have ended earlier, and
// a slot stays visible when a longer appointment merely runs over it.
// HasConflict is the duration-aware check applied at booking time.
func (c Calendar) AvailableSlots(date time.Time, booked []models.Appointment) []time.Time {
	available := make([]time.Time, 0, len(c.slots))
	for _, slot := range c.Slots(date) {
		taken := false
		for i := range booked {
			if booked[i].IsCancelled() {
				continue
			}
			if booked[i].StartTime.Equal(slot) {
				taken = true
				break
			}
		}
		if !taken {
			available = append(available, slot)
		}
	}
	return available
}

// Candidate is a proposed appointment before it is persisted.
type Candidate struct {
	ClientID  string
	Treatment string
	Duration  int // minutes
	StartTime time.Time
	Payment   models.PaymentStatus
}

// Interval returns the half-open [start, end) interval the candidate
// would occupy, with end = start + duration.
func (c Candidate) Interval() (time.Time, time.Time) {
	return c.StartTime, c.StartTime.Add(time.Duration(c.Duration) * time.Minute)
}

// HasConflict reports whether the candidate's interval overlaps any
// non-cancelled existing appointment. Overlap is strict half-open:
// candidateStart < apptEnd && candidateEnd > apptStart, so back-to-back
// appointments do not collide.
func HasConflict(candidate Candidate, existing []models.Appointment) bool {
	start, end := candidate.Interval()
	for i := range existing {
		if existing[i].IsCancelled() {
			continue
		}
		apptStart, apptEnd := existing[i].Interval()
		if start.Before(apptEnd) && end.After(apptStart) {
			return true
		}
	}
	return false
}
