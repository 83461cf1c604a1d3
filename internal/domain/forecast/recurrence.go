package forecast

import (
	"time"
)

// RecurrenceSchedule is a pure, finite generator of payment dates for a
// recurring expense: walk calendar months from the month of Today through
// the horizon end, clamp the anchor day to each month's length, and keep
// dates that fall inside [Today, HorizonEnd] on a month offset that is a
// multiple of PeriodMonths.
type RecurrenceSchedule struct {
	Today        time.Time
	HorizonEnd   time.Time
	PeriodMonths int
	AnchorDay    int
}

// Dates materializes the schedule. The result is empty when the period is
// not positive or the horizon is behind today.
func (s RecurrenceSchedule) Dates() []time.Time {
	if s.PeriodMonths <= 0 || s.HorizonEnd.Before(s.Today) {
		return nil
	}

	var dates []time.Time
	year, month := s.Today.Year(), s.Today.Month()
	for offset := 0; ; offset++ {
		first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, offset, 0)
		if first.After(s.HorizonEnd) {
			break
		}
		if offset%s.PeriodMonths != 0 {
			continue
		}
		candidate := clampToMonth(first, s.AnchorDay)
		if candidate.Before(s.Today) || candidate.After(s.HorizonEnd) {
			continue
		}
		dates = append(dates, candidate)
	}
	return dates
}

// clampToMonth returns the anchor day within the month of first, clamped
// to the month's last day (payment day 31 in February becomes Feb 28/29)
func clampToMonth(first time.Time, anchorDay int) time.Time {
	if anchorDay < 1 {
		anchorDay = 1
	}
	lastDay := first.AddDate(0, 1, -1).Day()
	if anchorDay > lastDay {
		anchorDay = lastDay
	}
	return time.Date(first.Year(), first.Month(), anchorDay, 0, 0, 0, 0, time.UTC)
}

// lastOfMonth returns the final day of the month containing t
func lastOfMonth(t time.Time) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1)
}

// isWeekend reports whether t falls on a Saturday or Sunday
func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
