package availability

import (
	"strconv"
	"strings"
)

// AvailableAt reports whether the schedule is visible at the given local
// wall-clock tuple. Pure and total: misconfigured schedules evaluate to
// unavailable rather than erroring.
func (s *MenuSchedule) AvailableAt(at LocalTime) bool {
	if !s.dateAllows(at.Date) {
		return false
	}
	if !s.IsTimeRestricted {
		return true
	}

	// A time-restricted schedule without a complete window is degraded
	// config: never available, never an error.
	from, ok := minuteOfDay(s.AvailableFrom)
	if !ok {
		return false
	}
	to, ok := minuteOfDay(s.AvailableTo)
	if !ok {
		return false
	}

	if !s.openOnWeekday(at.Weekday) {
		return false
	}

	if to < from {
		// Window wraps past midnight, e.g. 22:00-02:00.
		return at.MinuteOfDay >= from || at.MinuteOfDay <= to
	}
	return at.MinuteOfDay >= from && at.MinuteOfDay <= to
}

// dateAllows applies the calendar filter. A non-empty active-dates list
// replaces the start/end range entirely; otherwise the range applies
// with either bound open-ended.
func (s *MenuSchedule) dateAllows(date string) bool {
	if len(s.ActiveDates) > 0 {
		for _, d := range s.ActiveDates {
			if d == date {
				return true
			}
		}
		return false
	}

	if s.StartDate != "" && date < s.StartDate {
		return false
	}
	if s.EndDate != "" && date > s.EndDate {
		return false
	}
	return true
}

func (s *MenuSchedule) openOnWeekday(weekday int) bool {
	for _, d := range s.DaysOfWeek {
		if d == weekday {
			return true
		}
	}
	// Unnormalized records keep the all-days default.
	return len(s.DaysOfWeek) == 0
}

// minuteOfDay parses "HH:MM" (an ":SS" suffix is tolerated and ignored)
// into minutes since midnight.
func minuteOfDay(clock string) (int, bool) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, false
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}

	return hour*60 + minute, true
}
