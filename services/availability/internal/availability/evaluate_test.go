package availability

import "testing"

func TestAvailableAtUnrestricted(t *testing.T) {
	s := testSchedule("all-day", LocationGeneral, false, "", "", 0, 0)

	// Any time of day passes once the date check does.
	for _, minute := range []int{0, 6 * 60, 12*60 + 30, 23*60 + 59} {
		at := LocalTime{Date: "2026-03-10", Weekday: 2, MinuteOfDay: minute}
		if !s.AvailableAt(at) {
			t.Errorf("AvailableAt(minute=%d) = false, want true", minute)
		}
	}
}

func TestAvailableAtDailyWindow(t *testing.T) {
	tests := []struct {
		name   string
		hour   int
		minute int
		want   bool
	}{
		{name: "beforeOpen", hour: 5, minute: 59, want: false},
		{name: "atOpen", hour: 6, minute: 0, want: true},
		{name: "midWindow", hour: 9, minute: 30, want: true},
		{name: "atClose", hour: 11, minute: 0, want: true},
		{name: "afterClose", hour: 11, minute: 1, want: false},
	}

	s := testSchedule("breakfast", "breakfast", true, "06:00", "11:00", 0, 0)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			at := localAt("2026-03-10", 2, tt.hour, tt.minute)
			if got := s.AvailableAt(at); got != tt.want {
				t.Errorf("AvailableAt(%02d:%02d) = %v, want %v", tt.hour, tt.minute, got, tt.want)
			}
		})
	}
}

func TestAvailableAtOvernightWindow(t *testing.T) {
	tests := []struct {
		name   string
		hour   int
		minute int
		want   bool
	}{
		{name: "lateEvening", hour: 23, minute: 0, want: true},
		{name: "pastMidnight", hour: 1, minute: 0, want: true},
		{name: "atWrapClose", hour: 2, minute: 0, want: true},
		{name: "midMorning", hour: 10, minute: 0, want: false},
		{name: "justBeforeOpen", hour: 21, minute: 59, want: false},
	}

	s := testSchedule("night-bar", "bar", true, "22:00", "02:00", 0, 0)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			at := localAt("2026-03-10", 2, tt.hour, tt.minute)
			if got := s.AvailableAt(at); got != tt.want {
				t.Errorf("AvailableAt(%02d:%02d) = %v, want %v", tt.hour, tt.minute, got, tt.want)
			}
		})
	}
}

func TestAvailableAtWeekdayFilter(t *testing.T) {
	s := testSchedule("weekend-brunch", "brunch", true, "10:00", "14:00", 0, 0)
	s.DaysOfWeek = []int{0, 6} // Sunday and Saturday only

	if !s.AvailableAt(localAt("2026-03-08", 0, 11, 0)) {
		t.Error("AvailableAt(Sunday) = false, want true")
	}
	if s.AvailableAt(localAt("2026-03-09", 1, 11, 0)) {
		t.Error("AvailableAt(Monday) = true, want false")
	}
}

func TestAvailableAtActiveDatesOverrideRange(t *testing.T) {
	s := testSchedule("christmas", LocationGeneral, false, "", "", 0, 0)
	s.StartDate = "2025-12-01"
	s.EndDate = "2025-12-31"
	s.ActiveDates = []string{"2025-12-25"}

	at := LocalTime{Date: "2025-12-25", Weekday: 4, MinuteOfDay: 600}
	if !s.AvailableAt(at) {
		t.Error("AvailableAt(listed date) = false, want true")
	}

	// Inside the configured range but not on the allow-list.
	at.Date = "2025-12-24"
	if s.AvailableAt(at) {
		t.Error("AvailableAt(unlisted date inside range) = true, want false")
	}
}

func TestAvailableAtDateRange(t *testing.T) {
	tests := []struct {
		name      string
		startDate string
		endDate   string
		date      string
		want      bool
	}{
		{name: "insideRange", startDate: "2026-06-01", endDate: "2026-08-31", date: "2026-07-15", want: true},
		{name: "startInclusive", startDate: "2026-06-01", endDate: "2026-08-31", date: "2026-06-01", want: true},
		{name: "endInclusive", startDate: "2026-06-01", endDate: "2026-08-31", date: "2026-08-31", want: true},
		{name: "beforeStart", startDate: "2026-06-01", endDate: "2026-08-31", date: "2026-05-31", want: false},
		{name: "afterEnd", startDate: "2026-06-01", endDate: "2026-08-31", date: "2026-09-01", want: false},
		{name: "openEndedStart", startDate: "", endDate: "2026-08-31", date: "2020-01-01", want: true},
		{name: "openEndedEnd", startDate: "2026-06-01", endDate: "", date: "2030-01-01", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSchedule("seasonal", LocationGeneral, false, "", "", 0, 0)
			s.StartDate = tt.startDate
			s.EndDate = tt.endDate

			at := LocalTime{Date: tt.date, Weekday: 1, MinuteOfDay: 600}
			if got := s.AvailableAt(at); got != tt.want {
				t.Errorf("AvailableAt(%s) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestAvailableAtDegradedWindowConfig(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
	}{
		{name: "missingFrom", from: "", to: "11:00"},
		{name: "missingTo", from: "06:00", to: ""},
		{name: "missingBoth", from: "", to: ""},
		{name: "garbageFrom", from: "not-a-time", to: "11:00"},
		{name: "hourOutOfRange", from: "25:00", to: "11:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSchedule("broken", "breakfast", true, tt.from, tt.to, 0, 0)
			if s.AvailableAt(localAt("2026-03-10", 2, 9, 0)) {
				t.Error("AvailableAt() = true for degraded window config, want false")
			}
		})
	}
}

func TestAvailableAtFailedDateCheckSkipsTimeLogic(t *testing.T) {
	// Even a wide-open window never applies on a filtered-out date.
	s := testSchedule("expired", "breakfast", true, "00:00", "23:59", 0, 0)
	s.EndDate = "2025-01-01"

	if s.AvailableAt(localAt("2026-03-10", 2, 12, 0)) {
		t.Error("AvailableAt() = true past end date, want false")
	}
}

func TestMinuteOfDay(t *testing.T) {
	tests := []struct {
		name  string
		clock string
		want  int
		ok    bool
	}{
		{name: "plainHourMinute", clock: "06:30", want: 390, ok: true},
		{name: "withSeconds", clock: "22:00:00", want: 1320, ok: true},
		{name: "midnight", clock: "00:00", want: 0, ok: true},
		{name: "empty", clock: "", ok: false},
		{name: "noSeparator", clock: "0630", ok: false},
		{name: "minuteOutOfRange", clock: "10:75", ok: false},
		{name: "negativeHour", clock: "-1:00", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := minuteOfDay(tt.clock)
			if ok != tt.ok {
				t.Fatalf("minuteOfDay(%q) ok = %v, want %v", tt.clock, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("minuteOfDay(%q) = %d, want %d", tt.clock, got, tt.want)
			}
		})
	}
}
