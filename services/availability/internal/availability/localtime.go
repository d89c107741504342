package availability

import "time"

// DateLayout is the calendar-date wire format used across schedule
// records. ISO dates compare correctly as plain strings, which the date
// checks rely on.
const DateLayout = "2006-01-02"

// LocalTime is the wall-clock tuple an instant resolves to in a
// business's time zone.
type LocalTime struct {
	Date        string // "2006-01-02"
	Weekday     int    // 0=Sunday, 6=Saturday
	MinuteOfDay int    // minutes since local midnight
}

// ResolveLocalTime converts an absolute instant to the wall clock of the
// given IANA zone. An empty or unrecognized zone resolves against UTC;
// the caller is never failed over a bad timezone record.
func ResolveLocalTime(instant time.Time, timezone string) LocalTime {
	loc := time.UTC
	if timezone != "" {
		if l, err := time.LoadLocation(timezone); err == nil {
			loc = l
		}
	}

	local := instant.In(loc)
	return LocalTime{
		Date:        local.Format(DateLayout),
		Weekday:     int(local.Weekday()),
		MinuteOfDay: local.Hour()*60 + local.Minute(),
	}
}
