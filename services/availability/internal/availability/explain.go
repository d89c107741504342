package availability

import (
	"fmt"
	"strings"
)

// ClosedMessage is the generic explanation attached when nothing at all
// is open for a business.
const ClosedMessage = "Please check back during operating hours."

// NextAvailabilityHint renders a human-readable description of when the
// schedule is next visible. The first matching shape wins: explicit date
// list, date range, daily time window, unrestricted.
func (s *MenuSchedule) NextAvailabilityHint() string {
	name := s.Name
	if name == "" {
		name = "This menu"
	}

	if len(s.ActiveDates) > 0 {
		return fmt.Sprintf("%s is available on %s.", name, strings.Join(s.ActiveDates, ", "))
	}

	switch {
	case s.StartDate != "" && s.EndDate != "":
		return fmt.Sprintf("%s is available from %s to %s.", name, s.StartDate, s.EndDate)
	case s.StartDate != "":
		return fmt.Sprintf("%s is available from %s.", name, s.StartDate)
	case s.EndDate != "":
		return fmt.Sprintf("%s is available until %s.", name, s.EndDate)
	}

	if s.IsTimeRestricted {
		if s.AvailableFrom == "" || s.AvailableTo == "" {
			// Degraded window config has nothing meaningful to promise.
			return ClosedMessage
		}
		return fmt.Sprintf("%s is available daily from %s to %s.", name, s.AvailableFrom, s.AvailableTo)
	}

	return fmt.Sprintf("%s is available at any time.", name)
}
