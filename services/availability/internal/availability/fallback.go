package availability

import "sort"

// Outcome is the terminal state of a single resolution pass.
type Outcome string

const (
	OutcomeAvailable      Outcome = "available"
	OutcomeFallback       Outcome = "fallback"
	OutcomeLocationClosed Outcome = "location_closed"
	OutcomeNoneAvailable  Outcome = "none_available"
)

// Resolution is the result of one deterministic resolution pass.
type Resolution struct {
	Outcome           Outcome         `json:"outcome"`
	Schedule          *MenuSchedule   `json:"schedule,omitempty"`  // resolved menu, nil on closed outcomes
	Requested         *MenuSchedule   `json:"requested,omitempty"` // nil for business-level lookups
	Explanation       string          `json:"explanation,omitempty"`
	AvailableSiblings []*MenuSchedule `json:"available_siblings,omitempty"`
	Timezone          string          `json:"timezone,omitempty"` // IANA zone the pass was evaluated in, "" for UTC fallback
}

// fallbackStep inspects one rung of the escalation ladder. A nil result
// means the step does not apply and the next one runs.
type fallbackStep func(requested *MenuSchedule, siblings []*MenuSchedule, at LocalTime) *Resolution

var fallbackSteps = []fallbackStep{
	sameLocationStep,
	locationClosedStep,
	generalLocationStep,
	noneAvailableStep,
}

// ResolveFallback decides what to show when a specific menu was
// requested. If the requested schedule is open it wins outright;
// otherwise the escalation steps run in order until one yields a
// terminal outcome. The pass is purely a function of its inputs.
func ResolveFallback(requested *MenuSchedule, siblings []*MenuSchedule, at LocalTime) *Resolution {
	if requested.AvailableAt(at) {
		return &Resolution{Outcome: OutcomeAvailable, Schedule: requested, Requested: requested}
	}

	for _, step := range fallbackSteps {
		if r := step(requested, siblings, at); r != nil {
			return r
		}
	}

	// noneAvailableStep always terminates; not reached.
	return &Resolution{Outcome: OutcomeNoneAvailable, Requested: requested}
}

// sameLocationStep substitutes an open sibling from the requested
// schedule's own fallback pool, never the requested schedule itself.
func sameLocationStep(requested *MenuSchedule, siblings []*MenuSchedule, at LocalTime) *Resolution {
	var candidates []*MenuSchedule
	for _, sib := range siblings {
		if sib.ID == requested.ID {
			continue
		}
		if sib.Location == requested.Location {
			candidates = append(candidates, sib)
		}
	}

	if found := firstAvailable(candidates, at); found != nil {
		return &Resolution{Outcome: OutcomeFallback, Schedule: found, Requested: requested}
	}
	return nil
}

// locationClosedStep treats a time-restricted sub-service with no open
// sibling in its own pool as a hard closure. It deliberately stops the
// search before other locations so a closed dinner-only bar menu is
// never silently swapped for an unrelated lunch menu.
func locationClosedStep(requested *MenuSchedule, _ []*MenuSchedule, _ LocalTime) *Resolution {
	if requested.IsTimeRestricted && requested.Location != LocationGeneral {
		return &Resolution{Outcome: OutcomeLocationClosed, Requested: requested}
	}
	return nil
}

// generalLocationStep lets a non-time-restricted tagged menu fall back
// to the business's general pool.
func generalLocationStep(requested *MenuSchedule, siblings []*MenuSchedule, at LocalTime) *Resolution {
	if requested.IsTimeRestricted || requested.Location == LocationGeneral {
		return nil
	}

	var candidates []*MenuSchedule
	for _, sib := range siblings {
		if sib.ID == requested.ID {
			continue
		}
		if sib.Location == LocationGeneral {
			candidates = append(candidates, sib)
		}
	}

	if found := firstAvailable(candidates, at); found != nil {
		return &Resolution{Outcome: OutcomeFallback, Schedule: found, Requested: requested}
	}
	return nil
}

func noneAvailableStep(requested *MenuSchedule, _ []*MenuSchedule, _ LocalTime) *Resolution {
	return &Resolution{Outcome: OutcomeNoneAvailable, Requested: requested}
}

// ResolveBest decides what to show when no specific menu was requested:
// the best currently open schedule across every location, or closure.
// Note the asymmetry with ResolveFallback: a closed top-priority tagged
// schedule does not escalate into the general pool here.
func ResolveBest(schedules []*MenuSchedule, at LocalTime) *Resolution {
	ordered := append([]*MenuSchedule(nil), schedules...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Priority != ordered[j].Priority {
			return ordered[i].Priority > ordered[j].Priority
		}
		if ordered[i].IsTimeRestricted != ordered[j].IsTimeRestricted {
			return !ordered[i].IsTimeRestricted
		}
		return ordered[i].DisplayOrder < ordered[j].DisplayOrder
	})

	for _, s := range ordered {
		if s.AvailableAt(at) {
			return &Resolution{Outcome: OutcomeAvailable, Schedule: s}
		}
	}
	return &Resolution{Outcome: OutcomeNoneAvailable}
}

// firstAvailable returns the open candidate that wins on priority, with
// display order as the deterministic tie-break.
func firstAvailable(candidates []*MenuSchedule, at LocalTime) *MenuSchedule {
	ordered := append([]*MenuSchedule(nil), candidates...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Priority != ordered[j].Priority {
			return ordered[i].Priority > ordered[j].Priority
		}
		return ordered[i].DisplayOrder < ordered[j].DisplayOrder
	})

	for _, c := range ordered {
		if c.AvailableAt(at) {
			return c
		}
	}
	return nil
}

// CurrentlyAvailable filters a snapshot down to the schedules open right
// now, in business-level presentation order.
func CurrentlyAvailable(schedules []*MenuSchedule, at LocalTime) []*MenuSchedule {
	var open []*MenuSchedule
	for _, s := range schedules {
		if s.AvailableAt(at) {
			open = append(open, s)
		}
	}
	sort.SliceStable(open, func(i, j int) bool {
		if open[i].Priority != open[j].Priority {
			return open[i].Priority > open[j].Priority
		}
		if open[i].IsTimeRestricted != open[j].IsTimeRestricted {
			return !open[i].IsTimeRestricted
		}
		return open[i].DisplayOrder < open[j].DisplayOrder
	})
	return open
}
