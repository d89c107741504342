package event

import "time"

const (
	// MenuResolutionsTopic delivers one event per customer-facing menu
	// resolution. The analytics service consumes this feed.
	MenuResolutionsTopic = "availability.resolutions"
	// MenuSchedulesTopic delivers schedule mutations from the publishing
	// CRUD layer so read-side caches can invalidate.
	MenuSchedulesTopic = "menu.schedules"

	EventMenuResolved    = "availability.menu.resolved"
	EventScheduleChanged = "menu.schedule.changed"
)

// MenuResolvedEvent records the outcome of a single menu resolution.
type MenuResolvedEvent struct {
	EventType     string    `json:"event_type"`
	OccurredAt    time.Time `json:"occurred_at"`
	BusinessID    string    `json:"business_id"`
	RequestedSlug string    `json:"requested_slug,omitempty"`
	ResolvedID    string    `json:"resolved_id,omitempty"`
	ResolvedSlug  string    `json:"resolved_slug,omitempty"`
	Outcome       string    `json:"outcome"`
	Timezone      string    `json:"timezone,omitempty"`
}

// ScheduleChangedEvent signals that a business's schedule set was
// created, updated or deleted by the publishing layer.
type ScheduleChangedEvent struct {
	EventType  string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`
	BusinessID string    `json:"business_id"`
	ScheduleID string    `json:"schedule_id,omitempty"`
	Action     string    `json:"action,omitempty"`
}
