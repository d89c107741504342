package availability

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

const CurrentScheduleSchemaVersion = 1

// LocationGeneral is the fallback pool every untagged schedule belongs to.
const LocationGeneral = "general"

// MenuSchedule describes when a published menu is visible to customers.
// The publishing CRUD layer owns these records; this service only reads
// per-call snapshots of them.
type MenuSchedule struct {
	ID               uuid.UUID `json:"id" bson:"_id"`
	BusinessID       uuid.UUID `json:"business_id" bson:"business_id"`
	Name             string    `json:"name" bson:"name"`
	Slug             string    `json:"slug" bson:"slug"`
	Location         string    `json:"location" bson:"location"`                       // Fallback pool tag, "general" when untagged
	IsTimeRestricted bool      `json:"is_time_restricted" bson:"is_time_restricted"`   // Daily window + weekday set apply
	AvailableFrom    string    `json:"available_from,omitempty" bson:"available_from"` // "HH:MM" or "HH:MM:SS"
	AvailableTo      string    `json:"available_to,omitempty" bson:"available_to"`
	DaysOfWeek       []int     `json:"days_of_week,omitempty" bson:"days_of_week"` // 0=Sunday, 6=Saturday; empty = every day
	StartDate        string    `json:"start_date,omitempty" bson:"start_date"`     // "2006-01-02", inclusive
	EndDate          string    `json:"end_date,omitempty" bson:"end_date"`         // "2006-01-02", inclusive
	ActiveDates      []string  `json:"active_dates,omitempty" bson:"active_dates"` // Exact-date allow-list, replaces the range check
	Priority         int       `json:"priority" bson:"priority"`
	DisplayOrder     int       `json:"display_order" bson:"display_order"`
	Active           bool      `json:"active" bson:"active"`
	SchemaVersion    int       `json:"schema_version" bson:"schema_version"`
	CreatedAt        time.Time `json:"created_at" bson:"created_at"`
	CreatedBy        string    `json:"created_by" bson:"created_by"`
	UpdatedAt        time.Time `json:"updated_at" bson:"updated_at"`
	UpdatedBy        string    `json:"updated_by" bson:"updated_by"`
}

var allWeekdays = []int{0, 1, 2, 3, 4, 5, 6}

// Normalize makes the implicit defaults explicit so evaluation never has
// to re-check for emptiness: untagged schedules join the "general" pool
// and an absent weekday set means every day. Repositories call this on
// every load.
func (s *MenuSchedule) Normalize() {
	if strings.TrimSpace(s.Location) == "" {
		s.Location = LocationGeneral
	}
	if len(s.DaysOfWeek) == 0 {
		s.DaysOfWeek = append([]int(nil), allWeekdays...)
	}
}

// EnsureID generates a new UUID if ID is nil
func (s *MenuSchedule) EnsureID() {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
}

// GetID returns the schedule ID
func (s *MenuSchedule) GetID() uuid.UUID {
	return s.ID
}

// ResourceType returns the resource type for URL generation
func (s *MenuSchedule) ResourceType() string {
	return "availability/schedule"
}

// BeforeCreate sets up the schedule before creation
func (s *MenuSchedule) BeforeCreate() {
	s.EnsureID()
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now
	if s.SchemaVersion == 0 {
		s.SchemaVersion = CurrentScheduleSchemaVersion
	}
	s.Normalize()
}

// BeforeUpdate updates the timestamp
func (s *MenuSchedule) BeforeUpdate() {
	s.UpdatedAt = time.Now()
	s.Normalize()
}

// MarshalBSON custom BSON marshaling for UUID handling
func (s *MenuSchedule) MarshalBSON() ([]byte, error) {
	return bson.Marshal(bson.M{
		"_id":                s.ID.String(),
		"business_id":        s.BusinessID.String(),
		"name":               s.Name,
		"slug":               s.Slug,
		"location":           s.Location,
		"is_time_restricted": s.IsTimeRestricted,
		"available_from":     s.AvailableFrom,
		"available_to":       s.AvailableTo,
		"days_of_week":       s.DaysOfWeek,
		"start_date":         s.StartDate,
		"end_date":           s.EndDate,
		"active_dates":       s.ActiveDates,
		"priority":           s.Priority,
		"display_order":      s.DisplayOrder,
		"active":             s.Active,
		"schema_version":     s.SchemaVersion,
		"created_at":         s.CreatedAt,
		"created_by":         s.CreatedBy,
		"updated_at":         s.UpdatedAt,
		"updated_by":         s.UpdatedBy,
	})
}

// UnmarshalBSON custom BSON unmarshaling for UUID handling
func (s *MenuSchedule) UnmarshalBSON(data []byte) error {
	var doc bson.M
	if err := bson.Unmarshal(data, &doc); err != nil {
		return err
	}

	if idStr, ok := doc["_id"].(string); ok && idStr != "" {
		id, err := uuid.Parse(idStr)
		if err != nil {
			return err
		}
		s.ID = id
	}
	if idStr, ok := doc["business_id"].(string); ok && idStr != "" {
		id, err := uuid.Parse(idStr)
		if err != nil {
			return err
		}
		s.BusinessID = id
	}

	s.Name = stringField(doc, "name")
	s.Slug = stringField(doc, "slug")
	s.Location = stringField(doc, "location")
	s.AvailableFrom = stringField(doc, "available_from")
	s.AvailableTo = stringField(doc, "available_to")
	s.StartDate = stringField(doc, "start_date")
	s.EndDate = stringField(doc, "end_date")
	s.CreatedBy = stringField(doc, "created_by")
	s.UpdatedBy = stringField(doc, "updated_by")

	if v, ok := doc["is_time_restricted"].(bool); ok {
		s.IsTimeRestricted = v
	}
	if v, ok := doc["active"].(bool); ok {
		s.Active = v
	}

	s.DaysOfWeek = intSliceField(doc, "days_of_week")
	s.ActiveDates = stringSliceField(doc, "active_dates")
	s.Priority = intField(doc, "priority")
	s.DisplayOrder = intField(doc, "display_order")
	s.SchemaVersion = intField(doc, "schema_version")

	if v, ok := doc["created_at"].(time.Time); ok {
		s.CreatedAt = v
	}
	if v, ok := doc["updated_at"].(time.Time); ok {
		s.UpdatedAt = v
	}

	return nil
}

func stringField(doc bson.M, key string) string {
	v, _ := doc[key].(string)
	return v
}

func intField(doc bson.M, key string) int {
	switch v := doc[key].(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	}
	return 0
}

func intSliceField(doc bson.M, key string) []int {
	arr, ok := doc[key].(bson.A)
	if !ok {
		return nil
	}
	out := make([]int, 0, len(arr))
	for _, e := range arr {
		switch v := e.(type) {
		case int32:
			out = append(out, int(v))
		case int64:
			out = append(out, int(v))
		case int:
			out = append(out, v)
		}
	}
	return out
}

func stringSliceField(doc bson.M, key string) []string {
	arr, ok := doc[key].(bson.A)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		if v, ok := e.(string); ok {
			out = append(out, v)
		}
	}
	return out
}
