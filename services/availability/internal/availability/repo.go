package availability

import (
	"context"

	"github.com/google/uuid"
)

// DatabaseName is the MongoDB database the availability service owns.
const DatabaseName = "carta_availability"

// ScheduleCollection holds the menu schedule records.
const ScheduleCollection = "menu_schedules"

// ScheduleRepo defines the repository interface for menu schedules
type ScheduleRepo interface {
	Create(ctx context.Context, schedule *MenuSchedule) error
	Get(ctx context.Context, id uuid.UUID) (*MenuSchedule, error)
	ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*MenuSchedule, error)
	ListActiveByBusiness(ctx context.Context, businessID uuid.UUID) ([]*MenuSchedule, error)
	Save(ctx context.Context, schedule *MenuSchedule) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ScheduleSource is the read side the resolver depends on. The mongo
// repository satisfies it directly; the snapshot cache wraps it.
type ScheduleSource interface {
	ActiveSchedules(ctx context.Context, businessID uuid.UUID) ([]*MenuSchedule, error)
}
