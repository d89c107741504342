package availability

import (
	"context"
	"fmt"
	"sync"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

// ScheduleSnapshotCache keeps each business's active schedule set in
// memory so resolution does not hit the store on every customer
// request. The publishing layer's change events invalidate entries; a
// stale miss self-heals on the next read-through.
type ScheduleSnapshotCache struct {
	mu        sync.RWMutex
	snapshots map[uuid.UUID][]*MenuSchedule
	repo      ScheduleRepo
	logger    apt.Logger
}

func NewScheduleSnapshotCache(repo ScheduleRepo, logger apt.Logger) *ScheduleSnapshotCache {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &ScheduleSnapshotCache{
		snapshots: make(map[uuid.UUID][]*MenuSchedule),
		repo:      repo,
		logger:    logger,
	}
}

// ActiveSchedules returns the cached snapshot for a business, loading it
// from the repository on a miss. Implements ScheduleSource.
func (c *ScheduleSnapshotCache) ActiveSchedules(ctx context.Context, businessID uuid.UUID) ([]*MenuSchedule, error) {
	if businessID == uuid.Nil {
		return nil, fmt.Errorf("invalid business id")
	}

	c.mu.RLock()
	snapshot, ok := c.snapshots[businessID]
	c.mu.RUnlock()
	if ok {
		return snapshot, nil
	}

	return c.refresh(ctx, businessID)
}

func (c *ScheduleSnapshotCache) refresh(ctx context.Context, businessID uuid.UUID) ([]*MenuSchedule, error) {
	if c.repo == nil {
		return nil, fmt.Errorf("schedule cache uninitialized")
	}

	schedules, err := c.repo.ListActiveByBusiness(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedules for business %s: %w", businessID, err)
	}

	c.mu.Lock()
	c.snapshots[businessID] = schedules
	c.mu.Unlock()

	c.logger.Debug("schedule snapshot refreshed", "business_id", businessID.String(), "schedules", len(schedules))
	return schedules, nil
}

// Invalidate drops a business's snapshot so the next read reloads it.
func (c *ScheduleSnapshotCache) Invalidate(businessID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.snapshots, businessID)
}

// Set replaces a business's snapshot directly. Used by tests and warm
// paths that already hold fresh data.
func (c *ScheduleSnapshotCache) Set(businessID uuid.UUID, schedules []*MenuSchedule) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshots[businessID] = schedules
}
