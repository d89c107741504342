package availability

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"
	"github.com/appetiteclub/carta/pkg/event"
	"github.com/google/uuid"
)

// ScheduleChangeSubscriber invalidates cached snapshots when the
// publishing layer announces a schedule mutation.
type ScheduleChangeSubscriber struct {
	subscriber events.Subscriber
	cache      *ScheduleSnapshotCache
	logger     apt.Logger
}

func NewScheduleChangeSubscriber(sub events.Subscriber, cache *ScheduleSnapshotCache, logger apt.Logger) *ScheduleChangeSubscriber {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &ScheduleChangeSubscriber{
		subscriber: sub,
		cache:      cache,
		logger:     logger,
	}
}

func (s *ScheduleChangeSubscriber) Start(ctx context.Context) error {
	s.logger.Info("starting schedule change subscriber", "topic", event.MenuSchedulesTopic)
	if s.subscriber == nil {
		return fmt.Errorf("schedule change subscriber not configured")
	}
	return s.subscriber.Subscribe(ctx, event.MenuSchedulesTopic, s.handleEvent)
}

func (s *ScheduleChangeSubscriber) handleEvent(ctx context.Context, msg []byte) error {
	var evt event.ScheduleChangedEvent
	if err := json.Unmarshal(msg, &evt); err != nil {
		s.logger.Info("invalid schedule change event", "error", err)
		return nil
	}

	businessID, err := uuid.Parse(evt.BusinessID)
	if err != nil {
		s.logger.Info("invalid business id in event", "business_id", evt.BusinessID)
		return nil
	}

	s.cache.Invalidate(businessID)
	s.logger.Debug("schedule snapshot invalidated", "business_id", businessID.String(), "schedule_id", evt.ScheduleID)
	return nil
}
