package availability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/appetiteclub/apt/events"
	"github.com/google/uuid"
)

// MockScheduleSource is a mock implementation of ScheduleSource for testing
type MockScheduleSource struct {
	mu            sync.RWMutex
	schedules     map[uuid.UUID][]*MenuSchedule
	SchedulesFunc func(ctx context.Context, businessID uuid.UUID) ([]*MenuSchedule, error)
}

func NewMockScheduleSource() *MockScheduleSource {
	return &MockScheduleSource{
		schedules: make(map[uuid.UUID][]*MenuSchedule),
	}
}

func (m *MockScheduleSource) ActiveSchedules(ctx context.Context, businessID uuid.UUID) ([]*MenuSchedule, error) {
	if m.SchedulesFunc != nil {
		return m.SchedulesFunc(ctx, businessID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.schedules[businessID], nil
}

func (m *MockScheduleSource) Add(businessID uuid.UUID, schedules ...*MenuSchedule) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedules[businessID] = append(m.schedules[businessID], schedules...)
}

// MockScheduleRepo is a mock implementation of ScheduleRepo for testing
type MockScheduleRepo struct {
	mu             sync.RWMutex
	schedules      map[uuid.UUID]*MenuSchedule
	ListActiveFunc func(ctx context.Context, businessID uuid.UUID) ([]*MenuSchedule, error)
	ListCalls      int
}

func NewMockScheduleRepo() *MockScheduleRepo {
	return &MockScheduleRepo{
		schedules: make(map[uuid.UUID]*MenuSchedule),
	}
}

func (m *MockScheduleRepo) Create(ctx context.Context, schedule *MenuSchedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedules[schedule.ID] = schedule
	return nil
}

func (m *MockScheduleRepo) Get(ctx context.Context, id uuid.UUID) (*MenuSchedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.schedules[id]
	if !ok {
		return nil, fmt.Errorf("schedule not found")
	}
	return s, nil
}

func (m *MockScheduleRepo) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*MenuSchedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*MenuSchedule
	for _, s := range m.schedules {
		if s.BusinessID == businessID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *MockScheduleRepo) ListActiveByBusiness(ctx context.Context, businessID uuid.UUID) ([]*MenuSchedule, error) {
	m.mu.Lock()
	m.ListCalls++
	m.mu.Unlock()

	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx, businessID)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*MenuSchedule
	for _, s := range m.schedules {
		if s.BusinessID == businessID && s.Active {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *MockScheduleRepo) Save(ctx context.Context, schedule *MenuSchedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedules[schedule.ID] = schedule
	return nil
}

func (m *MockScheduleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.schedules, id)
	return nil
}

// MockBusinessClient is a mock implementation of business.Client for testing
type MockBusinessClient struct {
	Zone         string
	TimezoneFunc func(ctx context.Context, businessID uuid.UUID) (string, error)
}

func (m *MockBusinessClient) Timezone(ctx context.Context, businessID uuid.UUID) (string, error) {
	if m.TimezoneFunc != nil {
		return m.TimezoneFunc(ctx, businessID)
	}
	return m.Zone, nil
}

// MockPublisher is a mock implementation of events.Publisher for testing
type MockPublisher struct {
	mu        sync.Mutex
	Published []PublishedMessage
}

type PublishedMessage struct {
	Topic string
	Msg   []byte
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, msg []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Published = append(m.Published, PublishedMessage{Topic: topic, Msg: msg})
	return nil
}

// MockSubscriber is a mock implementation of events.Subscriber for testing
type MockSubscriber struct {
	SubscribeFunc func(ctx context.Context, topic string, handler events.HandlerFunc) error
}

func (m *MockSubscriber) Subscribe(ctx context.Context, topic string, handler events.HandlerFunc) error {
	if m.SubscribeFunc != nil {
		return m.SubscribeFunc(ctx, topic, handler)
	}
	return nil
}

// fixedClock pins "now" for deterministic resolution tests
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

// testSchedule builds a normalized schedule with the fields resolution
// cares about
func testSchedule(slug, location string, restricted bool, from, to string, priority, displayOrder int) *MenuSchedule {
	s := &MenuSchedule{
		ID:               uuid.New(),
		Name:             slug,
		Slug:             slug,
		Location:         location,
		IsTimeRestricted: restricted,
		AvailableFrom:    from,
		AvailableTo:      to,
		Priority:         priority,
		DisplayOrder:     displayOrder,
		Active:           true,
	}
	s.Normalize()
	return s
}

// localAt builds the wall-clock tuple tests evaluate against
func localAt(date string, weekday, hour, minute int) LocalTime {
	return LocalTime{Date: date, Weekday: weekday, MinuteOfDay: hour*60 + minute}
}
