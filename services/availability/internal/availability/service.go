package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/carta/services/availability/internal/business"
	"github.com/google/uuid"
)

// ErrMenuNotFound signals that the requested slug does not exist in the
// business's active schedule set.
var ErrMenuNotFound = errors.New("menu not found")

// Clock abstracts wall-clock reads so resolution stays deterministic
// under test.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// ResolverDeps carries the collaborators the resolver reads from. Any
// fetch failure is surfaced to the caller untouched; the engine itself
// performs no I/O and never retries.
type ResolverDeps struct {
	Schedules ScheduleSource
	Business  business.Client
	Clock     Clock
}

// Resolver orchestrates local-time resolution, schedule evaluation and
// fallback selection for both request shapes.
type Resolver struct {
	schedules ScheduleSource
	business  business.Client
	clock     Clock
	logger    apt.Logger
}

// NewResolver creates a Resolver for menu availability resolution
func NewResolver(deps ResolverDeps, logger apt.Logger) *Resolver {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	clock := deps.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	biz := deps.Business
	if biz == nil {
		biz = business.NewNoopClient()
	}
	return &Resolver{
		schedules: deps.Schedules,
		business:  biz,
		clock:     clock,
		logger:    logger,
	}
}

// ResolveMenu resolves the menu to show a customer right now. An empty
// slug asks for the business's best currently open menu.
func (r *Resolver) ResolveMenu(ctx context.Context, businessID uuid.UUID, slug string) (*Resolution, error) {
	return r.ResolveMenuAt(ctx, businessID, slug, r.clock.Now())
}

// ResolveMenuAt is ResolveMenu pinned to an explicit instant. Identical
// inputs always produce identical resolutions.
func (r *Resolver) ResolveMenuAt(ctx context.Context, businessID uuid.UUID, slug string, now time.Time) (*Resolution, error) {
	schedules, err := r.schedules.ActiveSchedules(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("cannot load schedules for business %s: %w", businessID, err)
	}

	at, timezone := r.localTimeAt(ctx, businessID, now)

	var resolution *Resolution
	if slug == "" {
		resolution = ResolveBest(schedules, at)
	} else {
		requested := findBySlug(schedules, slug)
		if requested == nil {
			return nil, fmt.Errorf("slug %q for business %s: %w", slug, businessID, ErrMenuNotFound)
		}
		resolution = ResolveFallback(requested, schedules, at)
	}

	resolution.Timezone = timezone
	r.annotate(resolution, schedules, at)
	return resolution, nil
}

// localNow resolves the business's current wall-clock tuple and the
// timezone it was evaluated in.
func (r *Resolver) localNow(ctx context.Context, businessID uuid.UUID) (LocalTime, string) {
	return r.localTimeAt(ctx, businessID, r.clock.Now())
}

// localTimeAt projects an instant into the business's zone. A missing
// timezone record degrades to UTC rather than failing the caller.
func (r *Resolver) localTimeAt(ctx context.Context, businessID uuid.UUID, now time.Time) (LocalTime, string) {
	timezone, err := r.business.Timezone(ctx, businessID)
	if err != nil {
		r.logger.Info("cannot resolve business timezone, using UTC", "business_id", businessID.String(), "error", err)
		timezone = ""
	}
	return ResolveLocalTime(now, timezone), timezone
}

// annotate attaches the explanation string and the currently open
// sibling list the caller displays alongside closed or substituted
// outcomes.
func (r *Resolver) annotate(resolution *Resolution, schedules []*MenuSchedule, at LocalTime) {
	switch resolution.Outcome {
	case OutcomeFallback, OutcomeLocationClosed:
		resolution.Explanation = resolution.Requested.NextAvailabilityHint()
	case OutcomeNoneAvailable:
		resolution.Explanation = ClosedMessage
	}

	open := CurrentlyAvailable(schedules, at)
	if resolution.Schedule != nil {
		siblings := make([]*MenuSchedule, 0, len(open))
		for _, s := range open {
			if s.ID != resolution.Schedule.ID {
				siblings = append(siblings, s)
			}
		}
		open = siblings
	}
	resolution.AvailableSiblings = open
}

func findBySlug(schedules []*MenuSchedule, slug string) *MenuSchedule {
	for _, s := range schedules {
		if s.Slug == slug {
			return s
		}
	}
	return nil
}
