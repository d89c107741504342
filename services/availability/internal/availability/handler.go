package availability

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/appetiteclub/carta/pkg/event"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for the Availability service
type Handler struct {
	resolver     *Resolver
	scheduleRepo ScheduleRepo
	publisher    events.Publisher
	logger       apt.Logger
	config       *apt.Config
	tlm          *telemetry.HTTP
}

type HandlerDeps struct {
	Resolver     *Resolver
	ScheduleRepo ScheduleRepo
	Publisher    events.Publisher
}

// NewHandler creates a new Handler for availability operations
func NewHandler(hd HandlerDeps, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Handler{
		resolver:     hd.Resolver,
		scheduleRepo: hd.ScheduleRepo,
		publisher:    hd.Publisher,
		logger:       logger,
		config:       config,
		tlm:          telemetry.NewHTTP(),
	}
}

// RegisterRoutes registers all routes for the availability service
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/availability", func(r chi.Router) {
		r.Route("/businesses/{businessID}", func(r chi.Router) {
			r.Get("/menu", h.ResolveBusinessMenu)
			r.Get("/menu/{slug}", h.ResolveMenuBySlug)
			r.Get("/schedules", h.ListSchedules)
		})
	})
}

// resolutionResponse is the transport shape of a resolution result.
type resolutionResponse struct {
	Outcome           Outcome         `json:"outcome"`
	Menu              *MenuSchedule   `json:"menu,omitempty"`
	Fallback          bool            `json:"fallback"`
	RequestedSlug     string          `json:"requested_slug,omitempty"`
	Explanation       string          `json:"explanation,omitempty"`
	AvailableSiblings []*MenuSchedule `json:"available_siblings"`
}

// ResolveBusinessMenu handles GET /availability/businesses/{businessID}/menu
func (h *Handler) ResolveBusinessMenu(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ResolveBusinessMenu")
	defer finish()

	h.resolve(w, r, "")
}

// ResolveMenuBySlug handles GET /availability/businesses/{businessID}/menu/{slug}
func (h *Handler) ResolveMenuBySlug(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ResolveMenuBySlug")
	defer finish()

	slug := chi.URLParam(r, "slug")
	if slug == "" {
		apt.RespondError(w, http.StatusBadRequest, "Missing slug parameter")
		return
	}

	h.resolve(w, r, slug)
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request, slug string) {
	log := h.log(r)
	ctx := r.Context()

	businessID, ok := h.parseBusinessIDParam(w, r, log)
	if !ok {
		return
	}

	resolution, err := h.resolver.ResolveMenu(ctx, businessID, slug)
	if err != nil {
		if errors.Is(err, ErrMenuNotFound) {
			log.Debug("requested menu not found", "business_id", businessID.String(), "slug", slug)
			apt.RespondError(w, http.StatusNotFound, "Menu not found")
			return
		}
		log.Error("cannot resolve menu", "error", err, "business_id", businessID.String(), "slug", slug)
		apt.RespondError(w, http.StatusInternalServerError, "Could not resolve menu availability")
		return
	}

	h.publishResolution(ctx, businessID, slug, resolution)

	response := resolutionResponse{
		Outcome:           resolution.Outcome,
		Menu:              resolution.Schedule,
		Fallback:          resolution.Outcome == OutcomeFallback,
		RequestedSlug:     slug,
		Explanation:       resolution.Explanation,
		AvailableSiblings: resolution.AvailableSiblings,
	}

	switch resolution.Outcome {
	case OutcomeAvailable, OutcomeFallback:
		apt.Respond(w, http.StatusOK, response, nil)
	default:
		// The menu exists but nothing is open to show; a closed response
		// carries the explanation for display.
		apt.Respond(w, http.StatusNotFound, response, nil)
	}
}

// ListSchedules handles GET /availability/businesses/{businessID}/schedules
// The publishing UI uses it to preview a business's schedule set with
// current availability flags.
func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListSchedules")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	businessID, ok := h.parseBusinessIDParam(w, r, log)
	if !ok {
		return
	}

	if h.scheduleRepo == nil {
		apt.RespondError(w, http.StatusServiceUnavailable, "Schedule store not configured")
		return
	}

	schedules, err := h.scheduleRepo.ListActiveByBusiness(ctx, businessID)
	if err != nil {
		log.Error("cannot list schedules", "error", err, "business_id", businessID.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not list schedules")
		return
	}

	at, _ := h.resolver.localNow(ctx, businessID)
	type schedulePreview struct {
		*MenuSchedule
		CurrentlyAvailable bool `json:"currently_available"`
	}
	previews := make([]schedulePreview, 0, len(schedules))
	for _, s := range schedules {
		previews = append(previews, schedulePreview{MenuSchedule: s, CurrentlyAvailable: s.AvailableAt(at)})
	}

	apt.RespondSuccess(w, previews)
}

func (h *Handler) publishResolution(ctx context.Context, businessID uuid.UUID, slug string, resolution *Resolution) {
	if h.publisher == nil {
		return
	}

	evt := event.MenuResolvedEvent{
		EventType:     event.EventMenuResolved,
		OccurredAt:    time.Now().UTC(),
		BusinessID:    businessID.String(),
		RequestedSlug: slug,
		Outcome:       string(resolution.Outcome),
		Timezone:      resolution.Timezone,
	}
	if resolution.Schedule != nil {
		evt.ResolvedID = resolution.Schedule.ID.String()
		evt.ResolvedSlug = resolution.Schedule.Slug
	}

	msg, err := json.Marshal(evt)
	if err != nil {
		h.logger.Error("cannot marshal resolution event", "error", err)
		return
	}
	if err := h.publisher.Publish(ctx, event.MenuResolutionsTopic, msg); err != nil {
		h.logger.Error("cannot publish resolution event", "error", err)
	}
}

func (h *Handler) parseBusinessIDParam(w http.ResponseWriter, r *http.Request, log apt.Logger) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "businessID")
	id, err := uuid.Parse(raw)
	if err != nil {
		log.Debug("invalid business id", "business_id", raw)
		apt.RespondError(w, http.StatusBadRequest, "Invalid business ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", r.Context().Value("request_id"))
}
