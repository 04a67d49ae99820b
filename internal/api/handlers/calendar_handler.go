package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dihora04/djbook.in-sub000/internal/application/services"
	"github.com/dihora04/djbook.in-sub000/internal/domain/entities"
)

// AvailabilityService defines the interface for calendar operations
type AvailabilityService interface {
	GetEntries(ctx context.Context, djProfileID string) ([]*entities.CalendarEntry, error)
	GetPublicAvailability(ctx context.Context, djProfileID string) ([]services.PublicAvailability, error)
	UpsertEntry(ctx context.Context, req *services.UpsertEntryRequest) (*services.UpsertResult, error)
}

// CalendarHandler handles DJ calendar HTTP requests
type CalendarHandler struct {
	service AvailabilityService
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(service AvailabilityService) *CalendarHandler {
	return &CalendarHandler{
		service: service,
	}
}

// GetCalendar handles GET /api/djs/{id}/calendar. This is the owner view:
// full entries including titles, notes and booking links.
func (h *CalendarHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	djProfileID := r.PathValue("id")
	if djProfileID == "" {
		respondWithError(w, http.StatusBadRequest, "DJ profile ID is required")
		return
	}

	entries, err := h.service.GetEntries(r.Context(), djProfileID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}

// GetPublicAvailability handles GET /api/djs/{id}/availability. This is the
// customer view: date/status pairs only, no titles or booking links.
func (h *CalendarHandler) GetPublicAvailability(w http.ResponseWriter, r *http.Request) {
	djProfileID := r.PathValue("id")
	if djProfileID == "" {
		respondWithError(w, http.StatusBadRequest, "DJ profile ID is required")
		return
	}

	availability, err := h.service.GetPublicAvailability(r.Context(), djProfileID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"availability": availability,
	})
}

type upsertEntryPayload struct {
	Date   string `json:"date"`
	Status string `json:"status"`
	Title  string `json:"title,omitempty"`
	Note   string `json:"note,omitempty"`
}

// UpsertEntry handles PUT /api/djs/{id}/calendar. Setting a day AVAILABLE
// removes its entry; any other status creates or replaces it.
func (h *CalendarHandler) UpsertEntry(w http.ResponseWriter, r *http.Request) {
	djProfileID := r.PathValue("id")
	if djProfileID == "" {
		respondWithError(w, http.StatusBadRequest, "DJ profile ID is required")
		return
	}

	var payload upsertEntryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	date, err := parseDay(payload.Date)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid date format (use YYYY-MM-DD or RFC3339)")
		return
	}

	result, err := h.service.UpsertEntry(r.Context(), &services.UpsertEntryRequest{
		DJProfileID: djProfileID,
		Date:        date,
		Status:      entities.CalendarStatus(payload.Status),
		Title:       payload.Title,
		Note:        payload.Note,
	})
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// parseDay accepts a bare date or a full RFC3339 timestamp; either way the
// service layer normalizes it to day granularity.
func parseDay(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
