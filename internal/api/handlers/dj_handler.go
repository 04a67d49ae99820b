package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dihora04/djbook.in-sub000/internal/domain/entities"
	"github.com/dihora04/djbook.in-sub000/internal/domain/repositories"
)

// DirectoryService defines the interface for public directory operations
type DirectoryService interface {
	Search(ctx context.Context, params repositories.SearchParams) ([]*entities.DJProfile, error)
	FeaturedDJs(ctx context.Context, limit int) ([]*entities.DJProfile, error)
	GetDJBySlug(ctx context.Context, slug string) (*entities.DJProfile, error)
	GetDJByID(ctx context.Context, id string) (*entities.DJProfile, error)
}

// DJHandler handles public directory HTTP requests
type DJHandler struct {
	service DirectoryService
}

// NewDJHandler creates a new DJ directory handler
func NewDJHandler(service DirectoryService) *DJHandler {
	return &DJHandler{
		service: service,
	}
}

// SearchDJs handles GET /api/djs/search
func (h *DJHandler) SearchDJs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := repositories.SearchParams{
		Query:     q.Get("q"),
		City:      q.Get("city"),
		State:     q.Get("state"),
		Genre:     q.Get("genre"),
		EventType: q.Get("event_type"),
		Limit:     20,
	}

	if latStr, lonStr := q.Get("lat"), q.Get("lon"); latStr != "" && lonStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lon, lonErr := strconv.ParseFloat(lonStr, 64)
		if latErr != nil || lonErr != nil {
			respondWithError(w, http.StatusBadRequest, "invalid lat/lon coordinates")
			return
		}
		params.Latitude = lat
		params.Longitude = lon
		if radiusStr := q.Get("radius_km"); radiusStr != "" {
			if radius, err := strconv.ParseFloat(radiusStr, 64); err == nil && radius > 0 {
				params.RadiusKm = radius
			}
		}
	}
	if maxFeeStr := q.Get("max_fee"); maxFeeStr != "" {
		maxFee, err := strconv.ParseFloat(maxFeeStr, 64)
		if err != nil || maxFee < 0 {
			respondWithError(w, http.StatusBadRequest, "invalid max_fee")
			return
		}
		params.MaxFee = &maxFee
	}
	if limitStr := q.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			params.Limit = limit
		}
	}
	if offsetStr := q.Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset > 0 {
			params.Offset = offset
		}
	}

	djs, err := h.service.Search(r.Context(), params)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"djs":   djs,
		"count": len(djs),
	})
}

// FeaturedDJs handles GET /api/djs/featured
func (h *DJHandler) FeaturedDJs(w http.ResponseWriter, r *http.Request) {
	limit := 12
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	djs, err := h.service.FeaturedDJs(r.Context(), limit)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"djs":   djs,
		"count": len(djs),
	})
}

// GetDJ handles GET /api/djs/{id}
func (h *DJHandler) GetDJ(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "DJ profile ID is required")
		return
	}

	dj, err := h.service.GetDJByID(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, dj)
}

// GetDJBySlug handles GET /api/djs/slug/{slug}
func (h *DJHandler) GetDJBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		respondWithError(w, http.StatusBadRequest, "slug is required")
		return
	}

	dj, err := h.service.GetDJBySlug(r.Context(), slug)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, dj)
}
