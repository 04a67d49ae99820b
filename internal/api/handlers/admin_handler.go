package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dihora04/djbook.in-sub000/internal/domain/entities"
)

// AdminService defines the interface for moderation operations
type AdminService interface {
	SetApproval(ctx context.Context, djProfileID string, status entities.ApprovalStatus) (*entities.DJProfile, error)
	ListPending(ctx context.Context, limit, offset int) ([]*entities.DJProfile, error)
	DeleteDJ(ctx context.Context, djProfileID string) error
}

// AdminHandler handles admin moderation HTTP requests
type AdminHandler struct {
	service AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(service AdminService) *AdminHandler {
	return &AdminHandler{
		service: service,
	}
}

// ListPendingDJs handles GET /api/admin/djs/pending
func (h *AdminHandler) ListPendingDJs(w http.ResponseWriter, r *http.Request) {
	limit := 50
	offset := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if parsed, err := strconv.Atoi(offsetStr); err == nil && parsed > 0 {
			offset = parsed
		}
	}

	djs, err := h.service.ListPending(r.Context(), limit, offset)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"djs":   djs,
		"count": len(djs),
	})
}

type approvalRequest struct {
	Status string `json:"status"`
}

// SetApproval handles POST /api/admin/djs/{id}/approval
func (h *AdminHandler) SetApproval(w http.ResponseWriter, r *http.Request) {
	djProfileID := r.PathValue("id")
	if djProfileID == "" {
		respondWithError(w, http.StatusBadRequest, "DJ profile ID is required")
		return
	}

	var req approvalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	profile, err := h.service.SetApproval(r.Context(), djProfileID, entities.ApprovalStatus(req.Status))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, profile)
}

// DeleteDJ handles DELETE /api/admin/djs/{id}
func (h *AdminHandler) DeleteDJ(w http.ResponseWriter, r *http.Request) {
	djProfileID := r.PathValue("id")
	if djProfileID == "" {
		respondWithError(w, http.StatusBadRequest, "DJ profile ID is required")
		return
	}

	if err := h.service.DeleteDJ(r.Context(), djProfileID); err != nil {
		respondWithServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
