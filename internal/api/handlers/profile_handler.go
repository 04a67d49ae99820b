package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dihora04/djbook.in-sub000/internal/application/services"
	"github.com/dihora04/djbook.in-sub000/internal/domain/entities"
)

// ProfileService defines the interface for registration and profile management
type ProfileService interface {
	RegisterDJ(ctx context.Context, req *services.RegisterDJRequest) (*entities.User, *entities.DJProfile, error)
	RegisterCustomer(ctx context.Context, name, email, credential string) (*entities.User, error)
	UpdateProfile(ctx context.Context, djProfileID string, req *services.UpdateProfileRequest) (*entities.DJProfile, error)
	ChangePlan(ctx context.Context, djProfileID string, plan entities.Plan) (*entities.DJProfile, error)
}

// ProfileHandler handles registration and profile management HTTP requests
type ProfileHandler struct {
	service ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(service ProfileService) *ProfileHandler {
	return &ProfileHandler{
		service: service,
	}
}

// RegisterDJ handles POST /api/register/dj
func (h *ProfileHandler) RegisterDJ(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterDJRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	user, profile, err := h.service.RegisterDJ(r.Context(), &req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"user":    user,
		"profile": profile,
	})
}

type registerCustomerRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Credential string `json:"credential"`
}

// RegisterCustomer handles POST /api/register/customer
func (h *ProfileHandler) RegisterCustomer(w http.ResponseWriter, r *http.Request) {
	var req registerCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	user, err := h.service.RegisterCustomer(r.Context(), req.Name, req.Email, req.Credential)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, user)
}

// UpdateProfile handles PATCH /api/djs/{id}
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	djProfileID := r.PathValue("id")
	if djProfileID == "" {
		respondWithError(w, http.StatusBadRequest, "DJ profile ID is required")
		return
	}

	var req services.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), djProfileID, &req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, profile)
}

type changePlanRequest struct {
	Plan string `json:"plan"`
}

// ChangePlan handles POST /api/djs/{id}/plan
func (h *ProfileHandler) ChangePlan(w http.ResponseWriter, r *http.Request) {
	djProfileID := r.PathValue("id")
	if djProfileID == "" {
		respondWithError(w, http.StatusBadRequest, "DJ profile ID is required")
		return
	}

	var req changePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	profile, err := h.service.ChangePlan(r.Context(), djProfileID, entities.Plan(req.Plan))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, profile)
}
