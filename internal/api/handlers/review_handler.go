package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dihora04/djbook.in-sub000/internal/domain/entities"
)

// ReviewService defines the interface for review operations
type ReviewService interface {
	AddReview(ctx context.Context, djProfileID, customerID, customerName string, rating int, comment string) (*entities.Review, error)
	ListReviews(ctx context.Context, djProfileID string) ([]*entities.Review, error)
}

// ReviewHandler handles review HTTP requests
type ReviewHandler struct {
	service ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(service ReviewService) *ReviewHandler {
	return &ReviewHandler{
		service: service,
	}
}

type addReviewRequest struct {
	CustomerID   string `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment,omitempty"`
}

// AddReview handles POST /api/djs/{id}/reviews
func (h *ReviewHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	djProfileID := r.PathValue("id")
	if djProfileID == "" {
		respondWithError(w, http.StatusBadRequest, "DJ profile ID is required")
		return
	}

	var req addReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	review, err := h.service.AddReview(r.Context(), djProfileID, req.CustomerID, req.CustomerName, req.Rating, req.Comment)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, review)
}

// ListReviews handles GET /api/djs/{id}/reviews
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	djProfileID := r.PathValue("id")
	if djProfileID == "" {
		respondWithError(w, http.StatusBadRequest, "DJ profile ID is required")
		return
	}

	reviews, err := h.service.ListReviews(r.Context(), djProfileID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reviews": reviews,
		"count":   len(reviews),
	})
}
