package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/dihora04/djbook.in-sub000/internal/application/services"
	"github.com/dihora04/djbook.in-sub000/internal/domain/entities"
	"github.com/dihora04/djbook.in-sub000/internal/domain/repositories"
)

// BookingService defines the interface for booking lifecycle operations
type BookingService interface {
	CreateBooking(ctx context.Context, req *services.CreateBookingRequest) (*entities.Booking, error)
	AcceptBooking(ctx context.Context, bookingID, djProfileID string) (*entities.Booking, error)
	RejectBooking(ctx context.Context, bookingID, djProfileID string) (*entities.Booking, error)
	GetBooking(ctx context.Context, id string) (*entities.Booking, error)
	GetBookingsByDJ(ctx context.Context, djProfileID string, filter repositories.BookingFilter) ([]*entities.Booking, error)
	GetBookingsByCustomer(ctx context.Context, customerID string, filter repositories.BookingFilter) ([]*entities.Booking, error)
	GetAllBookings(ctx context.Context, filter repositories.BookingFilter) ([]*entities.Booking, error)
}

// BookingHandler handles booking lifecycle HTTP requests
type BookingHandler struct {
	service BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(service BookingService) *BookingHandler {
	return &BookingHandler{
		service: service,
	}
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req services.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), &req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, booking)
}

type transitionRequest struct {
	DJProfileID string `json:"dj_profile_id"`
}

// AcceptBooking handles POST /api/bookings/{id}/accept
func (h *BookingHandler) AcceptBooking(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.AcceptBooking)
}

// RejectBooking handles POST /api/bookings/{id}/reject
func (h *BookingHandler) RejectBooking(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.RejectBooking)
}

func (h *BookingHandler) transition(w http.ResponseWriter, r *http.Request, op func(context.Context, string, string) (*entities.Booking, error)) {
	bookingID := r.PathValue("id")
	if bookingID == "" {
		respondWithError(w, http.StatusBadRequest, "booking ID is required")
		return
	}

	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.DJProfileID == "" {
		respondWithError(w, http.StatusBadRequest, "dj_profile_id is required")
		return
	}

	booking, err := op(r.Context(), bookingID, req.DJProfileID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, booking)
}

// GetBooking handles GET /api/bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := r.PathValue("id")
	if bookingID == "" {
		respondWithError(w, http.StatusBadRequest, "booking ID is required")
		return
	}

	booking, err := h.service.GetBooking(r.Context(), bookingID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, booking)
}

// ListDJBookings handles GET /api/djs/{id}/bookings
func (h *BookingHandler) ListDJBookings(w http.ResponseWriter, r *http.Request) {
	djProfileID := r.PathValue("id")
	if djProfileID == "" {
		respondWithError(w, http.StatusBadRequest, "DJ profile ID is required")
		return
	}

	bookings, err := h.service.GetBookingsByDJ(r.Context(), djProfileID, bookingFilterFromQuery(r))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

// ListCustomerBookings handles GET /api/customers/{id}/bookings
func (h *BookingHandler) ListCustomerBookings(w http.ResponseWriter, r *http.Request) {
	customerID := r.PathValue("id")
	if customerID == "" {
		respondWithError(w, http.StatusBadRequest, "customer ID is required")
		return
	}

	bookings, err := h.service.GetBookingsByCustomer(r.Context(), customerID, bookingFilterFromQuery(r))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

// ListAllBookings handles GET /api/admin/bookings
func (h *BookingHandler) ListAllBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.GetAllBookings(r.Context(), bookingFilterFromQuery(r))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

func bookingFilterFromQuery(r *http.Request) repositories.BookingFilter {
	filter := repositories.BookingFilter{
		Status: entities.BookingStatus(r.URL.Query().Get("status")),
		Limit:  50,
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset > 0 {
			filter.Offset = offset
		}
	}
	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		if from, err := time.Parse(time.RFC3339, fromStr); err == nil {
			filter.From = &from
		}
	}
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		if to, err := time.Parse(time.RFC3339, toStr); err == nil {
			filter.To = &to
		}
	}
	return filter
}
