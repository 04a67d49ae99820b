package routes

import (
	"net/http"

	"github.com/dihora04/djbook.in-sub000/internal/api/handlers"
	"github.com/dihora04/djbook.in-sub000/internal/api/middleware"
	"github.com/dihora04/djbook.in-sub000/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	bookingHandler  *handlers.BookingHandler
	calendarHandler *handlers.CalendarHandler
	djHandler       *handlers.DJHandler
	profileHandler  *handlers.ProfileHandler
	adminHandler    *handlers.AdminHandler
	reviewHandler   *handlers.ReviewHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	bookingHandler *handlers.BookingHandler,
	calendarHandler *handlers.CalendarHandler,
	djHandler *handlers.DJHandler,
	profileHandler *handlers.ProfileHandler,
	adminHandler *handlers.AdminHandler,
	reviewHandler *handlers.ReviewHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		bookingHandler:  bookingHandler,
		calendarHandler: calendarHandler,
		djHandler:       djHandler,
		profileHandler:  profileHandler,
		adminHandler:    adminHandler,
		reviewHandler:   reviewHandler,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Registration endpoints
	r.mux.HandleFunc("POST /api/register/dj", r.profileHandler.RegisterDJ)
	r.mux.HandleFunc("POST /api/register/customer", r.profileHandler.RegisterCustomer)

	// Public directory endpoints
	r.mux.HandleFunc("GET /api/djs/search", r.djHandler.SearchDJs)
	r.mux.HandleFunc("GET /api/djs/featured", r.djHandler.FeaturedDJs)
	r.mux.HandleFunc("GET /api/djs/slug/{slug}", r.djHandler.GetDJBySlug)
	r.mux.HandleFunc("GET /api/djs/{id}", r.djHandler.GetDJ)

	// Profile management endpoints
	r.mux.HandleFunc("PATCH /api/djs/{id}", r.profileHandler.UpdateProfile)
	r.mux.HandleFunc("POST /api/djs/{id}/plan", r.profileHandler.ChangePlan)

	// Calendar endpoints
	r.mux.HandleFunc("GET /api/djs/{id}/calendar", r.calendarHandler.GetCalendar)
	r.mux.HandleFunc("PUT /api/djs/{id}/calendar", r.calendarHandler.UpsertEntry)
	r.mux.HandleFunc("GET /api/djs/{id}/availability", r.calendarHandler.GetPublicAvailability)

	// Booking endpoints
	r.mux.HandleFunc("POST /api/bookings", r.bookingHandler.CreateBooking)
	r.mux.HandleFunc("GET /api/bookings/{id}", r.bookingHandler.GetBooking)
	r.mux.HandleFunc("POST /api/bookings/{id}/accept", r.bookingHandler.AcceptBooking)
	r.mux.HandleFunc("POST /api/bookings/{id}/reject", r.bookingHandler.RejectBooking)
	r.mux.HandleFunc("GET /api/djs/{id}/bookings", r.bookingHandler.ListDJBookings)
	r.mux.HandleFunc("GET /api/customers/{id}/bookings", r.bookingHandler.ListCustomerBookings)

	// Review endpoints
	r.mux.HandleFunc("POST /api/djs/{id}/reviews", r.reviewHandler.AddReview)
	r.mux.HandleFunc("GET /api/djs/{id}/reviews", r.reviewHandler.ListReviews)

	// Admin endpoints
	r.mux.HandleFunc("GET /api/admin/djs/pending", r.adminHandler.ListPendingDJs)
	r.mux.HandleFunc("POST /api/admin/djs/{id}/approval", r.adminHandler.SetApproval)
	r.mux.HandleFunc("DELETE /api/admin/djs/{id}", r.adminHandler.DeleteDJ)
	r.mux.HandleFunc("GET /api/admin/bookings", r.bookingHandler.ListAllBookings)

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS is outermost so every response carries the headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
