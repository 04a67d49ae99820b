package repositories

import (
	"context"
	"time"

	"github.com/dihora04/djbook.in-sub000/internal/domain/entities"
)

// BookingRepository defines the interface for booking data operations
type BookingRepository interface {
	// Create creates a new booking
	Create(ctx context.Context, booking *entities.Booking) error

	// GetByID retrieves a booking by ID
	GetByID(ctx context.Context, id string) (*entities.Booking, error)

	// UpdateStatus transitions a booking to the given status
	UpdateStatus(ctx context.Context, id string, status entities.BookingStatus) error

	// Delete removes a booking. Used only to compensate a failed
	// two-step create; bookings are otherwise never deleted.
	Delete(ctx context.Context, id string) error

	// ListByDJ retrieves bookings addressed to a DJ profile
	ListByDJ(ctx context.Context, djProfileID string, filter BookingFilter) ([]*entities.Booking, error)

	// ListByCustomer retrieves bookings placed by a customer
	ListByCustomer(ctx context.Context, customerID string, filter BookingFilter) ([]*entities.Booking, error)

	// ListAll retrieves all bookings (admin surface)
	ListAll(ctx context.Context, filter BookingFilter) ([]*entities.Booking, error)
}

// BookingFilter defines filters for listing bookings
type BookingFilter struct {
	Status entities.BookingStatus
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}
