package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/dihora04/djbook.in-sub000/internal/domain/entities"
	"github.com/dihora04/djbook.in-sub000/internal/domain/repositories"
	apperrors "github.com/dihora04/djbook.in-sub000/pkg/errors"
)

// BookingStore is an in-memory BookingRepository
type BookingStore struct {
	mu       sync.RWMutex
	bookings map[string]*entities.Booking
}

// NewBookingStore creates an empty in-memory booking store
func NewBookingStore() *BookingStore {
	return &BookingStore{
		bookings: make(map[string]*entities.Booking),
	}
}

// Create creates a new booking
func (s *BookingStore) Create(ctx context.Context, booking *entities.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[booking.ID]; ok {
		return apperrors.NewConflictError(fmt.Sprintf("booking %s already exists", booking.ID))
	}
	c := *booking
	s.bookings[booking.ID] = &c
	return nil
}

// GetByID retrieves a booking by ID
func (s *BookingStore) GetByID(ctx context.Context, id string) (*entities.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("booking %s not found", id))
	}
	c := *b
	return &c, nil
}

// UpdateStatus transitions a booking to the given status
func (s *BookingStore) UpdateStatus(ctx context.Context, id string, status entities.BookingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("booking %s not found", id))
	}
	b.Status = status
	return nil
}

// Delete removes a booking
func (s *BookingStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[id]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("booking %s not found", id))
	}
	delete(s.bookings, id)
	return nil
}

// ListByDJ retrieves bookings addressed to a DJ profile
func (s *BookingStore) ListByDJ(ctx context.Context, djProfileID string, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	return s.list(func(b *entities.Booking) bool { return b.DJID == djProfileID }, filter)
}

// ListByCustomer retrieves bookings placed by a customer
func (s *BookingStore) ListByCustomer(ctx context.Context, customerID string, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	return s.list(func(b *entities.Booking) bool { return b.CustomerID == customerID }, filter)
}

// ListAll retrieves all bookings
func (s *BookingStore) ListAll(ctx context.Context, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	return s.list(func(*entities.Booking) bool { return true }, filter)
}

func (s *BookingStore) list(match func(*entities.Booking) bool, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*entities.Booking
	for _, b := range s.bookings {
		if !match(b) {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if filter.From != nil && b.EventDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && b.EventDate.After(*filter.To) {
			continue
		}
		c := *b
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}
