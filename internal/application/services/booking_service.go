package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dihora04/djbook.in-sub000/internal/domain/entities"
	"github.com/dihora04/djbook.in-sub000/internal/domain/providers"
	"github.com/dihora04/djbook.in-sub000/internal/domain/repositories"
	apperrors "github.com/dihora04/djbook.in-sub000/pkg/errors"
)

const (
	holdTitle         = "Platform Inquiry"
	bookedTitlePrefix = "Platform: "
)

// BookingService drives the booking lifecycle and its calendar side effects.
// Every mutation runs under a per-(djProfileID, day) lock, so each operation
// appears atomic to concurrent operations on the same date and the booking
// store and calendar store can never be observed mutually inconsistent.
type BookingService struct {
	bookings repositories.BookingRepository
	calendar repositories.CalendarRepository
	djs      repositories.DJRepository
	notifier *NotificationService
	clock    providers.Clock
	locks    *keyedMutex
}

// NewBookingService creates a new booking service
func NewBookingService(
	bookings repositories.BookingRepository,
	calendar repositories.CalendarRepository,
	djs repositories.DJRepository,
	notifier *NotificationService,
	clock providers.Clock,
) *BookingService {
	if clock == nil {
		clock = providers.SystemClock{}
	}
	return &BookingService{
		bookings: bookings,
		calendar: calendar,
		djs:      djs,
		notifier: notifier,
		clock:    clock,
		locks:    newKeyedMutex(),
	}
}

// CreateBookingRequest carries the customer's booking submission
type CreateBookingRequest struct {
	DJProfileID   string    `json:"dj_profile_id"`
	CustomerID    string    `json:"customer_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	EventDate     time.Time `json:"event_date"`
	EventType     string    `json:"event_type"`
	Location      string    `json:"location"`
	Notes         string    `json:"notes,omitempty"`
}

func (r *CreateBookingRequest) validate() error {
	switch {
	case strings.TrimSpace(r.DJProfileID) == "":
		return apperrors.NewValidationError("dj profile id is required")
	case strings.TrimSpace(r.CustomerName) == "":
		return apperrors.NewValidationError("customer name is required")
	case strings.TrimSpace(r.CustomerPhone) == "":
		return apperrors.NewValidationError("customer phone is required")
	case strings.TrimSpace(r.EventType) == "":
		return apperrors.NewValidationError("event type is required")
	case strings.TrimSpace(r.Location) == "":
		return apperrors.NewValidationError("event location is required")
	case r.EventDate.IsZero():
		return apperrors.NewValidationError("event date is required")
	}
	return nil
}

// CreateBooking creates a PENDING booking and places a HOLD entry on the
// DJ's calendar for the event date. The two writes happen under the date
// lock; if the calendar write fails the booking is removed again, so a
// successful call always leaves exactly one HOLD entry tied to the booking.
func (s *BookingService) CreateBooking(ctx context.Context, req *CreateBookingRequest) (*entities.Booking, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	day := entities.DayOf(req.EventDate)
	if day.Before(entities.DayOf(s.clock.Now())) {
		return nil, apperrors.NewValidationError("event date cannot be in the past")
	}

	profile, err := s.djs.GetByID(ctx, req.DJProfileID)
	if err != nil {
		return nil, err
	}

	key := dateKey(profile.ID, day)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	existing, err := s.calendar.GetByDay(ctx, profile.ID, day)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("the selected date is no longer available")
	}

	now := s.clock.Now()
	booking := &entities.Booking{
		ID:             uuid.New().String(),
		DJID:           profile.ID,
		DJName:         profile.Name,
		DJProfileImage: profile.ProfileImage,
		CustomerID:     req.CustomerID,
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		EventDate:      day,
		EventType:      req.EventType,
		Location:       req.Location,
		Status:         entities.BookingStatusPending,
		Notes:          req.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	hold := &entities.CalendarEntry{
		ID:          uuid.New().String(),
		DJProfileID: profile.ID,
		Date:        day,
		Status:      entities.CalendarStatusHold,
		Title:       holdTitle,
		BookingID:   &booking.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.calendar.Put(ctx, repositories.WriteAuthorityPlatform, hold); err != nil {
		if delErr := s.bookings.Delete(ctx, booking.ID); delErr != nil {
			log.Error().Err(delErr).Str("booking_id", booking.ID).
				Msg("failed to roll back booking after calendar write failure")
		}
		return nil, apperrors.NewInternalError("failed to place hold on calendar", err)
	}

	s.notify(ctx, entities.BookingEventCreated, booking)
	return booking, nil
}

// AcceptBooking marks a pending booking ACCEPTED and converts the date's
// calendar entry to BOOKED. A fresh BOOKED entry is created when the HOLD
// was cleared externally.
func (s *BookingService) AcceptBooking(ctx context.Context, bookingID, djProfileID string) (*entities.Booking, error) {
	return s.transition(ctx, bookingID, djProfileID, entities.BookingStatusAccepted)
}

// RejectBooking marks a pending booking REJECTED and releases its hold.
// Only the entry matching the (djProfileID, day, bookingID) triple is
// deleted, so a hold belonging to a different booking on the same date is
// never touched.
func (s *BookingService) RejectBooking(ctx context.Context, bookingID, djProfileID string) (*entities.Booking, error) {
	return s.transition(ctx, bookingID, djProfileID, entities.BookingStatusRejected)
}

func (s *BookingService) transition(ctx context.Context, bookingID, djProfileID string, target entities.BookingStatus) (*entities.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	// Ownership folds into not-found: a DJ must not learn whether another
	// DJ's booking id exists.
	if booking.DJID != djProfileID {
		return nil, apperrors.NewNotFoundError("booking not found")
	}

	day := entities.DayOf(booking.EventDate)
	key := dateKey(djProfileID, day)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	// Re-read under the lock so concurrent accept/reject resolve on booking
	// status, not on arrival order of calendar side effects.
	booking, err = s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != entities.BookingStatusPending {
		return nil, apperrors.NewInvalidStateError("booking is not pending")
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, target); err != nil {
		return nil, err
	}

	if err := s.applyCalendarEffect(ctx, booking, target); err != nil {
		if revertErr := s.bookings.UpdateStatus(ctx, bookingID, entities.BookingStatusPending); revertErr != nil {
			log.Error().Err(revertErr).Str("booking_id", bookingID).
				Msg("failed to revert booking status after calendar write failure")
		}
		return nil, err
	}

	booking.Status = target
	booking.UpdatedAt = s.clock.Now()

	switch target {
	case entities.BookingStatusAccepted:
		s.notify(ctx, entities.BookingEventAccepted, booking)
	case entities.BookingStatusRejected:
		s.notify(ctx, entities.BookingEventRejected, booking)
	}
	return booking, nil
}

func (s *BookingService) applyCalendarEffect(ctx context.Context, booking *entities.Booking, target entities.BookingStatus) error {
	day := entities.DayOf(booking.EventDate)

	if target == entities.BookingStatusRejected {
		_, err := s.calendar.DeleteLinked(ctx, booking.DJID, day, booking.ID)
		return err
	}

	entry, err := s.calendar.GetByDay(ctx, booking.DJID, day)
	if err != nil {
		return err
	}
	now := s.clock.Now()
	if entry == nil {
		// The hold was cleared externally; recreate the entry as booked.
		entry = &entities.CalendarEntry{
			ID:          uuid.New().String(),
			DJProfileID: booking.DJID,
			Date:        day,
			CreatedAt:   now,
		}
	}
	entry.Status = entities.CalendarStatusBooked
	entry.Title = bookedTitlePrefix + booking.EventType
	entry.BookingID = &booking.ID
	entry.UpdatedAt = now

	return s.calendar.Put(ctx, repositories.WriteAuthorityPlatform, entry)
}

func (s *BookingService) notify(ctx context.Context, eventType entities.BookingEventType, booking *entities.Booking) {
	if s.notifier == nil {
		return
	}
	s.notifier.PublishBookingEvent(ctx, eventType, booking)
}

// GetBooking retrieves a booking by id
func (s *BookingService) GetBooking(ctx context.Context, id string) (*entities.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

// GetBookingsByDJ lists bookings addressed to a DJ profile
func (s *BookingService) GetBookingsByDJ(ctx context.Context, djProfileID string, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	return s.bookings.ListByDJ(ctx, djProfileID, filter)
}

// GetBookingsByCustomer lists bookings placed by a customer
func (s *BookingService) GetBookingsByCustomer(ctx context.Context, customerID string, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	return s.bookings.ListByCustomer(ctx, customerID, filter)
}

// GetAllBookings lists every booking (admin surface)
func (s *BookingService) GetAllBookings(ctx context.Context, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	return s.bookings.ListAll(ctx, filter)
}
