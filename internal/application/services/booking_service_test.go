package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dihora04/djbook.in-sub000/internal/adapters/memory"
	"github.com/dihora04/djbook.in-sub000/internal/application/services"
	"github.com/dihora04/djbook.in-sub000/internal/domain/entities"
	"github.com/dihora04/djbook.in-sub000/internal/domain/repositories"
	apperrors "github.com/dihora04/djbook.in-sub000/pkg/errors"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type bookingFixture struct {
	service  *services.BookingService
	bookings *memory.BookingStore
	calendar *memory.CalendarStore
	djs      *memory.DJStore
	clock    fixedClock
	profile  *entities.DJProfile
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	clock := fixedClock{now: time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)}
	bookings := memory.NewBookingStore()
	calendar := memory.NewCalendarStore()
	djs := memory.NewDJStore()

	profile := &entities.DJProfile{
		ID:             "dj-1",
		UserID:         "user-1",
		Name:           "DJ Arjun",
		Slug:           "dj-arjun",
		City:           "Mumbai",
		ProfileImage:   "https://img.example/arjun.jpg",
		ApprovalStatus: entities.ApprovalStatusApproved,
		Plan:           entities.PlanFree,
	}
	require.NoError(t, djs.Create(context.Background(), profile))

	return &bookingFixture{
		service:  services.NewBookingService(bookings, calendar, djs, nil, clock),
		bookings: bookings,
		calendar: calendar,
		djs:      djs,
		clock:    clock,
		profile:  profile,
	}
}

func (f *bookingFixture) createRequest(eventDate time.Time) *services.CreateBookingRequest {
	return &services.CreateBookingRequest{
		DJProfileID:   f.profile.ID,
		CustomerID:    "customer-1",
		CustomerName:  "Priya",
		CustomerPhone: "+91-9876543210",
		EventDate:     eventDate,
		EventType:     "Wedding",
		Location:      "Mumbai",
	}
}

func TestBookingService_CreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending booking with hold entry", func(t *testing.T) {
		f := newBookingFixture(t)
		eventDate := f.clock.now.AddDate(0, 0, 14)

		booking, err := f.service.CreateBooking(ctx, f.createRequest(eventDate))
		require.NoError(t, err)

		assert.Equal(t, entities.BookingStatusPending, booking.Status)
		assert.Equal(t, f.profile.Name, booking.DJName)
		assert.Equal(t, f.profile.ProfileImage, booking.DJProfileImage)
		assert.Equal(t, entities.DayOf(eventDate), booking.EventDate)

		entry, err := f.calendar.GetByDay(ctx, f.profile.ID, eventDate)
		require.NoError(t, err)
		require.NotNil(t, entry)
		assert.Equal(t, entities.CalendarStatusHold, entry.Status)
		assert.Equal(t, "Platform Inquiry", entry.Title)
		assert.True(t, entry.LinkedTo(booking.ID))
	})

	t.Run("rejects date already held", func(t *testing.T) {
		f := newBookingFixture(t)
		eventDate := f.clock.now.AddDate(0, 0, 14)

		_, err := f.service.CreateBooking(ctx, f.createRequest(eventDate))
		require.NoError(t, err)

		_, err = f.service.CreateBooking(ctx, f.createRequest(eventDate))
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
	})

	t.Run("rejects date blocked manually", func(t *testing.T) {
		f := newBookingFixture(t)
		eventDate := f.clock.now.AddDate(0, 0, 7)

		require.NoError(t, f.calendar.Put(ctx, repositories.WriteAuthorityManual, &entities.CalendarEntry{
			ID:          "entry-1",
			DJProfileID: f.profile.ID,
			Date:        eventDate,
			Status:      entities.CalendarStatusUnavailable,
		}))

		_, err := f.service.CreateBooking(ctx, f.createRequest(eventDate))
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))

		// No booking should survive the failed attempt
		bookings, err := f.bookings.ListByDJ(ctx, f.profile.ID, repositories.BookingFilter{})
		require.NoError(t, err)
		assert.Empty(t, bookings)
	})

	t.Run("conflict check normalizes to day granularity", func(t *testing.T) {
		f := newBookingFixture(t)
		day := f.clock.now.AddDate(0, 0, 10)

		morning := time.Date(day.Year(), day.Month(), day.Day(), 9, 0, 0, 0, time.UTC)
		night := time.Date(day.Year(), day.Month(), day.Day(), 23, 50, 0, 0, time.UTC)

		_, err := f.service.CreateBooking(ctx, f.createRequest(morning))
		require.NoError(t, err)

		_, err = f.service.CreateBooking(ctx, f.createRequest(night))
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
	})

	t.Run("rejects past event date", func(t *testing.T) {
		f := newBookingFixture(t)

		_, err := f.service.CreateBooking(ctx, f.createRequest(f.clock.now.AddDate(0, 0, -1)))
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("accepts same-day event date", func(t *testing.T) {
		f := newBookingFixture(t)

		_, err := f.service.CreateBooking(ctx, f.createRequest(f.clock.now))
		assert.NoError(t, err)
	})

	t.Run("unknown dj profile", func(t *testing.T) {
		f := newBookingFixture(t)
		req := f.createRequest(f.clock.now.AddDate(0, 0, 5))
		req.DJProfileID = "nope"

		_, err := f.service.CreateBooking(ctx, req)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})

	t.Run("missing fields fail validation", func(t *testing.T) {
		f := newBookingFixture(t)
		req := f.createRequest(f.clock.now.AddDate(0, 0, 5))
		req.CustomerPhone = ""

		_, err := f.service.CreateBooking(ctx, req)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}

func TestBookingService_AcceptBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("accept converts hold to booked", func(t *testing.T) {
		f := newBookingFixture(t)
		eventDate := f.clock.now.AddDate(0, 0, 14)

		booking, err := f.service.CreateBooking(ctx, f.createRequest(eventDate))
		require.NoError(t, err)

		accepted, err := f.service.AcceptBooking(ctx, booking.ID, f.profile.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.BookingStatusAccepted, accepted.Status)

		entry, err := f.calendar.GetByDay(ctx, f.profile.ID, eventDate)
		require.NoError(t, err)
		require.NotNil(t, entry)
		assert.Equal(t, entities.CalendarStatusBooked, entry.Status)
		assert.Equal(t, "Platform: Wedding", entry.Title)
		assert.True(t, entry.LinkedTo(booking.ID))
	})

	t.Run("accept recreates entry when hold is gone", func(t *testing.T) {
		f := newBookingFixture(t)
		eventDate := f.clock.now.AddDate(0, 0, 14)

		booking, err := f.service.CreateBooking(ctx, f.createRequest(eventDate))
		require.NoError(t, err)

		// Clear the hold behind the service's back
		_, err = f.calendar.DeleteByDay(ctx, repositories.WriteAuthorityPlatform, f.profile.ID, eventDate)
		require.NoError(t, err)

		_, err = f.service.AcceptBooking(ctx, booking.ID, f.profile.ID)
		require.NoError(t, err)

		entry, err := f.calendar.GetByDay(ctx, f.profile.ID, eventDate)
		require.NoError(t, err)
		require.NotNil(t, entry)
		assert.Equal(t, entities.CalendarStatusBooked, entry.Status)
		assert.True(t, entry.LinkedTo(booking.ID))
	})

	t.Run("accept by wrong dj reads as not found", func(t *testing.T) {
		f := newBookingFixture(t)
		booking, err := f.service.CreateBooking(ctx, f.createRequest(f.clock.now.AddDate(0, 0, 14)))
		require.NoError(t, err)

		_, err = f.service.AcceptBooking(ctx, booking.ID, "dj-other")
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))

		// Booking must be untouched
		stored, err := f.bookings.GetByID(ctx, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.BookingStatusPending, stored.Status)
	})

	t.Run("double accept fails with invalid state", func(t *testing.T) {
		f := newBookingFixture(t)
		booking, err := f.service.CreateBooking(ctx, f.createRequest(f.clock.now.AddDate(0, 0, 14)))
		require.NoError(t, err)

		_, err = f.service.AcceptBooking(ctx, booking.ID, f.profile.ID)
		require.NoError(t, err)

		_, err = f.service.AcceptBooking(ctx, booking.ID, f.profile.ID)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidState))
	})

	t.Run("accept after reject fails with invalid state", func(t *testing.T) {
		f := newBookingFixture(t)
		booking, err := f.service.CreateBooking(ctx, f.createRequest(f.clock.now.AddDate(0, 0, 14)))
		require.NoError(t, err)

		_, err = f.service.RejectBooking(ctx, booking.ID, f.profile.ID)
		require.NoError(t, err)

		_, err = f.service.AcceptBooking(ctx, booking.ID, f.profile.ID)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidState))
	})
}

func TestBookingService_RejectBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("reject releases the date", func(t *testing.T) {
		f := newBookingFixture(t)
		eventDate := f.clock.now.AddDate(0, 0, 14)

		booking, err := f.service.CreateBooking(ctx, f.createRequest(eventDate))
		require.NoError(t, err)

		rejected, err := f.service.RejectBooking(ctx, booking.ID, f.profile.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.BookingStatusRejected, rejected.Status)

		entry, err := f.calendar.GetByDay(ctx, f.profile.ID, eventDate)
		require.NoError(t, err)
		assert.Nil(t, entry, "the date should be available again")

		// The date can be booked again
		_, err = f.service.CreateBooking(ctx, f.createRequest(eventDate))
		assert.NoError(t, err)
	})

	t.Run("reject leaves another booking's entry alone", func(t *testing.T) {
		f := newBookingFixture(t)
		eventDate := f.clock.now.AddDate(0, 0, 14)

		booking, err := f.service.CreateBooking(ctx, f.createRequest(eventDate))
		require.NoError(t, err)

		// Replace the hold with an entry linked to some other booking,
		// simulating the hold being superseded.
		otherID := "booking-other"
		require.NoError(t, f.calendar.Put(ctx, repositories.WriteAuthorityPlatform, &entities.CalendarEntry{
			ID:          "entry-other",
			DJProfileID: f.profile.ID,
			Date:        eventDate,
			Status:      entities.CalendarStatusHold,
			BookingID:   &otherID,
		}))

		_, err = f.service.RejectBooking(ctx, booking.ID, f.profile.ID)
		require.NoError(t, err)

		entry, err := f.calendar.GetByDay(ctx, f.profile.ID, eventDate)
		require.NoError(t, err)
		require.NotNil(t, entry)
		assert.True(t, entry.LinkedTo(otherID))
	})

	t.Run("rejected booking is preserved with its snapshot", func(t *testing.T) {
		f := newBookingFixture(t)
		booking, err := f.service.CreateBooking(ctx, f.createRequest(f.clock.now.AddDate(0, 0, 14)))
		require.NoError(t, err)

		_, err = f.service.RejectBooking(ctx, booking.ID, f.profile.ID)
		require.NoError(t, err)

		stored, err := f.bookings.GetByID(ctx, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.BookingStatusRejected, stored.Status)
		assert.Equal(t, f.profile.Name, stored.DJName)
	})
}

func TestBookingService_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t)
	eventDate := f.clock.now.AddDate(0, 0, 30)

	const attempts = 16

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.service.CreateBooking(ctx, f.createRequest(eventDate))
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
		}
	}
	assert.Equal(t, 1, winners, "exactly one booking should win the date")

	entries, err := f.calendar.GetByDJ(ctx, f.profile.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	bookings, err := f.bookings.ListByDJ(ctx, f.profile.ID, repositories.BookingFilter{})
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}
