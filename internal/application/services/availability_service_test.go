package services_test

import (
	"context"
	"fmt"
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

// memoryCache is a minimal CacheProvider for tests
type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.data[key]
	if !ok {
		return nil, fmt.Errorf("cache miss: %s", key)
	}
	return value, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memoryCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok, nil
}

func newAvailabilityService(calendar repositories.CalendarRepository, cache *memoryCache) *services.AvailabilityService {
	clock := fixedClock{now: time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)}
	if cache == nil {
		return services.NewAvailabilityService(calendar, nil, 60, clock)
	}
	return services.NewAvailabilityService(calendar, cache, 60, clock)
}

func TestAvailabilityService_UpsertEntry(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, time.March, 20, 14, 30, 0, 0, time.UTC)

	t.Run("creates entry on a free day", func(t *testing.T) {
		calendar := memory.NewCalendarStore()
		service := newAvailabilityService(calendar, nil)

		result, err := service.UpsertEntry(ctx, &services.UpsertEntryRequest{
			DJProfileID: "dj-1",
			Date:        day,
			Status:      entities.CalendarStatusUnavailable,
			Title:       "Family function",
		})
		require.NoError(t, err)
		require.NotNil(t, result.Entry)
		assert.Nil(t, result.Removed)
		assert.Equal(t, entities.DayOf(day), result.Entry.Date)

		entry, err := calendar.GetByDay(ctx, "dj-1", day)
		require.NoError(t, err)
		require.NotNil(t, entry)
		assert.Equal(t, entities.CalendarStatusUnavailable, entry.Status)
		assert.Equal(t, "Family function", entry.Title)
	})

	t.Run("merges into an existing manual entry", func(t *testing.T) {
		calendar := memory.NewCalendarStore()
		service := newAvailabilityService(calendar, nil)

		_, err := service.UpsertEntry(ctx, &services.UpsertEntryRequest{
			DJProfileID: "dj-1",
			Date:        day,
			Status:      entities.CalendarStatusUnavailable,
		})
		require.NoError(t, err)

		result, err := service.UpsertEntry(ctx, &services.UpsertEntryRequest{
			DJProfileID: "dj-1",
			Date:        day,
			Status:      entities.CalendarStatusHold,
			Note:        "tentative gig",
		})
		require.NoError(t, err)
		assert.Equal(t, entities.CalendarStatusHold, result.Entry.Status)

		entries, err := calendar.GetByDJ(ctx, "dj-1")
		require.NoError(t, err)
		assert.Len(t, entries, 1, "same day must stay a single entry")
	})

	t.Run("available target removes the entry", func(t *testing.T) {
		calendar := memory.NewCalendarStore()
		service := newAvailabilityService(calendar, nil)

		_, err := service.UpsertEntry(ctx, &services.UpsertEntryRequest{
			DJProfileID: "dj-1",
			Date:        day,
			Status:      entities.CalendarStatusUnavailable,
		})
		require.NoError(t, err)

		result, err := service.UpsertEntry(ctx, &services.UpsertEntryRequest{
			DJProfileID: "dj-1",
			Date:        day,
			Status:      entities.CalendarStatusAvailable,
		})
		require.NoError(t, err)
		require.NotNil(t, result.Removed)
		assert.Nil(t, result.Entry)

		entry, err := calendar.GetByDay(ctx, "dj-1", day)
		require.NoError(t, err)
		assert.Nil(t, entry)
	})

	t.Run("available target on a free day is a no-op", func(t *testing.T) {
		calendar := memory.NewCalendarStore()
		service := newAvailabilityService(calendar, nil)

		result, err := service.UpsertEntry(ctx, &services.UpsertEntryRequest{
			DJProfileID: "dj-1",
			Date:        day,
			Status:      entities.CalendarStatusAvailable,
		})
		require.NoError(t, err)
		assert.Nil(t, result.Removed)
		assert.Nil(t, result.Entry)
	})

	t.Run("cannot edit a booking-managed entry", func(t *testing.T) {
		calendar := memory.NewCalendarStore()
		service := newAvailabilityService(calendar, nil)

		bookingID := "booking-1"
		require.NoError(t, calendar.Put(ctx, repositories.WriteAuthorityPlatform, &entities.CalendarEntry{
			ID:          "entry-1",
			DJProfileID: "dj-1",
			Date:        day,
			Status:      entities.CalendarStatusHold,
			BookingID:   &bookingID,
		}))

		_, err := service.UpsertEntry(ctx, &services.UpsertEntryRequest{
			DJProfileID: "dj-1",
			Date:        day,
			Status:      entities.CalendarStatusUnavailable,
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))

		// Clearing the day is equally off limits
		_, err = service.UpsertEntry(ctx, &services.UpsertEntryRequest{
			DJProfileID: "dj-1",
			Date:        day,
			Status:      entities.CalendarStatusAvailable,
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		service := newAvailabilityService(memory.NewCalendarStore(), nil)

		_, err := service.UpsertEntry(ctx, &services.UpsertEntryRequest{
			DJProfileID: "dj-1",
			Date:        day,
			Status:      "MAYBE",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}

func TestAvailabilityService_GetPublicAvailability(t *testing.T) {
	ctx := context.Background()

	t.Run("returns date and status only", func(t *testing.T) {
		calendar := memory.NewCalendarStore()
		service := newAvailabilityService(calendar, nil)

		bookingID := "booking-1"
		require.NoError(t, calendar.Put(ctx, repositories.WriteAuthorityPlatform, &entities.CalendarEntry{
			ID:          "entry-1",
			DJProfileID: "dj-1",
			Date:        time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
			Status:      entities.CalendarStatusBooked,
			Title:       "Platform: Wedding",
			BookingID:   &bookingID,
		}))
		require.NoError(t, calendar.Put(ctx, repositories.WriteAuthorityManual, &entities.CalendarEntry{
			ID:          "entry-2",
			DJProfileID: "dj-1",
			Date:        time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC),
			Status:      entities.CalendarStatusUnavailable,
		}))

		availability, err := service.GetPublicAvailability(ctx, "dj-1")
		require.NoError(t, err)
		require.Len(t, availability, 2)
		assert.Equal(t, entities.CalendarStatusBooked, availability[0].Status)
		assert.Equal(t, entities.CalendarStatusUnavailable, availability[1].Status)
	})

	t.Run("empty calendar means fully available", func(t *testing.T) {
		service := newAvailabilityService(memory.NewCalendarStore(), nil)

		availability, err := service.GetPublicAvailability(ctx, "dj-1")
		require.NoError(t, err)
		assert.Empty(t, availability)
	})

	t.Run("serves cached projection and invalidates on edit", func(t *testing.T) {
		calendar := memory.NewCalendarStore()
		cache := newMemoryCache()
		service := newAvailabilityService(calendar, cache)
		day := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

		_, err := service.GetPublicAvailability(ctx, "dj-1")
		require.NoError(t, err)

		exists, err := cache.Exists(ctx, "availability:dj-1")
		require.NoError(t, err)
		assert.True(t, exists, "projection should be cached after a read")

		// A write behind the cache is not visible until invalidation
		require.NoError(t, calendar.Put(ctx, repositories.WriteAuthorityManual, &entities.CalendarEntry{
			ID:          "entry-1",
			DJProfileID: "dj-1",
			Date:        day,
			Status:      entities.CalendarStatusUnavailable,
		}))
		availability, err := service.GetPublicAvailability(ctx, "dj-1")
		require.NoError(t, err)
		assert.Empty(t, availability)

		// A manual edit through the service drops the cached copy
		_, err = service.UpsertEntry(ctx, &services.UpsertEntryRequest{
			DJProfileID: "dj-1",
			Date:        day.AddDate(0, 0, 1),
			Status:      entities.CalendarStatusUnavailable,
		})
		require.NoError(t, err)

		availability, err = service.GetPublicAvailability(ctx, "dj-1")
		require.NoError(t, err)
		assert.Len(t, availability, 2)
	})
}
