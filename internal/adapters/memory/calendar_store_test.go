package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dihora04/djbook.in-sub000/internal/adapters/memory"
	"github.com/dihora04/djbook.in-sub000/internal/domain/entities"
	"github.com/dihora04/djbook.in-sub000/internal/domain/repositories"
	apperrors "github.com/dihora04/djbook.in-sub000/pkg/errors"
)

func TestCalendarStore_Put(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, time.April, 4, 0, 0, 0, 0, time.UTC)

	t.Run("normalizes the date to midnight UTC", func(t *testing.T) {
		store := memory.NewCalendarStore()

		require.NoError(t, store.Put(ctx, repositories.WriteAuthorityManual, &entities.CalendarEntry{
			ID:          "entry-1",
			DJProfileID: "dj-1",
			Date:        time.Date(2026, time.April, 4, 18, 45, 12, 0, time.UTC),
			Status:      entities.CalendarStatusUnavailable,
		}))

		entry, err := store.GetByDay(ctx, "dj-1", day)
		require.NoError(t, err)
		require.NotNil(t, entry)
		assert.Equal(t, day, entry.Date)
	})

	t.Run("one entry per day", func(t *testing.T) {
		store := memory.NewCalendarStore()

		require.NoError(t, store.Put(ctx, repositories.WriteAuthorityManual, &entities.CalendarEntry{
			ID:          "entry-1",
			DJProfileID: "dj-1",
			Date:        day,
			Status:      entities.CalendarStatusUnavailable,
		}))
		// Different clock time, same civil day: the entry is replaced
		require.NoError(t, store.Put(ctx, repositories.WriteAuthorityManual, &entities.CalendarEntry{
			ID:          "entry-2",
			DJProfileID: "dj-1",
			Date:        day.Add(9 * time.Hour),
			Status:      entities.CalendarStatusHold,
		}))

		entries, err := store.GetByDJ(ctx, "dj-1")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "entry-2", entries[0].ID)
		assert.Equal(t, entities.CalendarStatusHold, entries[0].Status)
	})

	t.Run("manual write cannot touch a booking-linked entry", func(t *testing.T) {
		store := memory.NewCalendarStore()
		bookingID := "booking-1"

		require.NoError(t, store.Put(ctx, repositories.WriteAuthorityPlatform, &entities.CalendarEntry{
			ID:          "entry-1",
			DJProfileID: "dj-1",
			Date:        day,
			Status:      entities.CalendarStatusHold,
			BookingID:   &bookingID,
		}))

		err := store.Put(ctx, repositories.WriteAuthorityManual, &entities.CalendarEntry{
			ID:          "entry-2",
			DJProfileID: "dj-1",
			Date:        day,
			Status:      entities.CalendarStatusUnavailable,
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))

		entry, err := store.GetByDay(ctx, "dj-1", day)
		require.NoError(t, err)
		assert.Equal(t, "entry-1", entry.ID)
	})

	t.Run("manual write cannot attach a booking link", func(t *testing.T) {
		store := memory.NewCalendarStore()
		bookingID := "booking-1"

		err := store.Put(ctx, repositories.WriteAuthorityManual, &entities.CalendarEntry{
			ID:          "entry-1",
			DJProfileID: "dj-1",
			Date:        day,
			Status:      entities.CalendarStatusBooked,
			BookingID:   &bookingID,
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
	})

	t.Run("platform write replaces a manual block", func(t *testing.T) {
		store := memory.NewCalendarStore()
		bookingID := "booking-1"

		require.NoError(t, store.Put(ctx, repositories.WriteAuthorityManual, &entities.CalendarEntry{
			ID:          "entry-1",
			DJProfileID: "dj-1",
			Date:        day,
			Status:      entities.CalendarStatusUnavailable,
		}))
		require.NoError(t, store.Put(ctx, repositories.WriteAuthorityPlatform, &entities.CalendarEntry{
			ID:          "entry-2",
			DJProfileID: "dj-1",
			Date:        day,
			Status:      entities.CalendarStatusBooked,
			BookingID:   &bookingID,
		}))

		entry, err := store.GetByDay(ctx, "dj-1", day)
		require.NoError(t, err)
		assert.Equal(t, "entry-2", entry.ID)
		assert.True(t, entry.PlatformLinked())
	})
}

func TestCalendarStore_DeleteByDay(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, time.April, 4, 0, 0, 0, 0, time.UTC)

	t.Run("free day returns nil without error", func(t *testing.T) {
		store := memory.NewCalendarStore()

		removed, err := store.DeleteByDay(ctx, repositories.WriteAuthorityManual, "dj-1", day)
		require.NoError(t, err)
		assert.Nil(t, removed)
	})

	t.Run("manual delete of a linked entry conflicts", func(t *testing.T) {
		store := memory.NewCalendarStore()
		bookingID := "booking-1"

		require.NoError(t, store.Put(ctx, repositories.WriteAuthorityPlatform, &entities.CalendarEntry{
			ID:          "entry-1",
			DJProfileID: "dj-1",
			Date:        day,
			Status:      entities.CalendarStatusHold,
			BookingID:   &bookingID,
		}))

		_, err := store.DeleteByDay(ctx, repositories.WriteAuthorityManual, "dj-1", day)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))

		entry, err := store.GetByDay(ctx, "dj-1", day)
		require.NoError(t, err)
		require.NotNil(t, entry)
	})

	t.Run("platform delete clears any entry", func(t *testing.T) {
		store := memory.NewCalendarStore()
		bookingID := "booking-1"

		require.NoError(t, store.Put(ctx, repositories.WriteAuthorityPlatform, &entities.CalendarEntry{
			ID:          "entry-1",
			DJProfileID: "dj-1",
			Date:        day,
			Status:      entities.CalendarStatusHold,
			BookingID:   &bookingID,
		}))

		removed, err := store.DeleteByDay(ctx, repositories.WriteAuthorityPlatform, "dj-1", day)
		require.NoError(t, err)
		require.NotNil(t, removed)
		assert.Equal(t, "entry-1", removed.ID)

		entry, err := store.GetByDay(ctx, "dj-1", day)
		require.NoError(t, err)
		assert.Nil(t, entry)
	})
}

func TestCalendarStore_DeleteLinked(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, time.April, 4, 0, 0, 0, 0, time.UTC)

	store := memory.NewCalendarStore()
	bookingID := "booking-1"
	require.NoError(t, store.Put(ctx, repositories.WriteAuthorityPlatform, &entities.CalendarEntry{
		ID:          "entry-1",
		DJProfileID: "dj-1",
		Date:        day,
		Status:      entities.CalendarStatusHold,
		BookingID:   &bookingID,
	}))

	t.Run("ignores an entry linked to another booking", func(t *testing.T) {
		removed, err := store.DeleteLinked(ctx, "dj-1", day, "booking-2")
		require.NoError(t, err)
		assert.Nil(t, removed)

		entry, err := store.GetByDay(ctx, "dj-1", day)
		require.NoError(t, err)
		require.NotNil(t, entry)
	})

	t.Run("removes only the matching link", func(t *testing.T) {
		removed, err := store.DeleteLinked(ctx, "dj-1", day, "booking-1")
		require.NoError(t, err)
		require.NotNil(t, removed)
		assert.Equal(t, "entry-1", removed.ID)

		entry, err := store.GetByDay(ctx, "dj-1", day)
		require.NoError(t, err)
		assert.Nil(t, entry)
	})

	t.Run("free day is a no-op", func(t *testing.T) {
		removed, err := store.DeleteLinked(ctx, "dj-1", day, "booking-1")
		require.NoError(t, err)
		assert.Nil(t, removed)
	})
}
