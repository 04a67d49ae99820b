package repositories

import (
	"context"
	"time"

	"github.com/dihora04/djbook.in-sub000/internal/domain/entities"
)

// CalendarRepository stores calendar entries keyed by (djProfileID, day).
// Dates are normalized with entities.DayOf before every lookup or write, and
// implementations must uphold the one-entry-per-day invariant.
//
// Writes take a WriteAuthority so the platform/manual ownership split is
// enforced at the storage layer rather than by UI convention: a manual write
// against a platform-linked entry fails with a conflict error.
type CalendarRepository interface {
	// GetByDJ retrieves all entries for a DJ ordered by date
	GetByDJ(ctx context.Context, djProfileID string) ([]*entities.CalendarEntry, error)

	// GetByDay retrieves the entry for a single day, nil when the day is free
	GetByDay(ctx context.Context, djProfileID string, day time.Time) (*entities.CalendarEntry, error)

	// Put inserts or replaces the entry for (entry.DJProfileID, entry.Date)
	Put(ctx context.Context, authority WriteAuthority, entry *entities.CalendarEntry) error

	// DeleteByDay removes the entry for a day. Returns the removed entry,
	// or nil when the day had none.
	DeleteByDay(ctx context.Context, authority WriteAuthority, djProfileID string, day time.Time) (*entities.CalendarEntry, error)

	// DeleteLinked removes the entry for a day only when it is linked to
	// the given booking. Returns the removed entry, or nil when no entry
	// matched the (djProfileID, day, bookingID) triple.
	DeleteLinked(ctx context.Context, djProfileID string, day time.Time, bookingID string) (*entities.CalendarEntry, error)
}

// WriteAuthority identifies which code path is mutating the calendar
type WriteAuthority string

const (
	// WriteAuthorityManual is a DJ editing their own calendar. It may not
	// touch entries that carry a booking link.
	WriteAuthorityManual WriteAuthority = "manual"

	// WriteAuthorityPlatform is the booking lifecycle engine.
	WriteAuthorityPlatform WriteAuthority = "platform"
)
