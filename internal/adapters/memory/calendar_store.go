package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dihora04/djbook.in-sub000/internal/domain/entities"
	"github.com/dihora04/djbook.in-sub000/internal/domain/repositories"
	apperrors "github.com/dihora04/djbook.in-sub000/pkg/errors"
)

// CalendarStore is an in-memory CalendarRepository. Entries live in a map
// keyed by (djProfileID, day) so the one-entry-per-day invariant holds by
// construction and conflict checks are O(1).
type CalendarStore struct {
	mu      sync.RWMutex
	entries map[string]*entities.CalendarEntry
}

// NewCalendarStore creates an empty in-memory calendar store
func NewCalendarStore() *CalendarStore {
	return &CalendarStore{
		entries: make(map[string]*entities.CalendarEntry),
	}
}

func dayKey(djProfileID string, day time.Time) string {
	return djProfileID + "|" + entities.DayOf(day).Format("2006-01-02")
}

// GetByDJ returns all entries for a DJ ordered by date
func (s *CalendarStore) GetByDJ(ctx context.Context, djProfileID string) ([]*entities.CalendarEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*entities.CalendarEntry
	for _, e := range s.entries {
		if e.DJProfileID == djProfileID {
			out = append(out, copyEntry(e))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// GetByDay returns the entry for a single day, nil when the day is free
func (s *CalendarStore) GetByDay(ctx context.Context, djProfileID string, day time.Time) (*entities.CalendarEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if e, ok := s.entries[dayKey(djProfileID, day)]; ok {
		return copyEntry(e), nil
	}
	return nil, nil
}

// Put inserts or replaces the entry for the entry's day
func (s *CalendarStore) Put(ctx context.Context, authority repositories.WriteAuthority, entry *entities.CalendarEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := dayKey(entry.DJProfileID, entry.Date)
	if authority == repositories.WriteAuthorityManual {
		if existing, ok := s.entries[key]; ok && existing.PlatformLinked() {
			return apperrors.NewConflictError("calendar entry is managed by a booking and cannot be edited manually")
		}
		if entry.PlatformLinked() {
			return apperrors.NewConflictError("manual calendar edits cannot attach a booking link")
		}
	}

	stored := copyEntry(entry)
	stored.Date = entities.DayOf(entry.Date)
	s.entries[key] = stored
	return nil
}

// DeleteByDay removes the entry for a day and returns it, nil when absent
func (s *CalendarStore) DeleteByDay(ctx context.Context, authority repositories.WriteAuthority, djProfileID string, day time.Time) (*entities.CalendarEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := dayKey(djProfileID, day)
	existing, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	if authority == repositories.WriteAuthorityManual && existing.PlatformLinked() {
		return nil, apperrors.NewConflictError("calendar entry is managed by a booking and cannot be removed manually")
	}

	delete(s.entries, key)
	return copyEntry(existing), nil
}

// DeleteLinked removes the entry for a day only when it belongs to bookingID
func (s *CalendarStore) DeleteLinked(ctx context.Context, djProfileID string, day time.Time, bookingID string) (*entities.CalendarEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := dayKey(djProfileID, day)
	existing, ok := s.entries[key]
	if !ok || !existing.LinkedTo(bookingID) {
		return nil, nil
	}

	delete(s.entries, key)
	return copyEntry(existing), nil
}

func copyEntry(e *entities.CalendarEntry) *entities.CalendarEntry {
	c := *e
	if e.BookingID != nil {
		id := *e.BookingID
		c.BookingID = &id
	}
	return &c
}
