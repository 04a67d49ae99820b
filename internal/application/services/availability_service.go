package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dihora04/djbook.in-sub000/internal/domain/entities"
	"github.com/dihora04/djbook.in-sub000/internal/domain/providers"
	"github.com/dihora04/djbook.in-sub000/internal/domain/repositories"
	apperrors "github.com/dihora04/djbook.in-sub000/pkg/errors"
)

// AvailabilityService is the ledger over a DJ's calendar. A date with no
// entry is implicitly available; the service only ever stores and serves
// the exceptions.
type AvailabilityService struct {
	calendar repositories.CalendarRepository
	cache    providers.CacheProvider
	cacheTTL int
	clock    providers.Clock
}

// NewAvailabilityService creates a new availability service. cache may be
// nil, in which case the public projection is computed on every call.
func NewAvailabilityService(calendar repositories.CalendarRepository, cache providers.CacheProvider, cacheTTL int, clock providers.Clock) *AvailabilityService {
	if clock == nil {
		clock = providers.SystemClock{}
	}
	if cacheTTL <= 0 {
		cacheTTL = 60
	}
	return &AvailabilityService{
		calendar: calendar,
		cache:    cache,
		cacheTTL: cacheTTL,
		clock:    clock,
	}
}

// PublicAvailability is the projection served to the booking-intent UI:
// the set of dates a customer cannot pick, with their statuses.
type PublicAvailability struct {
	Date   time.Time               `json:"date"`
	Status entities.CalendarStatus `json:"status"`
}

// UpsertEntryRequest carries a manual calendar edit from the DJ dashboard
type UpsertEntryRequest struct {
	DJProfileID string                  `json:"dj_profile_id"`
	Date        time.Time               `json:"date"`
	Status      entities.CalendarStatus `json:"status"`
	Title       string                  `json:"title,omitempty"`
	Note        string                  `json:"note,omitempty"`
}

// UpsertResult reports what a manual upsert did. Removed is set when an
// AVAILABLE target deleted the day's entry; Entry is set otherwise.
type UpsertResult struct {
	Entry   *entities.CalendarEntry `json:"entry,omitempty"`
	Removed *entities.CalendarEntry `json:"removed,omitempty"`
}

// GetEntries returns every calendar entry for a DJ, any status
func (s *AvailabilityService) GetEntries(ctx context.Context, djProfileID string) ([]*entities.CalendarEntry, error) {
	return s.calendar.GetByDJ(ctx, djProfileID)
}

// GetPublicAvailability returns the non-available dates for a DJ. The
// projection is cached briefly; booking mutations invalidate it via the
// event bus.
func (s *AvailabilityService) GetPublicAvailability(ctx context.Context, djProfileID string) ([]PublicAvailability, error) {
	cacheKey := availabilityCacheKey(djProfileID)

	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var cached []PublicAvailability
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	entries, err := s.calendar.GetByDJ(ctx, djProfileID)
	if err != nil {
		return nil, err
	}

	out := make([]PublicAvailability, 0, len(entries))
	for _, e := range entries {
		out = append(out, PublicAvailability{Date: e.Date, Status: e.Status})
	}

	if s.cache != nil {
		if data, err := json.Marshal(out); err == nil {
			if err := s.cache.Set(ctx, cacheKey, data, s.cacheTTL); err != nil {
				log.Warn().Err(err).Str("dj_profile_id", djProfileID).Msg("failed to cache availability projection")
			}
		}
	}
	return out, nil
}

// UpsertEntry applies a manual calendar edit at day granularity:
//
//   - target AVAILABLE with an existing entry: the entry is deleted and
//     returned as Removed
//   - target AVAILABLE with no entry: no-op
//   - any other target: the existing entry is merged in place, or a new
//     entry is created when the day was free
//
// Entries owned by a booking cannot be touched here; the repository
// rejects such writes with a conflict error.
func (s *AvailabilityService) UpsertEntry(ctx context.Context, req *UpsertEntryRequest) (*UpsertResult, error) {
	if req.DJProfileID == "" {
		return nil, apperrors.NewValidationError("dj profile id is required")
	}
	if req.Date.IsZero() {
		return nil, apperrors.NewValidationError("date is required")
	}
	switch req.Status {
	case entities.CalendarStatusAvailable, entities.CalendarStatusBooked,
		entities.CalendarStatusHold, entities.CalendarStatusUnavailable:
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown calendar status %q", req.Status))
	}

	day := entities.DayOf(req.Date)

	if req.Status == entities.CalendarStatusAvailable {
		removed, err := s.calendar.DeleteByDay(ctx, repositories.WriteAuthorityManual, req.DJProfileID, day)
		if err != nil {
			return nil, err
		}
		s.invalidate(ctx, req.DJProfileID)
		return &UpsertResult{Removed: removed}, nil
	}

	existing, err := s.calendar.GetByDay(ctx, req.DJProfileID, day)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	entry := existing
	if entry == nil {
		entry = &entities.CalendarEntry{
			ID:          uuid.New().String(),
			DJProfileID: req.DJProfileID,
			Date:        day,
			CreatedAt:   now,
		}
	}
	entry.Status = req.Status
	entry.Title = req.Title
	entry.Note = req.Note
	entry.UpdatedAt = now

	if err := s.calendar.Put(ctx, repositories.WriteAuthorityManual, entry); err != nil {
		return nil, err
	}
	s.invalidate(ctx, req.DJProfileID)
	return &UpsertResult{Entry: entry}, nil
}

func (s *AvailabilityService) invalidate(ctx context.Context, djProfileID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, availabilityCacheKey(djProfileID)); err != nil {
		log.Warn().Err(err).Str("dj_profile_id", djProfileID).Msg("failed to invalidate availability cache")
	}
}

func availabilityCacheKey(djProfileID string) string {
	return "availability:" + djProfileID
}
