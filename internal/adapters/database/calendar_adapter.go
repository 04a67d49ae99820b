package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/dihora04/djbook.in-sub000/internal/domain/entities"
	"github.com/dihora04/djbook.in-sub000/internal/domain/repositories"
	"github.com/dihora04/djbook.in-sub000/internal/infrastructure/clients/postgres"
	apperrors "github.com/dihora04/djbook.in-sub000/pkg/errors"
)

// CalendarAdapter implements the CalendarRepository interface using
// PostgreSQL. The one-entry-per-day invariant is backed by a unique index on
// (dj_profile_id, date), and manual writes are guarded with conditional
// statements so a platform-linked entry can never be clobbered by a DJ edit,
// whatever the caller does.
type CalendarAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCalendarAdapter creates a new calendar adapter
func NewCalendarAdapter(client *postgres.Client) repositories.CalendarRepository {
	return &CalendarAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var calendarColumns = []interface{}{
	"id", "dj_profile_id", "date", "status", "title", "note", "booking_id",
	"created_at", "updated_at",
}

// GetByDJ retrieves all entries for a DJ ordered by date
func (a *CalendarAdapter) GetByDJ(ctx context.Context, djProfileID string) ([]*entities.CalendarEntry, error) {
	query, args, err := a.db.Select(calendarColumns...).
		From("calendar_entries").
		Where(goqu.Ex{"dj_profile_id": djProfileID}).
		Order(goqu.C("date").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get calendar entries", err)
	}
	defer rows.Close()

	var entries []*entities.CalendarEntry
	for rows.Next() {
		entry, err := scanCalendarEntry(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan calendar entry", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate calendar entries", err)
	}
	return entries, nil
}

// GetByDay retrieves the entry for a single day, nil when the day is free
func (a *CalendarAdapter) GetByDay(ctx context.Context, djProfileID string, day time.Time) (*entities.CalendarEntry, error) {
	query, args, err := a.db.Select(calendarColumns...).
		From("calendar_entries").
		Where(goqu.Ex{
			"dj_profile_id": djProfileID,
			"date":          entities.DayOf(day),
		}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	entry, err := scanCalendarEntry(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get calendar entry", err)
	}
	return entry, nil
}

// Put inserts or replaces the entry for (entry.DJProfileID, entry.Date).
// Manual writes refuse to overwrite a platform-linked entry: the upsert only
// updates rows whose booking_id is NULL, and zero affected rows with an
// existing linked entry surfaces as a conflict.
func (a *CalendarAdapter) Put(ctx context.Context, authority repositories.WriteAuthority, entry *entities.CalendarEntry) error {
	day := entities.DayOf(entry.Date)
	record := goqu.Record{
		"id":            entry.ID,
		"dj_profile_id": entry.DJProfileID,
		"date":          day,
		"status":        entry.Status,
		"title":         entry.Title,
		"note":          entry.Note,
		"booking_id":    entry.BookingID,
		"created_at":    entry.CreatedAt,
		"updated_at":    entry.UpdatedAt,
	}
	update := goqu.Record{
		"status":     entry.Status,
		"title":      entry.Title,
		"note":       entry.Note,
		"booking_id": entry.BookingID,
		"updated_at": entry.UpdatedAt,
	}

	conflict := goqu.DoUpdate("dj_profile_id, date", update)
	if authority == repositories.WriteAuthorityManual {
		conflict = conflict.Where(goqu.L("calendar_entries.booking_id IS NULL"))
	}

	query, args, err := a.db.Insert("calendar_entries").
		Rows(record).
		OnConflict(conflict).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build upsert query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to put calendar entry", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rows == 0 {
		return apperrors.NewConflictError("this date is managed by a booking and cannot be edited")
	}
	return nil
}

// DeleteByDay removes the entry for a day. Manual deletes skip
// platform-linked entries and report the attempt as a conflict.
func (a *CalendarAdapter) DeleteByDay(ctx context.Context, authority repositories.WriteAuthority, djProfileID string, day time.Time) (*entities.CalendarEntry, error) {
	normalized := entities.DayOf(day)

	ds := a.db.Delete("calendar_entries").
		Where(goqu.Ex{
			"dj_profile_id": djProfileID,
			"date":          normalized,
		})
	if authority == repositories.WriteAuthorityManual {
		ds = ds.Where(goqu.L("booking_id IS NULL"))
	}

	query, args, err := ds.Returning(calendarColumns...).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build delete query", err)
	}

	entry, err := scanCalendarEntry(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		if authority == repositories.WriteAuthorityManual {
			// Distinguish a free day from a linked entry the delete skipped
			existing, lookupErr := a.GetByDay(ctx, djProfileID, normalized)
			if lookupErr != nil {
				return nil, lookupErr
			}
			if existing != nil && existing.PlatformLinked() {
				return nil, apperrors.NewConflictError("this date is managed by a booking and cannot be edited")
			}
		}
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to delete calendar entry", err)
	}
	return entry, nil
}

// DeleteLinked removes the entry for a day only when it is linked to the
// given booking
func (a *CalendarAdapter) DeleteLinked(ctx context.Context, djProfileID string, day time.Time, bookingID string) (*entities.CalendarEntry, error) {
	query, args, err := a.db.Delete("calendar_entries").
		Where(goqu.Ex{
			"dj_profile_id": djProfileID,
			"date":          entities.DayOf(day),
			"booking_id":    bookingID,
		}).
		Returning(calendarColumns...).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build delete query", err)
	}

	entry, err := scanCalendarEntry(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to delete calendar entry", err)
	}
	return entry, nil
}

func scanCalendarEntry(row rowScanner) (*entities.CalendarEntry, error) {
	entry := &entities.CalendarEntry{}
	var title, note, bookingID sql.NullString

	err := row.Scan(
		&entry.ID,
		&entry.DJProfileID,
		&entry.Date,
		&entry.Status,
		&title,
		&note,
		&bookingID,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Title = title.String
	entry.Note = note.String
	if bookingID.Valid {
		entry.BookingID = &bookingID.String
	}
	return entry, nil
}
