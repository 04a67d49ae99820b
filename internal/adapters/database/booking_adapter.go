package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/dihora04/djbook.in-sub000/internal/domain/entities"
	"github.com/dihora04/djbook.in-sub000/internal/domain/repositories"
	"github.com/dihora04/djbook.in-sub000/internal/infrastructure/clients/postgres"
	apperrors "github.com/dihora04/djbook.in-sub000/pkg/errors"
)

// BookingAdapter implements the BookingRepository interface
type BookingAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewBookingAdapter creates a new booking adapter
func NewBookingAdapter(client *postgres.Client) repositories.BookingRepository {
	return &BookingAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var bookingColumns = []interface{}{
	"id", "dj_id", "dj_name", "dj_profile_image",
	"customer_id", "customer_name", "customer_phone",
	"event_date", "event_type", "location", "status", "notes",
	"created_at", "updated_at",
}

// Create creates a new booking
func (a *BookingAdapter) Create(ctx context.Context, booking *entities.Booking) error {
	record := goqu.Record{
		"id":               booking.ID,
		"dj_id":            booking.DJID,
		"dj_name":          booking.DJName,
		"dj_profile_image": booking.DJProfileImage,
		"customer_id":      booking.CustomerID,
		"customer_name":    booking.CustomerName,
		"customer_phone":   booking.CustomerPhone,
		"event_date":       booking.EventDate,
		"event_type":       booking.EventType,
		"location":         booking.Location,
		"status":           booking.Status,
		"notes":            booking.Notes,
		"created_at":       booking.CreatedAt,
		"updated_at":       booking.UpdatedAt,
	}

	query, args, err := a.db.Insert("bookings").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create booking", err)
	}
	return nil
}

// GetByID retrieves a booking by ID
func (a *BookingAdapter) GetByID(ctx context.Context, id string) (*entities.Booking, error) {
	query, args, err := a.db.Select(bookingColumns...).
		From("bookings").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	booking, err := scanBooking(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("booking %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get booking", err)
	}
	return booking, nil
}

// UpdateStatus transitions a booking to the given status
func (a *BookingAdapter) UpdateStatus(ctx context.Context, id string, status entities.BookingStatus) error {
	query, args, err := a.db.Update("bookings").
		Set(goqu.Record{"status": status, "updated_at": time.Now()}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update booking status", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rows == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("booking %s not found", id))
	}
	return nil
}

// Delete removes a booking
func (a *BookingAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("bookings").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete booking", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rows == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("booking %s not found", id))
	}
	return nil
}

// ListByDJ retrieves bookings addressed to a DJ profile
func (a *BookingAdapter) ListByDJ(ctx context.Context, djProfileID string, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	return a.list(ctx, goqu.Ex{"dj_id": djProfileID}, filter)
}

// ListByCustomer retrieves bookings placed by a customer
func (a *BookingAdapter) ListByCustomer(ctx context.Context, customerID string, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	return a.list(ctx, goqu.Ex{"customer_id": customerID}, filter)
}

// ListAll retrieves all bookings
func (a *BookingAdapter) ListAll(ctx context.Context, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	return a.list(ctx, nil, filter)
}

func (a *BookingAdapter) list(ctx context.Context, where goqu.Ex, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	ds := a.db.Select(bookingColumns...).From("bookings")
	if where != nil {
		ds = ds.Where(where)
	}
	if filter.Status != "" {
		ds = ds.Where(goqu.Ex{"status": filter.Status})
	}
	if filter.From != nil {
		ds = ds.Where(goqu.C("event_date").Gte(*filter.From))
	}
	if filter.To != nil {
		ds = ds.Where(goqu.C("event_date").Lte(*filter.To))
	}
	ds = ds.Order(goqu.C("created_at").Desc())
	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list bookings", err)
	}
	defer rows.Close()

	var bookings []*entities.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan booking", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate bookings", err)
	}
	return bookings, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*entities.Booking, error) {
	booking := &entities.Booking{}
	var notes, customerPhone sql.NullString

	err := row.Scan(
		&booking.ID,
		&booking.DJID,
		&booking.DJName,
		&booking.DJProfileImage,
		&booking.CustomerID,
		&booking.CustomerName,
		&customerPhone,
		&booking.EventDate,
		&booking.EventType,
		&booking.Location,
		&booking.Status,
		&notes,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CustomerPhone = customerPhone.String
	booking.Notes = notes.String
	return booking, nil
}
