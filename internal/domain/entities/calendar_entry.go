package entities

import (
	"time"
)

// CalendarStatus is the occupancy state of a DJ's day.
// AVAILABLE is represented by the absence of an entry; it appears here only
// as an upsert target meaning "remove whatever entry exists for that day".
type CalendarStatus string

const (
	CalendarStatusAvailable   CalendarStatus = "AVAILABLE"
	CalendarStatusBooked      CalendarStatus = "BOOKED"
	CalendarStatusHold        CalendarStatus = "HOLD"
	CalendarStatusUnavailable CalendarStatus = "UNAVAILABLE"
)

// CalendarEntry marks a single day on a DJ's calendar. At most one entry
// exists per (DJProfileID, day). Entries carrying a BookingID are owned by
// the booking lifecycle and must not be mutated by manual calendar edits.
type CalendarEntry struct {
	ID          string         `json:"id" db:"id"`
	DJProfileID string         `json:"dj_profile_id" db:"dj_profile_id"`
	Date        time.Time      `json:"date" db:"date"`
	Status      CalendarStatus `json:"status" db:"status"`
	Title       string         `json:"title,omitempty" db:"title"`
	Note        string         `json:"note,omitempty" db:"note"`
	BookingID   *string        `json:"booking_id,omitempty" db:"booking_id"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}

// PlatformLinked reports whether the entry is owned by the booking lifecycle.
func (e *CalendarEntry) PlatformLinked() bool {
	return e.BookingID != nil && *e.BookingID != ""
}

// LinkedTo reports whether the entry belongs to the given booking.
func (e *CalendarEntry) LinkedTo(bookingID string) bool {
	return e.BookingID != nil && *e.BookingID == bookingID
}

// DayOf normalizes a timestamp to day granularity in UTC. Every date
// comparison in the availability subsystem goes through this, so a booking
// submitted at 23:50 and a hold entered at 09:00 land on the same key.
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two timestamps fall on the same UTC day.
func SameDay(a, b time.Time) bool {
	return DayOf(a).Equal(DayOf(b))
}
