package entities

import (
	"time"
)

// BookingStatus represents the lifecycle state of a booking request
type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "PENDING"
	BookingStatusAccepted BookingStatus = "ACCEPTED"
	BookingStatusRejected BookingStatus = "REJECTED"

	// Reserved post-acceptance states. No transition logic exists for these
	// yet; they are reachable only through future payment/fulfilment work.
	BookingStatusPaid      BookingStatus = "PAID"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusRefunded  BookingStatus = "REFUNDED"
)

// Booking represents a customer booking request against a DJ.
// DJName and DJProfileImage are snapshots taken at creation time and are
// intentionally not kept in sync with later profile edits.
type Booking struct {
	ID             string        `json:"id" db:"id"`
	DJID           string        `json:"dj_id" db:"dj_id"`
	DJName         string        `json:"dj_name" db:"dj_name"`
	DJProfileImage string        `json:"dj_profile_image" db:"dj_profile_image"`
	CustomerID     string        `json:"customer_id" db:"customer_id"`
	CustomerName   string        `json:"customer_name" db:"customer_name"`
	CustomerPhone  string        `json:"customer_phone" db:"customer_phone"`
	EventDate      time.Time     `json:"event_date" db:"event_date"`
	EventType      string        `json:"event_type" db:"event_type"`
	Location       string        `json:"location" db:"location"`
	Status         BookingStatus `json:"status" db:"status"`
	Notes          string        `json:"notes,omitempty" db:"notes"`
	CreatedAt      time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at" db:"updated_at"`
}
