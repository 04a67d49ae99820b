package entities

import (
	"time"
)

// BookingEventType identifies a booking lifecycle event on the event bus
type BookingEventType string

const (
	BookingEventCreated  BookingEventType = "booking.created"
	BookingEventAccepted BookingEventType = "booking.accepted"
	BookingEventRejected BookingEventType = "booking.rejected"
)

// BookingEvent is published after every successful lifecycle transition.
// Consumers (notifications, cache invalidation) treat it as fire-and-forget.
type BookingEvent struct {
	Type        BookingEventType `json:"type"`
	BookingID   string           `json:"booking_id"`
	DJProfileID string           `json:"dj_profile_id"`
	CustomerID  string           `json:"customer_id"`
	EventDate   time.Time        `json:"event_date"`
	OccurredAt  time.Time        `json:"occurred_at"`
}
