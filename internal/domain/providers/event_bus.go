package providers

import (
	"context"

	"github.com/dihora04/djbook.in-sub000/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to
// booking lifecycle events
type EventBus interface {
	// Publish publishes an event to all subscribers of a channel
	Publish(ctx context.Context, channel string, event *entities.BookingEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.BookingEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

const (
	// EventChannelBookings carries every booking lifecycle event
	EventChannelBookings = "bookings:updates"

	// EventChannelDJPrefix is the prefix for per-DJ channels
	EventChannelDJPrefix = "dj:"
)

// GetDJChannel returns the channel name for a specific DJ profile
func GetDJChannel(djProfileID string) string {
	return EventChannelDJPrefix + djProfileID
}
