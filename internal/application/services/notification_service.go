package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/dihora04/djbook.in-sub000/internal/domain/entities"
	"github.com/dihora04/djbook.in-sub000/internal/domain/providers"
)

// NotificationService fans booking lifecycle events out on the event bus.
// Delivery is fire-and-forget: a publish failure is logged, never surfaced
// to the booking operation that triggered it.
type NotificationService struct {
	eventBus providers.EventBus
	clock    providers.Clock
}

// NewNotificationService creates a new notification service
func NewNotificationService(eventBus providers.EventBus, clock providers.Clock) *NotificationService {
	if clock == nil {
		clock = providers.SystemClock{}
	}
	return &NotificationService{
		eventBus: eventBus,
		clock:    clock,
	}
}

// PublishBookingEvent publishes a lifecycle event to the global bookings
// channel and the per-DJ channel.
func (n *NotificationService) PublishBookingEvent(ctx context.Context, eventType entities.BookingEventType, booking *entities.Booking) {
	if n == nil || n.eventBus == nil {
		return
	}

	event := &entities.BookingEvent{
		Type:        eventType,
		BookingID:   booking.ID,
		DJProfileID: booking.DJID,
		CustomerID:  booking.CustomerID,
		EventDate:   booking.EventDate,
		OccurredAt:  n.clock.Now(),
	}

	for _, channel := range []string{providers.EventChannelBookings, providers.GetDJChannel(booking.DJID)} {
		if err := n.eventBus.Publish(ctx, channel, event); err != nil {
			log.Warn().Err(err).
				Str("channel", channel).
				Str("booking_id", booking.ID).
				Str("event", string(eventType)).
				Msg("failed to publish booking event")
		}
	}
}
