package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dihora04/djbook.in-sub000/internal/application/services"
	"github.com/dihora04/djbook.in-sub000/internal/domain/entities"
	"github.com/dihora04/djbook.in-sub000/internal/domain/providers"
)

// mockEventBus is an in-process EventBus for tests
type mockEventBus struct {
	mu          sync.Mutex
	subscribers map[string][]chan *entities.BookingEvent
	published   []*entities.BookingEvent
}

func newMockEventBus() *mockEventBus {
	return &mockEventBus{
		subscribers: make(map[string][]chan *entities.BookingEvent),
	}
}

func (m *mockEventBus) Publish(ctx context.Context, channel string, event *entities.BookingEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, event)
	for _, ch := range m.subscribers[channel] {
		select {
		case ch <- event:
		default:
		}
	}
	return nil
}

func (m *mockEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.BookingEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan *entities.BookingEvent, 10)
	m.subscribers[channel] = append(m.subscribers[channel], ch)
	return ch, nil
}

func (m *mockEventBus) Unsubscribe(ctx context.Context, channel string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.subscribers[channel] {
		close(ch)
	}
	delete(m.subscribers, channel)
	return nil
}

func (m *mockEventBus) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, channels := range m.subscribers {
		for _, ch := range channels {
			close(ch)
		}
	}
	m.subscribers = make(map[string][]chan *entities.BookingEvent)
	return nil
}

func (m *mockEventBus) publishedEvents() []*entities.BookingEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entities.BookingEvent, len(m.published))
	copy(out, m.published)
	return out
}

func TestNotificationService_PublishBookingEvent(t *testing.T) {
	ctx := context.Background()
	clock := fixedClock{now: time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)}
	booking := &entities.Booking{
		ID:         "booking-1",
		DJID:       "dj-1",
		CustomerID: "customer-1",
		EventDate:  time.Date(2026, time.June, 20, 0, 0, 0, 0, time.UTC),
	}

	t.Run("fans out to global and per-dj channels", func(t *testing.T) {
		bus := newMockEventBus()
		service := services.NewNotificationService(bus, clock)

		service.PublishBookingEvent(ctx, entities.BookingEventCreated, booking)

		events := bus.publishedEvents()
		require.Len(t, events, 2)
		for _, event := range events {
			assert.Equal(t, entities.BookingEventCreated, event.Type)
			assert.Equal(t, "booking-1", event.BookingID)
			assert.Equal(t, "dj-1", event.DJProfileID)
			assert.Equal(t, clock.Now(), event.OccurredAt)
		}
	})

	t.Run("delivers to a per-dj subscriber", func(t *testing.T) {
		bus := newMockEventBus()
		service := services.NewNotificationService(bus, clock)

		ch, err := bus.Subscribe(ctx, providers.GetDJChannel("dj-1"))
		require.NoError(t, err)

		service.PublishBookingEvent(ctx, entities.BookingEventAccepted, booking)

		select {
		case event := <-ch:
			assert.Equal(t, entities.BookingEventAccepted, event.Type)
		case <-time.After(time.Second):
			t.Fatal("expected an event on the dj channel")
		}
	})

	t.Run("nil bus is a no-op", func(t *testing.T) {
		service := services.NewNotificationService(nil, clock)
		service.PublishBookingEvent(ctx, entities.BookingEventRejected, booking)
	})
}

func TestCacheInvalidationService(t *testing.T) {
	ctx := context.Background()

	t.Run("subscribes on start", func(t *testing.T) {
		bus := newMockEventBus()
		service := services.NewCacheInvalidationService(newMemoryCache(), bus)

		require.NoError(t, service.Start())
		defer service.Stop()

		bus.mu.Lock()
		defer bus.mu.Unlock()
		assert.Len(t, bus.subscribers[providers.EventChannelBookings], 1)
	})

	t.Run("drops the availability projection on a booking event", func(t *testing.T) {
		bus := newMockEventBus()
		cache := newMemoryCache()
		service := services.NewCacheInvalidationService(cache, bus)

		require.NoError(t, service.Start())
		defer service.Stop()

		require.NoError(t, cache.Set(ctx, "availability:dj-1", []byte(`[]`), 60))

		require.NoError(t, bus.Publish(ctx, providers.EventChannelBookings, &entities.BookingEvent{
			Type:        entities.BookingEventAccepted,
			BookingID:   "booking-1",
			DJProfileID: "dj-1",
		}))

		assert.Eventually(t, func() bool {
			exists, err := cache.Exists(ctx, "availability:dj-1")
			return err == nil && !exists
		}, time.Second, 10*time.Millisecond)
	})
}
