package distributed

import (
	"context"
	"testing"
	"time"

	"streamgrid/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestEventBus_PublishDispatchesToSubscribers(t *testing.T) {
	bus := NewEventBus(nil, "instance-1", zap.NewNop().Sugar())

	var first, second []*domain.Event
	bus.Subscribe(func(e *domain.Event) { first = append(first, e) })
	bus.Subscribe(func(e *domain.Event) { second = append(second, e) })

	event := &domain.Event{
		Type:      domain.EventAudioFocusMoved,
		SessionID: "sess-1",
		SlotIndex: 2,
	}

	err := bus.Publish(context.Background(), event)

	assert.NoError(t, err)
	assert.Len(t, first, 1)
	assert.Len(t, second, 1)
	assert.Same(t, event, first[0])
	assert.Equal(t, domain.EventAudioFocusMoved, first[0].Type)
	assert.False(t, first[0].Timestamp.IsZero())
}

func TestEventBus_PublishKeepsExistingTimestamp(t *testing.T) {
	bus := NewEventBus(nil, "instance-1", zap.NewNop().Sugar())

	stamped := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	event := &domain.Event{
		Type:      domain.EventSlotAssigned,
		SessionID: "sess-1",
		Timestamp: stamped,
	}

	assert.NoError(t, bus.Publish(context.Background(), event))
	assert.Equal(t, stamped, event.Timestamp)
}

func TestEventBus_LateSubscriberMissesEarlierEvents(t *testing.T) {
	bus := NewEventBus(nil, "instance-1", zap.NewNop().Sugar())

	assert.NoError(t, bus.Publish(context.Background(), &domain.Event{
		Type:      domain.EventSessionCreated,
		SessionID: "sess-1",
	}))

	var seen int
	bus.Subscribe(func(*domain.Event) { seen++ })

	assert.NoError(t, bus.Publish(context.Background(), &domain.Event{
		Type:      domain.EventSessionClosed,
		SessionID: "sess-1",
	}))
	assert.Equal(t, 1, seen)
}

func TestEventBus_ListenRequiresRedis(t *testing.T) {
	bus := NewEventBus(nil, "instance-1", zap.NewNop().Sugar())

	err := bus.Listen(context.Background())

	assert.Error(t, err)
}
