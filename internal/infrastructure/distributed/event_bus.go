package distributed

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"streamgrid/internal/core/domain"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// envelope wraps a domain event with the publishing instance so that
// cross-instance fan-out can skip events that originated locally.
type envelope struct {
	InstanceID string        `json:"instance_id"`
	Event      *domain.Event `json:"event"`
}

// Handler receives every event published on the bus, local and remote.
type Handler func(*domain.Event)

// EventBus dispatches session events to in-process subscribers and, when a
// Redis client is provided, fans them out across instances via pub/sub.
type EventBus struct {
	client     *redis.Client
	instanceID string
	channel    string
	logger     *zap.SugaredLogger

	mu       sync.RWMutex
	handlers []Handler
	pubsub   *redis.PubSub
}

// NewEventBus creates a new event bus. client may be nil for single-instance
// deployments; events are then delivered in-process only.
func NewEventBus(client *redis.Client, instanceID string, logger *zap.SugaredLogger) *EventBus {
	return &EventBus{
		client:     client,
		instanceID: instanceID,
		channel:    "streamgrid:events",
		logger:     logger,
	}
}

// Subscribe registers a handler for all events on the bus.
func (eb *EventBus) Subscribe(handler Handler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.handlers = append(eb.handlers, handler)
}

// Publish dispatches the event to local subscribers and to Redis when enabled.
func (eb *EventBus) Publish(ctx context.Context, event *domain.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	eb.dispatch(event)

	if eb.client == nil {
		return nil
	}

	data, err := json.Marshal(&envelope{InstanceID: eb.instanceID, Event: event})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := eb.client.Publish(ctx, eb.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	eb.logger.Debugw("published event",
		"type", event.Type,
		"session_id", event.SessionID,
	)
	return nil
}

// Listen consumes remote events until the context is cancelled. It must only
// be called when the bus was created with a Redis client.
func (eb *EventBus) Listen(ctx context.Context) error {
	if eb.client == nil {
		return fmt.Errorf("event bus has no Redis client")
	}
	if eb.pubsub != nil {
		return fmt.Errorf("already listening")
	}

	eb.pubsub = eb.client.Subscribe(ctx, eb.channel)
	defer eb.pubsub.Close()

	ch := eb.pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var env envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				eb.logger.Warnw("failed to unmarshal event",
					"error", err,
					"payload", msg.Payload,
				)
				continue
			}

			// Local events were already dispatched on publish
			if env.InstanceID == eb.instanceID || env.Event == nil {
				continue
			}

			eb.dispatch(env.Event)
		}
	}
}

func (eb *EventBus) dispatch(event *domain.Event) {
	eb.mu.RLock()
	handlers := make([]Handler, len(eb.handlers))
	copy(handlers, eb.handlers)
	eb.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}

// Close closes the event bus
func (eb *EventBus) Close() error {
	if eb.pubsub != nil {
		return eb.pubsub.Close()
	}
	return nil
}
