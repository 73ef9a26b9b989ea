package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/erp/storefront/internal/domain/shared"
)

// relayChannel is the Redis pub/sub channel carrying storage-change
// notifications between gateway instances
const relayChannel = "storefront:storage-changes"

// relayMessage is the wire form of a storage-change event
type relayMessage struct {
	EventType string `json:"event_type"`
	StoreSlug string `json:"store_slug"`
	Key       string `json:"key"`
}

// RedisRelay bridges the in-process event bus and a Redis pub/sub channel
// so a storage change on one gateway instance reaches the presence gates
// of every other instance. It subscribes to the local bus as a handler
// (local events go out) and runs a receive loop (remote events come in).
type RedisRelay struct {
	client *redis.Client
	bus    shared.EventPublisher
	logger *zap.Logger

	mu       sync.Mutex
	injected map[uuid.UUID]struct{}

	cancel context.CancelFunc
	done   chan struct{}
}

// NewRedisRelay creates a relay over the given Redis client
func NewRedisRelay(client *redis.Client, bus shared.EventPublisher, logger *zap.Logger) *RedisRelay {
	return &RedisRelay{
		client:   client,
		bus:      bus,
		logger:   logger,
		injected: make(map[uuid.UUID]struct{}),
	}
}

// Start launches the receive loop. Remote messages are republished on the
// local bus; messages this relay injected itself are never echoed back.
func (r *RedisRelay) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)
	r.done = make(chan struct{})
	sub := r.client.Subscribe(ctx, relayChannel)

	go func() {
		defer close(r.done)
		defer sub.Close()

		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				r.receive(ctx, msg.Payload)
			}
		}
	}()
}

// Stop terminates the receive loop and waits for it to drain
func (r *RedisRelay) Stop() {
	if r.cancel != nil {
		r.cancel()
		<-r.done
	}
}

func (r *RedisRelay) receive(ctx context.Context, payload string) {
	var msg relayMessage
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		r.logger.Warn("discarding malformed storage-change message", zap.Error(err))
		return
	}

	ev := shared.NewStorageChangedEvent(msg.EventType, msg.StoreSlug, msg.Key)

	// Mark before publishing: the local bus is synchronous, so Handle sees
	// the mark and skips re-forwarding the event to Redis
	r.mu.Lock()
	r.injected[ev.EventID()] = struct{}{}
	r.mu.Unlock()

	if err := r.bus.Publish(ctx, ev); err != nil {
		r.logger.Warn("failed to republish remote storage change",
			zap.String("event_type", msg.EventType),
			zap.String("store_slug", msg.StoreSlug),
			zap.Error(err),
		)
	}

	r.mu.Lock()
	delete(r.injected, ev.EventID())
	r.mu.Unlock()
}

// Handle forwards locally published storage changes to the Redis channel.
// Implements shared.EventHandler.
func (r *RedisRelay) Handle(ctx context.Context, ev shared.DomainEvent) error {
	r.mu.Lock()
	_, remote := r.injected[ev.EventID()]
	r.mu.Unlock()
	if remote {
		return nil
	}

	storageEv, ok := ev.(*shared.StorageChangedEvent)
	if !ok {
		return nil
	}

	raw, err := json.Marshal(relayMessage{
		EventType: ev.EventType(),
		StoreSlug: ev.StoreSlug(),
		Key:       storageEv.Key,
	})
	if err != nil {
		return err
	}
	return r.client.Publish(ctx, relayChannel, raw).Err()
}

// EventTypes subscribes the relay to every storage-change event
func (r *RedisRelay) EventTypes() []string {
	return []string{
		shared.EventTypeSessionTokenStored,
		shared.EventTypeSessionTokenRemoved,
		shared.EventTypeCartStored,
		shared.EventTypeCartRemoved,
	}
}

var _ shared.EventHandler = (*RedisRelay)(nil)
