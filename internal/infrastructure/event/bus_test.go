package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/erp/storefront/internal/domain/shared"
)

type recordingHandler struct {
	types    []string
	received []shared.DomainEvent
	fail     bool
}

func (h *recordingHandler) Handle(_ context.Context, ev shared.DomainEvent) error {
	h.received = append(h.received, ev)
	if h.fail {
		return errors.New("handler boom")
	}
	return nil
}

func (h *recordingHandler) EventTypes() []string { return h.types }

func TestInMemoryEventBus_TypedSubscription(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	h := &recordingHandler{types: []string{shared.EventTypeSessionTokenRemoved}}
	bus.Subscribe(h)

	ev := shared.NewStorageChangedEvent(shared.EventTypeSessionTokenRemoved, "tienda-uno", "session")
	other := shared.NewStorageChangedEvent(shared.EventTypeCartStored, "tienda-uno", "cart")

	assert.NoError(t, bus.Publish(context.Background(), ev, other))
	assert.Len(t, h.received, 1)
	assert.Equal(t, "tienda-uno", h.received[0].StoreSlug())
}

func TestInMemoryEventBus_WildcardSubscription(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	h := &recordingHandler{}
	bus.Subscribe(h)

	bus.Publish(context.Background(),
		shared.NewStorageChangedEvent(shared.EventTypeCartStored, "a", "cart"),
		shared.NewStorageChangedEvent(shared.EventTypeSessionTokenStored, "b", "session"),
	)
	assert.Len(t, h.received, 2)
}

func TestInMemoryEventBus_HandlerFailureDoesNotPropagate(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	failing := &recordingHandler{fail: true}
	healthy := &recordingHandler{}
	bus.Subscribe(failing)
	bus.Subscribe(healthy)

	err := bus.Publish(context.Background(),
		shared.NewStorageChangedEvent(shared.EventTypeCartRemoved, "a", "cart"))
	assert.NoError(t, err)
	assert.Len(t, healthy.received, 1)
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	h := &recordingHandler{types: []string{shared.EventTypeCartStored}}
	bus.Subscribe(h)
	bus.Unsubscribe(h)

	bus.Publish(context.Background(),
		shared.NewStorageChangedEvent(shared.EventTypeCartStored, "a", "cart"))
	assert.Empty(t, h.received)
}
