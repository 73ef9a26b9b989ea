package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/erp/storefront/internal/domain/identity"
	"github.com/erp/storefront/internal/domain/shared"
	"github.com/erp/storefront/internal/infrastructure/event"
	sessioninfra "github.com/erp/storefront/internal/infrastructure/session"
)

func newGateUnderTest(t *testing.T) (*Gate, *sessioninfra.NotifyingStore) {
	t.Helper()
	bus := event.NewInMemoryEventBus(zap.NewNop())
	store := sessioninfra.NewNotifyingStore(sessioninfra.NewInMemoryStore(), bus)
	gate := NewGate(store, zap.NewNop())
	bus.Subscribe(gate)
	return gate, store
}

func TestGate_StateFollowsTokenPresence(t *testing.T) {
	gate, _ := newGateUnderTest(t)
	ctx := context.Background()

	state, err := gate.StateFor(ctx, "tienda-uno")
	require.NoError(t, err)
	assert.Equal(t, identity.StateLocked, state)

	require.NoError(t, gate.Login(ctx, "tienda-uno", identity.SessionToken{UserID: "u1", AccessToken: "tok"}))

	state, err = gate.StateFor(ctx, "tienda-uno")
	require.NoError(t, err)
	assert.Equal(t, identity.StateUnlocked, state)
}

func TestGate_LoginRejectsIncompleteToken(t *testing.T) {
	gate, _ := newGateUnderTest(t)
	err := gate.Login(context.Background(), "tienda-uno", identity.SessionToken{UserID: "u1"})
	assert.ErrorIs(t, err, shared.ErrSessionInvalid)
}

func TestGate_Token_PreconditionFailures(t *testing.T) {
	gate, store := newGateUnderTest(t)
	ctx := context.Background()

	_, err := gate.Token(ctx, "tienda-uno")
	assert.ErrorIs(t, err, shared.ErrNoSession)

	// A stored token missing its credential is unusable
	require.NoError(t, store.SaveToken(ctx, "tienda-dos", identity.SessionToken{UserID: "u1"}))
	_, err = gate.Token(ctx, "tienda-dos")
	assert.ErrorIs(t, err, shared.ErrSessionInvalid)
}

func TestGate_LogoutClearsTokenAndCart(t *testing.T) {
	gate, store := newGateUnderTest(t)
	ctx := context.Background()

	require.NoError(t, gate.Login(ctx, "tienda-uno", identity.SessionToken{UserID: "u1", AccessToken: "tok"}))
	require.NoError(t, gate.Logout(ctx, "tienda-uno"))

	state, err := gate.StateFor(ctx, "tienda-uno")
	require.NoError(t, err)
	assert.Equal(t, identity.StateLocked, state)

	_, err = store.LoadCart(ctx, "tienda-uno")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGate_StorageChangeNotifiesListeners(t *testing.T) {
	gate, _ := newGateUnderTest(t)
	ctx := context.Background()

	var gotSlug string
	var gotState identity.State
	gate.OnStateChange(func(slug string, state identity.State) {
		gotSlug = slug
		gotState = state
	})

	// An external logout in another "tab" propagates through the bus
	require.NoError(t, gate.Login(ctx, "tienda-uno", identity.SessionToken{UserID: "u1", AccessToken: "tok"}))
	assert.Equal(t, identity.StateUnlocked, gotState)

	gate.HandleAuthFailure(ctx, "tienda-uno")
	assert.Equal(t, "tienda-uno", gotSlug)
	assert.Equal(t, identity.StateLocked, gotState)
}

func TestGate_HandleAuthFailureDiscardsToken(t *testing.T) {
	gate, _ := newGateUnderTest(t)
	ctx := context.Background()

	require.NoError(t, gate.Login(ctx, "tienda-uno", identity.SessionToken{UserID: "u1", AccessToken: "stale"}))
	gate.HandleAuthFailure(ctx, "tienda-uno")

	_, err := gate.Token(ctx, "tienda-uno")
	assert.ErrorIs(t, err, shared.ErrNoSession)
}
