package orders

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	identityapp "github.com/erp/storefront/internal/application/identity"
	"github.com/erp/storefront/internal/domain/identity"
	"github.com/erp/storefront/internal/domain/order"
	"github.com/erp/storefront/internal/domain/shared"
	"github.com/erp/storefront/internal/infrastructure/crm"
	sessioninfra "github.com/erp/storefront/internal/infrastructure/session"
)

const slug = "tienda-uno"

type mockGateway struct {
	orders []crm.Order
	err    error
	calls  int
}

func (m *mockGateway) ListOrders(ctx context.Context, bearer, slug, userID string) ([]crm.Order, error) {
	m.calls++
	return m.orders, m.err
}

func newServiceUnderTest(t *testing.T, gw *mockGateway) (*Service, *sessioninfra.InMemoryStore, *identityapp.Gate) {
	t.Helper()
	store := sessioninfra.NewInMemoryStore()
	gate := identityapp.NewGate(store, zap.NewNop())
	return NewService(gate, gw, zap.NewNop()), store, gate
}

func login(t *testing.T, store *sessioninfra.InMemoryStore) {
	t.Helper()
	require.NoError(t, store.SaveToken(context.Background(), slug,
		identity.SessionToken{UserID: "u1", AccessToken: "tok"}))
}

func TestList_RequiresSession(t *testing.T) {
	gw := &mockGateway{}
	svc, _, _ := newServiceUnderTest(t, gw)

	_, err := svc.List(context.Background(), slug)
	assert.ErrorIs(t, err, shared.ErrNoSession)
	assert.Zero(t, gw.calls)
}

func TestList_DecoratesKnownStatuses(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	gw := &mockGateway{orders: []crm.Order{
		{ID: "ord-1", Estado: order.StatusEnviado, Total: "24.33", CreatedAt: created},
		{ID: "ord-2", Estado: order.StatusPendiente, Total: "8.00", CreatedAt: created},
	}}
	svc, store, _ := newServiceUnderTest(t, gw)
	login(t, store)

	views, err := svc.List(context.Background(), slug)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Enviado", views[0].Display.Label)
	assert.Equal(t, "truck", views[0].Display.Icon)
	assert.Equal(t, "Pendiente", views[1].Display.Label)
	assert.Equal(t, "2026-03-14 09:30", views[0].CreatedAt)
}

func TestList_UnknownStatusPassesThroughVerbatim(t *testing.T) {
	gw := &mockGateway{orders: []crm.Order{
		{ID: "ord-1", Estado: "reembolsado", Total: "24.33"},
	}}
	svc, store, _ := newServiceUnderTest(t, gw)
	login(t, store)

	views, err := svc.List(context.Background(), slug)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "reembolsado", views[0].Display.Label)
	assert.Equal(t, "help-circle", views[0].Display.Icon)
}

func TestList_AuthFailureDiscardsTokenWithoutRetry(t *testing.T) {
	gw := &mockGateway{err: &crm.APIError{StatusCode: http.StatusUnauthorized, Message: "token expirado"}}
	svc, store, gate := newServiceUnderTest(t, gw)
	login(t, store)

	_, err := svc.List(context.Background(), slug)
	assert.True(t, crm.IsAuthFailure(err))
	assert.Equal(t, 1, gw.calls)

	state, stateErr := gate.StateFor(context.Background(), slug)
	require.NoError(t, stateErr)
	assert.Equal(t, identity.StateLocked, state)
}
