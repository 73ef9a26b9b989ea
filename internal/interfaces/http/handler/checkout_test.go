package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	checkoutapp "github.com/erp/storefront/internal/application/checkout"
	identityapp "github.com/erp/storefront/internal/application/identity"
	"github.com/erp/storefront/internal/domain/cart"
	"github.com/erp/storefront/internal/domain/order"
	"github.com/erp/storefront/internal/infrastructure/crm"
	sessioninfra "github.com/erp/storefront/internal/infrastructure/session"
	"github.com/erp/storefront/internal/interfaces/http/dto"
	"github.com/erp/storefront/internal/interfaces/http/router"
)

type stubCheckoutGateway struct {
	created  *crm.OrderCreated
	orderErr error
}

func (s *stubCheckoutGateway) GetUser(ctx context.Context, bearer, userID string) (*crm.UserProfile, error) {
	return &crm.UserProfile{ID: userID, Email: "ana@example.com", Nombre: "Ana"}, nil
}

func (s *stubCheckoutGateway) UpsertLead(ctx context.Context, bearer, slug string, req crm.LeadRequest) error {
	return nil
}

func (s *stubCheckoutGateway) CreateOrder(ctx context.Context, bearer, slug string, req crm.OrderRequest) (*crm.OrderCreated, error) {
	if s.orderErr != nil {
		return nil, s.orderErr
	}
	return s.created, nil
}

func newCheckoutTestServer(t *testing.T, gw checkoutapp.Gateway) (*gin.Engine, *sessioninfra.InMemoryStore) {
	t.Helper()
	store := sessioninfra.NewInMemoryStore()
	gate := identityapp.NewGate(store, zap.NewNop())
	svc := checkoutapp.NewService(store, gate, gw, zap.NewNop())

	engine := gin.New()
	router.NewRouter(engine).
		Register(NewSessionHandler(gate)).
		Register(NewCheckoutHandler(svc, gate)).
		Setup()
	return engine, store
}

func seedCheckoutCart(t *testing.T, store *sessioninfra.InMemoryStore, slug string) {
	t.Helper()
	c := cart.New()
	c.Add(cart.Item{ProductID: "p1", Nombre: "Cafe", Precio: decimal.RequireFromString("10.50")})
	require.NoError(t, store.SaveCart(context.Background(), slug, c))
}

func TestCheckout_RequiresSession(t *testing.T) {
	engine, _ := newCheckoutTestServer(t, &stubCheckoutGateway{})

	w := doJSON(t, engine, http.MethodPost, "/api/v1/stores/tienda-uno/checkout",
		`{"direccion":"Calle 1","telefono":"555-1234"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckout_EmptyCart(t *testing.T) {
	engine, _ := newCheckoutTestServer(t, &stubCheckoutGateway{})
	loginRequest(t, engine, "tienda-uno")

	w := doJSON(t, engine, http.MethodPost, "/api/v1/stores/tienda-uno/checkout",
		`{"direccion":"Calle 1","telefono":"555-1234"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeEmptyCart, resp.Error.Code)
}

func TestCheckout_MissingDeliveryDetails(t *testing.T) {
	engine, store := newCheckoutTestServer(t, &stubCheckoutGateway{})
	loginRequest(t, engine, "tienda-uno")
	seedCheckoutCart(t, store, "tienda-uno")

	w := doJSON(t, engine, http.MethodPost, "/api/v1/stores/tienda-uno/checkout", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckout_Success(t *testing.T) {
	gw := &stubCheckoutGateway{created: &crm.OrderCreated{ID: "ord-7", Estado: order.StatusPendiente}}
	engine, store := newCheckoutTestServer(t, gw)
	loginRequest(t, engine, "tienda-uno")
	seedCheckoutCart(t, store, "tienda-uno")

	w := doJSON(t, engine, http.MethodPost, "/api/v1/stores/tienda-uno/checkout",
		`{"direccion":"Calle 1","telefono":"555-1234","metodo_pago":"efectivo"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	resp := decodeResponse(t, w)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ord-7", data["order_id"])
	assert.Equal(t, "10.50", data["total"])
}

func TestCheckout_UpstreamRejectionPassesMessage(t *testing.T) {
	gw := &stubCheckoutGateway{orderErr: &crm.APIError{
		StatusCode: http.StatusUnprocessableEntity,
		Message:    "direccion fuera de zona de entrega",
	}}
	engine, store := newCheckoutTestServer(t, gw)
	loginRequest(t, engine, "tienda-uno")
	seedCheckoutCart(t, store, "tienda-uno")

	w := doJSON(t, engine, http.MethodPost, "/api/v1/stores/tienda-uno/checkout",
		`{"direccion":"Calle 1","telefono":"555-1234"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "direccion fuera de zona de entrega", resp.Error.Message)
}
