package crm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/erp/storefront/internal/domain/catalog"
	"github.com/erp/storefront/internal/infrastructure/config"
)

func jsonDecode(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(config.CRMConfig{BaseURL: srv.URL, Timeout: 2 * time.Second}, zap.NewNop())
	return client, srv
}

func TestClient_GetStore(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stores/tienda-uno", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"s1","nombre":"Tienda Uno"}`))
	}))

	store, err := client.GetStore(context.Background(), "tienda-uno")
	require.NoError(t, err)
	assert.Equal(t, "s1", store.ID)
	assert.Equal(t, "tienda-uno", store.Slug, "slug defaulted when upstream omits it")
}

func TestClient_GetStyle_NormalizesDefaults(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"primary_color":"#112233","font":"Inter"}`))
	}))

	style, err := client.GetStyle(context.Background(), "tienda-uno")
	require.NoError(t, err)
	assert.Equal(t, catalog.ViewModeGrid, style.ViewMode)
	assert.Equal(t, "classic", style.Template)
}

func TestClient_ListProducts(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stores/tienda-uno/products", r.URL.Path)
		w.Write([]byte(`[{"id":"p1","nombre":"Teclado","precio":"25.50","categoria":"Electronics"}]`))
	}))

	products, err := client.ListProducts(context.Background(), "tienda-uno")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Teclado", products[0].Nombre)
	assert.Equal(t, "25.5", products[0].Precio.String())
}

func TestClient_ListPaymentMethods_FiltersInactive(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"m1","nombre":"Efectivo","activo":true},{"id":"m2","nombre":"Tarjeta","activo":false}]`))
	}))

	methods, err := client.ListPaymentMethods(context.Background(), "tienda-uno")
	require.NoError(t, err)
	require.Len(t, methods, 1)
	assert.Equal(t, "m1", methods[0].ID)
}

func TestClient_BearerTokenAttached(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.Write([]byte(`{"id":"u1","email":"c@example.com"}`))
	}))

	profile, err := client.GetUser(context.Background(), "tok-123", "u1")
	require.NoError(t, err)
	assert.Equal(t, "c@example.com", profile.Email)
}

func TestClient_StructuredErrorRecognized(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":{"code":"VALIDATION","message":"invalid order","fields":{"direccion":"direccion is required"}}}`))
	}))

	_, err := client.CreateOrder(context.Background(), "tok", "tienda-uno", OrderRequest{})
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "VALIDATION", apiErr.Code)
	assert.Equal(t, "direccion is required", apiErr.UserMessage(), "field message wins")
	assert.False(t, IsAuthFailure(err))
	assert.False(t, IsTransport(err))
}

func TestClient_UnrecognizedErrorBodySurfacedRaw(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`upstream exploded`))
	}))

	_, err := client.ListOrders(context.Background(), "tok", "tienda-uno", "u1")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, "upstream exploded", apiErr.UserMessage())
}

func TestClient_AuthFailureClassified(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			w.Write([]byte(`{"error":{"code":"UNAUTHORIZED","message":"token expired"}}`))
		}))

		_, err := client.ListOrders(context.Background(), "stale", "tienda-uno", "u1")
		require.Error(t, err)
		assert.True(t, IsAuthFailure(err), "status %d must classify as auth failure", status)
	}
}

func TestClient_TransportFailureClassified(t *testing.T) {
	client := NewClient(config.CRMConfig{BaseURL: "http://127.0.0.1:1", Timeout: 200 * time.Millisecond}, zap.NewNop())

	_, err := client.GetStore(context.Background(), "tienda-uno")
	require.Error(t, err)
	assert.True(t, IsTransport(err))
	assert.False(t, IsAuthFailure(err))
}

func TestClient_UpsertLead(t *testing.T) {
	var gotSource string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stores/tienda-uno/leads", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		var req LeadRequest
		require.NoError(t, jsonDecode(r, &req))
		gotSource = req.Source
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{}`))
	}))

	err := client.UpsertLead(context.Background(), "tok", "tienda-uno", LeadRequest{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "storefront_checkout", gotSource)
}
