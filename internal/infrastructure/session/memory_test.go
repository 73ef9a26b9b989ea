package session

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/storefront/internal/domain/cart"
	"github.com/erp/storefront/internal/domain/identity"
	"github.com/erp/storefront/internal/domain/shared"
)

func TestInMemoryStore_CartRoundTrip(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	_, err := store.LoadCart(ctx, "tienda-uno")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	c := cart.New()
	c.Add(cart.Item{ProductID: "p1", Nombre: "Teclado", Precio: decimal.RequireFromString("25.00")})
	require.NoError(t, store.SaveCart(ctx, "tienda-uno", c))

	loaded, err := store.LoadCart(ctx, "tienda-uno")
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Len())
	assert.Equal(t, "p1", loaded.Items[0].ProductID)
	assert.True(t, loaded.Items[0].Precio.Equal(decimal.RequireFromString("25.00")))
}

func TestInMemoryStore_CartsAreKeyedBySlug(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	c := cart.New()
	c.Add(cart.Item{ProductID: "p1", Nombre: "Teclado", Precio: decimal.NewFromInt(25)})
	require.NoError(t, store.SaveCart(ctx, "tienda-uno", c))

	_, err := store.LoadCart(ctx, "tienda-dos")
	assert.ErrorIs(t, err, shared.ErrNotFound, "no cross-store sharing")
}

func TestInMemoryStore_DeleteCartRemovesEntry(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.SaveCart(ctx, "tienda-uno", cart.New()))
	require.NoError(t, store.DeleteCart(ctx, "tienda-uno"))

	_, err := store.LoadCart(ctx, "tienda-uno")
	assert.ErrorIs(t, err, shared.ErrNotFound, "delete removes the entry, not just its contents")
}

func TestInMemoryStore_TokenRoundTrip(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	present, err := store.HasToken(ctx, "tienda-uno")
	require.NoError(t, err)
	assert.False(t, present)

	token := identity.SessionToken{UserID: "u1", AccessToken: "tok", Email: "c@example.com"}
	require.NoError(t, store.SaveToken(ctx, "tienda-uno", token))

	present, err = store.HasToken(ctx, "tienda-uno")
	require.NoError(t, err)
	assert.True(t, present)

	loaded, err := store.LoadToken(ctx, "tienda-uno")
	require.NoError(t, err)
	assert.Equal(t, token, *loaded)

	require.NoError(t, store.DeleteToken(ctx, "tienda-uno"))
	_, err = store.LoadToken(ctx, "tienda-uno")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
