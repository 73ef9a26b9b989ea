package session

import (
	"context"

	"github.com/erp/storefront/internal/domain/cart"
	"github.com/erp/storefront/internal/domain/identity"
)

// Store is the per-slug keyed session store: a mapping from store slug to
// exactly two typed records, the cart and the session token. Modeling it
// explicitly keeps tests deterministic and rules out key-collision bugs
// from ad hoc string-keyed storage.
//
// Load methods return shared.ErrNotFound when no record exists for the
// slug; absence is a normal state, not a failure.
type Store interface {
	LoadCart(ctx context.Context, slug string) (*cart.Cart, error)
	SaveCart(ctx context.Context, slug string, c *cart.Cart) error
	// DeleteCart removes the persisted cart entirely, not just an empty list
	DeleteCart(ctx context.Context, slug string) error

	LoadToken(ctx context.Context, slug string) (*identity.SessionToken, error)
	SaveToken(ctx context.Context, slug string, token identity.SessionToken) error
	DeleteToken(ctx context.Context, slug string) error
	// HasToken reports token presence without deserializing it
	HasToken(ctx context.Context, slug string) (bool, error)
}
