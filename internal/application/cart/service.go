package cart

import (
	"context"
	"errors"

	"go.uber.org/zap"

	identityapp "github.com/erp/storefront/internal/application/identity"
	"github.com/erp/storefront/internal/domain/cart"
	"github.com/erp/storefront/internal/domain/identity"
	"github.com/erp/storefront/internal/domain/session"
	"github.com/erp/storefront/internal/domain/shared"
)

// Service owns the authoritative cart for each store slug. Every mutation
// loads the persisted cart, applies the change, and writes it back in the
// same call: there is no batching or async write queue, so a reload always
// sees the last completed operation.
type Service struct {
	store  session.Store
	gate   *identityapp.Gate
	logger *zap.Logger
}

// NewService creates a cart service
func NewService(store session.Store, gate *identityapp.Gate, logger *zap.Logger) *Service {
	return &Service{store: store, gate: gate, logger: logger}
}

// Get returns the cart for the slug, empty when nothing is persisted
func (s *Service) Get(ctx context.Context, slug string) (*cart.Cart, error) {
	c, err := s.store.LoadCart(ctx, slug)
	if errors.Is(err, shared.ErrNotFound) {
		return cart.New(), nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Add puts a product in the cart, or increments the quantity of an
// existing line with the same product id. Addition is refused when no
// session token is present for the slug.
func (s *Service) Add(ctx context.Context, slug string, item cart.Item) (*cart.Cart, error) {
	state, err := s.gate.StateFor(ctx, slug)
	if err != nil {
		return nil, err
	}
	if state != identity.StateUnlocked {
		return nil, shared.ErrNoSession
	}

	return s.mutate(ctx, slug, func(c *cart.Cart) error {
		c.Add(item)
		return nil
	})
}

// Increment raises the quantity of the line at index by 1
func (s *Service) Increment(ctx context.Context, slug string, index int) (*cart.Cart, error) {
	return s.mutate(ctx, slug, func(c *cart.Cart) error {
		return c.IncrementAt(index)
	})
}

// Decrement lowers the quantity of the line at index by 1, flooring at 1
func (s *Service) Decrement(ctx context.Context, slug string, index int) (*cart.Cart, error) {
	return s.mutate(ctx, slug, func(c *cart.Cart) error {
		return c.DecrementAt(index)
	})
}

// Remove deletes the line at index
func (s *Service) Remove(ctx context.Context, slug string, index int) (*cart.Cart, error) {
	return s.mutate(ctx, slug, func(c *cart.Cart) error {
		return c.RemoveAt(index)
	})
}

// Clear empties the cart and removes its persisted representation
// entirely, not just an empty list
func (s *Service) Clear(ctx context.Context, slug string) error {
	return s.store.DeleteCart(ctx, slug)
}

// mutate loads, applies, and immediately persists
func (s *Service) mutate(ctx context.Context, slug string, apply func(*cart.Cart) error) (*cart.Cart, error) {
	c, err := s.Get(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := apply(c); err != nil {
		return nil, err
	}
	if err := s.store.SaveCart(ctx, slug, c); err != nil {
		return nil, err
	}
	return c, nil
}
