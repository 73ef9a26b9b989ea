package session

import (
	"context"

	"github.com/erp/storefront/internal/domain/cart"
	"github.com/erp/storefront/internal/domain/identity"
	"github.com/erp/storefront/internal/domain/session"
	"github.com/erp/storefront/internal/domain/shared"
)

// NotifyingStore decorates a session.Store so every mutation publishes a
// storage-change event. This is the gateway's equivalent of the browser
// storage event: presence-sensitive components subscribe and re-read their
// state instead of polling.
type NotifyingStore struct {
	inner session.Store
	bus   shared.EventPublisher
}

// NewNotifyingStore wraps a store with change notification
func NewNotifyingStore(inner session.Store, bus shared.EventPublisher) *NotifyingStore {
	return &NotifyingStore{inner: inner, bus: bus}
}

// LoadCart delegates to the wrapped store
func (s *NotifyingStore) LoadCart(ctx context.Context, slug string) (*cart.Cart, error) {
	return s.inner.LoadCart(ctx, slug)
}

// SaveCart persists the cart and announces the change
func (s *NotifyingStore) SaveCart(ctx context.Context, slug string, c *cart.Cart) error {
	if err := s.inner.SaveCart(ctx, slug, c); err != nil {
		return err
	}
	return s.bus.Publish(ctx, shared.NewStorageChangedEvent(shared.EventTypeCartStored, slug, "cart"))
}

// DeleteCart removes the cart and announces the change
func (s *NotifyingStore) DeleteCart(ctx context.Context, slug string) error {
	if err := s.inner.DeleteCart(ctx, slug); err != nil {
		return err
	}
	return s.bus.Publish(ctx, shared.NewStorageChangedEvent(shared.EventTypeCartRemoved, slug, "cart"))
}

// LoadToken delegates to the wrapped store
func (s *NotifyingStore) LoadToken(ctx context.Context, slug string) (*identity.SessionToken, error) {
	return s.inner.LoadToken(ctx, slug)
}

// SaveToken stores the token and announces the change
func (s *NotifyingStore) SaveToken(ctx context.Context, slug string, token identity.SessionToken) error {
	if err := s.inner.SaveToken(ctx, slug, token); err != nil {
		return err
	}
	return s.bus.Publish(ctx, shared.NewStorageChangedEvent(shared.EventTypeSessionTokenStored, slug, "session"))
}

// DeleteToken removes the token and announces the change
func (s *NotifyingStore) DeleteToken(ctx context.Context, slug string) error {
	if err := s.inner.DeleteToken(ctx, slug); err != nil {
		return err
	}
	return s.bus.Publish(ctx, shared.NewStorageChangedEvent(shared.EventTypeSessionTokenRemoved, slug, "session"))
}

// HasToken delegates to the wrapped store
func (s *NotifyingStore) HasToken(ctx context.Context, slug string) (bool, error) {
	return s.inner.HasToken(ctx, slug)
}

var _ session.Store = (*NotifyingStore)(nil)
