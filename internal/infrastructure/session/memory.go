package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/erp/storefront/internal/domain/cart"
	"github.com/erp/storefront/internal/domain/identity"
	"github.com/erp/storefront/internal/domain/session"
	"github.com/erp/storefront/internal/domain/shared"
)

// InMemoryStore implements session.Store with a process-local map. Suitable
// for single-instance deployments and tests; state does not survive a
// restart and is not shared across instances.
type InMemoryStore struct {
	mu     sync.RWMutex
	carts  map[string][]byte
	tokens map[string][]byte
}

// NewInMemoryStore creates an empty in-memory session store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		carts:  make(map[string][]byte),
		tokens: make(map[string][]byte),
	}
}

// LoadCart returns the persisted cart for the slug
func (s *InMemoryStore) LoadCart(_ context.Context, slug string) (*cart.Cart, error) {
	s.mu.RLock()
	raw, ok := s.carts[slug]
	s.mu.RUnlock()
	if !ok {
		return nil, shared.ErrNotFound
	}

	c := cart.New()
	if err := json.Unmarshal(raw, c); err != nil {
		return nil, err
	}
	return c, nil
}

// SaveCart persists the cart for the slug
func (s *InMemoryStore) SaveCart(_ context.Context, slug string, c *cart.Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.carts[slug] = raw
	s.mu.Unlock()
	return nil
}

// DeleteCart removes the persisted cart entry
func (s *InMemoryStore) DeleteCart(_ context.Context, slug string) error {
	s.mu.Lock()
	delete(s.carts, slug)
	s.mu.Unlock()
	return nil
}

// LoadToken returns the stored session token for the slug
func (s *InMemoryStore) LoadToken(_ context.Context, slug string) (*identity.SessionToken, error) {
	s.mu.RLock()
	raw, ok := s.tokens[slug]
	s.mu.RUnlock()
	if !ok {
		return nil, shared.ErrNotFound
	}

	var token identity.SessionToken
	if err := json.Unmarshal(raw, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// SaveToken stores the session token for the slug
func (s *InMemoryStore) SaveToken(_ context.Context, slug string, token identity.SessionToken) error {
	raw, err := json.Marshal(token)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.tokens[slug] = raw
	s.mu.Unlock()
	return nil
}

// DeleteToken removes the stored session token
func (s *InMemoryStore) DeleteToken(_ context.Context, slug string) error {
	s.mu.Lock()
	delete(s.tokens, slug)
	s.mu.Unlock()
	return nil
}

// HasToken reports token presence for the slug
func (s *InMemoryStore) HasToken(_ context.Context, slug string) (bool, error) {
	s.mu.RLock()
	_, ok := s.tokens[slug]
	s.mu.RUnlock()
	return ok, nil
}

var _ session.Store = (*InMemoryStore)(nil)
