package identity

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/erp/storefront/internal/domain/identity"
	"github.com/erp/storefront/internal/domain/session"
	"github.com/erp/storefront/internal/domain/shared"
)

// Gate is the auth presence gate: a store's cart, checkout, and order views
// are inaccessible without a locally stored token for that slug. The gate
// checks presence only; token validity is discovered reactively when an
// upstream call fails with 401/403.
//
// The gate subscribes to storage-change events so an external logout (the
// cross-tab signal) flips the state without polling.
type Gate struct {
	store  session.Store
	logger *zap.Logger

	mu        sync.RWMutex
	listeners []func(slug string, state identity.State)
}

// NewGate creates a presence gate over the session store
func NewGate(store session.Store, logger *zap.Logger) *Gate {
	return &Gate{store: store, logger: logger}
}

// StateFor derives the access state from token presence. Called on every
// slug change and whenever a storage-change notification arrives.
func (g *Gate) StateFor(ctx context.Context, slug string) (identity.State, error) {
	present, err := g.store.HasToken(ctx, slug)
	if err != nil {
		return identity.StateLocked, err
	}
	return identity.StateForPresence(present), nil
}

// Token returns the stored session token for the slug. Absence yields
// shared.ErrNoSession; a stored token missing its user id or credential
// yields shared.ErrSessionInvalid. Both are local precondition failures,
// surfaced before any network call.
func (g *Gate) Token(ctx context.Context, slug string) (*identity.SessionToken, error) {
	token, err := g.store.LoadToken(ctx, slug)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	if err := token.Validate(); err != nil {
		return nil, err
	}
	return token, nil
}

// Login stores a token handed off by the external login flow
func (g *Gate) Login(ctx context.Context, slug string, token identity.SessionToken) error {
	if err := token.Validate(); err != nil {
		return err
	}
	if err := g.store.SaveToken(ctx, slug, token); err != nil {
		return err
	}

	if info, err := token.Inspect(); err == nil {
		g.logger.Debug("session token stored",
			zap.String("store_slug", slug),
			zap.String("subject", info.Subject),
			zap.Time("expires_at", info.ExpiresAt),
		)
	}
	return nil
}

// Logout deletes the token and the cart for the slug
func (g *Gate) Logout(ctx context.Context, slug string) error {
	if err := g.store.DeleteToken(ctx, slug); err != nil {
		return err
	}
	return g.store.DeleteCart(ctx, slug)
}

// HandleAuthFailure discards the stored token after the upstream API
// reported 401/403 for it. The next view render lands in the locked state
// and the customer re-authenticates.
func (g *Gate) HandleAuthFailure(ctx context.Context, slug string) {
	if err := g.store.DeleteToken(ctx, slug); err != nil {
		g.logger.Warn("failed to discard rejected session token",
			zap.String("store_slug", slug),
			zap.Error(err),
		)
	}
}

// OnStateChange registers a listener notified whenever a storage-change
// event flips the derived state
func (g *Gate) OnStateChange(fn func(slug string, state identity.State)) {
	g.mu.Lock()
	g.listeners = append(g.listeners, fn)
	g.mu.Unlock()
}

// Handle re-evaluates presence when the session token storage changes.
// Implements shared.EventHandler.
func (g *Gate) Handle(ctx context.Context, ev shared.DomainEvent) error {
	state, err := g.StateFor(ctx, ev.StoreSlug())
	if err != nil {
		return err
	}

	g.logger.Debug("session storage changed, presence re-evaluated",
		zap.String("store_slug", ev.StoreSlug()),
		zap.String("state", string(state)),
	)

	g.mu.RLock()
	listeners := make([]func(string, identity.State), len(g.listeners))
	copy(listeners, g.listeners)
	g.mu.RUnlock()
	for _, fn := range listeners {
		fn(ev.StoreSlug(), state)
	}
	return nil
}

// EventTypes subscribes the gate to token storage changes only; cart
// changes do not affect presence
func (g *Gate) EventTypes() []string {
	return []string{
		shared.EventTypeSessionTokenStored,
		shared.EventTypeSessionTokenRemoved,
	}
}

var _ shared.EventHandler = (*Gate)(nil)
