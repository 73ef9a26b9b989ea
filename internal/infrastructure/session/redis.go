package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/erp/storefront/internal/domain/cart"
	"github.com/erp/storefront/internal/domain/identity"
	"github.com/erp/storefront/internal/domain/session"
	"github.com/erp/storefront/internal/domain/shared"
)

const (
	cartKeySuffix  = ":cart"
	tokenKeySuffix = ":session"
)

// RedisStore implements session.Store on Redis, two keys per slug:
// store:{slug}:cart and store:{slug}:session. Suitable when several gateway
// instances serve the same stores.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	cartTTL   time.Duration
	tokenTTL  time.Duration
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	// CartTTL / TokenTTL of zero mean no expiry
	CartTTL  time.Duration
	TokenTTL time.Duration
}

// NewRedisStore creates a Redis-backed session store and verifies the
// connection
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{
		client:    client,
		keyPrefix: "store:",
		cartTTL:   cfg.CartTTL,
		tokenTTL:  cfg.TokenTTL,
	}, nil
}

// NewRedisStoreWithClient creates a store with an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisStoreWithClient(client *redis.Client, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = "store:"
	}
	return &RedisStore{client: client, keyPrefix: keyPrefix}
}

// Client exposes the underlying Redis client so components like the
// pub/sub relay can share the connection pool
func (s *RedisStore) Client() *redis.Client {
	return s.client
}

func (s *RedisStore) cartKey(slug string) string {
	return s.keyPrefix + slug + cartKeySuffix
}

func (s *RedisStore) tokenKey(slug string) string {
	return s.keyPrefix + slug + tokenKeySuffix
}

// LoadCart returns the persisted cart for the slug
func (s *RedisStore) LoadCart(ctx context.Context, slug string) (*cart.Cart, error) {
	raw, err := s.client.Get(ctx, s.cartKey(slug)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	c := cart.New()
	if err := json.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("failed to decode stored cart: %w", err)
	}
	return c, nil
}

// SaveCart persists the cart for the slug
func (s *RedisStore) SaveCart(ctx context.Context, slug string, c *cart.Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.client.Set(ctx, s.cartKey(slug), raw, s.cartTTL).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// DeleteCart removes the persisted cart entry entirely
func (s *RedisStore) DeleteCart(ctx context.Context, slug string) error {
	if err := s.client.Del(ctx, s.cartKey(slug)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

// LoadToken returns the stored session token for the slug
func (s *RedisStore) LoadToken(ctx context.Context, slug string) (*identity.SessionToken, error) {
	raw, err := s.client.Get(ctx, s.tokenKey(slug)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session token: %w", err)
	}

	var token identity.SessionToken
	if err := json.Unmarshal(raw, &token); err != nil {
		return nil, fmt.Errorf("failed to decode stored session token: %w", err)
	}
	return &token, nil
}

// SaveToken stores the session token for the slug
func (s *RedisStore) SaveToken(ctx context.Context, slug string, token identity.SessionToken) error {
	raw, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode session token: %w", err)
	}
	if err := s.client.Set(ctx, s.tokenKey(slug), raw, s.tokenTTL).Err(); err != nil {
		return fmt.Errorf("failed to save session token: %w", err)
	}
	return nil
}

// DeleteToken removes the stored session token
func (s *RedisStore) DeleteToken(ctx context.Context, slug string) error {
	if err := s.client.Del(ctx, s.tokenKey(slug)).Err(); err != nil {
		return fmt.Errorf("failed to delete session token: %w", err)
	}
	return nil
}

// HasToken reports token presence for the slug
func (s *RedisStore) HasToken(ctx context.Context, slug string) (bool, error) {
	n, err := s.client.Exists(ctx, s.tokenKey(slug)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session token presence: %w", err)
	}
	return n > 0, nil
}

// Close closes the Redis client
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ session.Store = (*RedisStore)(nil)
