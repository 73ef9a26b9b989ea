package session

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/erp/storefront/internal/domain/session"
	"github.com/erp/storefront/internal/infrastructure/config"
)

// StoreFactory creates session stores based on configuration
type StoreFactory struct {
	cfg             config.Config
	logger          *zap.Logger
	memoryFallback  bool
}

// StoreFactoryOption is a functional option for configuring the factory
type StoreFactoryOption func(*StoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) StoreFactoryOption {
	return func(f *StoreFactory) {
		f.logger = logger
	}
}

// WithMemoryFallback controls whether to fall back to the in-memory store
// when Redis is unavailable. Default is true.
func WithMemoryFallback(allow bool) StoreFactoryOption {
	return func(f *StoreFactory) {
		f.memoryFallback = allow
	}
}

// NewStoreFactory creates a new factory
func NewStoreFactory(cfg config.Config, opts ...StoreFactoryOption) *StoreFactory {
	f := &StoreFactory{
		cfg:            cfg,
		logger:         zap.NewNop(),
		memoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateStore creates a session store per the configured backend. With the
// redis backend and fallback enabled, an unreachable Redis degrades to the
// in-memory store; carts then no longer survive a restart, which is logged
// loudly.
func (f *StoreFactory) CreateStore() (session.Store, error) {
	if f.cfg.Session.Backend == "memory" {
		f.logger.Info("using in-memory session store")
		return NewInMemoryStore(), nil
	}

	store, err := NewRedisStore(RedisConfig{
		Host:     f.cfg.Redis.Host,
		Port:     f.cfg.Redis.Port,
		Password: f.cfg.Redis.Password,
		DB:       f.cfg.Redis.DB,
		CartTTL:  f.cfg.Session.CartTTL,
		TokenTTL: f.cfg.Session.TokenTTL,
	})
	if err == nil {
		f.logger.Info("using Redis session store")
		return store, nil
	}

	if !f.memoryFallback {
		return nil, fmt.Errorf("redis session store required but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory session store; "+
		"carts and sessions will not survive a restart",
		zap.Error(err),
	)
	return NewInMemoryStore(), nil
}
