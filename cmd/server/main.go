package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	cartapp "github.com/erp/storefront/internal/application/cart"
	checkoutapp "github.com/erp/storefront/internal/application/checkout"
	identityapp "github.com/erp/storefront/internal/application/identity"
	ordersapp "github.com/erp/storefront/internal/application/orders"
	storefrontapp "github.com/erp/storefront/internal/application/storefront"
	"github.com/erp/storefront/internal/infrastructure/config"
	"github.com/erp/storefront/internal/infrastructure/crm"
	"github.com/erp/storefront/internal/infrastructure/event"
	"github.com/erp/storefront/internal/infrastructure/logger"
	sessioninfra "github.com/erp/storefront/internal/infrastructure/session"
	"github.com/erp/storefront/internal/infrastructure/telemetry"
	"github.com/erp/storefront/internal/interfaces/http/handler"
	"github.com/erp/storefront/internal/interfaces/http/middleware"
	"github.com/erp/storefront/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting storefront gateway",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Tracing (no-op when disabled)
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Session store: Redis-backed per-slug storage wrapped in the
	// notifying decorator so storage changes fan out through the event bus
	eventBus := event.NewInMemoryEventBus(log)

	factory := sessioninfra.NewStoreFactory(*cfg, sessioninfra.WithLogger(log))
	baseStore, err := factory.CreateStore()
	if err != nil {
		log.Fatal("Failed to create session store", zap.Error(err))
	}
	store := sessioninfra.NewNotifyingStore(baseStore, eventBus)

	// With the Redis backend, bridge storage changes across gateway
	// instances over a pub/sub channel
	if redisStore, ok := baseStore.(*sessioninfra.RedisStore); ok {
		relay := sessioninfra.NewRedisRelay(redisStore.Client(), eventBus, log)
		relay.Start(context.Background())
		defer relay.Stop()
		eventBus.Subscribe(relay)
		log.Info("Storage change relay active", zap.String("backend", "redis"))
	}

	// Upstream CRM client
	crmClient := crm.NewClient(cfg.CRM, log)

	// Application services
	gate := identityapp.NewGate(store, log)
	eventBus.Subscribe(gate)
	log.Info("Presence gate subscribed to storage changes",
		zap.Strings("events", gate.EventTypes()))

	contextService := storefrontapp.NewService(crmClient, log)
	cartService := cartapp.NewService(store, gate, log)
	checkoutService := checkoutapp.NewService(store, gate, crmClient, log)
	ordersService := ordersapp.NewService(gate, crmClient, log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
		MaxAge:       12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(handler.NewSystemHandler()).
		Register(handler.NewStoreHandler(contextService)).
		Register(handler.NewSessionHandler(gate)).
		Register(handler.NewCartHandler(cartService, gate)).
		Register(handler.NewCheckoutHandler(checkoutService, gate)).
		Register(handler.NewOrdersHandler(ordersService, gate)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
