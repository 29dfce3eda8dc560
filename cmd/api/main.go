package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/ghuser/vetclinic/docs/swagger"
	"github.com/ghuser/vetclinic/pkg/app"
	"github.com/ghuser/vetclinic/pkg/auth"
	"github.com/ghuser/vetclinic/pkg/cache"
	"github.com/ghuser/vetclinic/pkg/config"
	"github.com/ghuser/vetclinic/pkg/database"
	"github.com/ghuser/vetclinic/pkg/events"
	"github.com/ghuser/vetclinic/pkg/httpx"
	"github.com/ghuser/vetclinic/pkg/logger"
	"github.com/ghuser/vetclinic/pkg/telemetry"
	inventoryApi "github.com/ghuser/vetclinic/services/inventory/application/api"
)

// @title					Vet Clinic Inventory API
// @version				1.0
// @description			Stock ledger and transaction engine for veterinary clinic inventory.
// @contact.name			Clinic Platform Team
// @license.name			MIT
// @license.url			https://opensource.org/licenses/MIT
// @host					localhost:8080
// @BasePath				/api
// @schemes				http https
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)
	production := cfg.Environment == config.EnvProduction

	ctx := context.Background()
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	// Sentry is optional: log and continue on failure.
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBusWithForwarder(pool, cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	if err := eventBus.StartForwarder(ctx); err != nil {
		log.Error("failed to start event forwarder", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	a := &app.Application{
		Config:   cfg,
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
	}
	health := httpx.HealthChecks{Database: pool, EventBus: eventBus}

	if cfg.CacheEnabled {
		redisClient, err := cache.NewRedisClient(ctx, cfg)
		if err != nil {
			log.Error("failed to connect to redis", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer redisClient.Close() //nolint:errcheck
		log.Info("redis connected")

		a.Redis = redisClient
		health.Redis = redisClient
	} else {
		log.Warn("item cache disabled; reads go straight to postgres")
	}

	a.SessionStore = newSessionStore(cfg, a.Redis, production)

	r := httpx.NewRouter(
		httpx.ServerConfig{
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		},
		httpx.Middlewares{
			Recovery: logger.Recovery(log),
			Sentry:   telemetry.SentryMiddleware(),
			Tracing:  otelhttp.NewMiddleware(cfg.ServiceName),
			Logger:   logger.Middleware(log),
		},
	)

	r.Get("/health", httpx.HealthHandler(health))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	if !production {
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	}
	r.Route("/api", func(r chi.Router) {
		registerRoutes(r, a)
	})

	srv := httpx.NewServer(cfg.HTTPAddr, r)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment,
			"cache", cfg.CacheEnabled, "auth_required", cfg.AuthRequired)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// newSessionStore prefers the Redis-backed store and falls back to signed
// cookies when the cache is disabled.
func newSessionStore(cfg *config.Config, redisClient *cache.RedisClient, secure bool) sessions.Store {
	authKey, encKey := []byte(cfg.SessionAuthKey), []byte(cfg.SessionEncryptionKey)
	if redisClient == nil {
		return auth.NewCookieSessionStore(authKey, encKey, secure)
	}
	return auth.NewSessionStore(redisClient.Client(), authKey, encKey, secure)
}

// registerRoutes mounts all service routes under /api.
func registerRoutes(r chi.Router, a *app.Application) {
	inventoryApi.InventoryRoutes(r, a)
}
