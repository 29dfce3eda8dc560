package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ghuser/vetclinic/pkg/app"
	"github.com/ghuser/vetclinic/pkg/cache"
	"github.com/ghuser/vetclinic/pkg/config"
	"github.com/ghuser/vetclinic/pkg/database"
	"github.com/ghuser/vetclinic/pkg/events"
	"github.com/ghuser/vetclinic/pkg/logger"
	"github.com/ghuser/vetclinic/pkg/scheduler"
	"github.com/ghuser/vetclinic/pkg/telemetry"
	"github.com/ghuser/vetclinic/pkg/workflows"
	appsvcs "github.com/ghuser/vetclinic/services/inventory/application/services"
	"github.com/ghuser/vetclinic/services/inventory/application/subscribers"
	invworkflows "github.com/ghuser/vetclinic/services/inventory/application/workflows"
)

const reconcileTimeout = 15 * time.Minute

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

	log := logger.New(cfg).With("process", "worker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(pool, cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	// EventBus.Close waits up to 30s for in-flight handlers.
	defer eventBus.Close() //nolint:errcheck

	a := &app.Application{
		Config:   cfg,
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
	}

	if cfg.CacheEnabled {
		redisClient, err := cache.NewRedisClient(ctx, cfg)
		if err != nil {
			log.Error("failed to connect to redis", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer redisClient.Close() //nolint:errcheck
		a.Redis = redisClient
		log.Info("redis connected")
	}

	svcs := appsvcs.New(a)

	if err := subscribers.Register(ctx, eventBus, svcs.Catalog, log); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	stopReconciliation, err := startReconciliation(ctx, a, svcs.Reconciliation)
	if err != nil {
		log.Error("failed to schedule reconciliation", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancel()
	stopReconciliation()
	log.Info("worker stopped")
}

// startReconciliation schedules the periodic ledger reconciliation on
// Temporal when enabled, otherwise on an in-process cron. The returned func
// stops whichever runner was started.
func startReconciliation(ctx context.Context, a *app.Application, svc *appsvcs.ReconciliationService) (func(), error) {
	cfg, log := a.Config, a.Logger

	if cfg.TemporalEnabled {
		tc, err := workflows.NewTemporalClient(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		a.TemporalClient = tc

		w := tc.NewWorker()
		invworkflows.Register(w, invworkflows.NewActivities(svc))
		if err := w.Start(); err != nil {
			tc.Close()
			return nil, err
		}
		if err := invworkflows.ScheduleCron(ctx, tc.Client, tc.TaskQueue, cfg.ReconcileSchedule); err != nil {
			w.Stop()
			tc.Close()
			return nil, err
		}
		log.Info("reconciliation scheduled on temporal", "task_queue", tc.TaskQueue, "schedule", cfg.ReconcileSchedule)
		return func() {
			w.Stop()
			tc.Close()
		}, nil
	}

	s := scheduler.New(log)
	err := s.Add(invworkflows.ReconciliationWorkflowName, cfg.ReconcileSchedule, reconcileTimeout, func(ctx context.Context) error {
		_, err := svc.Run(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.Start()
	return func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		s.Stop(stopCtx)
	}, nil
}
