package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/vetclinic/pkg/cache"
	"github.com/ghuser/vetclinic/pkg/config"
	"github.com/ghuser/vetclinic/pkg/database"
	"github.com/ghuser/vetclinic/pkg/events"
	"github.com/ghuser/vetclinic/pkg/logger"
	"github.com/ghuser/vetclinic/pkg/workflows"
)

// Application holds shared infrastructure dependencies for all services.
// Pass it to each bounded context's route and worker registration.
//
// Logging: app.Logger is backed by a trace-aware handler. Use the context
// methods and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "stock movement recorded", "item_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config         *config.Config
	Db             *database.Database
	Logger         logger.Logger
	EventBus       *events.EventBus
	Redis          *cache.RedisClient        // nil when CACHE_ENABLED=false
	TemporalClient *workflows.TemporalClient // nil when TEMPORAL_ENABLED=false
	SessionStore   sessions.Store            // Redis-backed session store; nil in worker process
}
