package app

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/eventplanner/pkg/cache"
	"github.com/ghuser/eventplanner/pkg/config"
	"github.com/ghuser/eventplanner/pkg/database"
	"github.com/ghuser/eventplanner/pkg/events"
	"github.com/ghuser/eventplanner/pkg/logger"
)

// Application holds shared infrastructure dependencies for all services.
// Pass it to each service's New and Routes functions during start-up.
//
// Logging: app.Logger is backed by a trace-aware handler. Use the context
// methods so trace_id, span_id and request_id are attached:
//
//	app.Logger.InfoContext(ctx, "roadmap item created", "item_id", id)
//
// Fields a process does not use are nil: the worker has no SessionStore and
// no HTTPClient.
type Application struct {
	Config       *config.Config
	Db           *database.Database
	Logger       logger.Logger
	EventBus     *events.EventBus
	Redis        *cache.RedisClient
	SessionStore sessions.Store
	HTTPClient   *http.Client // otelhttp-instrumented, for outbound calls
}
