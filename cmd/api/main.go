package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	_ "github.com/ghuser/eventplanner/docs/swagger"
	"github.com/ghuser/eventplanner/pkg/app"
	"github.com/ghuser/eventplanner/pkg/auth"
	"github.com/ghuser/eventplanner/pkg/cache"
	"github.com/ghuser/eventplanner/pkg/config"
	"github.com/ghuser/eventplanner/pkg/database"
	"github.com/ghuser/eventplanner/pkg/events"
	"github.com/ghuser/eventplanner/pkg/httpx"
	"github.com/ghuser/eventplanner/pkg/logger"
	"github.com/ghuser/eventplanner/pkg/telemetry"
	locationApi "github.com/ghuser/eventplanner/services/location/application/api"
	locationSvcs "github.com/ghuser/eventplanner/services/location/application/services"
	roadmapApi "github.com/ghuser/eventplanner/services/roadmap/application/api"
	roadmapSvcs "github.com/ghuser/eventplanner/services/roadmap/application/services"
)

// @title			Event Planner API
// @version		1.0
// @description	Roadmap tracking and location suggestions for marketplace events.
// @host			localhost:8080
// @BasePath		/api
// @schemes		http https
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	// Sentry is optional: log and continue on failure.
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	db, err := database.NewPool(ctx, cfg.DefinitionDatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
	}
	defer db.Close() //nolint:errcheck
	log.Info("database pool connected")

	eventBus, err := events.NewEventBusWithForwarder(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	if err := eventBus.StartForwarder(ctx); err != nil {
		log.Error("failed to start event forwarder", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	sessionStore := auth.NewSessionStore(
		redisClient.Client(),
		redisClient.Key("session"),
		[]byte(cfg.SessionAuthKey),
		[]byte(cfg.SessionEncryptionKey),
		cfg.IsProduction(),
	)
	log.Info("session store initialized", "backend", "redis")

	a := &app.Application{
		Config:       cfg,
		Db:           db,
		Logger:       log,
		EventBus:     eventBus,
		Redis:        redisClient,
		SessionStore: sessionStore,
		HTTPClient:   telemetry.NewHTTPClient(cfg.BackendTimeout),
	}

	roadmap, err := roadmapSvcs.New(a)
	if err != nil {
		log.Error("failed to wire roadmap services", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	location := locationSvcs.New(a)

	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
			HandlerTimeout:     cfg.BackendTimeout + 5*time.Second,
		},
		httpx.Middlewares{
			Recovery: logger.Recovery(log),
			Sentry:   telemetry.SentryMiddleware(),
			Otel:     otelhttp.NewMiddleware(cfg.ServiceName),
			Logger:   logger.Middleware(log),
		},
	)

	r.Get("/health", httpx.HealthHandler(httpx.HealthChecks{
		"database": db,
		"redis":    redisClient,
		"eventbus": eventBus,
		"backend":  roadmap.Backend,
	}))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Route("/api", func(r chi.Router) {
		sessions := auth.NewSessionHandler(sessionStore, log)
		r.Post("/session", sessions.Create)
		r.Delete("/session", sessions.Delete)
		r.With(auth.RequireAuth(sessionStore, log)).Get("/session", sessions.Get)

		registerRoutes(r, a, roadmap, location)
	})

	srv := httpx.NewServer(cfg.HTTPAddr, r)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx) //nolint:contextcheck
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	log.Info("server stopped")
}

// registerRoutes mounts all service routes under /api.
func registerRoutes(r chi.Router, a *app.Application, roadmap *roadmapSvcs.Services, location *locationSvcs.Services) {
	roadmapApi.RoadmapRoutes(r, a, roadmap)
	locationApi.LocationRoutes(r, location)
}
