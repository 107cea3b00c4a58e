package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ghuser/eventplanner/pkg/app"
	"github.com/ghuser/eventplanner/pkg/config"
	"github.com/ghuser/eventplanner/pkg/database"
	"github.com/ghuser/eventplanner/pkg/events"
	"github.com/ghuser/eventplanner/pkg/logger"
	"github.com/ghuser/eventplanner/pkg/telemetry"
	roadmapSvcs "github.com/ghuser/eventplanner/services/roadmap/application/services"
	roadmapEvents "github.com/ghuser/eventplanner/services/roadmap/domain/events"
	"github.com/ghuser/eventplanner/services/roadmap/infrastructure/persistence/postgres"
)

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

	db, err := database.NewPool(ctx, cfg.DefinitionDatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer db.Close() //nolint:errcheck
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	a := &app.Application{
		Config:   cfg,
		Db:       db,
		Logger:   log,
		EventBus: eventBus,
	}

	if err := registerSubscribers(ctx, a); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	<-ctx.Done()
	log.Info("shutting down worker...")
	// EventBus.Close (deferred) waits for in-flight handlers and closes the
	// error channels drained below.
}

// registerSubscribers wires all domain event handlers.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	recorder := roadmapSvcs.NewActivityRecorder(postgres.NewActivityRepository(a.Db), a.Logger)

	for _, topic := range roadmapEvents.Topics {
		errCh, err := a.EventBus.Subscribe(ctx, topic, recorder.Handle)
		if err != nil {
			return err
		}

		// Drain subscriber errors so the channel never blocks.
		go func() {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
				telemetry.CaptureError(ctx, err)
			}
		}()
	}

	a.Logger.Info("event subscribers registered", "topics", roadmapEvents.Topics)
	return nil
}
