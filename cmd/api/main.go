package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agency_backend/internal/email"
	"agency_backend/internal/events"
	apphttp "agency_backend/internal/http"
	"agency_backend/internal/http/router"
	"agency_backend/internal/notification"
	"agency_backend/internal/quote"
	"agency_backend/internal/scheduler"
	"agency_backend/internal/settings"
	"agency_backend/internal/sheets"
	"agency_backend/platform/config"
	"agency_backend/platform/httpkit"
	"agency_backend/platform/logger"
	"agency_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	sheetsClient := sheets.NewClient(cfg)

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	notifyQueue, closeQueue := initNotifyQueue(cfg, log)
	if closeQueue != nil {
		defer closeQueue()
	}

	sender := email.NewSender(cfg)

	// Shared validator instance for dependency injection
	val := validator.New()

	submitLimiter := httpkit.NewSubmitLimiter(cfg.GetSubmitRateLimit(), cfg.GetSubmitRateWindow(), log)
	submitLimiter.StartSweep(ctx, 5*time.Minute)

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events (not HTTP-facing)
	notificationModule := notification.New(sender, notifyQueue, cfg.GetAdminEmail(), cfg.GetEmailFromName(), log)
	notificationModule.RegisterHandlers(eventBus)

	settingsModule := settings.NewModule(sheetsClient, cfg, log)
	quoteModule := quote.NewModule(sheetsClient, cfg.GetSheetsInquiryRange(), settingsModule.Resolver(), eventBus, val, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:        cfg,
		Logger:        log,
		SubmitLimiter: submitLimiter,
		Modules: []apphttp.Module{
			quoteModule,
			settingsModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		// Let in-flight notification handlers finish before exiting.
		done := make(chan struct{})
		go func() {
			eventBus.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(10 * time.Second):
			log.Warn("timed out waiting for event handlers")
		}
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initNotifyQueue(cfg config.SchedulerConfig, log *logger.Logger) (scheduler.NotifyEnqueuer, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; notifications are sent inline")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize notification queue client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}
