package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"agency_backend/internal/email"
	"agency_backend/internal/scheduler"
	"agency_backend/platform/config"
	"agency_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sender := email.NewSender(cfg)

	worker, err := scheduler.NewWorker(cfg, cfg, sender, cfg.GetEmailFromName(), log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
}
