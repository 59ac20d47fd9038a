package scheduler

import (
	"context"
	"fmt"

	"agency_backend/internal/email"
	"agency_backend/platform/config"
	"agency_backend/platform/logger"

	"github.com/hibiken/asynq"
)

type Worker struct {
	server      *asynq.Server
	mux         *asynq.ServeMux
	sender      email.Sender
	adminEmail  string
	companyName string
	log         *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, emailCfg config.EmailConfig, sender email.Sender, companyName string, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:      server,
		mux:         mux,
		sender:      sender,
		adminEmail:  emailCfg.GetAdminEmail(),
		companyName: companyName,
		log:         log,
	}

	mux.HandleFunc(TaskQuoteNotify, w.handleQuoteNotify)

	return w, nil
}

// handleQuoteNotify sends the studio alert and, for email contacts, the
// client confirmation. Returning an error lets asynq retry the task.
func (w *Worker) handleQuoteNotify(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseQuoteNotifyPayload(task)
	if err != nil {
		return err
	}

	if w.adminEmail != "" {
		if err := w.sender.SendQuoteReceivedEmail(ctx, w.adminEmail, email.QuoteReceivedData{
			QuoteNumber:       payload.QuoteNumber,
			ClientName:        payload.ClientName,
			ClientEmail:       payload.ClientEmail,
			ClientPhone:       payload.ClientPhone,
			ContactMethod:     payload.ContactMethod,
			EstimateFormatted: payload.EstimateFormatted,
		}); err != nil {
			return err
		}
	}

	if payload.ContactMethod == "email" && payload.ClientEmail != "" {
		if err := w.sender.SendQuoteConfirmationEmail(ctx, payload.ClientEmail, email.QuoteConfirmationData{
			ClientName:        payload.ClientName,
			QuoteNumber:       payload.QuoteNumber,
			EstimateFormatted: payload.EstimateFormatted,
			CompanyName:       w.companyName,
		}); err != nil {
			return err
		}
	}

	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
