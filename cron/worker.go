package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"servicebook/config"
	bookingRepo "servicebook/database/repository/booking"
	"servicebook/metrics"
	"servicebook/services/notification"
	"servicebook/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// RedisOpt builds the asynq connection from the queue Redis settings.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NotificationWorker delivers queued booking notifications.
type NotificationWorker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	logger *zap.Logger
}

func NewNotificationWorker(redisOpt asynq.RedisClientOpt, store bookingRepo.BookingStore, sender notification.Sender, concurrency int, logger *zap.Logger) *NotificationWorker {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				tasks.NotificationQueue: 1,
			},
			Logger:   logger.Sugar(),
			LogLevel: asynq.WarnLevel,
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingNotify, HandleNotificationTask(store, sender, logger))

	return &NotificationWorker{srv: srv, mux: mux, logger: logger}
}

// Start runs the worker in the background, retrying startup with backoff.
func (w *NotificationWorker) Start() {
	go func() {
		w.logger.Info("starting notification worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := w.srv.Start(w.mux)
			if err == nil {
				return
			}
			w.logger.Error("notification worker failed to start",
				zap.Int("attempt", attempts),
				zap.Int("maxAttempts", maxAttempts),
				zap.Error(err))
			if attempts == maxAttempts {
				w.logger.Error("notification worker gave up; notifications stay queued")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
}

func (w *NotificationWorker) Shutdown() {
	w.srv.Shutdown()
}

// HandleNotificationTask renders the event against the current booking and
// hands it to the sender. Bad payloads and vanished bookings are not retried.
func HandleNotificationTask(store bookingRepo.BookingStore, sender notification.Sender, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseNotificationTask(task)
		if err != nil {
			logger.Error("invalid notification payload", zap.Error(err))
			return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
		}

		b, err := store.Get(ctx, p.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				logger.Warn("notification for unknown booking dropped",
					zap.String("kind", string(p.Kind)),
					zap.String("bookingID", p.BookingID))
				return fmt.Errorf("booking %s: %v: %w", p.BookingID, err, asynq.SkipRetry)
			}
			return err
		}

		if err := sender.Send(ctx, notification.Render(p.Kind, *b)); err != nil {
			logger.Warn("notification delivery failed",
				zap.String("kind", string(p.Kind)),
				zap.String("bookingID", p.BookingID),
				zap.Error(err))
			metrics.RecordNotification(string(p.Kind), metrics.OutcomeError)
			return err
		}

		metrics.RecordNotification(string(p.Kind), metrics.OutcomeDelivered)
		logger.Debug("notification delivered",
			zap.String("kind", string(p.Kind)),
			zap.String("bookingID", p.BookingID),
			zap.Duration("queueLatency", time.Since(p.QueuedAt)))
		return nil
	}
}
