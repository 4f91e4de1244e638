package cron

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweeper is the part of the booking service driven on a timer.
type Sweeper interface {
	SendUpcomingReminders(ctx context.Context, now time.Time) (int, error)
	ExpireStalePending(ctx context.Context, now time.Time) (int, error)
}

const sweepTimeout = 2 * time.Minute

// NewSweepScheduler registers the reminder and expiry sweeps on their cron
// specs. The caller starts and stops the returned scheduler.
func NewSweepScheduler(sweeper Sweeper, reminderSpec, expirySpec string, logger *zap.Logger) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.Recover(cronLogger{logger}), cron.SkipIfStillRunning(cronLogger{logger})))

	if _, err := c.AddFunc(reminderSpec, sweepJob("reminders", sweeper.SendUpcomingReminders, logger)); err != nil {
		return nil, err
	}
	if _, err := c.AddFunc(expirySpec, sweepJob("expiry", sweeper.ExpireStalePending, logger)); err != nil {
		return nil, err
	}
	return c, nil
}

func sweepJob(name string, run func(context.Context, time.Time) (int, error), logger *zap.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()

		n, err := run(ctx, time.Now())
		if err != nil {
			logger.Error("sweep failed", zap.String("sweep", name), zap.Int("processed", n), zap.Error(err))
			return
		}
		logger.Info("sweep completed", zap.String("sweep", name), zap.Int("processed", n))
	}
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
