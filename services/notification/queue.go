package notification

import (
	"context"
	"time"

	"servicebook/metrics"
	"servicebook/models"
	"servicebook/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// enqueuer is the part of *asynq.Client the notifier needs.
type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueNotifier hands events to the asynq notification queue; the worker
// delivers them with retries.
type QueueNotifier struct {
	client   enqueuer
	logger   *zap.Logger
	maxRetry int
	now      func() time.Time
}

func NewQueueNotifier(client *asynq.Client, logger *zap.Logger, maxRetry int) *QueueNotifier {
	return &QueueNotifier{client: client, logger: logger, maxRetry: maxRetry, now: time.Now}
}

func (n *QueueNotifier) Notify(ctx context.Context, kind models.NotificationKind, bookingID string) {
	task, opts, err := tasks.NewNotificationTask(models.NotificationPayload{
		Kind:      kind,
		BookingID: bookingID,
		QueuedAt:  n.now(),
	}, n.maxRetry)
	if err != nil {
		n.logger.Error("failed to build notification task", zap.String("bookingID", bookingID), zap.Error(err))
		metrics.RecordNotification(string(kind), metrics.OutcomeError)
		return
	}

	info, err := n.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		n.logger.Error("failed to enqueue notification",
			zap.String("kind", string(kind)),
			zap.String("bookingID", bookingID),
			zap.Error(err))
		metrics.RecordNotification(string(kind), metrics.OutcomeError)
		return
	}

	n.logger.Debug("notification queued",
		zap.String("kind", string(kind)),
		zap.String("bookingID", bookingID),
		zap.String("taskID", info.ID))
	metrics.RecordNotification(string(kind), metrics.OutcomeQueued)
}
