package notification

import (
	"context"

	"servicebook/models"

	"go.uber.org/zap"
)

// Notifier receives booking lifecycle events. Delivery is fire-and-forget:
// implementations log their own failures and never report them to the caller.
type Notifier interface {
	Notify(ctx context.Context, kind models.NotificationKind, bookingID string)
}

// LogNotifier records events in the application log only.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n LogNotifier) Notify(_ context.Context, kind models.NotificationKind, bookingID string) {
	n.Logger.Info("booking notification",
		zap.String("kind", string(kind)),
		zap.String("bookingID", bookingID))
}
