package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"servicebook/models"
	"servicebook/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockEnqueuer struct {
	mock.Mock
}

func (m *mockEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(ctx, task)
	info, _ := args.Get(0).(*asynq.TaskInfo)
	return info, args.Error(1)
}

func TestQueueNotifier_EnqueuesNotifyTask(t *testing.T) {
	enq := new(mockEnqueuer)
	queued := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	n := &QueueNotifier{client: enq, logger: zap.NewNop(), maxRetry: 5, now: func() time.Time { return queued }}

	enq.On("EnqueueContext", mock.Anything, mock.MatchedBy(func(task *asynq.Task) bool {
		if task.Type() != tasks.TypeBookingNotify {
			return false
		}
		p, err := tasks.ParseNotificationTask(task)
		return err == nil && p.Kind == models.NotifyConfirmed && p.BookingID == "b-1" && p.QueuedAt.Equal(queued)
	})).Return(&asynq.TaskInfo{ID: "task-1"}, nil).Once()

	n.Notify(context.Background(), models.NotifyConfirmed, "b-1")

	enq.AssertExpectations(t)
}

func TestQueueNotifier_SwallowsEnqueueFailure(t *testing.T) {
	enq := new(mockEnqueuer)
	n := &QueueNotifier{client: enq, logger: zap.NewNop(), maxRetry: 5, now: time.Now}
	enq.On("EnqueueContext", mock.Anything, mock.Anything).Return(nil, errors.New("redis down")).Once()

	assert.NotPanics(t, func() {
		n.Notify(context.Background(), models.NotifyCancelled, "b-2")
	})
	enq.AssertExpectations(t)
}

func TestRender(t *testing.T) {
	b := models.Booking{
		ID:                 "b-1",
		CustomerID:         "c-1",
		ProfessionalID:     "p-1",
		StartTime:          time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		Status:             models.StatusCancelled,
		CancellationReason: "sick",
		TotalAmount:        decimal.RequireFromString("120"),
	}

	msg := Render(models.NotifyCancelled, b)
	assert.Equal(t, "Booking Cancelled", msg.Title)
	assert.Contains(t, msg.Body, "Reason: sick")
	assert.ElementsMatch(t, []string{"c-1", "p-1"}, msg.Recipients)
	assert.Equal(t, "b-1", msg.Data["bookingId"])

	rejected := Render(models.NotifyRejected, b)
	assert.Equal(t, []string{"c-1"}, rejected.Recipients)

	completed := Render(models.NotifyCompleted, b)
	assert.Contains(t, completed.Body, "120.00")
}

func TestLogSenderAndNotifier(t *testing.T) {
	require.NoError(t, LogSender{Logger: zap.NewNop()}.Send(context.Background(), Message{Title: "x"}))
	assert.NotPanics(t, func() {
		LogNotifier{Logger: zap.NewNop()}.Notify(context.Background(), models.NotifyCreated, "b-1")
	})
}
