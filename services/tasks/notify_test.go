package tasks

import (
	"testing"
	"time"

	"servicebook/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationTask_PayloadSurvivesQueueing(t *testing.T) {
	queued := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	task, opts, err := NewNotificationTask(models.NotificationPayload{
		Kind:      models.NotifyReminder,
		BookingID: "b-1",
		QueuedAt:  queued,
	}, 3)
	require.NoError(t, err)
	assert.Equal(t, TypeBookingNotify, task.Type())
	assert.Len(t, opts, 3)

	p, err := ParseNotificationTask(task)
	require.NoError(t, err)
	assert.Equal(t, models.NotifyReminder, p.Kind)
	assert.Equal(t, "b-1", p.BookingID)
	assert.True(t, queued.Equal(p.QueuedAt))
}

func TestParseNotificationTask_RejectsGarbage(t *testing.T) {
	_, err := ParseNotificationTask(asynqTask("not json"))
	assert.Error(t, err)
}

func asynqTask(payload string) *asynq.Task {
	return asynq.NewTask(TypeBookingNotify, []byte(payload))
}
