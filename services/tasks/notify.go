package tasks

import (
	"encoding/json"
	"servicebook/models"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TypeBookingNotify = "booking:notify"
	NotificationQueue = "notifications"
)

func NewNotificationTask(payload models.NotificationPayload, maxRetry int) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingNotify, b)
	opts := []asynq.Option{
		asynq.Queue(NotificationQueue),
		asynq.MaxRetry(maxRetry),
		asynq.Timeout(30 * time.Second),
	}

	return task, opts, nil
}

func ParseNotificationTask(task *asynq.Task) (models.NotificationPayload, error) {
	var p models.NotificationPayload
	err := json.Unmarshal(task.Payload(), &p)
	return p, err
}
