package models

import "time"

// NotificationKind names a booking lifecycle event.
type NotificationKind string

const (
	NotifyCreated     NotificationKind = "Created"
	NotifyConfirmed   NotificationKind = "Confirmed"
	NotifyStarted     NotificationKind = "Started"
	NotifyRescheduled NotificationKind = "Rescheduled"
	NotifyCancelled   NotificationKind = "Cancelled"
	NotifyRejected    NotificationKind = "Rejected"
	NotifyExpired     NotificationKind = "Expired"
	NotifyCompleted   NotificationKind = "Completed"
	NotifyReminder    NotificationKind = "Reminder"
)

// NotificationPayload is the queued form of a lifecycle event.
type NotificationPayload struct {
	Kind      NotificationKind `json:"kind"`
	BookingID string           `json:"bookingId"`
	QueuedAt  time.Time        `json:"queuedAt"`
}
