package notification

import (
	"context"
	"fmt"

	"servicebook/models"

	"go.uber.org/zap"
)

// Message is a rendered notification ready for a delivery channel.
type Message struct {
	Recipients []string
	Title      string
	Body       string
	Data       map[string]string
}

// Sender delivers a rendered message. Push, SMS and email channels plug in here.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender writes messages to the log instead of a real channel.
type LogSender struct {
	Logger *zap.Logger
}

func (s LogSender) Send(_ context.Context, msg Message) error {
	s.Logger.Info("notification delivered",
		zap.Strings("recipients", msg.Recipients),
		zap.String("title", msg.Title),
		zap.String("body", msg.Body),
		zap.Any("data", msg.Data))
	return nil
}

// Render builds the message for a lifecycle event on b.
func Render(kind models.NotificationKind, b models.Booking) Message {
	when := b.StartTime.Format("Jan 2, 2006 at 3:04 PM")
	msg := Message{
		Recipients: []string{b.CustomerID, b.ProfessionalID},
		Data: map[string]string{
			"type":      string(kind),
			"bookingId": b.ID,
			"status":    string(b.Status),
		},
	}

	switch kind {
	case models.NotifyCreated:
		msg.Title = "New Booking Request"
		msg.Body = fmt.Sprintf("Booking %s requested for %s.", b.ID, when)
	case models.NotifyConfirmed:
		msg.Title = "Booking Confirmed"
		msg.Body = fmt.Sprintf("Your booking on %s has been confirmed.", when)
	case models.NotifyStarted:
		msg.Title = "Service Started"
		msg.Body = fmt.Sprintf("Booking %s is now in progress.", b.ID)
	case models.NotifyRescheduled:
		msg.Title = "Booking Rescheduled"
		msg.Body = fmt.Sprintf("Booking %s moved to %s.", b.ID, when)
	case models.NotifyCancelled:
		msg.Title = "Booking Cancelled"
		msg.Body = fmt.Sprintf("Booking %s on %s was cancelled.", b.ID, when)
		if b.CancellationReason != "" {
			msg.Body += " Reason: " + b.CancellationReason
		}
	case models.NotifyRejected:
		msg.Title = "Booking Rejected"
		msg.Body = fmt.Sprintf("Booking %s on %s was declined by the professional.", b.ID, when)
		msg.Recipients = []string{b.CustomerID}
	case models.NotifyExpired:
		msg.Title = "Booking Expired"
		msg.Body = fmt.Sprintf("Booking %s on %s expired before it was confirmed.", b.ID, when)
	case models.NotifyCompleted:
		msg.Title = "Service Completed"
		msg.Body = fmt.Sprintf("Booking %s is complete. Total %s.", b.ID, b.TotalAmount.StringFixed(2))
	case models.NotifyReminder:
		msg.Title = "Upcoming Booking"
		msg.Body = fmt.Sprintf("Reminder: your booking starts %s.", when)
	default:
		msg.Title = "Booking Update"
		msg.Body = fmt.Sprintf("Booking %s was updated.", b.ID)
	}
	return msg
}
