package booking

import (
	"context"
	"errors"
	"time"

	"servicebook/metrics"
	"servicebook/models"

	"go.uber.org/zap"
)

// ReminderWindow is how far ahead SendUpcomingReminders looks.
const ReminderWindow = 24 * time.Hour

// SendUpcomingReminders emits a Reminder for every live booking starting in
// [now, now+24h). It does not remember earlier runs, so calling it twice
// reminds twice.
func (s *DefaultBookingService) SendUpcomingReminders(ctx context.Context, now time.Time) (int, error) {
	bookings, err := s.store.FindByRange(ctx, now, now.Add(ReminderWindow))
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, b := range bookings {
		if err := ctx.Err(); err != nil {
			metrics.RecordSweep("reminder", sent)
			return sent, err
		}
		if !b.Status.IsOccupying() || b.Status.IsTerminal() {
			continue
		}
		s.notify(ctx, models.NotifyReminder, b.ID)
		sent++
	}

	metrics.RecordSweep("reminder", sent)
	s.logger.Info("reminder sweep finished", zap.Int("sent", sent), zap.Time("now", now))
	return sent, nil
}

// ExpireStalePending moves every PENDING booking whose start has passed to
// EXPIRED. Failures on single bookings are logged and returned joined; the
// sweep carries on with the rest.
func (s *DefaultBookingService) ExpireStalePending(ctx context.Context, now time.Time) (int, error) {
	const op = "ExpireStalePending"
	bookings, err := s.store.FindByStatusStartingBefore(ctx, models.StatusPending, now)
	if err != nil {
		return 0, err
	}

	expired := 0
	var errs []error
	for _, candidate := range bookings {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if candidate.Status != models.StatusPending {
			continue
		}

		b, changed, err := s.mutate(ctx, op, candidate.ID, func(_ context.Context, b *models.Booking) (bool, error) {
			// Confirmed or cancelled since the scan.
			if b.Status != models.StatusPending {
				return false, nil
			}
			return true, transition(op, b, models.StatusExpired, s.now())
		})
		if err != nil {
			s.logger.Warn("failed to expire booking", zap.String("bookingID", candidate.ID), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		if changed {
			expired++
			s.notify(ctx, models.NotifyExpired, b.ID)
		}
	}

	metrics.RecordSweep("expiry", expired)
	s.logger.Info("expiry sweep finished", zap.Int("expired", expired), zap.Time("now", now))
	return expired, errors.Join(errs...)
}
