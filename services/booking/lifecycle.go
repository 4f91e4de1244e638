package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	catalogRepo "servicebook/database/repository/catalog"
	"servicebook/metrics"
	"servicebook/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func validateCreate(req models.CreateBookingRequest) error {
	var missing []string
	if strings.TrimSpace(req.CustomerID) == "" {
		missing = append(missing, "customerId")
	}
	if strings.TrimSpace(req.ProfessionalID) == "" {
		missing = append(missing, "professionalId")
	}
	if strings.TrimSpace(req.ServiceID) == "" {
		missing = append(missing, "serviceId")
	}
	if req.StartTime.IsZero() {
		missing = append(missing, "startTime")
	}
	if len(missing) > 0 {
		return newError("CreateBooking", ErrValidation, "missing %s", strings.Join(missing, ", "))
	}
	for _, a := range req.Addons {
		if a.AddonID == "" {
			return newError("CreateBooking", ErrValidation, "add-on id is required")
		}
		if a.Quantity < 0 {
			return newError("CreateBooking", ErrValidation, "add-on %s has negative quantity %d", a.AddonID, a.Quantity)
		}
	}
	return nil
}

// CreateBooking reserves the professional for the service starting at
// req.StartTime and stores the booking as PENDING.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error) {
	const op = "CreateBooking"
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	if err := s.requireProfessional(ctx, op, req.ProfessionalID); err != nil {
		return nil, err
	}
	svc, err := s.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, wrapError(op, ErrNotFound, err, "service %s", req.ServiceID)
		}
		return nil, fmt.Errorf("%s: lookup service %s: %w", op, req.ServiceID, err)
	}

	duration := svc.Duration()
	start := req.StartTime
	end := start.Add(time.Duration(duration) * time.Minute)

	addons, err := SnapshotAddons(req.Addons, svc.Addons)
	if err != nil {
		return nil, err
	}
	total, err := TotalFromSnapshot(svc.BasePrice, duration, addons, s.pricing)
	if err != nil {
		return nil, err
	}

	lctx, unlock, err := s.lockProfessional(ctx, op, req.ProfessionalID)
	if err != nil {
		return nil, err
	}
	saved, err := func() (models.Booking, error) {
		defer unlock()

		free, err := s.detector.IsAvailable(lctx, req.ProfessionalID, start, end, "")
		if err != nil {
			return models.Booking{}, fmt.Errorf("%s: conflict check: %w", op, err)
		}
		if !free {
			metrics.RecordConflict("create")
			return models.Booking{}, newError(op, ErrSchedulingConflict,
				"professional %s is booked between %s and %s", req.ProfessionalID,
				start.Format(time.RFC3339), end.Format(time.RFC3339))
		}

		now := s.now()
		b := models.Booking{
			ID:                  s.newID(),
			CustomerID:          req.CustomerID,
			ProfessionalID:      req.ProfessionalID,
			ServiceID:           req.ServiceID,
			AddressID:           req.AddressID,
			StartTime:           start,
			EndTime:             end,
			DurationMinutes:     duration,
			Status:              models.StatusPending,
			BasePrice:           svc.BasePrice,
			TotalAmount:         total,
			Addons:              addons,
			SpecialInstructions: req.SpecialInstructions,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		saved, err := s.store.Save(lctx, b)
		if err != nil {
			return models.Booking{}, fmt.Errorf("%s: save booking: %w", op, err)
		}
		return saved, nil
	}()
	if err != nil {
		return nil, err
	}

	metrics.RecordBookingCreated()
	s.logger.Info("booking created",
		zap.String("bookingID", saved.ID),
		zap.String("professionalID", saved.ProfessionalID),
		zap.Time("start", saved.StartTime),
		zap.String("total", saved.TotalAmount.String()))
	s.notify(ctx, models.NotifyCreated, saved.ID)
	return &saved, nil
}

// mutate runs apply on a fresh copy of the booking while holding the
// professional's lock and saves the result when apply reports a change.
// apply receives the lock-scoped context for any storage it reads. The
// stored booking is untouched when apply fails.
func (s *DefaultBookingService) mutate(ctx context.Context, op, bookingID string, apply func(ctx context.Context, b *models.Booking) (bool, error)) (*models.Booking, bool, error) {
	current, err := s.load(ctx, op, bookingID)
	if err != nil {
		return nil, false, err
	}

	lctx, unlock, err := s.lockProfessional(ctx, op, current.ProfessionalID)
	if err != nil {
		return nil, false, err
	}
	defer unlock()

	b, err := s.load(lctx, op, bookingID)
	if err != nil {
		return nil, false, err
	}
	from := b.Status

	changed, err := apply(lctx, b)
	if err != nil || !changed {
		return b, false, err
	}

	saved, err := s.store.Save(lctx, *b)
	if err != nil {
		return nil, false, fmt.Errorf("%s: save booking %s: %w", op, bookingID, err)
	}
	if from != saved.Status {
		metrics.RecordTransition(string(from), string(saved.Status))
	}
	return &saved, true, nil
}

func (s *DefaultBookingService) moveTo(ctx context.Context, op, bookingID string, to models.BookingStatus, kind models.NotificationKind) (*models.Booking, error) {
	b, changed, err := s.mutate(ctx, op, bookingID, func(_ context.Context, b *models.Booking) (bool, error) {
		return true, transition(op, b, to, s.now())
	})
	if err != nil {
		return nil, err
	}
	if changed {
		s.logger.Info("booking status changed", zap.String("bookingID", b.ID), zap.String("status", string(b.Status)))
		s.notify(ctx, kind, b.ID)
	}
	return b, nil
}

// Confirm accepts a pending or rescheduled booking.
func (s *DefaultBookingService) Confirm(ctx context.Context, bookingID string) (*models.Booking, error) {
	return s.moveTo(ctx, "Confirm", bookingID, models.StatusConfirmed, models.NotifyConfirmed)
}

// Start marks a confirmed booking as in progress.
func (s *DefaultBookingService) Start(ctx context.Context, bookingID string) (*models.Booking, error) {
	return s.moveTo(ctx, "Start", bookingID, models.StatusInProgress, models.NotifyStarted)
}

// Complete finishes an in-progress booking.
func (s *DefaultBookingService) Complete(ctx context.Context, bookingID string) (*models.Booking, error) {
	return s.moveTo(ctx, "Complete", bookingID, models.StatusCompleted, models.NotifyCompleted)
}

// Reject declines a pending booking on behalf of the professional.
func (s *DefaultBookingService) Reject(ctx context.Context, bookingID, reason string) (*models.Booking, error) {
	const op = "Reject"
	b, changed, err := s.mutate(ctx, op, bookingID, func(_ context.Context, b *models.Booking) (bool, error) {
		if err := transition(op, b, models.StatusRejected, s.now()); err != nil {
			return false, err
		}
		b.CancellationReason = reason
		b.CancelledBy = models.CancelledByProfessional
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	if changed {
		s.logger.Info("booking rejected", zap.String("bookingID", b.ID), zap.String("reason", reason))
		s.notify(ctx, models.NotifyRejected, b.ID)
	}
	return b, nil
}

// Cancel cancels a live booking. Cancelling an already cancelled booking
// returns it unchanged and emits nothing.
func (s *DefaultBookingService) Cancel(ctx context.Context, bookingID, reason string, cancelledBy models.CancelledBy) (*models.Booking, error) {
	const op = "Cancel"
	if !cancelledBy.Valid() {
		return nil, newError(op, ErrValidation, "unknown cancelledBy %q", cancelledBy)
	}

	b, changed, err := s.mutate(ctx, op, bookingID, func(_ context.Context, b *models.Booking) (bool, error) {
		if b.Status == models.StatusCancelled {
			return false, nil
		}
		if err := transition(op, b, models.StatusCancelled, s.now()); err != nil {
			return false, err
		}
		b.CancellationReason = reason
		b.CancelledBy = cancelledBy
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	if changed {
		s.logger.Info("booking cancelled",
			zap.String("bookingID", b.ID),
			zap.String("cancelledBy", string(cancelledBy)),
			zap.String("reason", reason))
		s.notify(ctx, models.NotifyCancelled, b.ID)
	}
	return b, nil
}

// Reschedule moves a pending or confirmed booking to newStart in place,
// keeping its duration and price.
func (s *DefaultBookingService) Reschedule(ctx context.Context, bookingID string, newStart time.Time) (*models.Booking, error) {
	const op = "Reschedule"
	if newStart.IsZero() {
		return nil, newError(op, ErrValidation, "new start time is required")
	}

	b, changed, err := s.mutate(ctx, op, bookingID, func(ctx context.Context, b *models.Booking) (bool, error) {
		if !CanTransition(b.Status, models.StatusRescheduled) {
			return false, newError(op, ErrInvalidState, "booking %s in status %s cannot be rescheduled", b.ID, b.Status)
		}

		duration := b.DurationMinutes
		if duration <= 0 {
			duration = models.DefaultServiceDurationMinutes
		}
		newEnd := newStart.Add(time.Duration(duration) * time.Minute)

		free, err := s.detector.IsAvailable(ctx, b.ProfessionalID, newStart, newEnd, b.ID)
		if err != nil {
			return false, fmt.Errorf("%s: conflict check: %w", op, err)
		}
		if !free {
			metrics.RecordConflict("reschedule")
			return false, newError(op, ErrSchedulingConflict,
				"professional %s is booked between %s and %s", b.ProfessionalID,
				newStart.Format(time.RFC3339), newEnd.Format(time.RFC3339))
		}

		if err := transition(op, b, models.StatusRescheduled, s.now()); err != nil {
			return false, err
		}
		b.StartTime = newStart
		b.EndTime = newEnd
		b.DurationMinutes = duration
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	if changed {
		s.logger.Info("booking rescheduled", zap.String("bookingID", b.ID), zap.Time("start", b.StartTime))
		s.notify(ctx, models.NotifyRescheduled, b.ID)
	}
	return b, nil
}

// RecalculateTotal recomputes the booking total from its price snapshots
// and stores it when it differs.
func (s *DefaultBookingService) RecalculateTotal(ctx context.Context, bookingID string) (decimal.Decimal, error) {
	const op = "RecalculateTotal"
	b, _, err := s.mutate(ctx, op, bookingID, func(_ context.Context, b *models.Booking) (bool, error) {
		duration := b.DurationMinutes
		if duration <= 0 {
			duration = models.DefaultServiceDurationMinutes
		}
		total, err := TotalFromSnapshot(b.BasePrice, duration, b.Addons, s.pricing)
		if err != nil {
			return false, err
		}
		if total.Equal(b.TotalAmount) {
			return false, nil
		}
		b.TotalAmount = total
		b.UpdatedAt = s.now()
		return true, nil
	})
	if err != nil {
		return decimal.Zero, err
	}
	return b.TotalAmount, nil
}
