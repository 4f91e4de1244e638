package booking

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	catalogRepo "servicebook/database/repository/catalog"
	"servicebook/models"
)

// DefaultSlotStep is the spacing between candidate slot starts.
const DefaultSlotStep = 30 * time.Minute

// FreeSlots yields, in ascending order, every start s aligned to step from
// hours.Open such that [s, s+duration) fits inside hours and overlaps no
// occupying booking. The sequence is finite and can be ranged over again.
func FreeSlots(hours models.WorkingHours, bookings []models.Booking, duration, step time.Duration) iter.Seq[time.Time] {
	if step <= 0 {
		step = DefaultSlotStep
	}
	return func(yield func(time.Time) bool) {
		if duration <= 0 {
			return
		}
		for s := hours.Open; hours.Contains(s, s.Add(duration)); s = s.Add(step) {
			if len(Conflicts(bookings, s, s.Add(duration), "")) > 0 {
				continue
			}
			if !yield(s) {
				return
			}
		}
	}
}

// FindFreeSlots lists the professional's bookable starts on day for a
// booking of durationMinutes.
func (s *DefaultBookingService) FindFreeSlots(ctx context.Context, professionalID string, day time.Time, durationMinutes int) (iter.Seq[time.Time], error) {
	const op = "FindFreeSlots"
	if durationMinutes <= 0 {
		return nil, newError(op, ErrValidation, "duration must be positive, got %d", durationMinutes)
	}
	if professionalID == "" {
		return nil, newError(op, ErrValidation, "professional id is required")
	}
	if err := s.requireProfessional(ctx, op, professionalID); err != nil {
		return nil, err
	}

	hours, err := s.hours.For(ctx, professionalID, day)
	if err != nil {
		return nil, fmt.Errorf("%s: working hours for %s: %w", op, professionalID, err)
	}
	if durationMinutes > hours.Minutes() {
		return FreeSlots(*hours, nil, 0, s.slotStep), nil
	}

	bookings, err := s.store.FindOverlapping(ctx, professionalID, hours.Open, hours.Close)
	if err != nil {
		return nil, err
	}

	return FreeSlots(*hours, bookings, time.Duration(durationMinutes)*time.Minute, s.slotStep), nil
}

// FindFreeSlotsForService is FindFreeSlots with the duration taken from the catalog.
func (s *DefaultBookingService) FindFreeSlotsForService(ctx context.Context, professionalID, serviceID string, day time.Time) (iter.Seq[time.Time], error) {
	svc, err := s.catalog.GetService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, wrapError("FindFreeSlotsForService", ErrNotFound, err, "service %s", serviceID)
		}
		return nil, err
	}
	return s.FindFreeSlots(ctx, professionalID, day, svc.Duration())
}
