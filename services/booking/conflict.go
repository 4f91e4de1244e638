package booking

import (
	"context"
	"time"

	bookingRepo "servicebook/database/repository/booking"
	"servicebook/models"
)

// Conflicts returns the occupying bookings in bookings that overlap
// [start, end), skipping excludeID.
func Conflicts(bookings []models.Booking, start, end time.Time, excludeID string) []models.Booking {
	var out []models.Booking
	for _, b := range bookings {
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if !b.Status.IsOccupying() {
			continue
		}
		if b.Overlaps(start, end) {
			out = append(out, b)
		}
	}
	return out
}

// ConflictDetector answers whether a professional is free for a window.
type ConflictDetector struct {
	store bookingRepo.BookingStore
}

func NewConflictDetector(store bookingRepo.BookingStore) *ConflictDetector {
	return &ConflictDetector{store: store}
}

// IsAvailable reports whether [start, end) is free of occupying bookings for
// the professional, ignoring excludeID. An empty or inverted window is never
// available and is answered without touching storage.
func (d *ConflictDetector) IsAvailable(ctx context.Context, professionalID string, start, end time.Time, excludeID string) (bool, error) {
	if !start.Before(end) {
		return false, nil
	}
	found, err := d.conflicts(ctx, professionalID, start, end, excludeID)
	if err != nil {
		return false, err
	}
	return len(found) == 0, nil
}

func (d *ConflictDetector) conflicts(ctx context.Context, professionalID string, start, end time.Time, excludeID string) ([]models.Booking, error) {
	stored, err := d.store.FindOverlapping(ctx, professionalID, start, end)
	if err != nil {
		return nil, err
	}
	return Conflicts(stored, start, end, excludeID), nil
}
