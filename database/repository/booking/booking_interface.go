package bookingRepo

import (
	"context"
	"errors"
	"time"

	"servicebook/models"
)

// ErrBookingNotFound is returned by Get when no booking has the given id.
var ErrBookingNotFound = errors.New("booking not found")

// BookingStore is the persistence boundary of the scheduling engine.
type BookingStore interface {
	// Get loads a booking by id or returns ErrBookingNotFound.
	Get(ctx context.Context, id string) (*models.Booking, error)
	// Save inserts or replaces the booking keyed by its id.
	Save(ctx context.Context, booking models.Booking) (models.Booking, error)
	// FindOverlapping returns the professional's bookings, in any status, whose
	// [StartTime, EndTime) intersects [start, end), ordered by start time.
	FindOverlapping(ctx context.Context, professionalID string, start, end time.Time) ([]models.Booking, error)
	// FindByProfessionalAndRange returns the professional's bookings starting in [start, end).
	FindByProfessionalAndRange(ctx context.Context, professionalID string, start, end time.Time) ([]models.Booking, error)
	// FindByRange returns every booking starting in [start, end).
	FindByRange(ctx context.Context, start, end time.Time) ([]models.Booking, error)
	// FindByStatusStartingBefore returns every booking in status whose start is before before.
	FindByStatusStartingBefore(ctx context.Context, status models.BookingStatus, before time.Time) ([]models.Booking, error)
}
