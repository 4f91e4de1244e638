package booking

import (
	"context"
	"iter"
	"time"

	"servicebook/models"

	"github.com/shopspring/decimal"
)

// BookingService is the scheduling and lifecycle engine.
type BookingService interface {
	CreateBooking(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error)
	Get(ctx context.Context, bookingID string) (*models.Booking, error)
	ListProfessionalBookings(ctx context.Context, professionalID string, from, to time.Time) ([]models.Booking, error)
	Confirm(ctx context.Context, bookingID string) (*models.Booking, error)
	Start(ctx context.Context, bookingID string) (*models.Booking, error)
	Complete(ctx context.Context, bookingID string) (*models.Booking, error)
	Reject(ctx context.Context, bookingID, reason string) (*models.Booking, error)
	Cancel(ctx context.Context, bookingID, reason string, cancelledBy models.CancelledBy) (*models.Booking, error)
	Reschedule(ctx context.Context, bookingID string, newStart time.Time) (*models.Booking, error)
	RecalculateTotal(ctx context.Context, bookingID string) (decimal.Decimal, error)

	IsAvailable(ctx context.Context, professionalID string, start, end time.Time, excludeBookingID string) (bool, error)
	FindFreeSlots(ctx context.Context, professionalID string, day time.Time, durationMinutes int) (iter.Seq[time.Time], error)
	FindFreeSlotsForService(ctx context.Context, professionalID, serviceID string, day time.Time) (iter.Seq[time.Time], error)

	SendUpcomingReminders(ctx context.Context, now time.Time) (int, error)
	ExpireStalePending(ctx context.Context, now time.Time) (int, error)
}
