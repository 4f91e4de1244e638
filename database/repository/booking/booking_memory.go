package bookingRepo

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"servicebook/models"
)

// MemoryBookingRepo is an in-process BookingStore for tests and local runs.
type MemoryBookingRepo struct {
	mu       sync.RWMutex
	bookings map[string]models.Booking
}

func NewMemoryBookingRepo() *MemoryBookingRepo {
	return &MemoryBookingRepo{bookings: make(map[string]models.Booking)}
}

func (repo *MemoryBookingRepo) Get(ctx context.Context, id string) (*models.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	b, ok := repo.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	out := b.Clone()
	return &out, nil
}

func (repo *MemoryBookingRepo) Save(ctx context.Context, booking models.Booking) (models.Booking, error) {
	if err := ctx.Err(); err != nil {
		return models.Booking{}, err
	}
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.bookings[booking.ID] = booking.Clone()
	return booking.Clone(), nil
}

func (repo *MemoryBookingRepo) FindOverlapping(ctx context.Context, professionalID string, start, end time.Time) ([]models.Booking, error) {
	return repo.filter(ctx, func(b models.Booking) bool {
		return b.ProfessionalID == professionalID && b.Overlaps(start, end)
	})
}

func (repo *MemoryBookingRepo) FindByProfessionalAndRange(ctx context.Context, professionalID string, start, end time.Time) ([]models.Booking, error) {
	return repo.filter(ctx, func(b models.Booking) bool {
		return b.ProfessionalID == professionalID && startsWithin(b, start, end)
	})
}

func (repo *MemoryBookingRepo) FindByRange(ctx context.Context, start, end time.Time) ([]models.Booking, error) {
	return repo.filter(ctx, func(b models.Booking) bool {
		return startsWithin(b, start, end)
	})
}

func (repo *MemoryBookingRepo) FindByStatusStartingBefore(ctx context.Context, status models.BookingStatus, before time.Time) ([]models.Booking, error) {
	return repo.filter(ctx, func(b models.Booking) bool {
		return b.Status == status && b.StartTime.Before(before)
	})
}

func (repo *MemoryBookingRepo) filter(ctx context.Context, keep func(models.Booking) bool) ([]models.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	out := []models.Booking{}
	for _, b := range repo.bookings {
		if keep(b) {
			out = append(out, b.Clone())
		}
	}
	slices.SortFunc(out, func(a, b models.Booking) int {
		if c := a.StartTime.Compare(b.StartTime); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

func startsWithin(b models.Booking, start, end time.Time) bool {
	return !b.StartTime.Before(start) && b.StartTime.Before(end)
}
