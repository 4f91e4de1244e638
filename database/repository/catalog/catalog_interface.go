package catalogRepo

import (
	"context"
	"errors"
	"time"

	"servicebook/models"
)

// ErrServiceNotFound is returned by GetService for an unknown service id.
var ErrServiceNotFound = errors.New("service not found")

// CatalogLookup resolves the catalog inputs of a booking.
type CatalogLookup interface {
	GetService(ctx context.Context, serviceID string) (*models.Service, error)
	ProfessionalExists(ctx context.Context, professionalID string) (bool, error)
}

// ScheduleLookup supplies per-professional working hours. A nil result with a
// nil error means the professional has no override for that day.
type ScheduleLookup interface {
	WorkingHours(ctx context.Context, professionalID string, day time.Time) (*models.WorkingHours, error)
}

// DayHours is a working window expressed as "15:04" clock times.
type DayHours struct {
	Open  string `bson:"open" json:"open"`
	Close string `bson:"close" json:"close"`
}

// On resolves the clock times against the calendar day of day.
func (h DayHours) On(day time.Time) (*models.WorkingHours, error) {
	open, err := ClockOn(day, h.Open)
	if err != nil {
		return nil, err
	}
	closeAt, err := ClockOn(day, h.Close)
	if err != nil {
		return nil, err
	}
	if !closeAt.After(open) {
		return nil, errors.New("working hours close must be after open")
	}
	return &models.WorkingHours{Open: open, Close: closeAt}, nil
}

// ClockOn places a "15:04" clock time on day's date in day's location.
func ClockOn(day time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}
