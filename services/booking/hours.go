package booking

import (
	"context"
	"fmt"
	"time"

	catalogRepo "servicebook/database/repository/catalog"
	"servicebook/models"
)

// HoursResolver picks the working window for a professional on a day: the
// schedule override when one exists, otherwise the default clocks.
type HoursResolver struct {
	Schedule catalogRepo.ScheduleLookup
	Default  catalogRepo.DayHours
}

func DefaultHours() catalogRepo.DayHours {
	return catalogRepo.DayHours{Open: "09:00", Close: "17:00"}
}

// For returns the window for day. A failing schedule lookup is returned as
// is; only an unusable default window is a validation error.
func (r HoursResolver) For(ctx context.Context, professionalID string, day time.Time) (*models.WorkingHours, error) {
	if r.Schedule != nil {
		wh, err := r.Schedule.WorkingHours(ctx, professionalID, day)
		if err != nil {
			return nil, fmt.Errorf("schedule lookup: %w", err)
		}
		if wh != nil {
			return wh, nil
		}
	}
	def := r.Default
	if def.Open == "" || def.Close == "" {
		def = DefaultHours()
	}
	wh, err := def.On(day)
	if err != nil {
		return nil, wrapError("WorkingHours", ErrValidation, err, "default working hours %s-%s", def.Open, def.Close)
	}
	return wh, nil
}
