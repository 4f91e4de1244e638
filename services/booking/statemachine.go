package booking

import (
	"slices"
	"time"

	"servicebook/models"
)

// transitions lists the legal next statuses. Terminal statuses have none.
var transitions = map[models.BookingStatus][]models.BookingStatus{
	models.StatusPending: {
		models.StatusConfirmed,
		models.StatusCancelled,
		models.StatusRejected,
		models.StatusExpired,
		models.StatusRescheduled,
	},
	models.StatusConfirmed: {
		models.StatusInProgress,
		models.StatusCancelled,
		models.StatusRescheduled,
	},
	models.StatusInProgress: {
		models.StatusCompleted,
	},
	// A rescheduled booking stays live: the professional confirms the new
	// time or either side cancels.
	models.StatusRescheduled: {
		models.StatusConfirmed,
		models.StatusCancelled,
	},
}

// CanTransition reports whether from → to is a legal lifecycle edge.
func CanTransition(from, to models.BookingStatus) bool {
	return slices.Contains(transitions[from], to)
}

// transition is the only place a booking's status changes.
func transition(op string, b *models.Booking, to models.BookingStatus, now time.Time) error {
	if !CanTransition(b.Status, to) {
		return newError(op, ErrInvalidState, "booking %s cannot move from %s to %s", b.ID, b.Status, to)
	}
	b.Status = to
	b.UpdatedAt = now
	return nil
}
