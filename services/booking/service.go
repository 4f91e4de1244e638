package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "servicebook/database/repository/booking"
	catalogRepo "servicebook/database/repository/catalog"
	"servicebook/models"
	"servicebook/services/locking"
	"servicebook/services/notification"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultNotifyTimeout = 5 * time.Second

	// Work under a leased lock stops after 4/5 of the lease.
	leaseMarginDivisor = 5
)

// Config wires the collaborators of DefaultBookingService. Store and Catalog
// are required; everything else has a default.
type Config struct {
	Store    bookingRepo.BookingStore
	Catalog  catalogRepo.CatalogLookup
	Schedule catalogRepo.ScheduleLookup
	Locker   locking.Locker
	Notifier notification.Notifier
	Logger   *zap.Logger

	// Pricing is used as given; the zero value is the charge-once add-on mode.
	Pricing        PricingPolicy
	Hours          catalogRepo.DayHours
	SlotStep      time.Duration
	NotifyTimeout time.Duration

	Now   func() time.Time
	NewID func() string
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	store    bookingRepo.BookingStore
	catalog  catalogRepo.CatalogLookup
	detector *ConflictDetector
	locker   locking.Locker
	notifier notification.Notifier
	logger   *zap.Logger
	pricing  PricingPolicy
	hours    HoursResolver

	slotStep      time.Duration
	notifyTimeout time.Duration
	now           func() time.Time
	newID         func() string
}

var _ BookingService = (*DefaultBookingService)(nil)

func NewBookingService(cfg Config) (*DefaultBookingService, error) {
	if cfg.Store == nil || cfg.Catalog == nil {
		return nil, fmt.Errorf("booking service initialization error: store or catalog is nil")
	}

	s := &DefaultBookingService{
		store:         cfg.Store,
		catalog:       cfg.Catalog,
		detector:      NewConflictDetector(cfg.Store),
		locker:        cfg.Locker,
		notifier:      cfg.Notifier,
		logger:        cfg.Logger,
		pricing:       cfg.Pricing,
		hours:         HoursResolver{Schedule: cfg.Schedule, Default: cfg.Hours},
		slotStep:      cfg.SlotStep,
		notifyTimeout: cfg.NotifyTimeout,
		now:           cfg.Now,
		newID:         cfg.NewID,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.locker == nil {
		s.locker = locking.NewKeyedMutex()
	}
	if s.notifier == nil {
		s.notifier = notification.LogNotifier{Logger: s.logger}
	}
	if s.slotStep <= 0 {
		s.slotStep = DefaultSlotStep
	}
	if s.notifyTimeout <= 0 {
		s.notifyTimeout = defaultNotifyTimeout
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s, nil
}

func (s *DefaultBookingService) IsAvailable(ctx context.Context, professionalID string, start, end time.Time, excludeBookingID string) (bool, error) {
	if professionalID == "" {
		return false, newError("IsAvailable", ErrValidation, "professional id is required")
	}
	return s.detector.IsAvailable(ctx, professionalID, start, end, excludeBookingID)
}

func (s *DefaultBookingService) Get(ctx context.Context, bookingID string) (*models.Booking, error) {
	return s.load(ctx, "Get", bookingID)
}

// ListProfessionalBookings returns the professional's bookings in any status
// starting in [from, to), earliest first.
func (s *DefaultBookingService) ListProfessionalBookings(ctx context.Context, professionalID string, from, to time.Time) ([]models.Booking, error) {
	const op = "ListProfessionalBookings"
	if professionalID == "" {
		return nil, newError(op, ErrValidation, "professional id is required")
	}
	if !from.Before(to) {
		return nil, newError(op, ErrValidation, "from %s must be before to %s", from.Format(time.RFC3339), to.Format(time.RFC3339))
	}
	if err := s.requireProfessional(ctx, op, professionalID); err != nil {
		return nil, err
	}

	bookings, err := s.store.FindByProfessionalAndRange(ctx, professionalID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: list bookings for %s: %w", op, professionalID, err)
	}
	return bookings, nil
}

func (s *DefaultBookingService) load(ctx context.Context, op, bookingID string) (*models.Booking, error) {
	if bookingID == "" {
		return nil, newError(op, ErrValidation, "booking id is required")
	}
	b, err := s.store.Get(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, wrapError(op, ErrNotFound, err, "booking %s", bookingID)
		}
		return nil, fmt.Errorf("%s: load booking %s: %w", op, bookingID, err)
	}
	return b, nil
}

func (s *DefaultBookingService) requireProfessional(ctx context.Context, op, professionalID string) error {
	ok, err := s.catalog.ProfessionalExists(ctx, professionalID)
	if err != nil {
		return fmt.Errorf("%s: lookup professional %s: %w", op, professionalID, err)
	}
	if !ok {
		return newError(op, ErrNotFound, "professional %s", professionalID)
	}
	return nil
}

// lockProfessional holds the professional's lock. Storage work under the
// lock must use the returned context: for a leased lock it ends before the
// lease can lapse, so a slow store aborts instead of writing unguarded.
func (s *DefaultBookingService) lockProfessional(ctx context.Context, op, professionalID string) (context.Context, func(), error) {
	unlock, err := s.locker.Lock(ctx, locking.ProfessionalKey(professionalID))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: lock professional %s: %w", op, professionalID, err)
	}

	leased, ok := s.locker.(locking.Leased)
	if !ok || leased.Lease() <= 0 {
		return ctx, unlock, nil
	}
	lease := leased.Lease()
	lctx, cancel := context.WithTimeout(ctx, lease-lease/leaseMarginDivisor)
	return lctx, func() {
		cancel()
		unlock()
	}, nil
}

// notify hands an event to the notifier after the lock is released. It
// outlives request cancellation and never fails the caller.
func (s *DefaultBookingService) notify(ctx context.Context, kind models.NotificationKind, bookingID string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("notifier panicked",
				zap.String("kind", string(kind)),
				zap.String("bookingID", bookingID),
				zap.Any("panic", r))
		}
	}()

	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
	defer cancel()
	s.notifier.Notify(nctx, kind, bookingID)
}
