package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	bookingRepo "servicebook/database/repository/booking"
	catalogRepo "servicebook/database/repository/catalog"
	"servicebook/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// 2026-03-02 is a Monday.
var day = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type sentEvent struct {
	Kind      models.NotificationKind
	BookingID string
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []sentEvent
}

func (n *recordingNotifier) Notify(_ context.Context, kind models.NotificationKind, bookingID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, sentEvent{Kind: kind, BookingID: bookingID})
}

func (n *recordingNotifier) Events() []sentEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentEvent(nil), n.events...)
}

func (n *recordingNotifier) Count(kind models.NotificationKind) int {
	c := 0
	for _, e := range n.Events() {
		if e.Kind == kind {
			c++
		}
	}
	return c
}

type fixture struct {
	svc      *DefaultBookingService
	store    *bookingRepo.MemoryBookingRepo
	catalog  *catalogRepo.MemoryCatalog
	notifier *recordingNotifier
	now      time.Time
}

func newFixture(t *testing.T, opts ...func(*Config)) *fixture {
	t.Helper()
	f := &fixture{
		store:    bookingRepo.NewMemoryBookingRepo(),
		catalog:  catalogRepo.NewMemoryCatalog(),
		notifier: &recordingNotifier{},
		now:      at(7, 0),
	}
	f.catalog.PutProfessional("pro-1", nil)
	f.catalog.PutProfessional("pro-2", nil)
	f.catalog.PutService(models.Service{
		ID:              "haircut",
		Name:            "Haircut",
		DurationMinutes: 60,
		BasePrice:       dec("50"),
		Addons: []models.ServiceAddon{
			{ID: "wash", Name: "Hair wash", Price: dec("10")},
			{ID: "beard", Name: "Beard trim", Price: dec("15")},
		},
	})
	f.catalog.PutService(models.Service{
		ID:              "massage",
		Name:            "Massage",
		DurationMinutes: 90,
		BasePrice:       dec("50"),
		Addons:          []models.ServiceAddon{{ID: "oil", Name: "Aroma oil", Price: dec("10")}},
	})

	cfg := Config{
		Store:    f.store,
		Catalog:  f.catalog,
		Schedule: f.catalog,
		Notifier: f.notifier,
		Pricing:  DefaultPricingPolicy(),
		Now:      func() time.Time { return f.now },
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	svc, err := NewBookingService(cfg)
	require.NoError(t, err)
	f.svc = svc
	return f
}

func (f *fixture) create(t *testing.T, professionalID string, start time.Time) *models.Booking {
	t.Helper()
	b, err := f.svc.CreateBooking(context.Background(), models.CreateBookingRequest{
		CustomerID:     "cust-1",
		ProfessionalID: professionalID,
		ServiceID:      "haircut",
		StartTime:      start,
	})
	require.NoError(t, err)
	return b
}

// seed stores a booking directly, bypassing the lifecycle.
func (f *fixture) seed(t *testing.T, id, professionalID string, start, end time.Time, status models.BookingStatus) models.Booking {
	t.Helper()
	b, err := f.store.Save(context.Background(), models.Booking{
		ID:              id,
		CustomerID:      "cust-1",
		ProfessionalID:  professionalID,
		ServiceID:       "haircut",
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: int(end.Sub(start) / time.Minute),
		Status:          status,
		BasePrice:       dec("50"),
		TotalAmount:     dec("50"),
	})
	require.NoError(t, err)
	return b
}
