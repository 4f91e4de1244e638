package models

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus is a lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending     BookingStatus = "PENDING"     // created, awaiting the professional
	StatusConfirmed   BookingStatus = "CONFIRMED"   // accepted by the professional
	StatusInProgress  BookingStatus = "IN_PROGRESS" // service is being delivered
	StatusCompleted   BookingStatus = "COMPLETED"
	StatusCancelled   BookingStatus = "CANCELLED"
	StatusRejected    BookingStatus = "REJECTED"
	StatusExpired     BookingStatus = "EXPIRED" // never confirmed before its start time
	StatusRescheduled BookingStatus = "RESCHEDULED"
)

// AllStatuses lists every known status.
var AllStatuses = []BookingStatus{
	StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted,
	StatusCancelled, StatusRejected, StatusExpired, StatusRescheduled,
}

// Valid reports whether s is a known status.
func (s BookingStatus) Valid() bool {
	return slices.Contains(AllStatuses, s)
}

// IsOccupying reports whether a booking in this status reserves its window.
func (s BookingStatus) IsOccupying() bool {
	switch s {
	case StatusCancelled, StatusRejected, StatusExpired:
		return false
	}
	return s.Valid()
}

// IsTerminal reports whether no further transition is possible.
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusRejected, StatusExpired:
		return true
	}
	return false
}

// CancelledBy identifies who cancelled a booking.
type CancelledBy string

const (
	CancelledByCustomer     CancelledBy = "CUSTOMER"
	CancelledByProfessional CancelledBy = "PROFESSIONAL"
	CancelledBySystem       CancelledBy = "SYSTEM"
)

func (c CancelledBy) Valid() bool {
	switch c {
	case CancelledByCustomer, CancelledByProfessional, CancelledBySystem:
		return true
	}
	return false
}

// BookingAddon is an add-on captured on a booking. Price and name are
// snapshots taken at booking time and never re-read from the catalog.
type BookingAddon struct {
	AddonID        string          `json:"addonId"`
	Quantity       int             `json:"quantity"`
	PriceAtBooking decimal.Decimal `json:"priceAtBooking"`
	NameAtBooking  string          `json:"nameAtBooking"`
}

// Booking is a customer's reservation of a professional's time for a service.
type Booking struct {
	ID             string `json:"id"`
	CustomerID     string `json:"customerId"`
	ProfessionalID string `json:"professionalId"`
	ServiceID      string `json:"serviceId"`
	AddressID      string `json:"addressId,omitempty"`

	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`

	Status      BookingStatus   `json:"status"`
	BasePrice   decimal.Decimal `json:"basePrice"` // service base price at booking time
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Addons      []BookingAddon  `json:"addons"`

	SpecialInstructions string      `json:"specialInstructions,omitempty"`
	CancellationReason  string      `json:"cancellationReason,omitempty"`
	CancelledBy         CancelledBy `json:"cancelledBy,omitempty"`
	RescheduledFrom     string      `json:"rescheduledFrom,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Overlaps applies the half-open test against [start, end).
func (b Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && start.Before(b.EndTime)
}

// Clone returns a copy that shares no mutable state with b.
func (b Booking) Clone() Booking {
	b.Addons = slices.Clone(b.Addons)
	return b
}
