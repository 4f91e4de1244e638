package bookingRepo

import (
	"fmt"
	"time"

	"servicebook/models"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// bookingDocument is the stored shape of a booking in the bookings collection.
type bookingDocument struct {
	ID             string `bson:"_id"`
	CustomerID     string `bson:"customerId"`
	ProfessionalID string `bson:"professionalId"`
	ServiceID      string `bson:"serviceId"`
	AddressID      string `bson:"addressId,omitempty"`

	StartTime       time.Time `bson:"startTime"`
	EndTime         time.Time `bson:"endTime"`
	DurationMinutes int       `bson:"durationMinutes"`

	Status      string                 `bson:"status"`
	BasePrice   primitive.Decimal128   `bson:"basePrice"`
	TotalAmount primitive.Decimal128   `bson:"totalAmount"`
	Addons      []bookingAddonDocument `bson:"addons"`

	SpecialInstructions string `bson:"specialInstructions,omitempty"`
	CancellationReason  string `bson:"cancellationReason,omitempty"`
	CancelledBy         string `bson:"cancelledBy,omitempty"`
	RescheduledFrom     string `bson:"rescheduledFrom,omitempty"`

	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

type bookingAddonDocument struct {
	AddonID        string               `bson:"addonId"`
	Quantity       int                  `bson:"quantity"`
	PriceAtBooking primitive.Decimal128 `bson:"priceAtBooking"`
	NameAtBooking  string               `bson:"nameAtBooking"`
}

func toDocument(b models.Booking) (bookingDocument, error) {
	base, err := toDecimal128(b.BasePrice)
	if err != nil {
		return bookingDocument{}, fmt.Errorf("booking %s base price: %w", b.ID, err)
	}
	total, err := toDecimal128(b.TotalAmount)
	if err != nil {
		return bookingDocument{}, fmt.Errorf("booking %s total: %w", b.ID, err)
	}
	addons := make([]bookingAddonDocument, 0, len(b.Addons))
	for _, a := range b.Addons {
		price, err := toDecimal128(a.PriceAtBooking)
		if err != nil {
			return bookingDocument{}, fmt.Errorf("booking %s addon %s price: %w", b.ID, a.AddonID, err)
		}
		addons = append(addons, bookingAddonDocument{
			AddonID:        a.AddonID,
			Quantity:       a.Quantity,
			PriceAtBooking: price,
			NameAtBooking:  a.NameAtBooking,
		})
	}
	return bookingDocument{
		ID:                  b.ID,
		CustomerID:          b.CustomerID,
		ProfessionalID:      b.ProfessionalID,
		ServiceID:           b.ServiceID,
		AddressID:           b.AddressID,
		StartTime:           b.StartTime.UTC(),
		EndTime:             b.EndTime.UTC(),
		DurationMinutes:     b.DurationMinutes,
		Status:              string(b.Status),
		BasePrice:           base,
		TotalAmount:         total,
		Addons:              addons,
		SpecialInstructions: b.SpecialInstructions,
		CancellationReason:  b.CancellationReason,
		CancelledBy:         string(b.CancelledBy),
		RescheduledFrom:     b.RescheduledFrom,
		CreatedAt:           b.CreatedAt.UTC(),
		UpdatedAt:           b.UpdatedAt.UTC(),
	}, nil
}

func fromDocument(d bookingDocument) (models.Booking, error) {
	status := models.BookingStatus(d.Status)
	if !status.Valid() {
		return models.Booking{}, fmt.Errorf("booking %s has unknown status %q", d.ID, d.Status)
	}
	base, err := fromDecimal128(d.BasePrice)
	if err != nil {
		return models.Booking{}, fmt.Errorf("booking %s base price: %w", d.ID, err)
	}
	total, err := fromDecimal128(d.TotalAmount)
	if err != nil {
		return models.Booking{}, fmt.Errorf("booking %s total: %w", d.ID, err)
	}
	addons := make([]models.BookingAddon, 0, len(d.Addons))
	for _, a := range d.Addons {
		price, err := fromDecimal128(a.PriceAtBooking)
		if err != nil {
			return models.Booking{}, fmt.Errorf("booking %s addon %s price: %w", d.ID, a.AddonID, err)
		}
		addons = append(addons, models.BookingAddon{
			AddonID:        a.AddonID,
			Quantity:       a.Quantity,
			PriceAtBooking: price,
			NameAtBooking:  a.NameAtBooking,
		})
	}
	return models.Booking{
		ID:                  d.ID,
		CustomerID:          d.CustomerID,
		ProfessionalID:      d.ProfessionalID,
		ServiceID:           d.ServiceID,
		AddressID:           d.AddressID,
		StartTime:           d.StartTime,
		EndTime:             d.EndTime,
		DurationMinutes:     d.DurationMinutes,
		Status:              status,
		BasePrice:           base,
		TotalAmount:         total,
		Addons:              addons,
		SpecialInstructions: d.SpecialInstructions,
		CancellationReason:  d.CancellationReason,
		CancelledBy:         models.CancelledBy(d.CancelledBy),
		RescheduledFrom:     d.RescheduledFrom,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}, nil
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	return primitive.ParseDecimal128(d.String())
}

func fromDecimal128(d primitive.Decimal128) (decimal.Decimal, error) {
	return decimal.NewFromString(d.String())
}
