package models

import "github.com/shopspring/decimal"

// DefaultServiceDurationMinutes applies when a catalog service carries no duration.
const DefaultServiceDurationMinutes = 60

// ServiceAddon is an optional extra offered with a service.
type ServiceAddon struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Service is the priced, timed offering a customer books.
type Service struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	DurationMinutes int             `json:"durationMinutes"`
	BasePrice       decimal.Decimal `json:"basePrice"`
	Addons          []ServiceAddon  `json:"addons"`
}

// Duration returns the service duration, defaulting unset durations.
func (s Service) Duration() int {
	if s.DurationMinutes == 0 {
		return DefaultServiceDurationMinutes
	}
	return s.DurationMinutes
}

// SelectedAddon is an add-on requested by a customer.
type SelectedAddon struct {
	AddonID  string `json:"addonId" binding:"required"`
	Quantity int    `json:"quantity"`
}
