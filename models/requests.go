package models

import "time"

// CreateBookingRequest is a customer's request to reserve a professional.
type CreateBookingRequest struct {
	CustomerID          string          `json:"customerId" binding:"required"`
	ProfessionalID      string          `json:"professionalId" binding:"required"`
	ServiceID           string          `json:"serviceId" binding:"required"`
	AddressID           string          `json:"addressId"`
	StartTime           time.Time       `json:"startTime" binding:"required"`
	Addons              []SelectedAddon `json:"addons"`
	SpecialInstructions string          `json:"specialInstructions"`
}

type RescheduleRequest struct {
	StartTime time.Time `json:"startTime" binding:"required"`
}

type CancelRequest struct {
	Reason      string      `json:"reason"`
	CancelledBy CancelledBy `json:"cancelledBy" binding:"required"`
}

type RejectRequest struct {
	Reason string `json:"reason"`
}
