package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups the route handlers wired in main.
type HandlerBundle struct {
	// Booking lifecycle
	CreateBookingHandler     gin.HandlerFunc
	GetBookingHandler        gin.HandlerFunc
	ConfirmBookingHandler    gin.HandlerFunc
	StartBookingHandler      gin.HandlerFunc
	CompleteBookingHandler   gin.HandlerFunc
	RejectBookingHandler     gin.HandlerFunc
	CancelBookingHandler     gin.HandlerFunc
	RescheduleBookingHandler gin.HandlerFunc
	RecalculateTotalHandler  gin.HandlerFunc

	// Scheduling queries
	ListProfessionalBookingsHandler gin.HandlerFunc
	AvailabilityHandler             gin.HandlerFunc
	SlotsHandler                    gin.HandlerFunc

	HealthCheckHandler gin.HandlerFunc
}

// NewHandlerBundle assembles the bundle from its handlers.
func NewHandlerBundle(bh *BookingHandler, hh *HealthHandler) *HandlerBundle {
	return &HandlerBundle{
		CreateBookingHandler:            bh.CreateBookingHandler,
		GetBookingHandler:               bh.GetBookingHandler,
		ConfirmBookingHandler:           bh.ConfirmBookingHandler,
		StartBookingHandler:             bh.StartBookingHandler,
		CompleteBookingHandler:          bh.CompleteBookingHandler,
		RejectBookingHandler:            bh.RejectBookingHandler,
		CancelBookingHandler:            bh.CancelBookingHandler,
		RescheduleBookingHandler:        bh.RescheduleBookingHandler,
		RecalculateTotalHandler:         bh.RecalculateTotalHandler,
		ListProfessionalBookingsHandler: bh.ListProfessionalBookingsHandler,
		AvailabilityHandler:             bh.AvailabilityHandler,
		SlotsHandler:                    bh.SlotsHandler,
		HealthCheckHandler:              hh.HealthCheckHandler,
	}
}
