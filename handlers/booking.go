package handlers

import (
	"iter"
	"net/http"
	"slices"
	"strconv"
	"time"

	"servicebook/models"
	"servicebook/services/booking"
	"servicebook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// BookingHandler exposes the booking engine over HTTP.
type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// CreateBookingHandler reserves a professional for a service.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking request", err.Error())
		return
	}

	b, err := h.Service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("booking created via API", zap.String("bookingID", b.ID))
	c.JSON(http.StatusCreated, b)
}

func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	b, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListProfessionalBookingsHandler lists a professional's bookings starting
// in [from, to). Times are RFC 3339.
func (h *BookingHandler) ListProfessionalBookingsHandler(c *gin.Context) {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid from time", err.Error())
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid to time", err.Error())
		return
	}

	professionalID := c.Query("professionalId")
	bookings, err := h.Service.ListProfessionalBookings(c.Request.Context(), professionalID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"professionalId": professionalID, "bookings": bookings})
}

func (h *BookingHandler) ConfirmBookingHandler(c *gin.Context) {
	h.respondBooking(c)(h.Service.Confirm(c.Request.Context(), c.Param("id")))
}

func (h *BookingHandler) StartBookingHandler(c *gin.Context) {
	h.respondBooking(c)(h.Service.Start(c.Request.Context(), c.Param("id")))
}

func (h *BookingHandler) CompleteBookingHandler(c *gin.Context) {
	h.respondBooking(c)(h.Service.Complete(c.Request.Context(), c.Param("id")))
}

// RejectBookingHandler declines a pending booking. The body is optional.
func (h *BookingHandler) RejectBookingHandler(c *gin.Context) {
	var req models.RejectRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid reject request", err.Error())
			return
		}
	}
	h.respondBooking(c)(h.Service.Reject(c.Request.Context(), c.Param("id"), req.Reason))
}

func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	var req models.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid cancel request", err.Error())
		return
	}
	h.respondBooking(c)(h.Service.Cancel(c.Request.Context(), c.Param("id"), req.Reason, req.CancelledBy))
}

func (h *BookingHandler) RescheduleBookingHandler(c *gin.Context) {
	var req models.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid reschedule request", err.Error())
		return
	}
	h.respondBooking(c)(h.Service.Reschedule(c.Request.Context(), c.Param("id"), req.StartTime))
}

func (h *BookingHandler) RecalculateTotalHandler(c *gin.Context) {
	total, err := h.Service.RecalculateTotal(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookingId": c.Param("id"), "totalAmount": total})
}

// AvailabilityHandler answers whether a professional is free for
// [start, end). Times are RFC 3339.
func (h *BookingHandler) AvailabilityHandler(c *gin.Context) {
	professionalID := c.Query("professionalId")
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid start time", err.Error())
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid end time", err.Error())
		return
	}

	ok, err := h.Service.IsAvailable(c.Request.Context(), professionalID, start, end, c.Query("excludeBookingId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"professionalId": professionalID, "available": ok})
}

// SlotsHandler lists free start times on a date, either for an explicit
// duration in minutes or for a catalog service.
func (h *BookingHandler) SlotsHandler(c *gin.Context) {
	professionalID := c.Query("professionalId")

	loc := time.UTC
	if tz := c.Query("tz"); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid time zone", err.Error())
			return
		}
		loc = l
	}
	day, err := time.ParseInLocation(dateLayout, c.Query("date"), loc)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", err.Error())
		return
	}

	ctx := c.Request.Context()
	var slots iter.Seq[time.Time]
	switch {
	case c.Query("serviceId") != "":
		slots, err = h.Service.FindFreeSlotsForService(ctx, professionalID, c.Query("serviceId"), day)
	case c.Query("duration") != "":
		minutes, convErr := strconv.Atoi(c.Query("duration"))
		if convErr != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid duration", convErr.Error())
			return
		}
		slots, err = h.Service.FindFreeSlots(ctx, professionalID, day, minutes)
	default:
		utils.JSONError(c, http.StatusBadRequest, "Either duration or serviceId is required", "")
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	list := slices.Collect(slots)
	if list == nil {
		list = []time.Time{}
	}
	c.JSON(http.StatusOK, gin.H{
		"professionalId": professionalID,
		"date":           day.Format(dateLayout),
		"slots":          list,
	})
}

func (h *BookingHandler) respondBooking(c *gin.Context) func(*models.Booking, error) {
	return func(b *models.Booking, err error) {
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, b)
	}
}
