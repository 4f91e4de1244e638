package handlers

import (
	"errors"
	"net/http"

	"servicebook/services/booking"
	"servicebook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps booking service errors to HTTP responses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrValidation):
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
	case errors.Is(err, booking.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
	case errors.Is(err, booking.ErrSchedulingConflict):
		utils.JSONError(c, http.StatusConflict, "Time slot is no longer available", err.Error())
	case errors.Is(err, booking.ErrInvalidState):
		utils.JSONError(c, http.StatusUnprocessableEntity, "Booking cannot change to the requested status", err.Error())
	default:
		getLogger(c).Error("booking request failed", zap.String("path", c.FullPath()), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
	}
}
