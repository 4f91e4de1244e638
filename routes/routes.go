package routes

import (
	"time"

	"servicebook/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterBookingRoutes sets up the endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.POST("", hb.CreateBookingHandler)
		bookingGroup.GET("", hb.ListProfessionalBookingsHandler)
		bookingGroup.GET("/availability", hb.AvailabilityHandler)
		bookingGroup.GET("/slots", hb.SlotsHandler)

		bookingGroup.GET("/:id", hb.GetBookingHandler)
		bookingGroup.POST("/:id/confirm", hb.ConfirmBookingHandler)
		bookingGroup.POST("/:id/start", hb.StartBookingHandler)
		bookingGroup.POST("/:id/complete", hb.CompleteBookingHandler)
		bookingGroup.POST("/:id/reject", hb.RejectBookingHandler)
		bookingGroup.POST("/:id/cancel", hb.CancelBookingHandler)
		bookingGroup.POST("/:id/reschedule", hb.RescheduleBookingHandler)
		bookingGroup.POST("/:id/recalculate", hb.RecalculateTotalHandler)
	}
}

// RegisterHealthRoute registers the health-check and metrics endpoints.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthCheckHandler)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterBookingRoutes(r, hb)
}
