package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	bookingRepo "servicebook/database/repository/booking"
	catalogRepo "servicebook/database/repository/catalog"
	"servicebook/models"
	"servicebook/services/booking"
	"servicebook/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.Logger = zap.NewNop()
}

var testDay = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	catalog := catalogRepo.NewMemoryCatalog()
	catalog.PutProfessional("pro-1", nil)
	catalog.PutService(models.Service{
		ID:              "massage",
		DurationMinutes: 90,
		BasePrice:       decimal.RequireFromString("50"),
		Addons:          []models.ServiceAddon{{ID: "oil", Name: "Aroma oil", Price: decimal.RequireFromString("10")}},
	})

	svc, err := booking.NewBookingService(booking.Config{
		Store:   bookingRepo.NewMemoryBookingRepo(),
		Catalog: catalog,
		Pricing: booking.DefaultPricingPolicy(),
		Now:     func() time.Time { return testDay.Add(7 * time.Hour) },
	})
	require.NoError(t, err)

	r := gin.New()
	hb := NewHandlerBundle(NewBookingHandler(svc), &HealthHandler{})
	api := r.Group("/api/bookings")
	api.POST("", hb.CreateBookingHandler)
	api.GET("", hb.ListProfessionalBookingsHandler)
	api.GET("/availability", hb.AvailabilityHandler)
	api.GET("/slots", hb.SlotsHandler)
	api.GET("/:id", hb.GetBookingHandler)
	api.POST("/:id/confirm", hb.ConfirmBookingHandler)
	api.POST("/:id/start", hb.StartBookingHandler)
	api.POST("/:id/complete", hb.CompleteBookingHandler)
	api.POST("/:id/reject", hb.RejectBookingHandler)
	api.POST("/:id/cancel", hb.CancelBookingHandler)
	api.POST("/:id/reschedule", hb.RescheduleBookingHandler)
	api.POST("/:id/recalculate", hb.RecalculateTotalHandler)
	r.GET("/health", hb.HealthCheckHandler)
	return r
}

func do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createMassage(t *testing.T, r *gin.Engine, start time.Time) models.Booking {
	t.Helper()
	w := do(r, http.MethodPost, "/api/bookings", map[string]any{
		"customerId":     "cust-1",
		"professionalId": "pro-1",
		"serviceId":      "massage",
		"startTime":      start,
		"addons":         []map[string]any{{"addonId": "oil", "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var b models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	return b
}

func TestCreateAndGetBooking(t *testing.T) {
	r := setupRouter(t)
	b := createMassage(t, r, testDay.Add(10*time.Hour))

	assert.Equal(t, models.StatusPending, b.Status)
	assert.Equal(t, "120", b.TotalAmount.String())

	w := do(r, http.MethodGet, "/api/bookings/"+b.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, b.ID, got.ID)
	assert.True(t, testDay.Add(11*time.Hour+30*time.Minute).Equal(got.EndTime))
}

func TestErrorStatusMapping(t *testing.T) {
	r := setupRouter(t)
	b := createMassage(t, r, testDay.Add(10*time.Hour))

	t.Run("conflict", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/bookings", map[string]any{
			"customerId": "c", "professionalId": "pro-1", "serviceId": "massage",
			"startTime": testDay.Add(11 * time.Hour),
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})
	t.Run("not found", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/bookings/nope", nil).Code)
	})
	t.Run("unknown professional", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/bookings", map[string]any{
			"customerId": "c", "professionalId": "ghost", "serviceId": "massage",
			"startTime": testDay.Add(14 * time.Hour),
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
	t.Run("invalid state", func(t *testing.T) {
		assert.Equal(t, http.StatusUnprocessableEntity, do(r, http.MethodPost, "/api/bookings/"+b.ID+"/complete", nil).Code)
	})
	t.Run("bad body", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/api/bookings", map[string]any{"customerId": "c"}).Code)
	})
	t.Run("bad cancelledBy", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/bookings/"+b.ID+"/cancel", map[string]any{"cancelledBy": "ROBOT"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLifecycleEndpoints(t *testing.T) {
	r := setupRouter(t)
	b := createMassage(t, r, testDay.Add(10*time.Hour))

	w := do(r, http.MethodPost, "/api/bookings/"+b.ID+"/reschedule", map[string]any{"startTime": testDay.Add(13 * time.Hour)})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var moved models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &moved))
	assert.Equal(t, models.StatusRescheduled, moved.Status)

	for _, step := range []string{"confirm", "start", "complete"} {
		w := do(r, http.MethodPost, "/api/bookings/"+b.ID+"/"+step, nil)
		require.Equal(t, http.StatusOK, w.Code, "%s: %s", step, w.Body.String())
	}

	w = do(r, http.MethodPost, "/api/bookings/"+b.ID+"/recalculate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalAmount":"120"`)

	other := createMassage(t, r, testDay.Add(15*time.Hour))
	w = do(r, http.MethodPost, "/api/bookings/"+other.ID+"/reject", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	third := createMassage(t, r, testDay.Add(15*time.Hour))
	w = do(r, http.MethodPost, "/api/bookings/"+third.ID+"/cancel", map[string]any{"reason": "sick", "cancelledBy": "CUSTOMER"})
	require.Equal(t, http.StatusOK, w.Code)
	w = do(r, http.MethodPost, "/api/bookings/"+third.ID+"/cancel", map[string]any{"reason": "again", "cancelledBy": "CUSTOMER"})
	assert.Equal(t, http.StatusOK, w.Code, "cancel is idempotent")
}

func TestAvailabilityAndSlots(t *testing.T) {
	r := setupRouter(t)
	createMassage(t, r, testDay.Add(9*time.Hour))

	w := do(r, http.MethodGet, "/api/bookings/availability?professionalId=pro-1&start=2026-03-02T10:00:00Z&end=2026-03-02T11:00:00Z", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"professionalId":"pro-1","available":false}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/bookings/availability?professionalId=pro-1&start=2026-03-02T10:30:00Z&end=2026-03-02T11:00:00Z", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"professionalId":"pro-1","available":true}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/bookings/slots?professionalId=pro-1&date=2026-03-02&duration=240", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Slots []time.Time `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Slots)
	assert.True(t, testDay.Add(10*time.Hour+30*time.Minute).Equal(resp.Slots[0]))
	assert.True(t, testDay.Add(13*time.Hour).Equal(resp.Slots[len(resp.Slots)-1]))

	w = do(r, http.MethodGet, "/api/bookings/slots?professionalId=pro-1&date=2026-03-02&serviceId=massage", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/bookings/slots?professionalId=pro-1&date=2026-03-02", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/bookings/slots?professionalId=pro-1&date=02-03-2026&duration=60", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/bookings/slots?professionalId=pro-1&date=2026-03-02&duration=0", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/bookings/availability?professionalId=pro-1&start=yesterday&end=2026-03-02T11:00:00Z", nil).Code)
}

func TestListProfessionalBookings(t *testing.T) {
	r := setupRouter(t)
	first := createMassage(t, r, testDay.Add(9*time.Hour))
	second := createMassage(t, r, testDay.Add(13*time.Hour))
	createMassage(t, r, testDay.AddDate(0, 0, 1).Add(9*time.Hour))

	w := do(r, http.MethodGet, "/api/bookings?professionalId=pro-1&from=2026-03-02T00:00:00Z&to=2026-03-03T00:00:00Z", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		ProfessionalID string           `json:"professionalId"`
		Bookings       []models.Booking `json:"bookings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "pro-1", resp.ProfessionalID)
	require.Len(t, resp.Bookings, 2)
	assert.Equal(t, first.ID, resp.Bookings[0].ID)
	assert.Equal(t, second.ID, resp.Bookings[1].ID)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/bookings?professionalId=pro-1&from=today&to=2026-03-03T00:00:00Z", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/bookings?professionalId=pro-1&from=2026-03-03T00:00:00Z&to=2026-03-02T00:00:00Z", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/bookings?professionalId=ghost&from=2026-03-02T00:00:00Z&to=2026-03-03T00:00:00Z", nil).Code)
}

func TestHealthCheckWithoutMonitor(t *testing.T) {
	r := setupRouter(t)
	w := do(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthCheckWithMonitor(t *testing.T) {
	monitor := utils.NewHealthMonitor(nil, nil)
	monitor.Check(context.Background())
	h := &HealthHandler{Monitor: monitor}

	r := gin.New()
	r.GET("/health", h.HealthCheckHandler)
	w := do(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
