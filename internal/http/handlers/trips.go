package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"shuttle/internal/domain/models"
	"shuttle/internal/http/middleware"
	"shuttle/internal/repositories"
	"shuttle/internal/services"
)

// GET /api/trips?routeId=1&date=2026-09-01&status=SCHEDULED
func GetTrips(c *gin.Context) {
	routeID, _ := strconv.ParseInt(c.Query("routeId"), 10, 64)

	list, err := repositories.TripRepository{}.List(routeID, c.Query("date"), c.Query("status"))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list trips", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/trips/:id
func GetTripByID(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	t, err := repositories.TripRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// GET /api/trips/:id/seats
func GetTripSeats(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	t, err := repositories.TripRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"tripId":         t.ID,
		"totalSeats":     t.TotalSeats,
		"availableSeats": t.AvailableSeats,
		"status":         t.Status,
		"bookable":       t.Bookable(),
	})
}

type tripPayload struct {
	RouteID            int64     `json:"routeId" binding:"required"`
	VehicleID          int64     `json:"vehicleId" binding:"required"`
	DriverID           int64     `json:"driverId" binding:"required"`
	ScheduledDeparture time.Time `json:"scheduledDeparture" binding:"required"`
	ScheduledArrival   time.Time `json:"scheduledArrival" binding:"required"`
}

// POST /api/trips
func CreateTrip(c *gin.Context) {
	var payload tripPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	svc := services.TripService{RequestID: middleware.GetRequestID(c), Notifier: notifier}
	trip, err := svc.CreateTrip(services.TripRequest{
		RouteID:            payload.RouteID,
		VehicleID:          payload.VehicleID,
		DriverID:           payload.DriverID,
		ScheduledDeparture: payload.ScheduledDeparture,
		ScheduledArrival:   payload.ScheduledArrival,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, trip)
}

type tripStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

// PUT /api/trips/:id/status
func UpdateTripStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var payload tripStatusPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	target := models.TripStatus(payload.Status)
	switch target {
	case models.TripScheduled, models.TripBoarding, models.TripDeparted, models.TripArrived, models.TripCancelled:
	default:
		RespondError(c, http.StatusBadRequest, "unknown trip status", nil)
		return
	}

	svc := services.TripService{RequestID: middleware.GetRequestID(c), Notifier: notifier}
	trip, err := svc.Advance(id, target)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// DELETE /api/trips/:id
//
// Only trips without bookings can be removed; a scheduled trip with
// passengers has to go through cancellation instead.
func DeleteTrip(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	active, err := repositories.BookingRepository{}.ListActiveByTrip(id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to check trip bookings", err)
		return
	}
	if len(active) > 0 {
		RespondError(c, http.StatusConflict, "trip has active bookings, cancel it instead", nil)
		return
	}

	if err := (repositories.TripRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "trip deleted"})
}
