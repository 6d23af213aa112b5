package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"shuttle/internal/domain/models"
	"shuttle/internal/repositories"
	"shuttle/internal/utils"
)

type pickupPayload struct {
	RouteID          int64   `json:"routeId" binding:"required"`
	Name             string  `json:"name" binding:"required"`
	Address          string  `json:"address"`
	Landmark         string  `json:"landmark"`
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	Type             string  `json:"type" binding:"required"`
	StopSequence     int     `json:"stopSequence"`
	ParkingCapacity  int     `json:"parkingCapacity"`
	ParkingFeeFlat   int64   `json:"parkingFeeFlat"`
	ParkingFeeHourly int64   `json:"parkingFeeHourly"`
	TimeSlots        string  `json:"timeSlots"`
}

func validPickupType(t string) bool {
	switch t {
	case models.PickupParkingHub, models.PickupBusStop, models.PickupMetroStation, models.PickupHomePickupZone:
		return true
	}
	return false
}

// normalizeSlots cleans the comma separated HH:MM list before storage.
func normalizeSlots(raw string) string {
	return strings.Join(utils.SplitSlotList(raw), ",")
}

// GET /api/pickup-points?routeId=1
func GetPickupPoints(c *gin.Context) {
	routeID, err := strconv.ParseInt(strings.TrimSpace(c.Query("routeId")), 10, 64)
	if err != nil || routeID <= 0 {
		RespondError(c, http.StatusBadRequest, "routeId query parameter is required", nil)
		return
	}

	list, err := repositories.PickupPointRepository{}.ListByRoute(routeID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list pickup points", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/pickup-points
func CreatePickupPoint(c *gin.Context) {
	var payload pickupPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	if !validPickupType(payload.Type) {
		RespondError(c, http.StatusBadRequest, "unknown pickup point type", nil)
		return
	}

	id, err := repositories.PickupPointRepository{}.Create(models.PickupPoint{
		RouteID:          payload.RouteID,
		Name:             payload.Name,
		Address:          payload.Address,
		Landmark:         payload.Landmark,
		Lat:              payload.Lat,
		Lng:              payload.Lng,
		Type:             payload.Type,
		StopSequence:     payload.StopSequence,
		ParkingCapacity:  payload.ParkingCapacity,
		ParkingFeeFlat:   payload.ParkingFeeFlat,
		ParkingFeeHourly: payload.ParkingFeeHourly,
		TimeSlots:        normalizeSlots(payload.TimeSlots),
	})
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to create pickup point", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "pickup point created", "id": id})
}

// PUT /api/pickup-points/:id
func UpdatePickupPoint(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var payload pickupPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	if !validPickupType(payload.Type) {
		RespondError(c, http.StatusBadRequest, "unknown pickup point type", nil)
		return
	}

	err := repositories.PickupPointRepository{}.Update(models.PickupPoint{
		ID:               id,
		Name:             payload.Name,
		Address:          payload.Address,
		Landmark:         payload.Landmark,
		Lat:              payload.Lat,
		Lng:              payload.Lng,
		Type:             payload.Type,
		StopSequence:     payload.StopSequence,
		ParkingCapacity:  payload.ParkingCapacity,
		ParkingFeeFlat:   payload.ParkingFeeFlat,
		ParkingFeeHourly: payload.ParkingFeeHourly,
		TimeSlots:        normalizeSlots(payload.TimeSlots),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pickup point updated"})
}

// DELETE /api/pickup-points/:id
func DeletePickupPoint(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := (repositories.PickupPointRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pickup point deleted"})
}
