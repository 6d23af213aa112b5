package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"shuttle/internal/tracking"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// GET /api/tracking/ws (dashboard clients subscribe here)
func TrackingSocket(c *gin.Context) {
	if hub == nil {
		RespondError(c, http.StatusServiceUnavailable, "tracking is not enabled", nil)
		return
	}
	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	hub.HandleClientConn(conn)
}

type positionPayload struct {
	VehicleID int64   `json:"vehicleId" binding:"required"`
	TripID    int64   `json:"tripId"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
}

// POST /api/tracking/positions (vehicle units report here)
func PostVehiclePosition(c *gin.Context) {
	if hub == nil {
		RespondError(c, http.StatusServiceUnavailable, "tracking is not enabled", nil)
		return
	}

	var payload positionPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	if payload.Lat < -90 || payload.Lat > 90 || payload.Lng < -180 || payload.Lng > 180 {
		RespondError(c, http.StatusBadRequest, "coordinates out of range", nil)
		return
	}

	hub.Publish(tracking.PositionUpdate{
		VehicleID:  payload.VehicleID,
		TripID:     payload.TripID,
		Lat:        payload.Lat,
		Lng:        payload.Lng,
		RecordedAt: time.Now(),
	})
	c.JSON(http.StatusAccepted, gin.H{"message": "position accepted"})
}

// GET /api/tracking/vehicles/:id
func GetVehiclePosition(c *gin.Context) {
	if hub == nil {
		RespondError(c, http.StatusServiceUnavailable, "tracking is not enabled", nil)
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}
	pos, found := hub.LastPosition(id)
	if !found {
		RespondError(c, http.StatusNotFound, "no recent position for vehicle", nil)
		return
	}
	c.JSON(http.StatusOK, pos)
}
