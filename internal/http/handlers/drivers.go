package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shuttle/internal/domain/models"
	"shuttle/internal/repositories"
)

type driverPayload struct {
	Name          string  `json:"name" binding:"required"`
	Phone         string  `json:"phone"`
	LicenseNumber string  `json:"licenseNumber" binding:"required"`
	LicenseExpiry string  `json:"licenseExpiry"`
	Rating        float64 `json:"rating"`
	Available     bool    `json:"available"`
	VehicleID     *int64  `json:"vehicleId"`
}

// GET /api/drivers?q=ravi
func GetDrivers(c *gin.Context) {
	list, err := repositories.DriverRepository{}.List(c.Query("q"))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list drivers", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/drivers/:id
func GetDriverByID(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	d, err := repositories.DriverRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// POST /api/drivers
func CreateDriver(c *gin.Context) {
	var payload driverPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	id, err := repositories.DriverRepository{}.Create(models.Driver{
		Name:          payload.Name,
		Phone:         payload.Phone,
		LicenseNumber: payload.LicenseNumber,
		LicenseExpiry: payload.LicenseExpiry,
		Rating:        payload.Rating,
		Available:     payload.Available,
		VehicleID:     payload.VehicleID,
	})
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to create driver", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "driver created", "id": id})
}

// PUT /api/drivers/:id
func UpdateDriver(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var payload driverPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	err := repositories.DriverRepository{}.Update(models.Driver{
		ID:            id,
		Name:          payload.Name,
		Phone:         payload.Phone,
		LicenseNumber: payload.LicenseNumber,
		LicenseExpiry: payload.LicenseExpiry,
		Rating:        payload.Rating,
		Available:     payload.Available,
		VehicleID:     payload.VehicleID,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "driver updated"})
}

// DELETE /api/drivers/:id
func DeleteDriver(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := (repositories.DriverRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "driver deleted"})
}
