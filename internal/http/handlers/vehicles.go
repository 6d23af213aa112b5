package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shuttle/internal/domain"
	"shuttle/internal/domain/models"
	"shuttle/internal/repositories"
)

type vehiclePayload struct {
	Registration    string `json:"registration" binding:"required"`
	Type            string `json:"type"`
	Capacity        int    `json:"capacity" binding:"required"`
	InsuranceExpiry string `json:"insuranceExpiry"`
	FitnessExpiry   string `json:"fitnessExpiry"`
	PermitExpiry    string `json:"permitExpiry"`
	Available       bool   `json:"available"`
}

// GET /api/vehicles?q=KA-01&page=1&limit=20
func GetVehicles(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	list, err := repositories.VehicleRepository{}.List(c.Query("q"), page, limit)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list vehicles", err)
		return
	}
	if page > 0 && limit > 0 {
		c.JSON(http.StatusOK, gin.H{
			"data":       list,
			"pagination": domain.Pagination{Page: page, PageSize: limit},
		})
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/vehicles/:id
func GetVehicleByID(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	v, err := repositories.VehicleRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// POST /api/vehicles
func CreateVehicle(c *gin.Context) {
	var payload vehiclePayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	if payload.Capacity <= 0 {
		RespondError(c, http.StatusBadRequest, "capacity must be positive", nil)
		return
	}

	id, err := repositories.VehicleRepository{}.Create(models.Vehicle{
		Registration:    payload.Registration,
		Type:            payload.Type,
		Capacity:        payload.Capacity,
		InsuranceExpiry: payload.InsuranceExpiry,
		FitnessExpiry:   payload.FitnessExpiry,
		PermitExpiry:    payload.PermitExpiry,
		Available:       payload.Available,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "vehicle created", "id": id})
}

// PUT /api/vehicles/:id
func UpdateVehicle(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var payload vehiclePayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	if payload.Capacity <= 0 {
		RespondError(c, http.StatusBadRequest, "capacity must be positive", nil)
		return
	}

	err := repositories.VehicleRepository{}.Update(models.Vehicle{
		ID:              id,
		Registration:    payload.Registration,
		Type:            payload.Type,
		Capacity:        payload.Capacity,
		InsuranceExpiry: payload.InsuranceExpiry,
		FitnessExpiry:   payload.FitnessExpiry,
		PermitExpiry:    payload.PermitExpiry,
		Available:       payload.Available,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vehicle updated"})
}

// DELETE /api/vehicles/:id
func DeleteVehicle(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := (repositories.VehicleRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vehicle deleted"})
}
