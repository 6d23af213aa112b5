package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shuttle/internal/domain/models"
	"shuttle/internal/repositories"
)

type routePayload struct {
	Name             string  `json:"name" binding:"required"`
	StartPoint       string  `json:"startPoint" binding:"required"`
	EndPoint         string  `json:"endPoint" binding:"required"`
	DistanceKM       float64 `json:"distanceKm"`
	EstimatedMinutes int     `json:"estimatedMinutes"`
	BaseFare         int64   `json:"baseFare"`
	PerKmRate        float64 `json:"perKmRate"`
	SurgeMultiplier  float64 `json:"surgeMultiplier"`
	Active           *bool   `json:"active"`
}

// GET /api/routes?active=1
func GetRoutes(c *gin.Context) {
	repo := repositories.RouteRepository{}
	list, err := repo.List(c.Query("active") == "1")
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list routes", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/routes/:id
func GetRouteByID(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	rt, err := repositories.RouteRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rt)
}

// POST /api/routes
func CreateRoute(c *gin.Context) {
	var payload routePayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	active := true
	if payload.Active != nil {
		active = *payload.Active
	}
	surge := payload.SurgeMultiplier
	if surge <= 0 {
		surge = 1
	}

	id, err := repositories.RouteRepository{}.Create(models.Route{
		Name:             payload.Name,
		StartPoint:       payload.StartPoint,
		EndPoint:         payload.EndPoint,
		DistanceKM:       payload.DistanceKM,
		EstimatedMinutes: payload.EstimatedMinutes,
		BaseFare:         payload.BaseFare,
		PerKmRate:        payload.PerKmRate,
		SurgeMultiplier:  surge,
		Active:           active,
	})
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to create route", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "route created", "id": id})
}

// PUT /api/routes/:id
//
// A route with scheduled trips is immutable except for its pricing
// fields, which only apply to trips created after the change.
func UpdateRoute(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var payload routePayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	repo := repositories.RouteRepository{}
	existing, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	locked, err := repo.HasScheduledTrips(id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to check route trips", err)
		return
	}

	surge := payload.SurgeMultiplier
	if surge <= 0 {
		surge = 1
	}

	if locked {
		if payload.Name != existing.Name || payload.StartPoint != existing.StartPoint ||
			payload.EndPoint != existing.EndPoint || payload.DistanceKM != existing.DistanceKM {
			RespondError(c, http.StatusConflict, "route has scheduled trips; only pricing fields may change", nil)
			return
		}
		if err := repo.UpdatePricing(id, payload.BaseFare, payload.PerKmRate, surge); err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "route pricing updated"})
		return
	}

	active := existing.Active
	if payload.Active != nil {
		active = *payload.Active
	}
	err = repo.Update(models.Route{
		ID:               id,
		Name:             payload.Name,
		StartPoint:       payload.StartPoint,
		EndPoint:         payload.EndPoint,
		DistanceKM:       payload.DistanceKM,
		EstimatedMinutes: payload.EstimatedMinutes,
		BaseFare:         payload.BaseFare,
		PerKmRate:        payload.PerKmRate,
		SurgeMultiplier:  surge,
		Active:           active,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "route updated"})
}

// DELETE /api/routes/:id
func DeleteRoute(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	repo := repositories.RouteRepository{}
	locked, err := repo.HasScheduledTrips(id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to check route trips", err)
		return
	}
	if locked {
		RespondError(c, http.StatusConflict, "route has scheduled trips and cannot be deleted", nil)
		return
	}

	if err := repo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "route deleted"})
}
