package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	intcache "shuttle/internal/cache"
	intconfig "shuttle/internal/config"
	"shuttle/internal/http/middleware"
	"shuttle/internal/services"
	"shuttle/internal/tracking"
)

// Package-wide handles, configured once at process start.
var (
	env      intconfig.Env
	appCache *intcache.Redis
	hub      *tracking.Hub
	notifier *services.Notifier
)

// Configure injects the shared service handles. Must run before routing.
func Configure(e intconfig.Env, c *intcache.Redis, h *tracking.Hub, n *services.Notifier) {
	env = e
	appCache = c
	hub = h
	notifier = n
}

// RespondError sends standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}

// paramID parses the :id path parameter; responds 400 itself on failure.
func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", nil)
		return 0, false
	}
	return id, true
}
