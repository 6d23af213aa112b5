package api

import (
	"log"
	stdhttp "net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	intconfig "shuttle/internal/config"
	h "shuttle/internal/http/handlers"
	"shuttle/internal/http/middleware"
)

func corsConfig() cors.Config {
	cfg := cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000", "http://127.0.0.1:3000",
			"http://localhost:5173", "http://127.0.0.1:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}
	if env := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); env != "" {
		cfg.AllowOrigins = nil
		for _, o := range strings.Split(env, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowOrigins = append(cfg.AllowOrigins, o)
			}
		}
	}
	return cfg
}

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), cors.New(corsConfig()))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	authed := middleware.RequireAuth([]byte(env.JWTSecret))
	staffOnly := middleware.RequireRoles("admin", "operations")

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		// Public browse surface: routes, stops, trips, seat availability.
		api.GET("/routes", h.GetRoutes)
		api.GET("/routes/:id", h.GetRouteByID)
		api.GET("/pickup-points", h.GetPickupPoints)
		api.GET("/trips", h.GetTrips)
		api.GET("/trips/:id", h.GetTripByID)
		api.GET("/trips/:id/seats", h.GetTripSeats)

		// Bookings (commuter)
		bookings := api.Group("/bookings", authed)
		bookings.POST("/quote", h.QuoteBooking)
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.GetMyBookings)
		bookings.GET("/:id", h.GetBookingByID)
		bookings.PUT("/:id/cancel", h.CancelBooking)
		bookings.GET("/:id/eticket", h.DownloadETicket)
		bookings.GET("/:id/receipt", h.DownloadReceipt)

		// Live tracking
		tracking := api.Group("/tracking")
		tracking.GET("/ws", h.TrackingSocket)
		tracking.POST("/positions", authed, staffOnly, h.PostVehiclePosition)
		tracking.GET("/vehicles/:id", authed, h.GetVehiclePosition)

		// Admin / operations
		admin := api.Group("", authed, staffOnly)
		{
			admin.POST("/routes", h.CreateRoute)
			admin.PUT("/routes/:id", h.UpdateRoute)
			admin.DELETE("/routes/:id", h.DeleteRoute)

			admin.POST("/pickup-points", h.CreatePickupPoint)
			admin.PUT("/pickup-points/:id", h.UpdatePickupPoint)
			admin.DELETE("/pickup-points/:id", h.DeletePickupPoint)

			admin.GET("/vehicles", h.GetVehicles)
			admin.GET("/vehicles/:id", h.GetVehicleByID)
			admin.POST("/vehicles", h.CreateVehicle)
			admin.PUT("/vehicles/:id", h.UpdateVehicle)
			admin.DELETE("/vehicles/:id", h.DeleteVehicle)

			admin.GET("/drivers", h.GetDrivers)
			admin.GET("/drivers/:id", h.GetDriverByID)
			admin.POST("/drivers", h.CreateDriver)
			admin.PUT("/drivers/:id", h.UpdateDriver)
			admin.DELETE("/drivers/:id", h.DeleteDriver)

			admin.POST("/trips", h.CreateTrip)
			admin.PUT("/trips/:id/status", h.UpdateTripStatus)
			admin.DELETE("/trips/:id", h.DeleteTrip)
			admin.GET("/trips/:id/bookings", h.GetTripBookings)

			admin.GET("/companies", h.GetCompanies)
			admin.GET("/users", h.GetUsers)
			admin.GET("/users/:id", h.GetUserByID)
			admin.PUT("/users/:id", h.UpdateUser)
			admin.DELETE("/users/:id", h.DeleteUser)

			admin.GET("/reports/revenue", h.GetRevenueReport)
			admin.GET("/reports/occupancy", h.GetOccupancyReport)
			admin.GET("/reports/summary", h.GetFleetSummary)
		}
	}

	return r
}
