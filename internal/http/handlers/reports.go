package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"shuttle/internal/services"
	"shuttle/internal/utils"
)

func reportsService() services.ReportsService {
	return services.ReportsService{Cache: appCache}
}

// GET /api/reports/revenue?start=2026-09-01&end=2026-09-30
func GetRevenueReport(c *gin.Context) {
	start := strings.TrimSpace(c.Query("start"))
	end := strings.TrimSpace(c.Query("end"))
	if start == "" || end == "" {
		RespondError(c, http.StatusBadRequest, "start and end query parameters are required", nil)
		return
	}
	for _, d := range []string{start, end} {
		if _, err := utils.ParseDate(d); err != nil {
			RespondError(c, http.StatusBadRequest, "dates must be YYYY-MM-DD", nil)
			return
		}
	}

	report, err := reportsService().RouteRevenueReport(start, end)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to build revenue report", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GET /api/reports/occupancy?date=2026-09-01
func GetOccupancyReport(c *gin.Context) {
	date := strings.TrimSpace(c.DefaultQuery("date", utils.FormatDate(time.Now())))
	if _, err := utils.ParseDate(date); err != nil {
		RespondError(c, http.StatusBadRequest, "date must be YYYY-MM-DD", nil)
		return
	}

	report, err := reportsService().OccupancyReport(date)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to build occupancy report", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GET /api/reports/summary
func GetFleetSummary(c *gin.Context) {
	summary, err := reportsService().Summary()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to build fleet summary", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
