package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shuttle/internal/domain/models"
	"shuttle/internal/http/middleware"
	"shuttle/internal/repositories"
	"shuttle/internal/services"
)

type bookingPayload struct {
	TripID        int64 `json:"tripId" binding:"required"`
	PickupPointID int64 `json:"pickupPointId" binding:"required"`
	SeatCount     int   `json:"seatCount" binding:"required"`
	Options       struct {
		Parking      bool `json:"parking"`
		ParkingHours int  `json:"parkingHours"`
		HomePickup   bool `json:"homePickup"`
	} `json:"options"`
}

func (p bookingPayload) toRequest(userID int64) services.BookingRequest {
	return services.BookingRequest{
		TripID:        p.TripID,
		UserID:        userID,
		PickupPointID: p.PickupPointID,
		SeatCount:     p.SeatCount,
		Options: models.BookingOptions{
			Parking:      p.Options.Parking,
			ParkingHours: p.Options.ParkingHours,
			HomePickup:   p.Options.HomePickup,
		},
	}
}

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{
		RequestID: middleware.GetRequestID(c),
		Notifier:  notifier,
	}
}

// POST /api/bookings/quote
func QuoteBooking(c *gin.Context) {
	var payload bookingPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	fare, err := bookingService(c).Quote(payload.toRequest(middleware.GetUserID(c)))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, fare)
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var payload bookingPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	booking, err := bookingService(c).CreateBooking(payload.toRequest(middleware.GetUserID(c)))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GET /api/bookings/:id
func GetBookingByID(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	b, err := repositories.BookingRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GET /api/bookings (current user's booking history)
func GetMyBookings(c *gin.Context) {
	list, err := repositories.BookingRepository{}.ListByUser(middleware.GetUserID(c))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list bookings", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/trips/:id/bookings (admin view of a trip's manifest)
func GetTripBookings(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	list, err := repositories.BookingRepository{}.ListActiveByTrip(id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list trip bookings", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// PUT /api/bookings/:id/cancel
func CancelBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	booking, err := bookingService(c).CancelBooking(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// GET /api/bookings/:id/eticket
func DownloadETicket(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	svc := services.DocsService{RequestID: middleware.GetRequestID(c)}
	pdf, filename, err := svc.GenerateETicket(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// GET /api/bookings/:id/receipt
func DownloadReceipt(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	svc := services.DocsService{RequestID: middleware.GetRequestID(c)}
	pdf, filename, err := svc.GenerateReceipt(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
