package services

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	intconfig "shuttle/internal/config"
	"shuttle/internal/domain"
	"shuttle/internal/domain/models"
	"shuttle/internal/repositories"
	"shuttle/internal/utils"
)

// BookingService is the booking ledger: it coordinates the fare
// calculator and the seat inventory and owns the one transaction in
// which a booking is created or cancelled.
type BookingService struct {
	TripRepo    repositories.TripRepository
	BookingRepo repositories.BookingRepository
	RouteRepo   repositories.RouteRepository
	PickupRepo  repositories.PickupPointRepository
	DB          *sql.DB
	RequestID   string
	Notifier    *Notifier
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

type BookingRequest struct {
	TripID        int64                 `json:"tripId"`
	UserID        int64                 `json:"userId"`
	PickupPointID int64                 `json:"pickupPointId"`
	SeatCount     int                   `json:"seatCount"`
	Options       models.BookingOptions `json:"options"`
}

// Quote prices a prospective booking without creating it.
func (s BookingService) Quote(req BookingRequest) (models.FareBreakdown, error) {
	var out models.FareBreakdown

	trip, err := s.TripRepo.GetByID(req.TripID)
	if err != nil {
		return out, err
	}
	route, err := s.RouteRepo.GetByID(trip.RouteID)
	if err != nil {
		return out, err
	}
	pickup, err := s.PickupRepo.GetByID(req.PickupPointID)
	if err != nil {
		return out, err
	}
	return ComputeFare(route, pickup, req.SeatCount, req.Options)
}

// CreateBooking validates the trip, computes the fare, reserves seats and
// persists the booking, all or nothing. A failed reservation leaves no
// booking row behind.
func (s BookingService) CreateBooking(req BookingRequest) (models.Booking, error) {
	var out models.Booking

	if req.UserID <= 0 {
		return out, domain.ValidationError{Field: "userId", Msg: "required"}
	}

	trip, err := s.TripRepo.GetByID(req.TripID)
	if err != nil {
		return out, err
	}
	if !trip.Bookable() {
		return out, domain.TripNotBookableError{TripID: trip.ID, Status: string(trip.Status)}
	}

	route, err := s.RouteRepo.GetByID(trip.RouteID)
	if err != nil {
		return out, err
	}
	pickup, err := s.PickupRepo.GetByID(req.PickupPointID)
	if err != nil {
		return out, err
	}

	fare, err := ComputeFare(route, pickup, req.SeatCount, req.Options)
	if err != nil {
		return out, err
	}

	tx, err := s.db().Begin()
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	reserved, err := s.TripRepo.ReserveSeats(tx, req.TripID, req.SeatCount)
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	if !reserved {
		// The conditional update matched nothing; read the trip inside the
		// tx to tell "no capacity" apart from "no longer bookable".
		current, err := s.TripRepo.GetByIDForUpdate(tx, req.TripID)
		if err != nil {
			return out, err
		}
		if !current.Bookable() {
			return out, domain.TripNotBookableError{TripID: current.ID, Status: string(current.Status)}
		}
		return out, domain.NoCapacityError{
			TripID:    current.ID,
			Requested: req.SeatCount,
			Available: current.AvailableSeats,
		}
	}

	booking := models.Booking{
		Code:          newBookingCode(),
		TripID:        req.TripID,
		UserID:        req.UserID,
		PickupPointID: req.PickupPointID,
		SeatCount:     req.SeatCount,
		TicketFare:    fare.Ticket,
		ParkingFee:    fare.Parking,
		HomePickupFee: fare.HomePickup,
		TotalFare:     fare.Total,
		PaymentStatus: models.PaymentPaid,
		Status:        models.BookingConfirmed,
	}

	id, err := s.BookingRepo.Insert(tx, booking)
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	booking.ID = id
	s.BookingRepo.InsertEvent(tx, id, "created", fmt.Sprintf("seats=%d total=%d", booking.SeatCount, booking.TotalFare))

	if err := tx.Commit(); err != nil {
		return out, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "booking", "created",
		fmt.Sprintf("booking_id=%d trip_id=%d seats=%d", id, req.TripID, req.SeatCount))
	s.Notifier.BookingConfirmed(s.RequestID, s.userPhone(req.UserID), booking)

	return booking, nil
}

// CancelBooking releases the booking's seats (pre-departure only), marks
// it cancelled and records the refund-eligible amount. Cancelling an
// already-cancelled booking fails and has no side effect.
func (s BookingService) CancelBooking(bookingID int64) (models.Booking, error) {
	var out models.Booking

	tx, err := s.db().Begin()
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	booking, err := s.BookingRepo.GetByIDForUpdate(tx, bookingID)
	if err != nil {
		return out, err
	}
	if booking.Status == models.BookingCancelled {
		return out, domain.AlreadyCancelledError{BookingID: bookingID}
	}

	trip, err := s.TripRepo.GetByIDForUpdate(tx, booking.TripID)
	if err != nil {
		return out, err
	}

	refund := refundAmount(trip.Status, booking.TotalFare)

	// Seats return to inventory only while the trip has not departed; a
	// departed trip keeps its occupancy.
	if trip.Bookable() {
		if err := s.TripRepo.ReleaseSeats(tx, trip.ID, booking.SeatCount); err != nil {
			return out, domain.InternalError{Err: err}
		}
	}

	if err := s.BookingRepo.MarkCancelled(tx, bookingID, refund); err != nil {
		return out, domain.InternalError{Err: err}
	}
	s.BookingRepo.InsertEvent(tx, bookingID, "cancelled", fmt.Sprintf("refund=%d trip_status=%s", refund, trip.Status))

	if err := tx.Commit(); err != nil {
		return out, domain.InternalError{Err: err}
	}

	booking.Status = models.BookingCancelled
	booking.RefundAmount = refund
	if refund > 0 {
		booking.PaymentStatus = models.PaymentRefunded
	}

	utils.LogEvent(s.RequestID, "booking", "cancelled",
		fmt.Sprintf("booking_id=%d refund=%d", bookingID, refund))
	s.Notifier.BookingCancelled(s.RequestID, s.userPhone(booking.UserID), booking)

	return booking, nil
}

// refundAmount applies the cancellation-time policy: full refund while
// the trip is still SCHEDULED, half during BOARDING, nothing once it has
// departed. A cancelled trip always refunds in full.
func refundAmount(status models.TripStatus, total int64) int64 {
	switch status {
	case models.TripScheduled, models.TripCancelled:
		return total
	case models.TripBoarding:
		return total / 2
	default:
		return 0
	}
}

func (s BookingService) userPhone(userID int64) string {
	var phone string
	err := s.db().QueryRow(`SELECT COALESCE(phone,'') FROM users WHERE id = ?`, userID).Scan(&phone)
	if err != nil {
		return ""
	}
	return phone
}

func newBookingCode() string {
	return "BLR-" + strings.ToUpper(uuid.NewString()[:8])
}
