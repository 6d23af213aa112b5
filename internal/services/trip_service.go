package services

import (
	"database/sql"
	"fmt"
	"time"

	intconfig "shuttle/internal/config"
	"shuttle/internal/domain"
	"shuttle/internal/domain/models"
	"shuttle/internal/repositories"
	"shuttle/internal/utils"
)

// TripService owns trip creation and the lifecycle state machine.
type TripService struct {
	TripRepo    repositories.TripRepository
	RouteRepo   repositories.RouteRepository
	VehicleRepo repositories.VehicleRepository
	DriverRepo  repositories.DriverRepository
	BookingRepo repositories.BookingRepository
	DB          *sql.DB
	RequestID   string
	Notifier    *Notifier
	Now         func() time.Time // test hook
}

func (s TripService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s TripService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type TripRequest struct {
	RouteID            int64     `json:"routeId"`
	VehicleID          int64     `json:"vehicleId"`
	DriverID           int64     `json:"driverId"`
	ScheduledDeparture time.Time `json:"scheduledDeparture"`
	ScheduledArrival   time.Time `json:"scheduledArrival"`
}

// CreateTrip schedules a run. Total seats are copied from the vehicle
// capacity at creation and never change afterwards. A vehicle or driver
// already assigned to an overlapping trip is a hard conflict.
func (s TripService) CreateTrip(req TripRequest) (models.Trip, error) {
	var out models.Trip

	if !req.ScheduledDeparture.Before(req.ScheduledArrival) {
		return out, domain.ValidationError{Field: "scheduledArrival", Msg: "must be after departure"}
	}

	route, err := s.RouteRepo.GetByID(req.RouteID)
	if err != nil {
		return out, err
	}
	if !route.Active {
		return out, domain.ValidationError{Field: "routeId", Msg: "route is inactive"}
	}

	vehicle, err := s.VehicleRepo.GetByID(req.VehicleID)
	if err != nil {
		return out, err
	}
	if !vehicle.Available {
		return out, domain.ConflictError{Resource: "vehicle", Msg: "vehicle is not available"}
	}
	if vehicle.Capacity <= 0 {
		return out, domain.ValidationError{Field: "vehicleId", Msg: "vehicle has no seat capacity"}
	}

	driver, err := s.DriverRepo.GetByID(req.DriverID)
	if err != nil {
		return out, err
	}
	if !driver.Available {
		return out, domain.ConflictError{Resource: "driver", Msg: "driver is not available"}
	}

	tx, err := s.db().Begin()
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	overlap, err := s.TripRepo.HasOverlap(tx, req.VehicleID, req.DriverID, req.ScheduledDeparture, req.ScheduledArrival)
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	if overlap {
		return out, domain.ConflictError{Resource: "trip", Msg: "vehicle or driver already assigned in this time window"}
	}

	trip := models.Trip{
		RouteID:            req.RouteID,
		VehicleID:          req.VehicleID,
		DriverID:           req.DriverID,
		ScheduledDeparture: req.ScheduledDeparture,
		ScheduledArrival:   req.ScheduledArrival,
		TotalSeats:         vehicle.Capacity,
		AvailableSeats:     vehicle.Capacity,
		Status:             models.TripScheduled,
	}

	id, err := s.TripRepo.Insert(tx, trip)
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	trip.ID = id

	if err := tx.Commit(); err != nil {
		return out, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "trip", "created",
		fmt.Sprintf("trip_id=%d route_id=%d seats=%d", id, req.RouteID, trip.TotalSeats))
	return trip, nil
}

// Advance moves the trip to the target status. An illegal target is a
// caller bug: logged loudly, surfaced as InvalidTransitionError.
// Cancellation releases all reserved seats and cancels the trip's
// bookings in the same transaction; arrival bumps the driver's counter.
func (s TripService) Advance(tripID int64, target models.TripStatus) (models.Trip, error) {
	var out models.Trip

	tx, err := s.db().Begin()
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	trip, err := s.TripRepo.GetByIDForUpdate(tx, tripID)
	if err != nil {
		return out, err
	}

	if !models.ApplyTransition(&trip, target, s.now()) {
		terr := domain.InvalidTransitionError{From: string(trip.Status), To: string(target)}
		utils.LogFault(s.RequestID, "trip", "advance", terr)
		return out, terr
	}

	switch target {
	case models.TripCancelled:
		if err := s.BookingRepo.CancelAllForTrip(tx, tripID); err != nil {
			return out, domain.InternalError{Err: err}
		}
		if err := s.TripRepo.RestoreAllSeats(tx, tripID); err != nil {
			return out, domain.InternalError{Err: err}
		}
		trip.AvailableSeats = trip.TotalSeats
	case models.TripArrived:
		if err := s.DriverRepo.IncrementTotalTrips(tx, trip.DriverID); err != nil {
			return out, domain.InternalError{Err: err}
		}
	}

	if err := s.TripRepo.UpdateStatus(tx, trip); err != nil {
		return out, domain.InternalError{Err: err}
	}

	if err := tx.Commit(); err != nil {
		return out, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "trip", "status_changed",
		fmt.Sprintf("trip_id=%d status=%s", tripID, target))
	s.notifyPassengers(trip)

	return trip, nil
}

// notifyPassengers texts every active booking holder about the status
// change. Best-effort: lookup failures are just logged.
func (s TripService) notifyPassengers(trip models.Trip) {
	if s.Notifier == nil {
		return
	}
	query := `
		SELECT DISTINCT COALESCE(u.phone,'')
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		WHERE b.trip_id = ?`
	args := []any{trip.ID}
	if trip.Status != models.TripCancelled {
		// On cancellation the cascade has already marked every booking
		// cancelled; those holders still need the message.
		query += ` AND b.status != ?`
		args = append(args, models.BookingCancelled)
	}
	rows, err := s.db().Query(query, args...)
	if err != nil {
		utils.LogEvent(s.RequestID, "trip", "notify_lookup_failed", err.Error())
		return
	}
	defer rows.Close()

	for rows.Next() {
		var phone string
		if err := rows.Scan(&phone); err != nil {
			return
		}
		s.Notifier.TripStatusChanged(s.RequestID, phone, trip.ID, trip.Status)
	}
}
