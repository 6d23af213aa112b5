package models

import "time"

// TripStatus is the trip's phase in its lifecycle.
type TripStatus string

const (
	TripScheduled TripStatus = "SCHEDULED"
	TripBoarding  TripStatus = "BOARDING"
	TripDeparted  TripStatus = "DEPARTED"
	TripArrived   TripStatus = "ARRIVED"
	TripCancelled TripStatus = "CANCELLED"
)

// AllowTransition is the directed graph of permitted status moves.
// Cancellation is only reachable pre-departure; ARRIVED and CANCELLED are
// terminal.
var AllowTransition = map[TripStatus][]TripStatus{
	TripScheduled: {TripBoarding, TripCancelled},
	TripBoarding:  {TripDeparted, TripCancelled},
	TripDeparted:  {TripArrived},
	TripArrived:   {},
	TripCancelled: {},
}

// CanTransition reports whether from -> to is a permitted move.
func CanTransition(from, to TripStatus) bool {
	for _, s := range AllowTransition[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Trip is a single scheduled run of a vehicle along a route.
// TotalSeats is copied from the vehicle capacity at creation and never
// changes afterwards; AvailableSeats is mutated only through the booking
// ledger's reserve/release path.
type Trip struct {
	ID                 int64      `json:"id"`
	RouteID            int64      `json:"routeId"`
	VehicleID          int64      `json:"vehicleId"`
	DriverID           int64      `json:"driverId"`
	ScheduledDeparture time.Time  `json:"scheduledDeparture"`
	ScheduledArrival   time.Time  `json:"scheduledArrival"`
	ActualDeparture    *time.Time `json:"actualDeparture,omitempty"`
	ActualArrival      *time.Time `json:"actualArrival,omitempty"`
	TotalSeats         int        `json:"totalSeats"`
	AvailableSeats     int        `json:"availableSeats"`
	Status             TripStatus `json:"status"`
}

// Bookable reports whether new bookings may still be taken.
func (t Trip) Bookable() bool {
	return t.Status == TripScheduled || t.Status == TripBoarding
}

// ApplyTransition moves the trip to the target status and maintains the
// write-once actual timestamps. Callers must treat a returned
// InvalidTransitionError-shaped failure as a bug, not user input.
func ApplyTransition(t *Trip, to TripStatus, now time.Time) bool {
	if t == nil || !CanTransition(t.Status, to) {
		return false
	}
	t.Status = to
	switch to {
	case TripDeparted:
		if t.ActualDeparture == nil {
			ts := now
			t.ActualDeparture = &ts
		}
	case TripArrived:
		if t.ActualArrival == nil {
			ts := now
			t.ActualArrival = &ts
		}
	}
	return true
}
