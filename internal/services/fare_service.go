package services

import (
	"math"

	"shuttle/internal/domain"
	"shuttle/internal/domain/models"
)

const (
	// MaxSeatsPerBooking caps a single booking, matching the wizard UI.
	MaxSeatsPerBooking = 4

	// HomePickupSurcharge is the flat doorstep add-on in rupees.
	HomePickupSurcharge = int64(149)
)

// ComputeFare prices a prospective booking. It is pure and deterministic:
// identical inputs always produce the identical breakdown, so booking
// confirmation and later auditing reconcile exactly.
func ComputeFare(route models.Route, pickup models.PickupPoint, seatCount int, opts models.BookingOptions) (models.FareBreakdown, error) {
	var out models.FareBreakdown

	if seatCount <= 0 {
		return out, domain.ValidationError{Field: "seatCount", Msg: "must be at least 1"}
	}
	if seatCount > MaxSeatsPerBooking {
		return out, domain.ValidationError{Field: "seatCount", Msg: "at most 4 seats per booking"}
	}
	if pickup.RouteID != route.ID {
		return out, domain.ValidationError{Field: "pickupPointId", Msg: "pickup point does not belong to route"}
	}

	surge := route.SurgeMultiplier
	if surge <= 0 {
		surge = 1
	}

	perSeat := float64(route.BaseFare) + route.DistanceKM*route.PerKmRate
	out.Ticket = int64(math.Round(perSeat * surge * float64(seatCount)))
	if out.Ticket < 0 {
		return out, domain.ValidationError{Field: "route", Msg: "fare configuration yields negative ticket price"}
	}

	if opts.Parking {
		if !pickup.HasParking() {
			return out, domain.ValidationError{Field: "parking", Msg: "pickup point has no parking"}
		}
		if pickup.ParkingFeeFlat > 0 {
			out.Parking = pickup.ParkingFeeFlat
		} else {
			hours := opts.ParkingHours
			if hours <= 0 {
				hours = 1
			}
			out.Parking = pickup.ParkingFeeHourly * int64(hours)
		}
	}

	if opts.HomePickup {
		if pickup.Type != models.PickupHomePickupZone {
			return out, domain.ValidationError{Field: "homePickup", Msg: "pickup point is not a home-pickup zone"}
		}
		out.HomePickup = HomePickupSurcharge
	}

	out.Total = out.Ticket + out.Parking + out.HomePickup
	return out, nil
}
