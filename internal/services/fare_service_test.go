package services

import (
	"testing"

	"shuttle/internal/domain"
	"shuttle/internal/domain/models"
)

func fareRoute() models.Route {
	return models.Route{
		ID:              1,
		Name:            "Whitefield - Electronic City",
		BaseFare:        60,
		DistanceKM:      18,
		PerKmRate:       5,
		SurgeMultiplier: 1,
		Active:          true,
	}
}

func farePickup() models.PickupPoint {
	return models.PickupPoint{ID: 10, RouteID: 1, Name: "Hopefarm Signal", Type: models.PickupBusStop}
}

func TestComputeFareTicketScalesWithSeats(t *testing.T) {
	// per seat: 60 + 18*5 = 150
	fare, err := ComputeFare(fareRoute(), farePickup(), 4, models.BookingOptions{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if fare.Ticket != 600 {
		t.Fatalf("ticket fare mismatch: got %d want 600", fare.Ticket)
	}
	if fare.Total != 600 {
		t.Fatalf("total mismatch: got %d want 600", fare.Total)
	}
}

func TestComputeFareSurgeRounding(t *testing.T) {
	route := fareRoute()
	route.SurgeMultiplier = 1.25

	// 150 * 1.25 = 187.5, rounds to 188
	fare, err := ComputeFare(route, farePickup(), 1, models.BookingOptions{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if fare.Ticket != 188 {
		t.Fatalf("surge rounding mismatch: got %d want 188", fare.Ticket)
	}
}

func TestComputeFareZeroSurgeTreatedAsOne(t *testing.T) {
	route := fareRoute()
	route.SurgeMultiplier = 0

	fare, err := ComputeFare(route, farePickup(), 2, models.BookingOptions{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if fare.Ticket != 300 {
		t.Fatalf("zero surge should price at 1.0: got %d want 300", fare.Ticket)
	}
}

func TestComputeFareSeatCountBounds(t *testing.T) {
	if _, err := ComputeFare(fareRoute(), farePickup(), 0, models.BookingOptions{}); !domain.IsValidation(err) {
		t.Fatalf("zero seats should be a validation error, got %v", err)
	}
	if _, err := ComputeFare(fareRoute(), farePickup(), MaxSeatsPerBooking+1, models.BookingOptions{}); !domain.IsValidation(err) {
		t.Fatalf("over-limit seat count should be a validation error, got %v", err)
	}
}

func TestComputeFareRejectsForeignPickup(t *testing.T) {
	pickup := farePickup()
	pickup.RouteID = 99

	if _, err := ComputeFare(fareRoute(), pickup, 1, models.BookingOptions{}); !domain.IsValidation(err) {
		t.Fatalf("pickup on another route should fail, got %v", err)
	}
}

func TestComputeFareParkingFlatBeatsHourly(t *testing.T) {
	pickup := farePickup()
	pickup.Type = models.PickupParkingHub
	pickup.ParkingCapacity = 40
	pickup.ParkingFeeFlat = 30
	pickup.ParkingFeeHourly = 20

	fare, err := ComputeFare(fareRoute(), pickup, 1, models.BookingOptions{Parking: true, ParkingHours: 5})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if fare.Parking != 30 {
		t.Fatalf("flat fee should win over hourly: got %d want 30", fare.Parking)
	}
	if fare.Total != fare.Ticket+30 {
		t.Fatalf("total should include parking: got %d", fare.Total)
	}
}

func TestComputeFareParkingHourly(t *testing.T) {
	pickup := farePickup()
	pickup.Type = models.PickupMetroStation
	pickup.ParkingCapacity = 20
	pickup.ParkingFeeHourly = 20

	fare, err := ComputeFare(fareRoute(), pickup, 1, models.BookingOptions{Parking: true, ParkingHours: 3})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if fare.Parking != 60 {
		t.Fatalf("hourly parking mismatch: got %d want 60", fare.Parking)
	}

	// unspecified duration bills one hour
	fare, err = ComputeFare(fareRoute(), pickup, 1, models.BookingOptions{Parking: true})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if fare.Parking != 20 {
		t.Fatalf("default parking duration should be one hour: got %d", fare.Parking)
	}
}

func TestComputeFareParkingWithoutFacility(t *testing.T) {
	if _, err := ComputeFare(fareRoute(), farePickup(), 1, models.BookingOptions{Parking: true}); !domain.IsValidation(err) {
		t.Fatalf("parking at a bus stop should fail, got %v", err)
	}
}

func TestComputeFareHomePickup(t *testing.T) {
	pickup := farePickup()
	pickup.Type = models.PickupHomePickupZone

	fare, err := ComputeFare(fareRoute(), pickup, 1, models.BookingOptions{HomePickup: true})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if fare.HomePickup != HomePickupSurcharge {
		t.Fatalf("home pickup surcharge mismatch: got %d want %d", fare.HomePickup, HomePickupSurcharge)
	}

	if _, err := ComputeFare(fareRoute(), farePickup(), 1, models.BookingOptions{HomePickup: true}); !domain.IsValidation(err) {
		t.Fatalf("home pickup outside a home-pickup zone should fail, got %v", err)
	}
}

func TestComputeFareDeterministic(t *testing.T) {
	route := fareRoute()
	route.SurgeMultiplier = 1.37
	pickup := farePickup()
	pickup.Type = models.PickupParkingHub
	pickup.ParkingCapacity = 10
	pickup.ParkingFeeHourly = 25
	opts := models.BookingOptions{Parking: true, ParkingHours: 2}

	first, err := ComputeFare(route, pickup, 3, opts)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for i := 0; i < 50; i++ {
		again, err := ComputeFare(route, pickup, 3, opts)
		if err != nil {
			t.Fatalf("run %d: unexpected error %v", i, err)
		}
		if again != first {
			t.Fatalf("breakdown drifted on run %d: got %+v want %+v", i, again, first)
		}
	}
}
