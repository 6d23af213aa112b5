package models

import (
	"testing"
	"time"
)

func TestCanTransitionHappyPath(t *testing.T) {
	steps := []struct{ from, to TripStatus }{
		{TripScheduled, TripBoarding},
		{TripBoarding, TripDeparted},
		{TripDeparted, TripArrived},
	}
	for _, s := range steps {
		if !CanTransition(s.from, s.to) {
			t.Fatalf("%s -> %s should be allowed", s.from, s.to)
		}
	}
}

func TestCanTransitionRejectsSkips(t *testing.T) {
	bad := []struct{ from, to TripStatus }{
		{TripScheduled, TripDeparted},
		{TripScheduled, TripArrived},
		{TripBoarding, TripArrived},
		{TripDeparted, TripScheduled},
		{TripDeparted, TripBoarding},
	}
	for _, s := range bad {
		if CanTransition(s.from, s.to) {
			t.Fatalf("%s -> %s should be rejected", s.from, s.to)
		}
	}
}

func TestCancellationOnlyBeforeDeparture(t *testing.T) {
	if !CanTransition(TripScheduled, TripCancelled) {
		t.Fatalf("scheduled trip should be cancellable")
	}
	if !CanTransition(TripBoarding, TripCancelled) {
		t.Fatalf("boarding trip should be cancellable")
	}
	if CanTransition(TripDeparted, TripCancelled) {
		t.Fatalf("departed trip must not be cancellable")
	}
	if CanTransition(TripArrived, TripCancelled) {
		t.Fatalf("arrived trip must not be cancellable")
	}
}

func TestTerminalStatesHaveNoMoves(t *testing.T) {
	for _, terminal := range []TripStatus{TripArrived, TripCancelled} {
		if n := len(AllowTransition[terminal]); n != 0 {
			t.Fatalf("%s should be terminal, has %d moves", terminal, n)
		}
	}
}

func TestApplyTransitionRecordsTimestamps(t *testing.T) {
	departAt := time.Date(2026, 9, 1, 8, 5, 0, 0, time.UTC)
	arriveAt := departAt.Add(55 * time.Minute)

	trip := &Trip{Status: TripBoarding}
	if !ApplyTransition(trip, TripDeparted, departAt) {
		t.Fatalf("boarding -> departed should apply")
	}
	if trip.ActualDeparture == nil || !trip.ActualDeparture.Equal(departAt) {
		t.Fatalf("actual departure not recorded: %v", trip.ActualDeparture)
	}
	if trip.ActualArrival != nil {
		t.Fatalf("arrival should be unset before arriving")
	}

	if !ApplyTransition(trip, TripArrived, arriveAt) {
		t.Fatalf("departed -> arrived should apply")
	}
	if trip.ActualArrival == nil || !trip.ActualArrival.Equal(arriveAt) {
		t.Fatalf("actual arrival not recorded: %v", trip.ActualArrival)
	}
}

func TestApplyTransitionKeepsFirstTimestamp(t *testing.T) {
	original := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	trip := &Trip{Status: TripBoarding, ActualDeparture: &original}

	if !ApplyTransition(trip, TripDeparted, original.Add(10*time.Minute)) {
		t.Fatalf("transition should still apply")
	}
	if !trip.ActualDeparture.Equal(original) {
		t.Fatalf("actual departure overwritten: got %v want %v", trip.ActualDeparture, original)
	}
}

func TestApplyTransitionRejectsIllegalMove(t *testing.T) {
	trip := &Trip{Status: TripDeparted}
	if ApplyTransition(trip, TripCancelled, time.Now()) {
		t.Fatalf("departed -> cancelled should be rejected")
	}
	if trip.Status != TripDeparted {
		t.Fatalf("status mutated on rejected transition: %s", trip.Status)
	}
}

func TestBookable(t *testing.T) {
	cases := map[TripStatus]bool{
		TripScheduled: true,
		TripBoarding:  true,
		TripDeparted:  false,
		TripArrived:   false,
		TripCancelled: false,
	}
	for status, want := range cases {
		if got := (Trip{Status: status}).Bookable(); got != want {
			t.Fatalf("bookable(%s) = %v, want %v", status, got, want)
		}
	}
}
