package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"shuttle/internal/domain"
	"shuttle/internal/domain/models"
	"shuttle/internal/repositories"
)

func newTripService(t *testing.T) (TripService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := TripService{
		TripRepo:    repositories.TripRepository{DB: db},
		RouteRepo:   repositories.RouteRepository{DB: db},
		VehicleRepo: repositories.VehicleRepository{DB: db},
		DriverRepo:  repositories.DriverRepository{DB: db},
		BookingRepo: repositories.BookingRepository{DB: db},
		DB:          db,
		Now:         func() time.Time { return time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC) },
	}
	return svc, mock, func() { db.Close() }
}

func TestAdvanceCancelCascades(t *testing.T) {
	svc, mock, done := newTripService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM trips WHERE id").WillReturnRows(tripRow(17, 13, models.TripScheduled))
	mock.ExpectExec("UPDATE bookings").
		WithArgs(models.BookingCancelled, models.PaymentRefunded, int64(7), models.BookingCancelled).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("available_seats = total_seats").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE trips").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	trip, err := svc.Advance(7, models.TripCancelled)
	if err != nil {
		t.Fatalf("expected cancellation to succeed, got %v", err)
	}
	if trip.Status != models.TripCancelled {
		t.Fatalf("status mismatch: %s", trip.Status)
	}
	if trip.AvailableSeats != trip.TotalSeats {
		t.Fatalf("cancellation should restore every seat: %d of %d", trip.AvailableSeats, trip.TotalSeats)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAdvanceDepartureStampsTimestamp(t *testing.T) {
	svc, mock, done := newTripService(t)
	defer done()

	wantNow := svc.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM trips WHERE id").WillReturnRows(tripRow(17, 13, models.TripBoarding))
	mock.ExpectExec("UPDATE trips").
		WithArgs("DEPARTED", wantNow, nil, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	trip, err := svc.Advance(7, models.TripDeparted)
	if err != nil {
		t.Fatalf("expected departure to succeed, got %v", err)
	}
	if trip.ActualDeparture == nil || !trip.ActualDeparture.Equal(wantNow) {
		t.Fatalf("actual departure not stamped: %v", trip.ActualDeparture)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAdvanceArrivalBumpsDriverCounter(t *testing.T) {
	svc, mock, done := newTripService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM trips WHERE id").WillReturnRows(tripRow(17, 13, models.TripDeparted))
	mock.ExpectExec("total_trips \\+ 1").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE trips").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if _, err := svc.Advance(7, models.TripArrived); err != nil {
		t.Fatalf("expected arrival to succeed, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAdvanceRejectsCancelAfterDeparture(t *testing.T) {
	svc, mock, done := newTripService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM trips WHERE id").WillReturnRows(tripRow(17, 13, models.TripDeparted))
	mock.ExpectRollback()

	_, err := svc.Advance(7, models.TripCancelled)
	if !domain.IsInvalidTransition(err) {
		t.Fatalf("expected invalid-transition error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateTripCopiesVehicleCapacity(t *testing.T) {
	svc, mock, done := newTripService(t)
	defer done()

	start := time.Date(2026, 9, 2, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM routes WHERE id").WillReturnRows(routeRow())
	mock.ExpectQuery("FROM vehicles WHERE id").WillReturnRows(sqlmock.NewRows(
		[]string{"id", "registration", "type", "capacity", "insurance", "fitness", "permit", "available"}).
		AddRow(int64(3), "KA-01-AB-1234", "tempo-traveller", 17, "", "", "", true))
	mock.ExpectQuery("FROM drivers WHERE id").WillReturnRows(sqlmock.NewRows(
		[]string{"id", "name", "phone", "license", "expiry", "rating", "total_trips", "available", "vehicle_id"}).
		AddRow(int64(5), "Ravi Kumar", "+919811111111", "KA0520260001", "", 4.7, 120, true, nil))
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT\\(\\*\\)").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO trips").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	trip, err := svc.CreateTrip(TripRequest{
		RouteID:            1,
		VehicleID:          3,
		DriverID:           5,
		ScheduledDeparture: start,
		ScheduledArrival:   start.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("expected trip creation to succeed, got %v", err)
	}
	if trip.TotalSeats != 17 || trip.AvailableSeats != 17 {
		t.Fatalf("seat copy wrong: total=%d available=%d", trip.TotalSeats, trip.AvailableSeats)
	}
	if trip.Status != models.TripScheduled {
		t.Fatalf("new trip should be scheduled, got %s", trip.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateTripHardConflictOnOverlap(t *testing.T) {
	svc, mock, done := newTripService(t)
	defer done()

	start := time.Date(2026, 9, 2, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM routes WHERE id").WillReturnRows(routeRow())
	mock.ExpectQuery("FROM vehicles WHERE id").WillReturnRows(sqlmock.NewRows(
		[]string{"id", "registration", "type", "capacity", "insurance", "fitness", "permit", "available"}).
		AddRow(int64(3), "KA-01-AB-1234", "tempo-traveller", 17, "", "", "", true))
	mock.ExpectQuery("FROM drivers WHERE id").WillReturnRows(sqlmock.NewRows(
		[]string{"id", "name", "phone", "license", "expiry", "rating", "total_trips", "available", "vehicle_id"}).
		AddRow(int64(5), "Ravi Kumar", "+919811111111", "KA0520260001", "", 4.7, 120, true, nil))
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT\\(\\*\\)").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	_, err := svc.CreateTrip(TripRequest{
		RouteID:            1,
		VehicleID:          3,
		DriverID:           5,
		ScheduledDeparture: start,
		ScheduledArrival:   start.Add(time.Hour),
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateTripRejectsInvertedWindow(t *testing.T) {
	svc, _, done := newTripService(t)
	defer done()

	start := time.Date(2026, 9, 2, 8, 0, 0, 0, time.UTC)
	_, err := svc.CreateTrip(TripRequest{
		RouteID:            1,
		VehicleID:          3,
		DriverID:           5,
		ScheduledDeparture: start,
		ScheduledArrival:   start,
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
