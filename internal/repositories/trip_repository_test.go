package repositories

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"shuttle/internal/domain"
	"shuttle/internal/domain/models"
)

func newMock(t *testing.T) (sqlmock.Sqlmock, TripRepository, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	return mock, TripRepository{DB: db}, func() { db.Close() }
}

func TestReserveSeatsDecrementsWhenAvailable(t *testing.T) {
	mock, repo, done := newMock(t)
	defer done()

	mock.ExpectExec("UPDATE trips").
		WithArgs(4, int64(7), 4, "SCHEDULED", "BOARDING").
		WillReturnResult(sqlmock.NewResult(0, 1))

	reserved, err := repo.ReserveSeats(repo.DB, 7, 4)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !reserved {
		t.Fatalf("reservation should succeed when the row matches")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserveSeatsFailsWhenRowUnmatched(t *testing.T) {
	mock, repo, done := newMock(t)
	defer done()

	// Seats gone or status no longer bookable: the conditional update
	// matches nothing and no decrement happens.
	mock.ExpectExec("UPDATE trips").
		WithArgs(2, int64(7), 2, "SCHEDULED", "BOARDING").
		WillReturnResult(sqlmock.NewResult(0, 0))

	reserved, err := repo.ReserveSeats(repo.DB, 7, 2)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if reserved {
		t.Fatalf("reservation must report failure on zero affected rows")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReleaseSeatsIsCappedAtCapacity(t *testing.T) {
	mock, repo, done := newMock(t)
	defer done()

	mock.ExpectExec("LEAST\\(total_seats, available_seats \\+ \\?\\)").
		WithArgs(3, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.ReleaseSeats(repo.DB, 7, 3); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateStatusPreservesExistingTimestamps(t *testing.T) {
	mock, repo, done := newMock(t)
	defer done()

	departed := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	trip := models.Trip{ID: 7, Status: models.TripDeparted, ActualDeparture: &departed}

	mock.ExpectExec("COALESCE\\(actual_departure, \\?\\)").
		WithArgs("DEPARTED", departed, nil, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateStatus(repo.DB, trip); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateStatusMissingTrip(t *testing.T) {
	mock, repo, done := newMock(t)
	defer done()

	mock.ExpectExec("UPDATE trips").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(repo.DB, models.Trip{ID: 99, Status: models.TripBoarding})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestHasOverlapWindowIntersection(t *testing.T) {
	mock, repo, done := newMock(t)
	defer done()

	start := time.Date(2026, 9, 2, 8, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\)").
		WithArgs(int64(3), int64(5), "ARRIVED", "CANCELLED", end, start).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	overlap, err := repo.HasOverlap(repo.DB, 3, 5, start, end)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !overlap {
		t.Fatalf("expected an overlap to be reported")
	}
}
