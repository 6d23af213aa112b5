package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newReportsService(t *testing.T) (ReportsService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	// nil cache: every call goes to the database
	return ReportsService{DB: db}, mock, func() { db.Close() }
}

func TestRouteRevenueReportExcludesCancelledFares(t *testing.T) {
	svc, mock, done := newReportsService(t)
	defer done()

	mock.ExpectQuery("FROM routes r").
		WithArgs("2026-09-01", "2026-09-30").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "name", "bookings", "seats", "revenue", "refunds"}).
			AddRow(int64(1), "Whitefield - Electronic City", 12, 31, int64(4650), int64(300)).
			AddRow(int64(2), "Hebbal - Sarjapur", 4, 9, int64(1800), int64(0)))

	report, err := svc.RouteRevenueReport("2026-09-01", "2026-09-30")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(report) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(report))
	}
	if report[0].Revenue != 4650 || report[0].Refunds != 300 {
		t.Fatalf("first route aggregation wrong: %+v", report[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOccupancyReportComputesPercentage(t *testing.T) {
	svc, mock, done := newReportsService(t)
	defer done()

	mock.ExpectQuery("FROM trips t").
		WithArgs("2026-09-01").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "name", "departure", "status", "total", "available"}).
			AddRow(int64(7), "Whitefield - Electronic City", "2026-09-01 08:00", "DEPARTED", 17, 13).
			AddRow(int64(8), "Whitefield - Electronic City", "2026-09-01 18:30", "SCHEDULED", 17, 17).
			AddRow(int64(9), "Hebbal - Sarjapur", "2026-09-01 09:00", "SCHEDULED", 0, 0))

	report, err := svc.OccupancyReport("2026-09-01")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(report) != 3 {
		t.Fatalf("expected 3 trips, got %d", len(report))
	}
	// 4 of 17 seats taken
	want := float64(4) / 17 * 100
	if report[0].OccupancyPct != want {
		t.Fatalf("occupancy mismatch: got %f want %f", report[0].OccupancyPct, want)
	}
	if report[1].OccupancyPct != 0 {
		t.Fatalf("empty trip should be 0%%, got %f", report[1].OccupancyPct)
	}
	if report[2].OccupancyPct != 0 {
		t.Fatalf("zero-capacity trip must not divide by zero, got %f", report[2].OccupancyPct)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFleetSummaryCounters(t *testing.T) {
	svc, mock, done := newReportsService(t)
	defer done()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM vehicles").
		WillReturnRows(sqlmock.NewRows(
			[]string{"vehicles", "drivers", "routes", "trips", "bookings", "revenue", "cancelled"}).
			AddRow(6, 8, 3, 12, 41, int64(18350), 2))

	summary, err := svc.Summary()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if summary.Vehicles != 6 || summary.Drivers != 8 || summary.ActiveRoutes != 3 {
		t.Fatalf("fleet counters wrong: %+v", summary)
	}
	if summary.RevenueToday != 18350 || summary.CancelledToday != 2 {
		t.Fatalf("booking counters wrong: %+v", summary)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
