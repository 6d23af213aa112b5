package services

import (
	"context"
	"database/sql"
	"time"

	intcache "shuttle/internal/cache"
	intconfig "shuttle/internal/config"
	"shuttle/internal/domain/models"
)

// ReportsService is the admin query layer: read-only aggregation over the
// ledger for dashboards. Reads never block the booking path; results may
// lag by up to the cache TTL.
type ReportsService struct {
	DB    *sql.DB
	Cache *intcache.Redis
}

const reportCacheTTL = 30 * time.Second

func (s ReportsService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

type RouteRevenue struct {
	RouteID   int64  `json:"routeId"`
	RouteName string `json:"routeName"`
	Bookings  int    `json:"bookings"`
	Seats     int    `json:"seats"`
	Revenue   int64  `json:"revenue"`
	Refunds   int64  `json:"refunds"`
}

type TripOccupancy struct {
	TripID         int64             `json:"tripId"`
	RouteName      string            `json:"routeName"`
	Departure      string            `json:"departure"`
	Status         models.TripStatus `json:"status"`
	TotalSeats     int               `json:"totalSeats"`
	AvailableSeats int               `json:"availableSeats"`
	OccupancyPct   float64           `json:"occupancyPct"`
}

type FleetSummary struct {
	Vehicles       int   `json:"vehicles"`
	Drivers        int   `json:"drivers"`
	ActiveRoutes   int   `json:"activeRoutes"`
	TripsToday     int   `json:"tripsToday"`
	BookingsToday  int   `json:"bookingsToday"`
	RevenueToday   int64 `json:"revenueToday"`
	CancelledToday int   `json:"cancelledToday"`
}

// RouteRevenueReport sums confirmed booking revenue per route, optionally
// bounded by trip date (YYYY-MM-DD).
func (s ReportsService) RouteRevenueReport(startDate, endDate string) ([]RouteRevenue, error) {
	key := "reports:revenue:" + startDate + ":" + endDate
	cached := []RouteRevenue{}
	if s.Cache.Get(context.Background(), key, &cached) {
		return cached, nil
	}

	query := `
		SELECT r.id, r.name,
			COUNT(b.id),
			COALESCE(SUM(b.seat_count), 0),
			COALESCE(SUM(CASE WHEN b.status != 'CANCELLED' THEN b.total_fare ELSE 0 END), 0),
			COALESCE(SUM(COALESCE(b.refund_amount, 0)), 0)
		FROM routes r
		JOIN trips t ON t.route_id = r.id
		JOIN bookings b ON b.trip_id = t.id
		WHERE 1=1`
	args := []any{}
	if startDate != "" {
		query += ` AND DATE(t.scheduled_departure) >= ?`
		args = append(args, startDate)
	}
	if endDate != "" {
		query += ` AND DATE(t.scheduled_departure) <= ?`
		args = append(args, endDate)
	}
	query += ` GROUP BY r.id, r.name ORDER BY r.id ASC`

	rows, err := s.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []RouteRevenue{}
	for rows.Next() {
		var rr RouteRevenue
		if err := rows.Scan(&rr.RouteID, &rr.RouteName, &rr.Bookings, &rr.Seats, &rr.Revenue, &rr.Refunds); err != nil {
			return out, err
		}
		out = append(out, rr)
	}
	if err := rows.Err(); err != nil {
		return out, err
	}

	s.Cache.Set(context.Background(), key, out, reportCacheTTL)
	return out, nil
}

// OccupancyReport lists seat utilization per trip for a date.
func (s ReportsService) OccupancyReport(date string) ([]TripOccupancy, error) {
	query := `
		SELECT t.id, r.name, DATE_FORMAT(t.scheduled_departure, '%Y-%m-%d %H:%i'),
			t.status, t.total_seats, t.available_seats
		FROM trips t
		JOIN routes r ON r.id = t.route_id
		WHERE 1=1`
	args := []any{}
	if date != "" {
		query += ` AND DATE(t.scheduled_departure) = ?`
		args = append(args, date)
	}
	query += ` ORDER BY t.scheduled_departure ASC`

	rows, err := s.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []TripOccupancy{}
	for rows.Next() {
		var o TripOccupancy
		if err := rows.Scan(&o.TripID, &o.RouteName, &o.Departure, &o.Status, &o.TotalSeats, &o.AvailableSeats); err != nil {
			return out, err
		}
		if o.TotalSeats > 0 {
			o.OccupancyPct = float64(o.TotalSeats-o.AvailableSeats) / float64(o.TotalSeats) * 100
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// Summary returns the dashboard headline counters.
func (s ReportsService) Summary() (FleetSummary, error) {
	key := "reports:summary"
	var out FleetSummary
	if s.Cache.Get(context.Background(), key, &out) {
		return out, nil
	}

	db := s.db()
	row := db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM vehicles),
			(SELECT COUNT(*) FROM drivers),
			(SELECT COUNT(*) FROM routes WHERE active = 1),
			(SELECT COUNT(*) FROM trips WHERE DATE(scheduled_departure) = CURDATE()),
			(SELECT COUNT(*) FROM bookings WHERE DATE(created_at) = CURDATE()),
			(SELECT COALESCE(SUM(total_fare), 0) FROM bookings
				WHERE DATE(created_at) = CURDATE() AND status != 'CANCELLED'),
			(SELECT COUNT(*) FROM bookings
				WHERE DATE(created_at) = CURDATE() AND status = 'CANCELLED')
	`)
	if err := row.Scan(&out.Vehicles, &out.Drivers, &out.ActiveRoutes,
		&out.TripsToday, &out.BookingsToday, &out.RevenueToday, &out.CancelledToday); err != nil {
		return out, err
	}

	s.Cache.Set(context.Background(), key, out, reportCacheTTL)
	return out, nil
}
