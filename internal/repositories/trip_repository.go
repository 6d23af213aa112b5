package repositories

import (
	"database/sql"
	"time"

	intconfig "shuttle/internal/config"
	"shuttle/internal/domain"
	"shuttle/internal/domain/models"
)

type TripRepository struct {
	DB *sql.DB
}

func (r TripRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const tripColumns = `id, route_id, vehicle_id, driver_id, scheduled_departure, scheduled_arrival,
	actual_departure, actual_arrival, total_seats, available_seats, status`

func scanTrip(row interface{ Scan(...any) error }) (models.Trip, error) {
	var t models.Trip
	var actualDep, actualArr sql.NullTime
	err := row.Scan(
		&t.ID,
		&t.RouteID,
		&t.VehicleID,
		&t.DriverID,
		&t.ScheduledDeparture,
		&t.ScheduledArrival,
		&actualDep,
		&actualArr,
		&t.TotalSeats,
		&t.AvailableSeats,
		&t.Status,
	)
	if actualDep.Valid {
		t.ActualDeparture = &actualDep.Time
	}
	if actualArr.Valid {
		t.ActualArrival = &actualArr.Time
	}
	return t, err
}

func (r TripRepository) GetByID(id int64) (models.Trip, error) {
	return r.getByID(r.db(), id, false)
}

// GetByIDForUpdate locks the trip row inside the caller's transaction so
// status transitions and their cascades serialize per trip.
func (r TripRepository) GetByIDForUpdate(ex Execer, id int64) (models.Trip, error) {
	return r.getByID(ex, id, true)
}

func (r TripRepository) getByID(ex Execer, id int64, forUpdate bool) (models.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = ?`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	t, err := scanTrip(ex.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return t, domain.NotFoundError{Resource: "trip", Err: err}
	}
	return t, err
}

func (r TripRepository) List(routeID int64, date, status string) ([]models.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE 1=1`
	args := []any{}
	if routeID > 0 {
		query += ` AND route_id = ?`
		args = append(args, routeID)
	}
	if date != "" {
		query += ` AND DATE(scheduled_departure) = ?`
		args = append(args, date)
	}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY scheduled_departure ASC`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TripRepository) Insert(ex Execer, t models.Trip) (int64, error) {
	res, err := ex.Exec(`
		INSERT INTO trips (route_id, vehicle_id, driver_id, scheduled_departure, scheduled_arrival,
			total_seats, available_seats, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`, t.RouteID, t.VehicleID, t.DriverID, t.ScheduledDeparture, t.ScheduledArrival,
		t.TotalSeats, t.AvailableSeats, t.Status)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// HasOverlap reports whether the vehicle or driver is already assigned to
// a non-terminal trip whose scheduled window intersects [start, end).
func (r TripRepository) HasOverlap(ex Execer, vehicleID, driverID int64, start, end time.Time) (bool, error) {
	var n int
	err := ex.QueryRow(`
		SELECT COUNT(*)
		FROM trips
		WHERE (vehicle_id = ? OR driver_id = ?)
		  AND status NOT IN (?, ?)
		  AND scheduled_departure < ?
		  AND scheduled_arrival > ?
	`, vehicleID, driverID, models.TripArrived, models.TripCancelled, end, start).Scan(&n)
	return n > 0, err
}

// ReserveSeats performs the atomic seat decrement: the availability check
// and the decrement are a single conditional UPDATE, judged by affected
// row count, never read-then-write. A zero row count means the seats were
// gone or the trip stopped being bookable; the caller disambiguates.
func (r TripRepository) ReserveSeats(ex Execer, tripID int64, seats int) (bool, error) {
	res, err := ex.Exec(`
		UPDATE trips
		SET available_seats = available_seats - ?
		WHERE id = ?
		  AND available_seats >= ?
		  AND status IN (?, ?)
	`, seats, tripID, seats, models.TripScheduled, models.TripBoarding)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ReleaseSeats returns seats to inventory, capped at total_seats as a
// guard against double-release.
func (r TripRepository) ReleaseSeats(ex Execer, tripID int64, seats int) error {
	_, err := ex.Exec(`
		UPDATE trips
		SET available_seats = LEAST(total_seats, available_seats + ?)
		WHERE id = ?
	`, seats, tripID)
	return err
}

// RestoreAllSeats resets availability to capacity (trip cancellation).
func (r TripRepository) RestoreAllSeats(ex Execer, tripID int64) error {
	_, err := ex.Exec(`UPDATE trips SET available_seats = total_seats WHERE id = ?`, tripID)
	return err
}

// UpdateStatus persists a lifecycle move. Actual timestamps are write-once:
// COALESCE keeps the first recorded value.
func (r TripRepository) UpdateStatus(ex Execer, t models.Trip) error {
	res, err := ex.Exec(`
		UPDATE trips
		SET status = ?,
			actual_departure = COALESCE(actual_departure, ?),
			actual_arrival = COALESCE(actual_arrival, ?),
			updated_at = NOW()
		WHERE id = ?
	`, t.Status, nullTime(t.ActualDeparture), nullTime(t.ActualArrival), t.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	return nil
}

func (r TripRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM trips WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	return nil
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
