package repositories

import (
	"database/sql"
	"strings"

	intconfig "shuttle/internal/config"
	"shuttle/internal/domain"
	"shuttle/internal/domain/models"
)

type DriverRepository struct {
	DB *sql.DB
}

func (r DriverRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const driverColumns = `id, name, COALESCE(phone,''), license_number,
	COALESCE(DATE_FORMAT(license_expiry, '%Y-%m-%d'),''),
	COALESCE(rating,0), COALESCE(total_trips,0), available, vehicle_id`

func scanDriver(row interface{ Scan(...any) error }) (models.Driver, error) {
	var d models.Driver
	var vehicleID sql.NullInt64
	err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Phone,
		&d.LicenseNumber,
		&d.LicenseExpiry,
		&d.Rating,
		&d.TotalTrips,
		&d.Available,
		&vehicleID,
	)
	if vehicleID.Valid {
		d.VehicleID = &vehicleID.Int64
	}
	return d, err
}

func (r DriverRepository) List(q string) ([]models.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers`
	args := []any{}
	if q = strings.TrimSpace(q); q != "" {
		query += ` WHERE (name LIKE ? OR license_number LIKE ?)`
		like := "%" + q + "%"
		args = append(args, like, like)
	}
	query += ` ORDER BY id DESC`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Driver{}
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return out, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r DriverRepository) GetByID(id int64) (models.Driver, error) {
	d, err := scanDriver(r.db().QueryRow(`SELECT `+driverColumns+` FROM drivers WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return d, domain.NotFoundError{Resource: "driver", Err: err}
	}
	return d, err
}

func (r DriverRepository) Create(d models.Driver) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO drivers (name, phone, license_number, license_expiry, rating, total_trips,
			available, vehicle_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`, d.Name, d.Phone, d.LicenseNumber, nullDate(d.LicenseExpiry), d.Rating, d.TotalTrips,
		d.Available, d.VehicleID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r DriverRepository) Update(d models.Driver) error {
	res, err := r.db().Exec(`
		UPDATE drivers SET name = ?, phone = ?, license_number = ?, license_expiry = ?,
			rating = ?, available = ?, vehicle_id = ?, updated_at = NOW()
		WHERE id = ?
	`, d.Name, d.Phone, d.LicenseNumber, nullDate(d.LicenseExpiry), d.Rating,
		d.Available, d.VehicleID, d.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "driver"}
	}
	return nil
}

func (r DriverRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM drivers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "driver"}
	}
	return nil
}

// IncrementTotalTrips bumps the completed-trip counter when a trip arrives.
func (r DriverRepository) IncrementTotalTrips(ex Execer, id int64) error {
	_, err := ex.Exec(`UPDATE drivers SET total_trips = total_trips + 1 WHERE id = ?`, id)
	return err
}
