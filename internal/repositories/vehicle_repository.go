package repositories

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	intconfig "shuttle/internal/config"
	"shuttle/internal/domain"
	"shuttle/internal/domain/models"
)

type VehicleRepository struct {
	DB *sql.DB
}

func (r VehicleRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const vehicleColumns = `id, registration, COALESCE(type,''), capacity,
	COALESCE(DATE_FORMAT(insurance_expiry, '%Y-%m-%d'),''),
	COALESCE(DATE_FORMAT(fitness_expiry, '%Y-%m-%d'),''),
	COALESCE(DATE_FORMAT(permit_expiry, '%Y-%m-%d'),''),
	available`

func scanVehicle(row interface{ Scan(...any) error }) (models.Vehicle, error) {
	var v models.Vehicle
	err := row.Scan(
		&v.ID,
		&v.Registration,
		&v.Type,
		&v.Capacity,
		&v.InsuranceExpiry,
		&v.FitnessExpiry,
		&v.PermitExpiry,
		&v.Available,
	)
	return v, err
}

// List supports registration search plus page/limit like the admin UI sends.
func (r VehicleRepository) List(q string, page, limit int) ([]models.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles`
	args := []any{}
	if q = strings.TrimSpace(q); q != "" {
		query += ` WHERE registration LIKE ?`
		args = append(args, "%"+q+"%")
	}
	query += ` ORDER BY id DESC`
	if page > 0 && limit > 0 {
		if limit > 200 {
			limit = 200
		}
		query += ` LIMIT ? OFFSET ?`
		args = append(args, limit, (page-1)*limit)
	}

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r VehicleRepository) GetByID(id int64) (models.Vehicle, error) {
	v, err := scanVehicle(r.db().QueryRow(`SELECT `+vehicleColumns+` FROM vehicles WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return v, domain.NotFoundError{Resource: "vehicle", Err: err}
	}
	return v, err
}

func (r VehicleRepository) Create(v models.Vehicle) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO vehicles (registration, type, capacity, insurance_expiry, fitness_expiry,
			permit_expiry, available, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW())
	`, v.Registration, v.Type, v.Capacity,
		nullDate(v.InsuranceExpiry), nullDate(v.FitnessExpiry), nullDate(v.PermitExpiry), v.Available)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return 0, domain.ConflictError{Resource: "vehicle", Msg: "registration already exists"}
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (r VehicleRepository) Update(v models.Vehicle) error {
	res, err := r.db().Exec(`
		UPDATE vehicles SET registration = ?, type = ?, capacity = ?, insurance_expiry = ?,
			fitness_expiry = ?, permit_expiry = ?, available = ?, updated_at = NOW()
		WHERE id = ?
	`, v.Registration, v.Type, v.Capacity,
		nullDate(v.InsuranceExpiry), nullDate(v.FitnessExpiry), nullDate(v.PermitExpiry),
		v.Available, v.ID)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return domain.ConflictError{Resource: "vehicle", Msg: "registration already exists"}
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "vehicle"}
	}
	return nil
}

func (r VehicleRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM vehicles WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "vehicle"}
	}
	return nil
}

func nullDate(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
