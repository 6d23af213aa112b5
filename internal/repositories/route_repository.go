package repositories

import (
	"database/sql"

	intconfig "shuttle/internal/config"
	"shuttle/internal/domain"
	"shuttle/internal/domain/models"
)

type RouteRepository struct {
	DB *sql.DB
}

func (r RouteRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const routeColumns = `id, name, start_point, end_point, distance_km, estimated_minutes,
	base_fare, per_km_rate, surge_multiplier, active`

func scanRoute(row interface{ Scan(...any) error }) (models.Route, error) {
	var rt models.Route
	err := row.Scan(
		&rt.ID,
		&rt.Name,
		&rt.StartPoint,
		&rt.EndPoint,
		&rt.DistanceKM,
		&rt.EstimatedMinutes,
		&rt.BaseFare,
		&rt.PerKmRate,
		&rt.SurgeMultiplier,
		&rt.Active,
	)
	return rt, err
}

func (r RouteRepository) List(activeOnly bool) ([]models.Route, error) {
	query := `SELECT ` + routeColumns + ` FROM routes`
	if activeOnly {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY id ASC`

	rows, err := r.db().Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return out, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

func (r RouteRepository) GetByID(id int64) (models.Route, error) {
	rt, err := scanRoute(r.db().QueryRow(`SELECT `+routeColumns+` FROM routes WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return rt, domain.NotFoundError{Resource: "route", Err: err}
	}
	return rt, err
}

func (r RouteRepository) Create(rt models.Route) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO routes (name, start_point, end_point, distance_km, estimated_minutes,
			base_fare, per_km_rate, surge_multiplier, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`, rt.Name, rt.StartPoint, rt.EndPoint, rt.DistanceKM, rt.EstimatedMinutes,
		rt.BaseFare, rt.PerKmRate, rt.SurgeMultiplier, rt.Active)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// HasScheduledTrips reports whether any trip has been created against the
// route. Once true, only the pricing fields may change.
func (r RouteRepository) HasScheduledTrips(id int64) (bool, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM trips WHERE route_id = ?`, id).Scan(&n)
	return n > 0, err
}

// UpdatePricing changes only the fields that apply to new trips.
func (r RouteRepository) UpdatePricing(id int64, baseFare int64, perKmRate, surge float64) error {
	res, err := r.db().Exec(`
		UPDATE routes SET base_fare = ?, per_km_rate = ?, surge_multiplier = ?, updated_at = NOW()
		WHERE id = ?
	`, baseFare, perKmRate, surge, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "route"}
	}
	return nil
}

// Update rewrites the full route row. Callers must have checked
// HasScheduledTrips first; routes with trips only accept UpdatePricing.
func (r RouteRepository) Update(rt models.Route) error {
	res, err := r.db().Exec(`
		UPDATE routes SET name = ?, start_point = ?, end_point = ?, distance_km = ?,
			estimated_minutes = ?, base_fare = ?, per_km_rate = ?, surge_multiplier = ?,
			active = ?, updated_at = NOW()
		WHERE id = ?
	`, rt.Name, rt.StartPoint, rt.EndPoint, rt.DistanceKM, rt.EstimatedMinutes,
		rt.BaseFare, rt.PerKmRate, rt.SurgeMultiplier, rt.Active, rt.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "route"}
	}
	return nil
}

func (r RouteRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM routes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "route"}
	}
	return nil
}
