package repositories

import (
	"database/sql"

	intconfig "shuttle/internal/config"
	"shuttle/internal/domain"
	"shuttle/internal/domain/models"
)

type PickupPointRepository struct {
	DB *sql.DB
}

func (r PickupPointRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const pickupColumns = `id, route_id, name, COALESCE(address,''), COALESCE(landmark,''),
	lat, lng, type, stop_sequence, COALESCE(parking_capacity,0),
	COALESCE(parking_fee_flat,0), COALESCE(parking_fee_hourly,0), COALESCE(time_slots,'')`

func scanPickup(row interface{ Scan(...any) error }) (models.PickupPoint, error) {
	var p models.PickupPoint
	err := row.Scan(
		&p.ID,
		&p.RouteID,
		&p.Name,
		&p.Address,
		&p.Landmark,
		&p.Lat,
		&p.Lng,
		&p.Type,
		&p.StopSequence,
		&p.ParkingCapacity,
		&p.ParkingFeeFlat,
		&p.ParkingFeeHourly,
		&p.TimeSlots,
	)
	return p, err
}

// ListByRoute returns the route's pickup points in stop order.
func (r PickupPointRepository) ListByRoute(routeID int64) ([]models.PickupPoint, error) {
	rows, err := r.db().Query(`
		SELECT `+pickupColumns+`
		FROM pickup_points
		WHERE route_id = ?
		ORDER BY stop_sequence ASC
	`, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.PickupPoint{}
	for rows.Next() {
		p, err := scanPickup(rows)
		if err != nil {
			return out, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r PickupPointRepository) GetByID(id int64) (models.PickupPoint, error) {
	p, err := scanPickup(r.db().QueryRow(`SELECT `+pickupColumns+` FROM pickup_points WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return p, domain.NotFoundError{Resource: "pickup point", Err: err}
	}
	return p, err
}

func (r PickupPointRepository) Create(p models.PickupPoint) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO pickup_points (route_id, name, address, landmark, lat, lng, type,
			stop_sequence, parking_capacity, parking_fee_flat, parking_fee_hourly, time_slots, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`, p.RouteID, p.Name, p.Address, p.Landmark, p.Lat, p.Lng, p.Type,
		p.StopSequence, p.ParkingCapacity, p.ParkingFeeFlat, p.ParkingFeeHourly, p.TimeSlots)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r PickupPointRepository) Update(p models.PickupPoint) error {
	res, err := r.db().Exec(`
		UPDATE pickup_points SET name = ?, address = ?, landmark = ?, lat = ?, lng = ?,
			type = ?, stop_sequence = ?, parking_capacity = ?, parking_fee_flat = ?,
			parking_fee_hourly = ?, time_slots = ?, updated_at = NOW()
		WHERE id = ?
	`, p.Name, p.Address, p.Landmark, p.Lat, p.Lng, p.Type, p.StopSequence,
		p.ParkingCapacity, p.ParkingFeeFlat, p.ParkingFeeHourly, p.TimeSlots, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "pickup point"}
	}
	return nil
}

func (r PickupPointRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM pickup_points WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "pickup point"}
	}
	return nil
}
