package repositories

import (
	"database/sql"

	intconfig "shuttle/internal/config"
	intdb "shuttle/internal/db"
	"shuttle/internal/domain"
	"shuttle/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingColumns = `id, code, trip_id, user_id, pickup_point_id, seat_count,
	ticket_fare, COALESCE(parking_fee,0), COALESCE(home_pickup_fee,0), total_fare,
	COALESCE(refund_amount,0), payment_status, status, created_at`

func scanBooking(row interface{ Scan(...any) error }) (models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID,
		&b.Code,
		&b.TripID,
		&b.UserID,
		&b.PickupPointID,
		&b.SeatCount,
		&b.TicketFare,
		&b.ParkingFee,
		&b.HomePickupFee,
		&b.TotalFare,
		&b.RefundAmount,
		&b.PaymentStatus,
		&b.Status,
		&b.CreatedAt,
	)
	return b, err
}

func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	return r.getByID(r.db(), id, false)
}

func (r BookingRepository) GetByIDForUpdate(ex Execer, id int64) (models.Booking, error) {
	return r.getByID(ex, id, true)
}

func (r BookingRepository) getByID(ex Execer, id int64, forUpdate bool) (models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	b, err := scanBooking(ex.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return b, domain.NotFoundError{Resource: "booking", Err: err}
	}
	return b, err
}

func (r BookingRepository) Insert(ex Execer, b models.Booking) (int64, error) {
	res, err := ex.Exec(`
		INSERT INTO bookings (code, trip_id, user_id, pickup_point_id, seat_count,
			ticket_fare, parking_fee, home_pickup_fee, total_fare,
			payment_status, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`, b.Code, b.TripID, b.UserID, b.PickupPointID, b.SeatCount,
		b.TicketFare, b.ParkingFee, b.HomePickupFee, b.TotalFare,
		b.PaymentStatus, b.Status)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListActiveByTrip returns non-cancelled bookings on a trip.
func (r BookingRepository) ListActiveByTrip(tripID int64) ([]models.Booking, error) {
	return r.listByTrip(r.db(), tripID, true)
}

func (r BookingRepository) listByTrip(ex Execer, tripID int64, activeOnly bool) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE trip_id = ?`
	args := []any{tripID}
	if activeOnly {
		query += ` AND status != ?`
		args = append(args, models.BookingCancelled)
	}
	query += ` ORDER BY id ASC`

	rows, err := ex.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return out, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r BookingRepository) ListByUser(userID int64) ([]models.Booking, error) {
	rows, err := r.db().Query(`SELECT `+bookingColumns+` FROM bookings WHERE user_id = ? ORDER BY id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return out, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// MarkCancelled records the cancellation plus the refund-eligible amount.
func (r BookingRepository) MarkCancelled(ex Execer, id int64, refund int64) error {
	paymentStatus := models.PaymentPaid
	if refund > 0 {
		paymentStatus = models.PaymentRefunded
	}
	_, err := ex.Exec(`
		UPDATE bookings
		SET status = ?, refund_amount = ?, payment_status = ?, cancelled_at = NOW()
		WHERE id = ?
	`, models.BookingCancelled, refund, paymentStatus, id)
	return err
}

// CancelAllForTrip cancels every active booking on a trip with a full
// refund (trip cancellation cascade).
func (r BookingRepository) CancelAllForTrip(ex Execer, tripID int64) error {
	_, err := ex.Exec(`
		UPDATE bookings
		SET status = ?, refund_amount = total_fare, payment_status = ?, cancelled_at = NOW()
		WHERE trip_id = ? AND status != ?
	`, models.BookingCancelled, models.PaymentRefunded, tripID, models.BookingCancelled)
	return err
}

// InsertEvent appends an audit row. The booking_events table is optional;
// deployments without it just skip the trail.
func (r BookingRepository) InsertEvent(ex Execer, bookingID int64, event, detail string) {
	if !intdb.HasTable(ex, "booking_events") {
		return
	}
	_, _ = ex.Exec(`
		INSERT INTO booking_events (booking_id, event, detail, created_at)
		VALUES (?, ?, ?, NOW())
	`, bookingID, event, detail)
}
