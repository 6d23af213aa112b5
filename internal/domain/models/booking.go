package models

import "time"

// Booking statuses.
const (
	BookingPending   = "PENDING"
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
)

// Payment statuses as recorded on the booking. The charge itself is
// handled by the payment collaborator before CreateBooking is called.
const (
	PaymentPaid     = "PAID"
	PaymentRefunded = "REFUNDED"
)

// Booking reserves SeatCount seats on a trip for its lifetime until
// cancelled. Amounts are whole rupees.
type Booking struct {
	ID            int64     `json:"id"`
	Code          string    `json:"code"`
	TripID        int64     `json:"tripId"`
	UserID        int64     `json:"userId"`
	PickupPointID int64     `json:"pickupPointId"`
	SeatCount     int       `json:"seatCount"`
	TicketFare    int64     `json:"ticketFare"`
	ParkingFee    int64     `json:"parkingFee,omitempty"`
	HomePickupFee int64     `json:"homePickupFee,omitempty"`
	TotalFare     int64     `json:"totalFare"`
	RefundAmount  int64     `json:"refundAmount,omitempty"`
	PaymentStatus string    `json:"paymentStatus"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// BookingOptions are the add-ons a commuter can attach to a booking.
type BookingOptions struct {
	Parking      bool `json:"parking"`
	ParkingHours int  `json:"parkingHours,omitempty"`
	HomePickup   bool `json:"homePickup"`
}
