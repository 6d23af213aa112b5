package models

// Pickup point types as stored in pickup_points.type.
const (
	PickupParkingHub     = "parking-hub"
	PickupBusStop        = "bus-stop"
	PickupMetroStation   = "metro-station"
	PickupHomePickupZone = "home-pickup-zone"
)

// PickupPoint is a boarding location on a route, ordered by StopSequence.
// Parking fee fields are zero when the point offers no parking.
type PickupPoint struct {
	ID               int64   `json:"id"`
	RouteID          int64   `json:"routeId"`
	Name             string  `json:"name"`
	Address          string  `json:"address,omitempty"`
	Landmark         string  `json:"landmark,omitempty"`
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	Type             string  `json:"type"`
	StopSequence     int     `json:"stopSequence"`
	ParkingCapacity  int     `json:"parkingCapacity,omitempty"`
	ParkingFeeFlat   int64   `json:"parkingFeeFlat,omitempty"`
	ParkingFeeHourly int64   `json:"parkingFeeHourly,omitempty"`
	TimeSlots        string  `json:"timeSlots,omitempty"` // comma separated HH:MM list
}

// HasParking reports whether the point can sell a parking add-on.
func (p PickupPoint) HasParking() bool {
	return p.ParkingCapacity > 0 && (p.ParkingFeeFlat > 0 || p.ParkingFeeHourly > 0)
}
