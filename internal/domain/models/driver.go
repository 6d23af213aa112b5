package models

type Driver struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Phone         string  `json:"phone,omitempty"`
	LicenseNumber string  `json:"licenseNumber"`
	LicenseExpiry string  `json:"licenseExpiry,omitempty"`
	Rating        float64 `json:"rating"`
	TotalTrips    int     `json:"totalTrips"`
	Available     bool    `json:"available"`
	VehicleID     *int64  `json:"vehicleId,omitempty"` // currently assigned vehicle, if any
}
