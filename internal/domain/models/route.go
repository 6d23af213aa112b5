package models

// Route is a fixed shuttle corridor. Pricing fields may be edited by the
// admin but only apply to trips scheduled after the change.
type Route struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	StartPoint       string  `json:"startPoint"`
	EndPoint         string  `json:"endPoint"`
	DistanceKM       float64 `json:"distanceKm"`
	EstimatedMinutes int     `json:"estimatedMinutes"`
	BaseFare         int64   `json:"baseFare"`
	PerKmRate        float64 `json:"perKmRate"`
	SurgeMultiplier  float64 `json:"surgeMultiplier"`
	Active           bool    `json:"active"`
}
