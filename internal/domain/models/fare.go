package models

// FareBreakdown is the itemized cost of a booking in whole rupees.
// Identical inputs must always produce the same breakdown so that
// confirmation and later auditing reconcile exactly.
type FareBreakdown struct {
	Ticket     int64 `json:"ticket"`
	Parking    int64 `json:"parking,omitempty"`
	HomePickup int64 `json:"homePickup,omitempty"`
	Total      int64 `json:"total"`
}
