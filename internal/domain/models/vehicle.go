package models

// Vehicle document dates use YYYY-MM-DD strings to match the admin API.
type Vehicle struct {
	ID              int64  `json:"id"`
	Registration    string `json:"registration"`
	Type            string `json:"type,omitempty"`
	Capacity        int    `json:"capacity"`
	InsuranceExpiry string `json:"insuranceExpiry,omitempty"`
	FitnessExpiry   string `json:"fitnessExpiry,omitempty"`
	PermitExpiry    string `json:"permitExpiry,omitempty"`
	Available       bool   `json:"available"`
}
