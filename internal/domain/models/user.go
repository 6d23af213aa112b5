package models

// User is the booking requester. Identity/OTP flows live outside this
// service; only the verified identity matters here.
type User struct {
	ID        int64  `json:"id"`
	CompanyID int64  `json:"companyId,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
	Status    string `json:"status"`
}

// Company groups commuters for corporate billing.
type Company struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact,omitempty"`
	Active  bool   `json:"active"`
}
