package model

// DashboardStats is the role-filtered set of figures shown on the
// landing page. A nil field means the caller's role may not see it.
type DashboardStats struct {
	Patients            *int     `json:"patients,omitempty"`
	AppointmentsToday   *int     `json:"appointments_today,omitempty"`
	Products            *int     `json:"products,omitempty"`
	LowStockProducts    *int     `json:"low_stock_products,omitempty"`
	Revenue             *float64 `json:"revenue,omitempty"`
	RevenueFormatted    string   `json:"revenue_formatted,omitempty"`
	UnreadNotifications int      `json:"unread_notifications"`
}
