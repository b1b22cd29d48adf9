package models

// DashboardSummary aggregates headline counts for the operations dashboard.
type DashboardSummary struct {
	TotalStores        int     `json:"total_stores"`
	ActiveEmployees    int     `json:"active_employees"`
	OpenTasks          int     `json:"open_tasks"`
	MonthConfirmations int     `json:"month_confirmations"`
	MonthEmployees     int     `json:"month_employees"`
	ConfirmationRate   float64 `json:"confirmation_rate"`
}
