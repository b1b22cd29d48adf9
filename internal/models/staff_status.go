package models

import "time"

// StaffStatusValue enumerates the monthly staff confirmation states.
type StaffStatusValue string

const (
	StaffStatusActive   StaffStatusValue = "ACTIVE"
	StaffStatusOnLeave  StaffStatusValue = "ON_LEAVE"
	StaffStatusResigned StaffStatusValue = "RESIGNED"
)

// Valid reports whether the value is a known staff status.
func (v StaffStatusValue) Valid() bool {
	switch v {
	case StaffStatusActive, StaffStatusOnLeave, StaffStatusResigned:
		return true
	}
	return false
}

// StaffStatus is one employee's confirmed status for one month ("2006-01").
type StaffStatus struct {
	ID          string           `db:"id" json:"id"`
	EmployeeID  string           `db:"employee_id" json:"employee_id"`
	Month       string           `db:"month" json:"month"`
	Status      StaffStatusValue `db:"status" json:"status"`
	Note        string           `db:"note" json:"note"`
	ConfirmedBy string           `db:"confirmed_by" json:"confirmed_by"`
	ConfirmedAt time.Time        `db:"confirmed_at" json:"confirmed_at"`
}

// StaffStatusDetail joins the employee for listing screens.
type StaffStatusDetail struct {
	StaffStatus
	EmployeeName string  `db:"employee_name" json:"employee_name"`
	StoreID      *string `db:"store_id" json:"store_id,omitempty"`
}

// MonthLock marks a month whose confirmations are frozen.
type MonthLock struct {
	Month       string    `db:"month" json:"month"`
	FinalizedBy string    `db:"finalized_by" json:"finalized_by"`
	FinalizedAt time.Time `db:"finalized_at" json:"finalized_at"`
}

// StaffStatusSummary aggregates a month's confirmation progress.
type StaffStatusSummary struct {
	Month          string                   `json:"month"`
	TotalEmployees int                      `json:"total_employees"`
	Confirmed      int                      `json:"confirmed"`
	ByStatus       map[StaffStatusValue]int `json:"by_status"`
	Finalized      bool                     `json:"finalized"`
}
