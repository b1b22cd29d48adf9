package models

import "time"

// Employee represents a staff member assigned to a store.
type Employee struct {
	ID           string    `db:"id" json:"id"`
	NIK          string    `db:"nik" json:"nik"`
	FullName     string    `db:"full_name" json:"full_name"`
	RoleTitle    string    `db:"role_title" json:"role_title"`
	StoreID      *string   `db:"store_id" json:"store_id,omitempty"`
	IsSupervisor bool      `db:"is_supervisor" json:"is_supervisor"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// EmployeeFilter captures filtering criteria for listing employees.
type EmployeeFilter struct {
	Search     string
	StoreID    string
	Supervisor *bool
	Active     *bool
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}

// EmployeeDetail contains employee information with store context.
type EmployeeDetail struct {
	Employee
	StoreName *string `db:"store_name" json:"store_name,omitempty"`
}
