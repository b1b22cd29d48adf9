package dto

// CreateEmployeeRequest registers a new staff member.
type CreateEmployeeRequest struct {
	NIK          string  `json:"nik" validate:"required,max=32"`
	FullName     string  `json:"full_name" validate:"required,max=120"`
	RoleTitle    string  `json:"role_title" validate:"required,max=64"`
	StoreID      *string `json:"store_id,omitempty" validate:"omitempty,uuid"`
	IsSupervisor bool    `json:"is_supervisor"`
}

// UpdateEmployeeRequest rewrites an employee's mutable fields.
type UpdateEmployeeRequest struct {
	NIK          string  `json:"nik" validate:"required,max=32"`
	FullName     string  `json:"full_name" validate:"required,max=120"`
	RoleTitle    string  `json:"role_title" validate:"required,max=64"`
	StoreID      *string `json:"store_id,omitempty" validate:"omitempty,uuid"`
	IsSupervisor bool    `json:"is_supervisor"`
	Active       *bool   `json:"active,omitempty"`
}
