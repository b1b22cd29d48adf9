package dto

// CreateStoreRequest creates a new retail outlet.
type CreateStoreRequest struct {
	Code         string  `json:"code" validate:"required,max=16"`
	Name         string  `json:"name" validate:"required,max=120"`
	Region       string  `json:"region" validate:"required,max=64"`
	SupervisorID *string `json:"supervisor_id,omitempty" validate:"omitempty,uuid"`
	Priority     int     `json:"priority" validate:"omitempty,min=0"`
}

// UpdateStoreRequest rewrites a store's mutable fields.
type UpdateStoreRequest struct {
	Code         string  `json:"code" validate:"required,max=16"`
	Name         string  `json:"name" validate:"required,max=120"`
	Region       string  `json:"region" validate:"required,max=64"`
	SupervisorID *string `json:"supervisor_id,omitempty" validate:"omitempty,uuid"`
	Priority     int     `json:"priority" validate:"omitempty,min=0"`
	Active       *bool   `json:"active,omitempty"`
}
