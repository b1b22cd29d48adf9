package dto

import "time"

// CreateTaskRequest opens a new operational task against a store.
type CreateTaskRequest struct {
	StoreID     string     `json:"store_id" validate:"required,uuid"`
	AssigneeID  *string    `json:"assignee_id,omitempty" validate:"omitempty,uuid"`
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// UpdateTaskRequest rewrites a task's mutable fields.
type UpdateTaskRequest struct {
	AssigneeID  *string    `json:"assignee_id,omitempty" validate:"omitempty,uuid"`
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// TransitionTaskRequest moves a task through its workflow.
type TransitionTaskRequest struct {
	Status string `json:"status" validate:"required,oneof=OPEN IN_PROGRESS DONE CANCELLED"`
}
