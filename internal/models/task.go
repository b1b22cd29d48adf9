package models

import "time"

// TaskStatus models the task workflow state machine.
type TaskStatus string

const (
	TaskStatusOpen       TaskStatus = "OPEN"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
	TaskStatusCancelled  TaskStatus = "CANCELLED"
)

var taskTransitions = map[TaskStatus][]TaskStatus{
	TaskStatusOpen:       {TaskStatusInProgress, TaskStatusCancelled},
	TaskStatusInProgress: {TaskStatusDone, TaskStatusCancelled},
}

// CanTransition reports whether the workflow allows moving to the target status.
func (s TaskStatus) CanTransition(target TaskStatus) bool {
	for _, allowed := range taskTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Valid reports whether the value is a known task status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusOpen, TaskStatusInProgress, TaskStatusDone, TaskStatusCancelled:
		return true
	}
	return false
}

// Task represents a unit of operational work attached to a store.
type Task struct {
	ID          string     `db:"id" json:"id"`
	StoreID     string     `db:"store_id" json:"store_id"`
	AssigneeID  *string    `db:"assignee_id" json:"assignee_id,omitempty"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	Status      TaskStatus `db:"status" json:"status"`
	DueDate     *time.Time `db:"due_date" json:"due_date,omitempty"`
	CreatedBy   string     `db:"created_by" json:"created_by"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// TaskFilter narrows down task listings.
type TaskFilter struct {
	StoreID    string
	AssigneeID string
	Status     string
	Search     string
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}
