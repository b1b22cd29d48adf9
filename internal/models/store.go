package models

import (
	"time"

	"github.com/lib/pq"
)

// UnassignedSupervisor groups stores without a supervisor so they still share
// the same mutual-exclusion rules during scheduling.
const UnassignedSupervisor = "unassigned"

// Store represents a retail outlet managed by the chain.
type Store struct {
	ID           string    `db:"id" json:"id"`
	Code         string    `db:"code" json:"code"`
	Name         string    `db:"name" json:"name"`
	Region       string    `db:"region" json:"region"`
	SupervisorID *string   `db:"supervisor_id" json:"supervisor_id,omitempty"`
	Priority     int       `db:"priority" json:"priority"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// SupervisorKey returns the supervisor grouping key used by the scheduler.
func (s Store) SupervisorKey() string {
	if s.SupervisorID == nil || *s.SupervisorID == "" {
		return UnassignedSupervisor
	}
	return *s.SupervisorID
}

// StoreFilter encapsulates allowed search parameters for listing stores.
type StoreFilter struct {
	Search       string
	Region       string
	SupervisorID string
	Active       *bool
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}

// StoreDetail contains store information with supervisor context.
type StoreDetail struct {
	Store
	SupervisorName *string `db:"supervisor_name" json:"supervisor_name,omitempty"`
}

// ActivitySetting restricts which ISO weekdays (1=Monday .. 7=Sunday) a store
// may host an activity on. An empty AllowedDays list means no allow-list.
type ActivitySetting struct {
	StoreID       string        `db:"store_id" json:"store_id"`
	AllowedDays   pq.Int64Array `db:"allowed_days" json:"allowed_days"`
	ForbiddenDays pq.Int64Array `db:"forbidden_days" json:"forbidden_days"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}
