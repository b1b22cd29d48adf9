package models

import "time"

// CampaignStatus tracks a campaign's lifecycle.
type CampaignStatus string

const (
	CampaignStatusDraft  CampaignStatus = "DRAFT"
	CampaignStatusActive CampaignStatus = "ACTIVE"
	CampaignStatusClosed CampaignStatus = "CLOSED"
)

// Campaign is a time-bounded activity period stores are scheduled into.
type Campaign struct {
	ID        string         `db:"id" json:"id"`
	Name      string         `db:"name" json:"name"`
	StartDate time.Time      `db:"start_date" json:"start_date"`
	EndDate   time.Time      `db:"end_date" json:"end_date"`
	Status    CampaignStatus `db:"status" json:"status"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

// CalendarEvent marks a calendar date, optionally blocking it for scheduling.
type CalendarEvent struct {
	ID        string    `db:"id" json:"id"`
	EventDate time.Time `db:"event_date" json:"event_date"`
	Title     string    `db:"title" json:"title"`
	IsBlocked bool      `db:"is_blocked" json:"is_blocked"`
	CreatedBy string    `db:"created_by" json:"created_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ScheduleAssignment is a persisted store-to-date activity placement.
type ScheduleAssignment struct {
	ID           string    `db:"id" json:"id"`
	CampaignID   string    `db:"campaign_id" json:"campaign_id"`
	StoreID      string    `db:"store_id" json:"store_id"`
	ActivityDate time.Time `db:"activity_date" json:"activity_date"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// ScheduleAssignmentDetail joins the store for listing screens.
type ScheduleAssignmentDetail struct {
	ScheduleAssignment
	StoreName    string  `db:"store_name" json:"store_name"`
	SupervisorID *string `db:"supervisor_id" json:"supervisor_id,omitempty"`
}
