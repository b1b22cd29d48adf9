package dto

import "time"

// CreateCampaignRequest opens a new activity campaign.
type CreateCampaignRequest struct {
	Name      string    `json:"name" validate:"required,max=120"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
}

// UpdateCampaignStatusRequest moves a campaign through its lifecycle.
type UpdateCampaignStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=DRAFT ACTIVE CLOSED"`
}

// CreateCalendarEventRequest marks a calendar date, optionally blocking it.
type CreateCalendarEventRequest struct {
	EventDate time.Time `json:"event_date" validate:"required"`
	Title     string    `json:"title" validate:"required,max=120"`
	IsBlocked bool      `json:"is_blocked"`
}
