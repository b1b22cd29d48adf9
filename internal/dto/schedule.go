package dto

import "time"

// GenerateScheduleRequest asks for an auto-schedule proposal for a campaign.
type GenerateScheduleRequest struct {
	CampaignID string `json:"campaign_id" validate:"required"`
}

// PlacedAssignment is one store-to-date placement inside a proposal.
type PlacedAssignment struct {
	StoreID   string `json:"store_id"`
	StoreName string `json:"store_name"`
	Date      string `json:"date"` // 2006-01-02
}

// UnplacedStore reports a store the scheduler could not place.
type UnplacedStore struct {
	StoreID   string `json:"store_id"`
	StoreName string `json:"store_name"`
	Reason    string `json:"reason"`
}

// GenerateScheduleResponse is the proposal returned for operator review.
type GenerateScheduleResponse struct {
	ProposalID  string             `json:"proposal_id"`
	CampaignID  string             `json:"campaign_id"`
	Placed      []PlacedAssignment `json:"placed"`
	Unplaced    []UnplacedStore    `json:"unplaced"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// SaveScheduleRequest persists a reviewed proposal. Confirm must be set when
// the proposal left stores unplaced.
type SaveScheduleRequest struct {
	ProposalID string `json:"proposal_id" validate:"required"`
	Confirm    bool   `json:"confirm"`
}

// UpdateActivitySettingRequest replaces a store's weekday restriction.
type UpdateActivitySettingRequest struct {
	AllowedDays   []int `json:"allowed_days" validate:"dive,min=1,max=7"`
	ForbiddenDays []int `json:"forbidden_days" validate:"dive,min=1,max=7"`
}
