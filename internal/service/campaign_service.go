package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/chainworks/retail-ops-api/internal/dto"
	"github.com/chainworks/retail-ops-api/internal/models"
	"github.com/chainworks/retail-ops-api/internal/repository"
	appErrors "github.com/chainworks/retail-ops-api/pkg/errors"
)

type campaignRepository interface {
	List(ctx context.Context, page, pageSize int) ([]models.Campaign, int, error)
	FindByID(ctx context.Context, id string) (*models.Campaign, error)
	Create(ctx context.Context, campaign *models.Campaign) error
	UpdateStatus(ctx context.Context, id string, status models.CampaignStatus) error
	ListEventsBetween(ctx context.Context, from, to time.Time) ([]models.CalendarEvent, error)
	CreateEvent(ctx context.Context, event *models.CalendarEvent) error
	DeleteEvent(ctx context.Context, id string) error
}

var campaignTransitions = map[models.CampaignStatus][]models.CampaignStatus{
	models.CampaignStatusDraft:  {models.CampaignStatusActive},
	models.CampaignStatusActive: {models.CampaignStatusClosed},
}

// CampaignService manages campaigns and the shared activity calendar.
type CampaignService struct {
	campaigns campaignRepository
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewCampaignService constructs a CampaignService.
func NewCampaignService(campaigns campaignRepository, logger *zap.Logger) *CampaignService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CampaignService{campaigns: campaigns, validate: validator.New(), logger: logger}
}

// List returns campaigns newest first.
func (s *CampaignService) List(ctx context.Context, page, pageSize int) ([]models.Campaign, *models.Pagination, error) {
	campaigns, total, err := s.campaigns.List(ctx, page, pageSize)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list campaigns")
	}
	return campaigns, &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}, nil
}

// Get fetches one campaign.
func (s *CampaignService) Get(ctx context.Context, id string) (*models.Campaign, error) {
	campaign, err := s.campaigns.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "campaign not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "get campaign")
	}
	return campaign, nil
}

// Create opens a campaign in DRAFT status. The end date must not precede the
// start date.
func (s *CampaignService) Create(ctx context.Context, req dto.CreateCampaignRequest) (*models.Campaign, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid campaign payload")
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "campaign end date precedes start date")
	}

	campaign := &models.Campaign{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    models.CampaignStatusDraft,
	}
	if err := s.campaigns.Create(ctx, campaign); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "create campaign")
	}
	s.logger.Info("campaign created", zap.String("campaign_id", campaign.ID), zap.String("name", campaign.Name))
	return campaign, nil
}

// UpdateStatus moves a campaign along DRAFT -> ACTIVE -> CLOSED.
func (s *CampaignService) UpdateStatus(ctx context.Context, id string, req dto.UpdateCampaignStatusRequest) (*models.Campaign, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid status payload")
	}
	campaign, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	target := models.CampaignStatus(req.Status)
	allowed := false
	for _, next := range campaignTransitions[campaign.Status] {
		if next == target {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, appErrors.Clone(appErrors.ErrConflict, "campaign status transition not allowed")
	}

	if err := s.campaigns.UpdateStatus(ctx, id, target); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "update campaign status")
	}
	campaign.Status = target
	return campaign, nil
}

// ListEvents returns calendar events inside [from, to].
func (s *CampaignService) ListEvents(ctx context.Context, from, to time.Time) ([]models.CalendarEvent, error) {
	if to.Before(from) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "event range end precedes start")
	}
	events, err := s.campaigns.ListEventsBetween(ctx, from, to)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list calendar events")
	}
	return events, nil
}

// CreateEvent marks a calendar date, optionally blocking it for scheduling.
func (s *CampaignService) CreateEvent(ctx context.Context, createdBy string, req dto.CreateCalendarEventRequest) (*models.CalendarEvent, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}
	event := &models.CalendarEvent{
		EventDate: req.EventDate,
		Title:     req.Title,
		IsBlocked: req.IsBlocked,
		CreatedBy: createdBy,
	}
	if err := s.campaigns.CreateEvent(ctx, event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "create calendar event")
	}
	return event, nil
}

// DeleteEvent removes a calendar event.
func (s *CampaignService) DeleteEvent(ctx context.Context, id string) error {
	if err := s.campaigns.DeleteEvent(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return appErrors.Clone(appErrors.ErrNotFound, "calendar event not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "delete calendar event")
	}
	return nil
}
