package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chainworks/retail-ops-api/internal/dto"
	"github.com/chainworks/retail-ops-api/internal/models"
	"github.com/chainworks/retail-ops-api/internal/repository"
	"github.com/chainworks/retail-ops-api/internal/scheduler"
	"github.com/chainworks/retail-ops-api/pkg/config"
	appErrors "github.com/chainworks/retail-ops-api/pkg/errors"
)

type scheduleCampaignRepository interface {
	FindByID(ctx context.Context, id string) (*models.Campaign, error)
	ListBlockedDates(ctx context.Context, from, to time.Time) (map[string]bool, error)
	ReplaceAssignments(ctx context.Context, campaignID string, assignments []models.ScheduleAssignment) error
	ListAssignments(ctx context.Context, campaignID string) ([]models.ScheduleAssignmentDetail, error)
	DeleteAssignment(ctx context.Context, id string) error
}

type scheduleStoreRepository interface {
	ListActiveByPriority(ctx context.Context) ([]models.Store, error)
	ListSettings(ctx context.Context) (map[string]models.ActivitySetting, error)
}

type scheduleMetrics interface {
	RecordScheduleRun(placed, unplaced int)
}

// proposal is a generated schedule held in memory awaiting operator review.
type proposal struct {
	ID          string
	CampaignID  string
	Result      *scheduler.Result
	GeneratedAt time.Time
	ExpiresAt   time.Time
}

// proposalStore keeps pending proposals with a TTL so a stale review cannot
// be saved against a changed roster.
type proposalStore struct {
	mu        sync.Mutex
	ttl       time.Duration
	proposals map[string]proposal
}

func newProposalStore(ttl time.Duration) *proposalStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &proposalStore{ttl: ttl, proposals: make(map[string]proposal)}
}

func (s *proposalStore) put(p proposal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, existing := range s.proposals {
		if time.Now().After(existing.ExpiresAt) {
			delete(s.proposals, id)
		}
	}
	s.proposals[p.ID] = p
}

func (s *proposalStore) take(id string) (proposal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.proposals[id]
	if !ok {
		return proposal{}, false
	}
	delete(s.proposals, id)
	if time.Now().After(p.ExpiresAt) {
		return proposal{}, false
	}
	return p, true
}

// ScheduleService generates, reviews and persists campaign activity schedules.
type ScheduleService struct {
	campaigns scheduleCampaignRepository
	stores    scheduleStoreRepository
	metrics   scheduleMetrics
	proposals *proposalStore
	policy    scheduler.Policy
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewScheduleService constructs a ScheduleService.
func NewScheduleService(
	campaigns scheduleCampaignRepository,
	stores scheduleStoreRepository,
	metrics scheduleMetrics,
	cfg config.SchedulerConfig,
	logger *zap.Logger,
) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	policy := scheduler.Policy{AllowedWeekdays: cfg.AllowedWeekdays, MaxPerDay: cfg.MaxPerDay}
	return &ScheduleService{
		campaigns: campaigns,
		stores:    stores,
		metrics:   metrics,
		proposals: newProposalStore(cfg.ProposalTTL),
		policy:    policy,
		validate:  validator.New(),
		logger:    logger,
	}
}

// Generate runs the scheduler over the campaign's date range and the active
// store roster, and parks the result as a proposal for operator review.
// Nothing is persisted until the proposal is saved.
func (s *ScheduleService) Generate(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}

	campaign, err := s.campaigns.FindByID(ctx, req.CampaignID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "campaign not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "get campaign")
	}
	if campaign.Status == models.CampaignStatusClosed {
		return nil, appErrors.Clone(appErrors.ErrConflict, "campaign is closed")
	}

	roster, err := s.stores.ListActiveByPriority(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load store roster")
	}
	settings, err := s.stores.ListSettings(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load activity settings")
	}
	blocked, err := s.campaigns.ListBlockedDates(ctx, campaign.StartDate, campaign.EndDate)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load blocked dates")
	}

	schedReq := scheduler.Request{
		Start:    campaign.StartDate,
		End:      campaign.EndDate,
		Stores:   make([]scheduler.Store, 0, len(roster)),
		Settings: make(map[string]scheduler.Setting, len(settings)),
		Blocked:  blocked,
		Policy:   s.policy,
	}
	for _, store := range roster {
		schedReq.Stores = append(schedReq.Stores, scheduler.Store{
			ID:           store.ID,
			Name:         store.Name,
			SupervisorID: store.SupervisorKey(),
		})
	}
	for storeID, setting := range settings {
		schedReq.Settings[storeID] = scheduler.Setting{
			AllowedDays:   int64sToInts(setting.AllowedDays),
			ForbiddenDays: int64sToInts(setting.ForbiddenDays),
		}
	}

	result, err := scheduler.Schedule(schedReq)
	if err != nil {
		switch {
		case errors.Is(err, scheduler.ErrEmptyDatePool):
			return nil, appErrors.ErrEmptyDatePool
		case errors.Is(err, scheduler.ErrInvalidRange):
			return nil, appErrors.Clone(appErrors.ErrValidation, "campaign date range is invalid")
		default:
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "run scheduler")
		}
	}

	if s.metrics != nil {
		s.metrics.RecordScheduleRun(len(result.Placed), len(result.Unplaced))
	}

	now := time.Now().UTC()
	p := proposal{
		ID:          uuid.NewString(),
		CampaignID:  campaign.ID,
		Result:      result,
		GeneratedAt: now,
		ExpiresAt:   now.Add(s.proposals.ttl),
	}
	s.proposals.put(p)

	s.logger.Info("schedule proposal generated",
		zap.String("campaign_id", campaign.ID),
		zap.String("proposal_id", p.ID),
		zap.Int("placed", len(result.Placed)),
		zap.Int("unplaced", len(result.Unplaced)))

	return s.toResponse(p), nil
}

// Save persists a reviewed proposal, replacing the campaign's existing
// schedule. A proposal with unplaced stores requires an explicit confirm.
func (s *ScheduleService) Save(ctx context.Context, req dto.SaveScheduleRequest) ([]models.ScheduleAssignmentDetail, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid save payload")
	}

	p, ok := s.proposals.take(req.ProposalID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "proposal not found or expired")
	}
	if len(p.Result.Unplaced) > 0 && !req.Confirm {
		s.proposals.put(p) // keep it reviewable
		return nil, appErrors.Clone(appErrors.ErrConflict, "proposal leaves stores unplaced; confirm to save anyway")
	}

	assignments := make([]models.ScheduleAssignment, 0, len(p.Result.Placed))
	for _, placed := range p.Result.Placed {
		assignments = append(assignments, models.ScheduleAssignment{
			StoreID:      placed.StoreID,
			ActivityDate: placed.Date,
		})
	}
	if err := s.campaigns.ReplaceAssignments(ctx, p.CampaignID, assignments); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "persist schedule")
	}

	s.logger.Info("schedule saved",
		zap.String("campaign_id", p.CampaignID),
		zap.Int("assignments", len(assignments)))

	return s.ListAssignments(ctx, p.CampaignID)
}

// ListAssignments returns a campaign's persisted schedule.
func (s *ScheduleService) ListAssignments(ctx context.Context, campaignID string) ([]models.ScheduleAssignmentDetail, error) {
	assignments, err := s.campaigns.ListAssignments(ctx, campaignID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list assignments")
	}
	return assignments, nil
}

// DeleteAssignment removes a single persisted placement.
func (s *ScheduleService) DeleteAssignment(ctx context.Context, id string) error {
	if err := s.campaigns.DeleteAssignment(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "delete assignment")
	}
	return nil
}

func (s *ScheduleService) toResponse(p proposal) *dto.GenerateScheduleResponse {
	resp := &dto.GenerateScheduleResponse{
		ProposalID:  p.ID,
		CampaignID:  p.CampaignID,
		Placed:      make([]dto.PlacedAssignment, 0, len(p.Result.Placed)),
		Unplaced:    make([]dto.UnplacedStore, 0, len(p.Result.Unplaced)),
		GeneratedAt: p.GeneratedAt,
	}
	for _, placed := range p.Result.Placed {
		resp.Placed = append(resp.Placed, dto.PlacedAssignment{
			StoreID:   placed.StoreID,
			StoreName: placed.StoreName,
			Date:      scheduler.DateKey(placed.Date),
		})
	}
	for _, unplaced := range p.Result.Unplaced {
		resp.Unplaced = append(resp.Unplaced, dto.UnplacedStore{
			StoreID:   unplaced.StoreID,
			StoreName: unplaced.StoreName,
			Reason:    unplaced.Reason,
		})
	}
	return resp
}

func int64sToInts(values []int64) []int {
	if len(values) == 0 {
		return nil
	}
	out := make([]int, 0, len(values))
	for _, v := range values {
		out = append(out, int(v))
	}
	return out
}
