package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/chainworks/retail-ops-api/internal/dto"
	"github.com/chainworks/retail-ops-api/internal/models"
	"github.com/chainworks/retail-ops-api/internal/repository"
	appErrors "github.com/chainworks/retail-ops-api/pkg/errors"
)

type storeRepository interface {
	List(ctx context.Context, filter models.StoreFilter) ([]models.StoreDetail, int, error)
	FindByID(ctx context.Context, id string) (*models.StoreDetail, error)
	ExistsByCode(ctx context.Context, code, excludeID string) (bool, error)
	Create(ctx context.Context, store *models.Store) error
	Update(ctx context.Context, store *models.Store) error
	Deactivate(ctx context.Context, id string) error
	GetSetting(ctx context.Context, storeID string) (*models.ActivitySetting, error)
	UpsertSetting(ctx context.Context, setting *models.ActivitySetting) error
}

// StoreService implements store management and activity-setting rules.
type StoreService struct {
	stores   storeRepository
	validate *validator.Validate
	logger   *zap.Logger
}

// NewStoreService constructs a StoreService.
func NewStoreService(stores storeRepository, logger *zap.Logger) *StoreService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StoreService{stores: stores, validate: validator.New(), logger: logger}
}

// List returns stores matching the filter.
func (s *StoreService) List(ctx context.Context, filter models.StoreFilter) ([]models.StoreDetail, *models.Pagination, error) {
	stores, total, err := s.stores.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list stores")
	}
	return stores, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}, nil
}

// Get fetches one store.
func (s *StoreService) Get(ctx context.Context, id string) (*models.StoreDetail, error) {
	store, err := s.stores.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "store not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "get store")
	}
	return store, nil
}

// Create registers a new store after checking code uniqueness.
func (s *StoreService) Create(ctx context.Context, req dto.CreateStoreRequest) (*models.Store, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid store payload")
	}
	exists, err := s.stores.ExistsByCode(ctx, req.Code, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "check store code")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "store code already in use")
	}

	store := &models.Store{
		Code:         req.Code,
		Name:         req.Name,
		Region:       req.Region,
		SupervisorID: req.SupervisorID,
		Priority:     req.Priority,
		Active:       true,
	}
	if err := s.stores.Create(ctx, store); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "create store")
	}
	s.logger.Info("store created", zap.String("store_id", store.ID), zap.String("code", store.Code))
	return store, nil
}

// Update rewrites a store's mutable fields.
func (s *StoreService) Update(ctx context.Context, id string, req dto.UpdateStoreRequest) (*models.Store, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid store payload")
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	exists, err := s.stores.ExistsByCode(ctx, req.Code, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "check store code")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "store code already in use")
	}

	store := current.Store
	store.Code = req.Code
	store.Name = req.Name
	store.Region = req.Region
	store.SupervisorID = req.SupervisorID
	store.Priority = req.Priority
	if req.Active != nil {
		store.Active = *req.Active
	}
	if err := s.stores.Update(ctx, &store); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "update store")
	}
	return &store, nil
}

// Deactivate soft-deletes a store.
func (s *StoreService) Deactivate(ctx context.Context, id string) error {
	if err := s.stores.Deactivate(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return appErrors.Clone(appErrors.ErrNotFound, "store not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "deactivate store")
	}
	return nil
}

// GetSetting returns a store's activity setting, defaulting to no restriction.
func (s *StoreService) GetSetting(ctx context.Context, storeID string) (*models.ActivitySetting, error) {
	if _, err := s.Get(ctx, storeID); err != nil {
		return nil, err
	}
	setting, err := s.stores.GetSetting(ctx, storeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.ActivitySetting{StoreID: storeID}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "get activity setting")
	}
	return setting, nil
}

// UpdateSetting replaces a store's weekday restriction. A weekday cannot be
// both allowed and forbidden.
func (s *StoreService) UpdateSetting(ctx context.Context, storeID string, req dto.UpdateActivitySettingRequest) (*models.ActivitySetting, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid setting payload")
	}
	forbidden := make(map[int]bool, len(req.ForbiddenDays))
	for _, d := range req.ForbiddenDays {
		forbidden[d] = true
	}
	for _, d := range req.AllowedDays {
		if forbidden[d] {
			return nil, appErrors.Clone(appErrors.ErrValidation, "weekday cannot be both allowed and forbidden")
		}
	}
	if _, err := s.Get(ctx, storeID); err != nil {
		return nil, err
	}

	setting := &models.ActivitySetting{
		StoreID:       storeID,
		AllowedDays:   toInt64Array(req.AllowedDays),
		ForbiddenDays: toInt64Array(req.ForbiddenDays),
	}
	if err := s.stores.UpsertSetting(ctx, setting); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "store activity setting")
	}
	s.logger.Info("activity setting updated", zap.String("store_id", storeID))
	return setting, nil
}

func toInt64Array(days []int) pq.Int64Array {
	out := make(pq.Int64Array, 0, len(days))
	for _, d := range days {
		out = append(out, int64(d))
	}
	return out
}
