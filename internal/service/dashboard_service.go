package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/chainworks/retail-ops-api/internal/models"
	appErrors "github.com/chainworks/retail-ops-api/pkg/errors"
)

const dashboardCacheKey = "dashboard:summary"

type dashboardCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type dashboardStoreReader interface {
	CountActive(ctx context.Context) (int, error)
}

type dashboardEmployeeReader interface {
	CountActive(ctx context.Context) (int, error)
}

type dashboardTaskReader interface {
	CountByStatus(ctx context.Context, status models.TaskStatus) (int, error)
}

type dashboardStaffStatusReader interface {
	CountConfirmed(ctx context.Context, month string) (int, error)
}

type dashboardMetrics interface {
	RecordCacheOperation(hit bool)
}

// DashboardService aggregates headline counts, cached in Redis.
type DashboardService struct {
	cache     dashboardCache
	stores    dashboardStoreReader
	employees dashboardEmployeeReader
	tasks     dashboardTaskReader
	statuses  dashboardStaffStatusReader
	metrics   dashboardMetrics
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(
	cache dashboardCache,
	stores dashboardStoreReader,
	employees dashboardEmployeeReader,
	tasks dashboardTaskReader,
	statuses dashboardStaffStatusReader,
	metrics dashboardMetrics,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &DashboardService{
		cache:     cache,
		stores:    stores,
		employees: employees,
		tasks:     tasks,
		statuses:  statuses,
		metrics:   metrics,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// Summary returns the dashboard counts, serving from cache when fresh.
func (s *DashboardService) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	if s.cache != nil {
		var cached models.DashboardSummary
		err := s.cache.GetJSON(ctx, dashboardCacheKey, &cached)
		if err == nil {
			if s.metrics != nil {
				s.metrics.RecordCacheOperation(true)
			}
			return &cached, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		}
		if s.metrics != nil {
			s.metrics.RecordCacheOperation(false)
		}
	}

	summary, err := s.build(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, dashboardCacheKey, summary, s.cacheTTL); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}
	return summary, nil
}

// Invalidate drops the cached summary, forcing a rebuild on the next read.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, dashboardCacheKey); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}

func (s *DashboardService) build(ctx context.Context) (*models.DashboardSummary, error) {
	storeCount, err := s.stores.CountActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "count stores")
	}
	employeeCount, err := s.employees.CountActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "count employees")
	}
	openTasks, err := s.tasks.CountByStatus(ctx, models.TaskStatusOpen)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "count open tasks")
	}

	month := time.Now().UTC().Format("2006-01")
	confirmed, err := s.statuses.CountConfirmed(ctx, month)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "count confirmations")
	}

	summary := &models.DashboardSummary{
		TotalStores:        storeCount,
		ActiveEmployees:    employeeCount,
		OpenTasks:          openTasks,
		MonthConfirmations: confirmed,
		MonthEmployees:     employeeCount,
	}
	if employeeCount > 0 {
		summary.ConfirmationRate = float64(confirmed) / float64(employeeCount)
	}
	return summary, nil
}
