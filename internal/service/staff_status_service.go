package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/chainworks/retail-ops-api/internal/dto"
	"github.com/chainworks/retail-ops-api/internal/models"
	appErrors "github.com/chainworks/retail-ops-api/pkg/errors"
)

type staffStatusRepository interface {
	ListByMonth(ctx context.Context, month string) ([]models.StaffStatusDetail, error)
	Upsert(ctx context.Context, status *models.StaffStatus) error
	GetLock(ctx context.Context, month string) (*models.MonthLock, error)
	CreateLock(ctx context.Context, lock *models.MonthLock) error
	CountByStatus(ctx context.Context, month string) (map[models.StaffStatusValue]int, error)
	CountConfirmed(ctx context.Context, month string) (int, error)
}

type staffStatusEmployeeRepository interface {
	FindByID(ctx context.Context, id string) (*models.EmployeeDetail, error)
	CountActive(ctx context.Context) (int, error)
}

// StaffStatusService implements the monthly staff confirmation workflow.
type StaffStatusService struct {
	statuses  staffStatusRepository
	employees staffStatusEmployeeRepository
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewStaffStatusService constructs a StaffStatusService.
func NewStaffStatusService(statuses staffStatusRepository, employees staffStatusEmployeeRepository, logger *zap.Logger) *StaffStatusService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StaffStatusService{
		statuses:  statuses,
		employees: employees,
		validate:  validator.New(),
		logger:    logger,
	}
}

// ListMonth returns every confirmation recorded for a month.
func (s *StaffStatusService) ListMonth(ctx context.Context, month string) ([]models.StaffStatusDetail, error) {
	if _, err := parseMonth(month); err != nil {
		return nil, err
	}
	statuses, err := s.statuses.ListByMonth(ctx, month)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list staff statuses")
	}
	return statuses, nil
}

// Confirm records (or re-records) one employee's status for a month.
// Finalized months reject all writes.
func (s *StaffStatusService) Confirm(ctx context.Context, confirmedBy string, req dto.ConfirmStaffStatusRequest) (*models.StaffStatus, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid confirmation payload")
	}
	if _, err := parseMonth(req.Month); err != nil {
		return nil, err
	}
	value := models.StaffStatusValue(req.Status)
	if !value.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown staff status")
	}

	lock, err := s.statuses.GetLock(ctx, req.Month)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "check month lock")
	}
	if lock != nil {
		return nil, appErrors.ErrMonthFinalized
	}

	if _, err := s.employees.FindByID(ctx, req.EmployeeID); err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "employee not found")
	}

	status := &models.StaffStatus{
		EmployeeID:  req.EmployeeID,
		Month:       req.Month,
		Status:      value,
		Note:        req.Note,
		ConfirmedBy: confirmedBy,
	}
	if err := s.statuses.Upsert(ctx, status); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "store confirmation")
	}
	return status, nil
}

// Finalize freezes a month's confirmations. Finalizing twice conflicts.
func (s *StaffStatusService) Finalize(ctx context.Context, finalizedBy string, req dto.FinalizeMonthRequest) (*models.MonthLock, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid finalize payload")
	}
	if _, err := parseMonth(req.Month); err != nil {
		return nil, err
	}

	existing, err := s.statuses.GetLock(ctx, req.Month)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "check month lock")
	}
	if existing != nil {
		return nil, appErrors.ErrMonthFinalized
	}

	lock := &models.MonthLock{Month: req.Month, FinalizedBy: finalizedBy}
	if err := s.statuses.CreateLock(ctx, lock); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "create month lock")
	}
	s.logger.Info("month finalized", zap.String("month", req.Month), zap.String("by", finalizedBy))
	return lock, nil
}

// Summary aggregates a month's confirmation progress.
func (s *StaffStatusService) Summary(ctx context.Context, month string) (*models.StaffStatusSummary, error) {
	if _, err := parseMonth(month); err != nil {
		return nil, err
	}

	total, err := s.employees.CountActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "count employees")
	}
	confirmed, err := s.statuses.CountConfirmed(ctx, month)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "count confirmations")
	}
	byStatus, err := s.statuses.CountByStatus(ctx, month)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "count by status")
	}
	lock, err := s.statuses.GetLock(ctx, month)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "check month lock")
	}

	return &models.StaffStatusSummary{
		Month:          month,
		TotalEmployees: total,
		Confirmed:      confirmed,
		ByStatus:       byStatus,
		Finalized:      lock != nil,
	}, nil
}

func parseMonth(month string) (time.Time, error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "month must use the 2006-01 format")
	}
	return t, nil
}
