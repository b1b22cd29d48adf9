package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/chainworks/retail-ops-api/internal/dto"
	"github.com/chainworks/retail-ops-api/internal/models"
	appErrors "github.com/chainworks/retail-ops-api/pkg/errors"
)

type inspectionRepository interface {
	List(ctx context.Context, filter models.InspectionFilter) ([]models.Inspection, int, error)
	FindByID(ctx context.Context, id string) (*models.InspectionDetail, error)
	CreateWithItems(ctx context.Context, inspection *models.Inspection, items []models.InspectionItem) error
}

// InspectionService scores and records store inspections.
type InspectionService struct {
	inspections inspectionRepository
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewInspectionService constructs an InspectionService.
func NewInspectionService(inspections inspectionRepository, logger *zap.Logger) *InspectionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InspectionService{inspections: inspections, validate: validator.New(), logger: logger}
}

// List returns inspections matching the filter.
func (s *InspectionService) List(ctx context.Context, filter models.InspectionFilter) ([]models.Inspection, *models.Pagination, error) {
	inspections, total, err := s.inspections.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list inspections")
	}
	return inspections, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}, nil
}

// Get fetches one inspection with its items.
func (s *InspectionService) Get(ctx context.Context, id string) (*models.InspectionDetail, error) {
	detail, err := s.inspections.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "inspection not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "get inspection")
	}
	return detail, nil
}

// Create records a scored store visit. The total score is the weighted mean
// of the item scores and the grade is derived from it.
func (s *InspectionService) Create(ctx context.Context, inspectorID string, req dto.CreateInspectionRequest) (*models.InspectionDetail, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid inspection payload")
	}

	items := make([]models.InspectionItem, 0, len(req.Items))
	for _, input := range req.Items {
		items = append(items, models.InspectionItem{
			Category:  input.Category,
			Criterion: input.Criterion,
			Score:     input.Score,
			Weight:    input.Weight,
		})
	}
	total := weightedScore(items)

	inspection := &models.Inspection{
		StoreID:     req.StoreID,
		InspectorID: inspectorID,
		VisitDate:   req.VisitDate,
		TotalScore:  total,
		Grade:       gradeFor(total),
		Note:        req.Note,
	}
	if err := s.inspections.CreateWithItems(ctx, inspection, items); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "create inspection")
	}

	s.logger.Info("inspection recorded",
		zap.String("inspection_id", inspection.ID),
		zap.String("store_id", inspection.StoreID),
		zap.Float64("score", inspection.TotalScore),
		zap.String("grade", inspection.Grade))

	return &models.InspectionDetail{Inspection: *inspection, Items: items}, nil
}

func weightedScore(items []models.InspectionItem) float64 {
	var sum, weights float64
	for _, item := range items {
		sum += item.Score * item.Weight
		weights += item.Weight
	}
	if weights == 0 {
		return 0
	}
	return sum / weights
}

func gradeFor(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	default:
		return "D"
	}
}
