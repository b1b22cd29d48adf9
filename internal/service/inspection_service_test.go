package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainworks/retail-ops-api/internal/dto"
	"github.com/chainworks/retail-ops-api/internal/models"
	appErrors "github.com/chainworks/retail-ops-api/pkg/errors"
)

type fakeInspectionRepo struct {
	created *models.Inspection
	items   []models.InspectionItem
}

func (f *fakeInspectionRepo) List(context.Context, models.InspectionFilter) ([]models.Inspection, int, error) {
	return nil, 0, nil
}

func (f *fakeInspectionRepo) FindByID(context.Context, string) (*models.InspectionDetail, error) {
	return nil, assert.AnError
}

func (f *fakeInspectionRepo) CreateWithItems(_ context.Context, inspection *models.Inspection, items []models.InspectionItem) error {
	f.created = inspection
	f.items = items
	return nil
}

func inspectionRequest(items []dto.InspectionItemInput) dto.CreateInspectionRequest {
	return dto.CreateInspectionRequest{
		StoreID:   "7f8ab8be-1d0f-4bc7-88a1-3c5f9d1c2a10",
		VisitDate: time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC),
		Items:     items,
	}
}

func TestInspectionWeightedScoreAndGrade(t *testing.T) {
	repo := &fakeInspectionRepo{}
	svc := NewInspectionService(repo, nil)

	detail, err := svc.Create(context.Background(), "ins-1", inspectionRequest([]dto.InspectionItemInput{
		{Category: "Cleanliness", Criterion: "Floor", Score: 100, Weight: 3},
		{Category: "Display", Criterion: "Window", Score: 60, Weight: 1},
	}))
	require.NoError(t, err)

	// (100*3 + 60*1) / 4 = 90
	assert.InDelta(t, 90.0, detail.TotalScore, 0.001)
	assert.Equal(t, "A", detail.Grade)
	assert.Equal(t, "ins-1", repo.created.InspectorID)
	assert.Len(t, repo.items, 2)
}

func TestInspectionGradeBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		grade string
	}{
		{95, "A"},
		{90, "A"},
		{89.9, "B"},
		{80, "B"},
		{79, "C"},
		{70, "C"},
		{69.9, "D"},
		{0, "D"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.grade, gradeFor(tc.score), "score %.1f", tc.score)
	}
}

func TestInspectionRequiresItems(t *testing.T) {
	svc := NewInspectionService(&fakeInspectionRepo{}, nil)

	_, err := svc.Create(context.Background(), "ins-1", inspectionRequest(nil))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
