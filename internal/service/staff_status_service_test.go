package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainworks/retail-ops-api/internal/dto"
	"github.com/chainworks/retail-ops-api/internal/models"
	appErrors "github.com/chainworks/retail-ops-api/pkg/errors"
)

type fakeStaffStatusRepo struct {
	statuses map[string]*models.StaffStatus // keyed employee|month
	locks    map[string]*models.MonthLock
	counts   map[models.StaffStatusValue]int
}

func newFakeStaffStatusRepo() *fakeStaffStatusRepo {
	return &fakeStaffStatusRepo{
		statuses: map[string]*models.StaffStatus{},
		locks:    map[string]*models.MonthLock{},
		counts:   map[models.StaffStatusValue]int{},
	}
}

func (f *fakeStaffStatusRepo) ListByMonth(context.Context, string) ([]models.StaffStatusDetail, error) {
	return nil, nil
}

func (f *fakeStaffStatusRepo) Upsert(_ context.Context, status *models.StaffStatus) error {
	f.statuses[status.EmployeeID+"|"+status.Month] = status
	return nil
}

func (f *fakeStaffStatusRepo) GetLock(_ context.Context, month string) (*models.MonthLock, error) {
	return f.locks[month], nil
}

func (f *fakeStaffStatusRepo) CreateLock(_ context.Context, lock *models.MonthLock) error {
	f.locks[lock.Month] = lock
	return nil
}

func (f *fakeStaffStatusRepo) CountByStatus(context.Context, string) (map[models.StaffStatusValue]int, error) {
	return f.counts, nil
}

func (f *fakeStaffStatusRepo) CountConfirmed(_ context.Context, month string) (int, error) {
	n := 0
	for key := range f.statuses {
		if key[len(key)-7:] == month {
			n++
		}
	}
	return n, nil
}

type fakeStaffEmployeeRepo struct {
	active int
}

func (f *fakeStaffEmployeeRepo) FindByID(_ context.Context, id string) (*models.EmployeeDetail, error) {
	return &models.EmployeeDetail{Employee: models.Employee{ID: id, Active: true}}, nil
}

func (f *fakeStaffEmployeeRepo) CountActive(context.Context) (int, error) {
	return f.active, nil
}

func TestStaffStatusConfirmAndReconfirm(t *testing.T) {
	repo := newFakeStaffStatusRepo()
	svc := NewStaffStatusService(repo, &fakeStaffEmployeeRepo{active: 10}, nil)

	req := dto.ConfirmStaffStatusRequest{
		EmployeeID: "2f0c3a3e-5a2e-4c3b-9d35-94fb0a6a7f11",
		Month:      "2024-03",
		Status:     "ACTIVE",
	}
	first, err := svc.Confirm(context.Background(), "usr-1", req)
	require.NoError(t, err)
	assert.Equal(t, models.StaffStatusActive, first.Status)

	req.Status = "ON_LEAVE"
	second, err := svc.Confirm(context.Background(), "usr-1", req)
	require.NoError(t, err)
	assert.Equal(t, models.StaffStatusOnLeave, second.Status)
	assert.Len(t, repo.statuses, 1, "re-confirming the same month overwrites")
}

func TestStaffStatusConfirmRejectedAfterFinalize(t *testing.T) {
	repo := newFakeStaffStatusRepo()
	svc := NewStaffStatusService(repo, &fakeStaffEmployeeRepo{active: 10}, nil)

	_, err := svc.Finalize(context.Background(), "usr-1", dto.FinalizeMonthRequest{Month: "2024-03"})
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), "usr-1", dto.ConfirmStaffStatusRequest{
		EmployeeID: "2f0c3a3e-5a2e-4c3b-9d35-94fb0a6a7f11",
		Month:      "2024-03",
		Status:     "ACTIVE",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrMonthFinalized.Code, appErrors.FromError(err).Code)
}

func TestStaffStatusFinalizeTwiceConflicts(t *testing.T) {
	repo := newFakeStaffStatusRepo()
	svc := NewStaffStatusService(repo, &fakeStaffEmployeeRepo{active: 10}, nil)

	_, err := svc.Finalize(context.Background(), "usr-1", dto.FinalizeMonthRequest{Month: "2024-03"})
	require.NoError(t, err)

	_, err = svc.Finalize(context.Background(), "usr-2", dto.FinalizeMonthRequest{Month: "2024-03"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrMonthFinalized.Code, appErrors.FromError(err).Code)
}

func TestStaffStatusSummary(t *testing.T) {
	repo := newFakeStaffStatusRepo()
	repo.counts = map[models.StaffStatusValue]int{models.StaffStatusActive: 3}
	svc := NewStaffStatusService(repo, &fakeStaffEmployeeRepo{active: 5}, nil)

	for _, emp := range []string{"a", "b", "c"} {
		repo.statuses[emp+"|2024-03"] = &models.StaffStatus{EmployeeID: emp, Month: "2024-03"}
	}

	summary, err := svc.Summary(context.Background(), "2024-03")
	require.NoError(t, err)
	assert.Equal(t, 5, summary.TotalEmployees)
	assert.Equal(t, 3, summary.Confirmed)
	assert.Equal(t, 3, summary.ByStatus[models.StaffStatusActive])
	assert.False(t, summary.Finalized)
}

func TestStaffStatusRejectsBadMonth(t *testing.T) {
	svc := NewStaffStatusService(newFakeStaffStatusRepo(), &fakeStaffEmployeeRepo{}, nil)
	_, err := svc.ListMonth(context.Background(), "March 24")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
