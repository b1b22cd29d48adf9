package service

import (
	"context"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainworks/retail-ops-api/internal/dto"
	"github.com/chainworks/retail-ops-api/internal/models"
	"github.com/chainworks/retail-ops-api/pkg/config"
	appErrors "github.com/chainworks/retail-ops-api/pkg/errors"
)

type fakeCampaignRepo struct {
	campaign *models.Campaign
	blocked  map[string]bool
	saved    []models.ScheduleAssignment
	savedFor string
	listed   []models.ScheduleAssignmentDetail
}

func (f *fakeCampaignRepo) FindByID(_ context.Context, id string) (*models.Campaign, error) {
	if f.campaign == nil || f.campaign.ID != id {
		return nil, assert.AnError
	}
	return f.campaign, nil
}

func (f *fakeCampaignRepo) ListBlockedDates(context.Context, time.Time, time.Time) (map[string]bool, error) {
	return f.blocked, nil
}

func (f *fakeCampaignRepo) ReplaceAssignments(_ context.Context, campaignID string, assignments []models.ScheduleAssignment) error {
	f.savedFor = campaignID
	f.saved = assignments
	return nil
}

func (f *fakeCampaignRepo) ListAssignments(context.Context, string) ([]models.ScheduleAssignmentDetail, error) {
	return f.listed, nil
}

func (f *fakeCampaignRepo) DeleteAssignment(context.Context, string) error { return nil }

type fakeStoreRepo struct {
	roster   []models.Store
	settings map[string]models.ActivitySetting
}

func (f *fakeStoreRepo) ListActiveByPriority(context.Context) ([]models.Store, error) {
	return f.roster, nil
}

func (f *fakeStoreRepo) ListSettings(context.Context) (map[string]models.ActivitySetting, error) {
	return f.settings, nil
}

type fakeScheduleMetrics struct {
	runs, placed, unplaced int
}

func (f *fakeScheduleMetrics) RecordScheduleRun(placed, unplaced int) {
	f.runs++
	f.placed += placed
	f.unplaced += unplaced
}

func strPtr(s string) *string { return &s }

func newScheduleFixture(roster []models.Store, settings map[string]models.ActivitySetting, blocked map[string]bool) (*ScheduleService, *fakeCampaignRepo, *fakeScheduleMetrics) {
	campaigns := &fakeCampaignRepo{
		campaign: &models.Campaign{
			ID:        "cmp-1",
			Name:      "March Push",
			StartDate: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
			Status:    models.CampaignStatusActive,
		},
		blocked: blocked,
	}
	metrics := &fakeScheduleMetrics{}
	svc := NewScheduleService(
		campaigns,
		&fakeStoreRepo{roster: roster, settings: settings},
		metrics,
		config.SchedulerConfig{AllowedWeekdays: []int{3, 6, 7}, MaxPerDay: 2, ProposalTTL: time.Minute},
		nil,
	)
	return svc, campaigns, metrics
}

func TestScheduleServiceGenerateProducesProposal(t *testing.T) {
	roster := []models.Store{
		{ID: "st-1", Name: "Central", SupervisorID: strPtr("sup-1"), Active: true},
		{ID: "st-2", Name: "Harbour", SupervisorID: strPtr("sup-2"), Active: true},
	}
	svc, _, metrics := newScheduleFixture(roster, nil, nil)

	resp, err := svc.Generate(context.Background(), dto.GenerateScheduleRequest{CampaignID: "cmp-1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ProposalID)
	assert.Equal(t, "cmp-1", resp.CampaignID)
	assert.Len(t, resp.Placed, 2)
	assert.Empty(t, resp.Unplaced)
	assert.Equal(t, 1, metrics.runs)
	assert.Equal(t, 2, metrics.placed)
}

func TestScheduleServiceGenerateAppliesSettings(t *testing.T) {
	roster := []models.Store{{ID: "st-1", Name: "Central", SupervisorID: strPtr("sup-1"), Active: true}}
	settings := map[string]models.ActivitySetting{
		"st-1": {StoreID: "st-1", ForbiddenDays: pq.Int64Array{6, 7}},
	}
	svc, _, _ := newScheduleFixture(roster, settings, nil)

	resp, err := svc.Generate(context.Background(), dto.GenerateScheduleRequest{CampaignID: "cmp-1"})
	require.NoError(t, err)
	require.Len(t, resp.Placed, 1)
	// first Wednesday of March 2024
	assert.Equal(t, "2024-03-06", resp.Placed[0].Date)
}

func TestScheduleServiceSaveRequiresConfirmWhenUnplaced(t *testing.T) {
	// Single eligible date (blocked except 03-02) with capacity 2 and three
	// stores: the third store cannot be placed.
	roster := []models.Store{
		{ID: "st-1", Name: "A", SupervisorID: strPtr("s1"), Active: true},
		{ID: "st-2", Name: "B", SupervisorID: strPtr("s2"), Active: true},
		{ID: "st-3", Name: "C", SupervisorID: strPtr("s3"), Active: true},
	}
	blocked := map[string]bool{}
	for d := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC); d.Month() == time.March; d = d.AddDate(0, 0, 1) {
		if d.Day() != 2 {
			blocked[d.Format("2006-01-02")] = true
		}
	}
	svc, campaigns, _ := newScheduleFixture(roster, nil, blocked)

	resp, err := svc.Generate(context.Background(), dto.GenerateScheduleRequest{CampaignID: "cmp-1"})
	require.NoError(t, err)
	require.Len(t, resp.Unplaced, 1)

	_, err = svc.Save(context.Background(), dto.SaveScheduleRequest{ProposalID: resp.ProposalID})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Empty(t, campaigns.saved)

	// the rejected save keeps the proposal reviewable
	_, err = svc.Save(context.Background(), dto.SaveScheduleRequest{ProposalID: resp.ProposalID, Confirm: true})
	require.NoError(t, err)
	assert.Equal(t, "cmp-1", campaigns.savedFor)
	assert.Len(t, campaigns.saved, 2)
}

func TestScheduleServiceSaveUnknownProposal(t *testing.T) {
	svc, _, _ := newScheduleFixture(nil, nil, nil)
	_, err := svc.Save(context.Background(), dto.SaveScheduleRequest{ProposalID: "missing"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestScheduleServiceGenerateEmptyPool(t *testing.T) {
	roster := []models.Store{{ID: "st-1", Name: "Central", SupervisorID: strPtr("sup-1"), Active: true}}
	blocked := map[string]bool{}
	for d := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC); d.Month() == time.March; d = d.AddDate(0, 0, 1) {
		blocked[d.Format("2006-01-02")] = true
	}
	svc, _, _ := newScheduleFixture(roster, nil, blocked)

	_, err := svc.Generate(context.Background(), dto.GenerateScheduleRequest{CampaignID: "cmp-1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrEmptyDatePool.Code, appErrors.FromError(err).Code)
}

func TestScheduleServiceGenerateRejectsClosedCampaign(t *testing.T) {
	svc, campaigns, _ := newScheduleFixture(nil, nil, nil)
	campaigns.campaign.Status = models.CampaignStatusClosed

	_, err := svc.Generate(context.Background(), dto.GenerateScheduleRequest{CampaignID: "cmp-1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestScheduleServiceProposalExpires(t *testing.T) {
	roster := []models.Store{{ID: "st-1", Name: "Central", SupervisorID: strPtr("sup-1"), Active: true}}
	svc, _, _ := newScheduleFixture(roster, nil, nil)
	svc.proposals.ttl = -time.Second

	resp, err := svc.Generate(context.Background(), dto.GenerateScheduleRequest{CampaignID: "cmp-1"})
	require.NoError(t, err)

	_, err = svc.Save(context.Background(), dto.SaveScheduleRequest{ProposalID: resp.ProposalID, Confirm: true})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
