package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainworks/retail-ops-api/internal/dto"
	"github.com/chainworks/retail-ops-api/internal/models"
	appErrors "github.com/chainworks/retail-ops-api/pkg/errors"
)

type fakeTaskRepo struct {
	tasks map[string]*models.Task
}

func (f *fakeTaskRepo) List(context.Context, models.TaskFilter) ([]models.Task, int, error) {
	return nil, 0, nil
}

func (f *fakeTaskRepo) FindByID(_ context.Context, id string) (*models.Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *task
	return &copied, nil
}

func (f *fakeTaskRepo) Create(_ context.Context, task *models.Task) error {
	f.tasks[task.ID] = task
	return nil
}

func (f *fakeTaskRepo) Update(_ context.Context, task *models.Task) error {
	f.tasks[task.ID] = task
	return nil
}

func (f *fakeTaskRepo) UpdateStatus(_ context.Context, id string, status models.TaskStatus) error {
	f.tasks[id].Status = status
	return nil
}

func newTaskFixture(status models.TaskStatus) (*TaskService, *fakeTaskRepo) {
	repo := &fakeTaskRepo{tasks: map[string]*models.Task{
		"tk-1": {ID: "tk-1", StoreID: "st-1", Title: "Restock shelves", Status: status},
	}}
	return NewTaskService(repo, nil), repo
}

func TestTaskTransitionOpenToInProgress(t *testing.T) {
	svc, repo := newTaskFixture(models.TaskStatusOpen)

	task, err := svc.Transition(context.Background(), "tk-1", dto.TransitionTaskRequest{Status: "IN_PROGRESS"})
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusInProgress, task.Status)
	assert.Equal(t, models.TaskStatusInProgress, repo.tasks["tk-1"].Status)
}

func TestTaskTransitionSkippingStateRejected(t *testing.T) {
	svc, repo := newTaskFixture(models.TaskStatusOpen)

	_, err := svc.Transition(context.Background(), "tk-1", dto.TransitionTaskRequest{Status: "DONE"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Equal(t, models.TaskStatusOpen, repo.tasks["tk-1"].Status)
}

func TestTaskTransitionOutOfTerminalRejected(t *testing.T) {
	svc, _ := newTaskFixture(models.TaskStatusDone)

	_, err := svc.Transition(context.Background(), "tk-1", dto.TransitionTaskRequest{Status: "IN_PROGRESS"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestTaskTransitionCancelFromInProgress(t *testing.T) {
	svc, _ := newTaskFixture(models.TaskStatusInProgress)

	task, err := svc.Transition(context.Background(), "tk-1", dto.TransitionTaskRequest{Status: "CANCELLED"})
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusCancelled, task.Status)
}

func TestTaskUpdateClosedTaskRejected(t *testing.T) {
	svc, _ := newTaskFixture(models.TaskStatusCancelled)

	_, err := svc.Update(context.Background(), "tk-1", dto.UpdateTaskRequest{Title: "New title"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}
