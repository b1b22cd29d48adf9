package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/chainworks/retail-ops-api/internal/dto"
	"github.com/chainworks/retail-ops-api/internal/models"
	appErrors "github.com/chainworks/retail-ops-api/pkg/errors"
)

type taskRepository interface {
	List(ctx context.Context, filter models.TaskFilter) ([]models.Task, int, error)
	FindByID(ctx context.Context, id string) (*models.Task, error)
	Create(ctx context.Context, task *models.Task) error
	Update(ctx context.Context, task *models.Task) error
	UpdateStatus(ctx context.Context, id string, status models.TaskStatus) error
}

// TaskService implements the operational task workflow.
type TaskService struct {
	tasks    taskRepository
	validate *validator.Validate
	logger   *zap.Logger
}

// NewTaskService constructs a TaskService.
func NewTaskService(tasks taskRepository, logger *zap.Logger) *TaskService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskService{tasks: tasks, validate: validator.New(), logger: logger}
}

// List returns tasks matching the filter.
func (s *TaskService) List(ctx context.Context, filter models.TaskFilter) ([]models.Task, *models.Pagination, error) {
	tasks, total, err := s.tasks.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list tasks")
	}
	return tasks, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}, nil
}

// Get fetches one task.
func (s *TaskService) Get(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "task not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "get task")
	}
	return task, nil
}

// Create opens a new task in OPEN status.
func (s *TaskService) Create(ctx context.Context, createdBy string, req dto.CreateTaskRequest) (*models.Task, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid task payload")
	}
	task := &models.Task{
		StoreID:     req.StoreID,
		AssigneeID:  req.AssigneeID,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskStatusOpen,
		DueDate:     req.DueDate,
		CreatedBy:   createdBy,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "create task")
	}
	return task, nil
}

// Update rewrites a task's mutable fields. Closed tasks cannot be edited.
func (s *TaskService) Update(ctx context.Context, id string, req dto.UpdateTaskRequest) (*models.Task, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid task payload")
	}
	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Status == models.TaskStatusDone || task.Status == models.TaskStatusCancelled {
		return nil, appErrors.Clone(appErrors.ErrConflict, "task is closed")
	}

	task.AssigneeID = req.AssigneeID
	task.Title = req.Title
	task.Description = req.Description
	task.DueDate = req.DueDate
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "update task")
	}
	return task, nil
}

// Transition moves a task to a new workflow status, enforcing the state
// machine: OPEN -> IN_PROGRESS -> DONE, with CANCELLED reachable from any
// non-terminal state.
func (s *TaskService) Transition(ctx context.Context, id string, req dto.TransitionTaskRequest) (*models.Task, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid transition payload")
	}
	target := models.TaskStatus(req.Status)
	if !target.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown task status")
	}

	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !task.Status.CanTransition(target) {
		return nil, appErrors.Clone(appErrors.ErrConflict,
			fmt.Sprintf("cannot move task from %s to %s", task.Status, target))
	}

	if err := s.tasks.UpdateStatus(ctx, id, target); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "transition task")
	}
	s.logger.Info("task transitioned",
		zap.String("task_id", id),
		zap.String("from", string(task.Status)),
		zap.String("to", string(target)))
	task.Status = target
	return task, nil
}
