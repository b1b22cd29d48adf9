package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chainworks/retail-ops-api/internal/dto"
	"github.com/chainworks/retail-ops-api/internal/middleware"
	"github.com/chainworks/retail-ops-api/internal/models"
	"github.com/chainworks/retail-ops-api/internal/service"
	appErrors "github.com/chainworks/retail-ops-api/pkg/errors"
	"github.com/chainworks/retail-ops-api/pkg/response"
)

// TaskHandler exposes the operational task workflow.
type TaskHandler struct {
	tasks *service.TaskService
}

// NewTaskHandler constructs a TaskHandler.
func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// List godoc
// @Summary List tasks
// @Tags tasks
// @Produce json
// @Param store_id query string false "store filter"
// @Param status query string false "workflow status filter"
// @Success 200 {object} response.Envelope{data=[]models.Task}
// @Security BearerAuth
// @Router /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid query parameters"))
		return
	}
	query.Normalize()

	filter := models.TaskFilter{
		StoreID:    c.Query("store_id"),
		AssigneeID: c.Query("assignee_id"),
		Status:     c.Query("status"),
		Search:     query.Search,
		Page:       query.Page,
		PageSize:   query.PageSize,
		SortOrder:  query.SortOrder,
	}
	tasks, pagination, err := h.tasks.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tasks, pagination)
}

// Get godoc
// @Summary Get one task
// @Tags tasks
// @Produce json
// @Param id path string true "task id"
// @Success 200 {object} response.Envelope{data=models.Task}
// @Security BearerAuth
// @Router /tasks/{id} [get]
func (h *TaskHandler) Get(c *gin.Context) {
	task, err := h.tasks.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, task, nil)
}

// Create godoc
// @Summary Open a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param payload body dto.CreateTaskRequest true "task"
// @Success 201 {object} response.Envelope{data=models.Task}
// @Security BearerAuth
// @Router /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	task, err := h.tasks.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, task)
}

// Update godoc
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "task id"
// @Param payload body dto.UpdateTaskRequest true "task"
// @Success 200 {object} response.Envelope{data=models.Task}
// @Security BearerAuth
// @Router /tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	task, err := h.tasks.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, task, nil)
}

// Transition godoc
// @Summary Move a task through its workflow
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "task id"
// @Param payload body dto.TransitionTaskRequest true "target status"
// @Success 200 {object} response.Envelope{data=models.Task}
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /tasks/{id}/status [patch]
func (h *TaskHandler) Transition(c *gin.Context) {
	var req dto.TransitionTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	task, err := h.tasks.Transition(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, task, nil)
}
