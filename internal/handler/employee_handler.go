package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chainworks/retail-ops-api/internal/dto"
	"github.com/chainworks/retail-ops-api/internal/models"
	"github.com/chainworks/retail-ops-api/internal/service"
	appErrors "github.com/chainworks/retail-ops-api/pkg/errors"
	"github.com/chainworks/retail-ops-api/pkg/response"
)

// EmployeeHandler exposes staff roster endpoints.
type EmployeeHandler struct {
	employees *service.EmployeeService
}

// NewEmployeeHandler constructs an EmployeeHandler.
func NewEmployeeHandler(employees *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employees: employees}
}

// List godoc
// @Summary List employees
// @Tags employees
// @Produce json
// @Param search query string false "name or NIK search"
// @Param store_id query string false "store filter"
// @Success 200 {object} response.Envelope{data=[]models.EmployeeDetail}
// @Security BearerAuth
// @Router /employees [get]
func (h *EmployeeHandler) List(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid query parameters"))
		return
	}
	query.Normalize()

	filter := models.EmployeeFilter{
		Search:    query.Search,
		StoreID:   c.Query("store_id"),
		Page:      query.Page,
		PageSize:  query.PageSize,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
	}
	if raw := c.Query("active"); raw != "" {
		active := raw == "true"
		filter.Active = &active
	}
	if raw := c.Query("supervisor"); raw != "" {
		supervisor := raw == "true"
		filter.Supervisor = &supervisor
	}

	employees, pagination, err := h.employees.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, employees, pagination)
}

// Get godoc
// @Summary Get one employee
// @Tags employees
// @Produce json
// @Param id path string true "employee id"
// @Success 200 {object} response.Envelope{data=models.EmployeeDetail}
// @Security BearerAuth
// @Router /employees/{id} [get]
func (h *EmployeeHandler) Get(c *gin.Context) {
	employee, err := h.employees.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, employee, nil)
}

// Create godoc
// @Summary Register an employee
// @Tags employees
// @Accept json
// @Produce json
// @Param payload body dto.CreateEmployeeRequest true "employee"
// @Success 201 {object} response.Envelope{data=models.Employee}
// @Security BearerAuth
// @Router /employees [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	employee, err := h.employees.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, employee)
}

// Update godoc
// @Summary Update an employee
// @Tags employees
// @Accept json
// @Produce json
// @Param id path string true "employee id"
// @Param payload body dto.UpdateEmployeeRequest true "employee"
// @Success 200 {object} response.Envelope{data=models.Employee}
// @Security BearerAuth
// @Router /employees/{id} [put]
func (h *EmployeeHandler) Update(c *gin.Context) {
	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	employee, err := h.employees.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, employee, nil)
}

// Deactivate godoc
// @Summary Deactivate an employee
// @Tags employees
// @Param id path string true "employee id"
// @Success 204
// @Security BearerAuth
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) Deactivate(c *gin.Context) {
	if err := h.employees.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
