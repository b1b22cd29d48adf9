package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chainworks/retail-ops-api/internal/dto"
	"github.com/chainworks/retail-ops-api/internal/service"
	appErrors "github.com/chainworks/retail-ops-api/pkg/errors"
	"github.com/chainworks/retail-ops-api/pkg/response"
)

// ScheduleHandler exposes the activity scheduling pipeline.
type ScheduleHandler struct {
	schedules *service.ScheduleService
	reports   *service.ReportService
}

// NewScheduleHandler constructs a ScheduleHandler.
func NewScheduleHandler(schedules *service.ScheduleService, reports *service.ReportService) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules, reports: reports}
}

// Generate godoc
// @Summary Generate a schedule proposal for a campaign
// @Description Runs the activity scheduler over the campaign range and the
// @Description active store roster. Nothing is persisted; the returned
// @Description proposal must be saved explicitly.
// @Tags schedule
// @Accept json
// @Produce json
// @Param payload body dto.GenerateScheduleRequest true "campaign"
// @Success 200 {object} response.Envelope{data=dto.GenerateScheduleResponse}
// @Failure 422 {object} response.Envelope "no schedulable dates in range"
// @Security BearerAuth
// @Router /schedule/generate [post]
func (h *ScheduleHandler) Generate(c *gin.Context) {
	var req dto.GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	resp, err := h.schedules.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Save godoc
// @Summary Persist a reviewed schedule proposal
// @Description Replaces the campaign's existing schedule. A proposal that
// @Description left stores unplaced requires confirm=true.
// @Tags schedule
// @Accept json
// @Produce json
// @Param payload body dto.SaveScheduleRequest true "proposal"
// @Success 200 {object} response.Envelope{data=[]models.ScheduleAssignmentDetail}
// @Failure 409 {object} response.Envelope "unplaced stores not confirmed"
// @Security BearerAuth
// @Router /schedule/save [post]
func (h *ScheduleHandler) Save(c *gin.Context) {
	var req dto.SaveScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	assignments, err := h.schedules.Save(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignments, nil)
}

// ListAssignments godoc
// @Summary List a campaign's persisted schedule
// @Tags schedule
// @Produce json
// @Param id path string true "campaign id"
// @Success 200 {object} response.Envelope{data=[]models.ScheduleAssignmentDetail}
// @Security BearerAuth
// @Router /campaigns/{id}/schedule [get]
func (h *ScheduleHandler) ListAssignments(c *gin.Context) {
	assignments, err := h.schedules.ListAssignments(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignments, nil)
}

// ExportCSV godoc
// @Summary Export a campaign's schedule as CSV
// @Tags schedule
// @Produce text/csv
// @Param id path string true "campaign id"
// @Success 200 {string} string "csv payload"
// @Security BearerAuth
// @Router /campaigns/{id}/schedule/export [get]
func (h *ScheduleHandler) ExportCSV(c *gin.Context) {
	payload, err := h.reports.ExportScheduleCSV(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="schedule.csv"`)
	c.Data(http.StatusOK, "text/csv", payload)
}

// DeleteAssignment godoc
// @Summary Remove a single schedule assignment
// @Tags schedule
// @Param id path string true "assignment id"
// @Success 204
// @Security BearerAuth
// @Router /schedule/assignments/{id} [delete]
func (h *ScheduleHandler) DeleteAssignment(c *gin.Context) {
	if err := h.schedules.DeleteAssignment(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
