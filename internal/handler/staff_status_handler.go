package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chainworks/retail-ops-api/internal/dto"
	"github.com/chainworks/retail-ops-api/internal/middleware"
	"github.com/chainworks/retail-ops-api/internal/service"
	appErrors "github.com/chainworks/retail-ops-api/pkg/errors"
	"github.com/chainworks/retail-ops-api/pkg/response"
)

// StaffStatusHandler exposes the monthly confirmation workflow.
type StaffStatusHandler struct {
	statuses *service.StaffStatusService
}

// NewStaffStatusHandler constructs a StaffStatusHandler.
func NewStaffStatusHandler(statuses *service.StaffStatusService) *StaffStatusHandler {
	return &StaffStatusHandler{statuses: statuses}
}

// ListMonth godoc
// @Summary List a month's staff confirmations
// @Tags staff-status
// @Produce json
// @Param month path string true "month (2006-01)"
// @Success 200 {object} response.Envelope{data=[]models.StaffStatusDetail}
// @Security BearerAuth
// @Router /staff-status/{month} [get]
func (h *StaffStatusHandler) ListMonth(c *gin.Context) {
	statuses, err := h.statuses.ListMonth(c.Request.Context(), c.Param("month"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, statuses, nil)
}

// Confirm godoc
// @Summary Confirm one employee's monthly status
// @Tags staff-status
// @Accept json
// @Produce json
// @Param payload body dto.ConfirmStaffStatusRequest true "confirmation"
// @Success 200 {object} response.Envelope{data=models.StaffStatus}
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /staff-status/confirm [post]
func (h *StaffStatusHandler) Confirm(c *gin.Context) {
	var req dto.ConfirmStaffStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	status, err := h.statuses.Confirm(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status, nil)
}

// Finalize godoc
// @Summary Freeze a month's confirmations
// @Tags staff-status
// @Accept json
// @Produce json
// @Param payload body dto.FinalizeMonthRequest true "month"
// @Success 200 {object} response.Envelope{data=models.MonthLock}
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /staff-status/finalize [post]
func (h *StaffStatusHandler) Finalize(c *gin.Context) {
	var req dto.FinalizeMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	lock, err := h.statuses.Finalize(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lock, nil)
}

// Summary godoc
// @Summary Summarize a month's confirmation progress
// @Tags staff-status
// @Produce json
// @Param month path string true "month (2006-01)"
// @Success 200 {object} response.Envelope{data=models.StaffStatusSummary}
// @Security BearerAuth
// @Router /staff-status/{month}/summary [get]
func (h *StaffStatusHandler) Summary(c *gin.Context) {
	summary, err := h.statuses.Summary(c.Request.Context(), c.Param("month"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}
