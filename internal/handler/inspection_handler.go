package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chainworks/retail-ops-api/internal/dto"
	"github.com/chainworks/retail-ops-api/internal/middleware"
	"github.com/chainworks/retail-ops-api/internal/models"
	"github.com/chainworks/retail-ops-api/internal/service"
	appErrors "github.com/chainworks/retail-ops-api/pkg/errors"
	"github.com/chainworks/retail-ops-api/pkg/response"
)

// InspectionHandler exposes store inspection endpoints.
type InspectionHandler struct {
	inspections *service.InspectionService
	reports     *service.ReportService
}

// NewInspectionHandler constructs an InspectionHandler.
func NewInspectionHandler(inspections *service.InspectionService, reports *service.ReportService) *InspectionHandler {
	return &InspectionHandler{inspections: inspections, reports: reports}
}

// List godoc
// @Summary List inspections
// @Tags inspections
// @Produce json
// @Param store_id query string false "store filter"
// @Param from query string false "visit date lower bound (2006-01-02)"
// @Param to query string false "visit date upper bound (2006-01-02)"
// @Success 200 {object} response.Envelope{data=[]models.Inspection}
// @Security BearerAuth
// @Router /inspections [get]
func (h *InspectionHandler) List(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid query parameters"))
		return
	}
	query.Normalize()

	filter := models.InspectionFilter{
		StoreID:   c.Query("store_id"),
		Page:      query.Page,
		PageSize:  query.PageSize,
		SortOrder: query.SortOrder,
	}
	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "from must use the 2006-01-02 format"))
			return
		}
		filter.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "to must use the 2006-01-02 format"))
			return
		}
		filter.To = &to
	}

	inspections, pagination, err := h.inspections.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, inspections, pagination)
}

// Get godoc
// @Summary Get one inspection with its items
// @Tags inspections
// @Produce json
// @Param id path string true "inspection id"
// @Success 200 {object} response.Envelope{data=models.InspectionDetail}
// @Security BearerAuth
// @Router /inspections/{id} [get]
func (h *InspectionHandler) Get(c *gin.Context) {
	detail, err := h.inspections.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// Create godoc
// @Summary Record a scored store visit
// @Tags inspections
// @Accept json
// @Produce json
// @Param payload body dto.CreateInspectionRequest true "inspection"
// @Success 201 {object} response.Envelope{data=models.InspectionDetail}
// @Security BearerAuth
// @Router /inspections [post]
func (h *InspectionHandler) Create(c *gin.Context) {
	var req dto.CreateInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	detail, err := h.inspections.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, detail)
}

// Report godoc
// @Summary Build a PDF report for an inspection
// @Tags inspections
// @Produce json
// @Param id path string true "inspection id"
// @Success 202 {object} response.Envelope{data=dto.InspectionReportResponse}
// @Security BearerAuth
// @Router /inspections/{id}/report [post]
func (h *InspectionHandler) Report(c *gin.Context) {
	resp, err := h.reports.EnqueueInspectionReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, resp, nil)
}
