package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chainworks/retail-ops-api/internal/dto"
	"github.com/chainworks/retail-ops-api/internal/middleware"
	"github.com/chainworks/retail-ops-api/internal/service"
	appErrors "github.com/chainworks/retail-ops-api/pkg/errors"
	"github.com/chainworks/retail-ops-api/pkg/response"
)

// CampaignHandler exposes campaign and calendar endpoints.
type CampaignHandler struct {
	campaigns *service.CampaignService
}

// NewCampaignHandler constructs a CampaignHandler.
func NewCampaignHandler(campaigns *service.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaigns: campaigns}
}

// List godoc
// @Summary List campaigns
// @Tags campaigns
// @Produce json
// @Success 200 {object} response.Envelope{data=[]models.Campaign}
// @Security BearerAuth
// @Router /campaigns [get]
func (h *CampaignHandler) List(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid query parameters"))
		return
	}
	query.Normalize()

	campaigns, pagination, err := h.campaigns.List(c.Request.Context(), query.Page, query.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, campaigns, pagination)
}

// Get godoc
// @Summary Get one campaign
// @Tags campaigns
// @Produce json
// @Param id path string true "campaign id"
// @Success 200 {object} response.Envelope{data=models.Campaign}
// @Security BearerAuth
// @Router /campaigns/{id} [get]
func (h *CampaignHandler) Get(c *gin.Context) {
	campaign, err := h.campaigns.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, campaign, nil)
}

// Create godoc
// @Summary Open a campaign
// @Tags campaigns
// @Accept json
// @Produce json
// @Param payload body dto.CreateCampaignRequest true "campaign"
// @Success 201 {object} response.Envelope{data=models.Campaign}
// @Security BearerAuth
// @Router /campaigns [post]
func (h *CampaignHandler) Create(c *gin.Context) {
	var req dto.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	campaign, err := h.campaigns.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, campaign)
}

// UpdateStatus godoc
// @Summary Move a campaign through its lifecycle
// @Tags campaigns
// @Accept json
// @Produce json
// @Param id path string true "campaign id"
// @Param payload body dto.UpdateCampaignStatusRequest true "target status"
// @Success 200 {object} response.Envelope{data=models.Campaign}
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /campaigns/{id}/status [patch]
func (h *CampaignHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateCampaignStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	campaign, err := h.campaigns.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, campaign, nil)
}

// ListEvents godoc
// @Summary List calendar events in a range
// @Tags calendar
// @Produce json
// @Param from query string true "range start (2006-01-02)"
// @Param to query string true "range end (2006-01-02)"
// @Success 200 {object} response.Envelope{data=[]models.CalendarEvent}
// @Security BearerAuth
// @Router /calendar [get]
func (h *CampaignHandler) ListEvents(c *gin.Context) {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "from must use the 2006-01-02 format"))
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "to must use the 2006-01-02 format"))
		return
	}

	events, err := h.campaigns.ListEvents(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events, nil)
}

// CreateEvent godoc
// @Summary Mark a calendar date
// @Tags calendar
// @Accept json
// @Produce json
// @Param payload body dto.CreateCalendarEventRequest true "event"
// @Success 201 {object} response.Envelope{data=models.CalendarEvent}
// @Security BearerAuth
// @Router /calendar [post]
func (h *CampaignHandler) CreateEvent(c *gin.Context) {
	var req dto.CreateCalendarEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	event, err := h.campaigns.CreateEvent(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, event)
}

// DeleteEvent godoc
// @Summary Remove a calendar event
// @Tags calendar
// @Param id path string true "event id"
// @Success 204
// @Security BearerAuth
// @Router /calendar/{id} [delete]
func (h *CampaignHandler) DeleteEvent(c *gin.Context) {
	if err := h.campaigns.DeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
