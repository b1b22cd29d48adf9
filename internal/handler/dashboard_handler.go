package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chainworks/retail-ops-api/internal/service"
	"github.com/chainworks/retail-ops-api/pkg/response"
)

// DashboardHandler exposes the headline-counts dashboard.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler constructs a DashboardHandler.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Summary godoc
// @Summary Dashboard headline counts
// @Tags dashboard
// @Produce json
// @Success 200 {object} response.Envelope{data=models.DashboardSummary}
// @Security BearerAuth
// @Router /dashboard/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.dashboard.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}
