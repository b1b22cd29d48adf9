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

// StoreHandler exposes store management endpoints.
type StoreHandler struct {
	stores *service.StoreService
}

// NewStoreHandler constructs a StoreHandler.
func NewStoreHandler(stores *service.StoreService) *StoreHandler {
	return &StoreHandler{stores: stores}
}

// List godoc
// @Summary List stores
// @Tags stores
// @Produce json
// @Param search query string false "name or code search"
// @Param region query string false "region filter"
// @Param page query int false "page"
// @Param page_size query int false "page size"
// @Success 200 {object} response.Envelope{data=[]models.StoreDetail}
// @Security BearerAuth
// @Router /stores [get]
func (h *StoreHandler) List(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid query parameters"))
		return
	}
	query.Normalize()

	filter := models.StoreFilter{
		Search:       query.Search,
		Region:       c.Query("region"),
		SupervisorID: c.Query("supervisor_id"),
		Page:         query.Page,
		PageSize:     query.PageSize,
		SortBy:       query.SortBy,
		SortOrder:    query.SortOrder,
	}
	if raw := c.Query("active"); raw != "" {
		active := raw == "true"
		filter.Active = &active
	}

	stores, pagination, err := h.stores.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stores, pagination)
}

// Get godoc
// @Summary Get one store
// @Tags stores
// @Produce json
// @Param id path string true "store id"
// @Success 200 {object} response.Envelope{data=models.StoreDetail}
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /stores/{id} [get]
func (h *StoreHandler) Get(c *gin.Context) {
	store, err := h.stores.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, store, nil)
}

// Create godoc
// @Summary Register a store
// @Tags stores
// @Accept json
// @Produce json
// @Param payload body dto.CreateStoreRequest true "store"
// @Success 201 {object} response.Envelope{data=models.Store}
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /stores [post]
func (h *StoreHandler) Create(c *gin.Context) {
	var req dto.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	store, err := h.stores.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, store)
}

// Update godoc
// @Summary Update a store
// @Tags stores
// @Accept json
// @Produce json
// @Param id path string true "store id"
// @Param payload body dto.UpdateStoreRequest true "store"
// @Success 200 {object} response.Envelope{data=models.Store}
// @Security BearerAuth
// @Router /stores/{id} [put]
func (h *StoreHandler) Update(c *gin.Context) {
	var req dto.UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	store, err := h.stores.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, store, nil)
}

// Deactivate godoc
// @Summary Deactivate a store
// @Tags stores
// @Param id path string true "store id"
// @Success 204
// @Security BearerAuth
// @Router /stores/{id} [delete]
func (h *StoreHandler) Deactivate(c *gin.Context) {
	if err := h.stores.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// GetSetting godoc
// @Summary Get a store's activity weekday setting
// @Tags stores
// @Produce json
// @Param id path string true "store id"
// @Success 200 {object} response.Envelope{data=models.ActivitySetting}
// @Security BearerAuth
// @Router /stores/{id}/activity-setting [get]
func (h *StoreHandler) GetSetting(c *gin.Context) {
	setting, err := h.stores.GetSetting(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, setting, nil)
}

// UpdateSetting godoc
// @Summary Replace a store's activity weekday setting
// @Tags stores
// @Accept json
// @Produce json
// @Param id path string true "store id"
// @Param payload body dto.UpdateActivitySettingRequest true "setting"
// @Success 200 {object} response.Envelope{data=models.ActivitySetting}
// @Security BearerAuth
// @Router /stores/{id}/activity-setting [put]
func (h *StoreHandler) UpdateSetting(c *gin.Context) {
	var req dto.UpdateActivitySettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	setting, err := h.stores.UpdateSetting(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, setting, nil)
}
