package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chainworks/retail-ops-api/internal/middleware"
	"github.com/chainworks/retail-ops-api/internal/models"
	"github.com/chainworks/retail-ops-api/internal/service"
	appErrors "github.com/chainworks/retail-ops-api/pkg/errors"
	"github.com/chainworks/retail-ops-api/pkg/response"
)

// AuthHandler exposes authentication endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login godoc
// @Summary Authenticate a user
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "credentials"
// @Success 200 {object} response.Envelope{data=models.LoginResponse}
// @Failure 401 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	req.IP = c.ClientIP()
	req.UserAgent = c.Request.UserAgent()

	resp, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// ChangePassword godoc
// @Summary Change the authenticated user's password
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body models.ChangePasswordRequest true "passwords"
// @Success 204
// @Failure 401 {object} response.Envelope
// @Security BearerAuth
// @Router /auth/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	if err := h.auth.ChangePassword(c.Request.Context(), middleware.UserID(c), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Me godoc
// @Summary Describe the authenticated user
// @Tags auth
// @Produce json
// @Success 200 {object} response.Envelope{data=models.UserInfo}
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	info := models.UserInfo{
		ID:       middleware.UserID(c),
		Email:    c.GetString(middleware.ContextEmail),
		FullName: c.GetString(middleware.ContextName),
		Role:     middleware.Role(c),
	}
	response.JSON(c, http.StatusOK, info, nil)
}
