package handler

import (
	"net/http"

	"github.com/satch9/app-caisse-compta-sub000/internal/dto"
	"github.com/satch9/app-caisse-compta-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc  service.AuthService
	dash service.DashboardService
}

func NewAuthHandler(svc service.AuthService, dash service.DashboardService) *AuthHandler {
	return &AuthHandler{svc: svc, dash: dash}
}

// Login godoc
// @Summary Connecte un opérateur auprès du backend du club
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Identifiants"
// @Success 200 {object} dto.MeResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary Déconnecte l'opérateur et réinitialise les terminaux
// @Tags auth
// @Success 204
// @Router /v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.svc.Logout(c.Request.Context())
	c.Status(http.StatusNoContent)
}

// Me godoc
// @Summary Opérateur connecté et ses permissions
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MeResponse
// @Failure 401 {object} apierror.APIError
// @Router /v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	resp, err := h.svc.Me(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Dashboard godoc
// @Summary Écrans accessibles et session de caisse active
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Router /v1/dashboard [get]
func (h *AuthHandler) Dashboard(c *gin.Context) {
	resp, err := h.dash.Tableau(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
