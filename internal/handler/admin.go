package handler

import (
	"net/http"
	"strconv"

	"github.com/satch9/app-caisse-compta-sub000/internal/dto"
	"github.com/satch9/app-caisse-compta-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

// LogsSupprimesHeader carries the number of log entries a purge removed.
const LogsSupprimesHeader = "X-Logs-Supprimes"

type AdminHandler struct {
	svc service.AdminService
}

func NewAdminHandler(svc service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// ─── Utilisateurs ────────────────────────────────────────────────────────────

// ListerUtilisateurs godoc
// @Summary Liste les utilisateurs
// @Tags admin
// @Produce json
// @Success 200 {array} model.Utilisateur
// @Router /v1/admin/utilisateurs [get]
func (h *AdminHandler) ListerUtilisateurs(c *gin.Context) {
	list, err := h.svc.ListerUtilisateurs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreerUtilisateur godoc
// @Summary Crée un utilisateur
// @Tags admin
// @Accept json
// @Produce json
// @Param body body dto.UtilisateurRequest true "Utilisateur"
// @Success 201 {object} model.Utilisateur
// @Failure 422 {object} apierror.APIError
// @Router /v1/admin/utilisateurs [post]
func (h *AdminHandler) CreerUtilisateur(c *gin.Context) {
	var req dto.UtilisateurRequest
	if !bindAndValidate(c, &req) {
		return
	}
	u, err := h.svc.CreerUtilisateur(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// ModifierUtilisateur godoc
// @Summary Modifie un utilisateur
// @Tags admin
// @Param id path int true "Utilisateur"
// @Param body body dto.UtilisateurRequest true "Utilisateur"
// @Success 200 {object} model.Utilisateur
// @Router /v1/admin/utilisateurs/{id} [put]
func (h *AdminHandler) ModifierUtilisateur(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.UtilisateurRequest
	if !bindAndValidate(c, &req) {
		return
	}
	u, err := h.svc.ModifierUtilisateur(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// SupprimerUtilisateur godoc
// @Summary Supprime un utilisateur
// @Tags admin
// @Param id path int true "Utilisateur"
// @Success 204
// @Router /v1/admin/utilisateurs/{id} [delete]
func (h *AdminHandler) SupprimerUtilisateur(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.SupprimerUtilisateur(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AssignerRoles godoc
// @Summary Remplace les rôles d'un utilisateur
// @Tags admin
// @Param id path int true "Utilisateur"
// @Param body body dto.AssignationRolesRequest true "Rôles"
// @Success 200 {object} model.Utilisateur
// @Router /v1/admin/utilisateurs/{id}/roles [put]
func (h *AdminHandler) AssignerRoles(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.AssignationRolesRequest
	if !bindAndValidate(c, &req) {
		return
	}
	u, err := h.svc.AssignerRoles(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// ─── Rôles et permissions ────────────────────────────────────────────────────

// ListerRoles godoc
// @Summary Liste les rôles
// @Tags admin
// @Produce json
// @Success 200 {array} model.Role
// @Router /v1/admin/roles [get]
func (h *AdminHandler) ListerRoles(c *gin.Context) {
	list, err := h.svc.ListerRoles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreerRole godoc
// @Summary Crée un rôle
// @Tags admin
// @Param body body dto.RoleRequest true "Rôle"
// @Success 201 {object} model.Role
// @Router /v1/admin/roles [post]
func (h *AdminHandler) CreerRole(c *gin.Context) {
	var req dto.RoleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	r, err := h.svc.CreerRole(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// ModifierRole godoc
// @Summary Modifie un rôle
// @Tags admin
// @Param id path int true "Rôle"
// @Param body body dto.RoleRequest true "Rôle"
// @Success 200 {object} model.Role
// @Router /v1/admin/roles/{id} [put]
func (h *AdminHandler) ModifierRole(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.RoleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	r, err := h.svc.ModifierRole(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// SupprimerRole godoc
// @Summary Supprime un rôle
// @Tags admin
// @Param id path int true "Rôle"
// @Success 204
// @Router /v1/admin/roles/{id} [delete]
func (h *AdminHandler) SupprimerRole(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.SupprimerRole(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AssignerPermissions godoc
// @Summary Remplace les permissions d'un rôle
// @Tags admin
// @Param id path int true "Rôle"
// @Param body body dto.AssignationPermissionsRequest true "Codes"
// @Success 200 {object} model.Role
// @Failure 422 {object} apierror.APIError
// @Router /v1/admin/roles/{id}/permissions [put]
func (h *AdminHandler) AssignerPermissions(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.AssignationPermissionsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	r, err := h.svc.AssignerPermissions(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// ListerPermissions godoc
// @Summary Catalogue des permissions
// @Tags admin
// @Produce json
// @Success 200 {array} model.Permission
// @Router /v1/admin/permissions [get]
func (h *AdminHandler) ListerPermissions(c *gin.Context) {
	list, err := h.svc.ListerPermissions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// ─── Logs ────────────────────────────────────────────────────────────────────

// ListerLogs godoc
// @Summary Journal système
// @Tags admin
// @Produce json
// @Success 200 {array} model.LogSysteme
// @Router /v1/admin/logs [get]
func (h *AdminHandler) ListerLogs(c *gin.Context) {
	var f dto.LogFilter
	if !bindQuery(c, &f) {
		return
	}
	list, err := h.svc.ListerLogs(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// FiltresLogs godoc
// @Summary Valeurs disponibles pour filtrer le journal
// @Tags admin
// @Produce json
// @Success 200 {object} model.FiltresLogs
// @Router /v1/admin/logs/filtres [get]
func (h *AdminHandler) FiltresLogs(c *gin.Context) {
	f, err := h.svc.FiltresLogs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// ExporterLogs godoc
// @Summary Export du journal (csv, json ou xlsx)
// @Tags admin
// @Produce octet-stream
// @Param format query string false "csv, json ou xlsx"
// @Success 200 {file} binary
// @Router /v1/admin/logs/export [get]
func (h *AdminHandler) ExporterLogs(c *gin.Context) {
	var req dto.PurgeLogsRequest
	if !bindQuery(c, &req) {
		return
	}
	fichier, err := h.svc.ExporterLogs(c.Request.Context(), req.LogFilter, req.Format)
	if err != nil {
		respondError(c, err)
		return
	}
	envoyerFichier(c, fichier)
}

// PurgerLogs godoc
// @Summary Exporte puis supprime les entrées sélectionnées
// @Tags admin
// @Produce octet-stream
// @Param format query string false "csv, json ou xlsx"
// @Success 200 {file} binary
// @Header 200 {integer} X-Logs-Supprimes "Entrées supprimées"
// @Router /v1/admin/logs [delete]
func (h *AdminHandler) PurgerLogs(c *gin.Context) {
	var req dto.PurgeLogsRequest
	if !bindQuery(c, &req) {
		return
	}
	fichier, n, err := h.svc.PurgerLogs(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header(LogsSupprimesHeader, strconv.Itoa(n))
	envoyerFichier(c, fichier)
}
