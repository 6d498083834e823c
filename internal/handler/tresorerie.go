package handler

import (
	"net/http"

	"github.com/satch9/app-caisse-compta-sub000/internal/dto"
	"github.com/satch9/app-caisse-compta-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

// TresorerieHandler is the treasurer's side of the cash session lifecycle.
type TresorerieHandler struct {
	svc service.TresorerieService
}

func NewTresorerieHandler(svc service.TresorerieService) *TresorerieHandler {
	return &TresorerieHandler{svc: svc}
}

// ListerSessions godoc
// @Summary Sessions de caisse
// @Tags tresorerie
// @Produce json
// @Param statut query string false "Statut"
// @Param caissier_id query string false "Caissier"
// @Param debut query string false "Début (YYYY-MM-DD)"
// @Param fin query string false "Fin (YYYY-MM-DD)"
// @Success 200 {array} model.SessionCaisse
// @Router /v1/tresorerie/sessions [get]
func (h *TresorerieHandler) ListerSessions(c *gin.Context) {
	var f dto.SessionFilter
	if !bindQuery(c, &f) {
		return
	}
	list, err := h.svc.ListerSessions(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreerSession godoc
// @Summary Prépare une session et remet le fond de caisse au caissier
// @Tags tresorerie
// @Accept json
// @Produce json
// @Param body body dto.NouvelleSessionRequest true "Session"
// @Success 201 {object} model.SessionCaisse
// @Failure 422 {object} apierror.APIError
// @Router /v1/tresorerie/sessions [post]
func (h *TresorerieHandler) CreerSession(c *gin.Context) {
	var req dto.NouvelleSessionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	sc, err := h.svc.CreerSession(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sc)
}

// ValiderSession godoc
// @Summary Valide une session clôturée par le caissier
// @Tags tresorerie
// @Accept json
// @Produce json
// @Param id path int true "Session"
// @Param body body dto.ValidationSessionRequest true "Validation"
// @Success 200 {object} model.SessionCaisse
// @Failure 404 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Router /v1/tresorerie/sessions/{id}/validation [post]
func (h *TresorerieHandler) ValiderSession(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.ValidationSessionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	sc, err := h.svc.ValiderSession(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sc)
}

// RapportEcarts godoc
// @Summary Écarts entre soldes attendus et déclarés
// @Tags tresorerie
// @Produce json
// @Success 200 {object} dto.RapportEcartsResponse
// @Router /v1/tresorerie/ecarts [get]
func (h *TresorerieHandler) RapportEcarts(c *gin.Context) {
	var f dto.SessionFilter
	if !bindQuery(c, &f) {
		return
	}
	resp, err := h.svc.RapportEcarts(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExporterEcarts godoc
// @Summary Export des écarts (csv, json ou xlsx)
// @Tags tresorerie
// @Produce octet-stream
// @Param format query string false "csv, json ou xlsx"
// @Success 200 {file} binary
// @Router /v1/tresorerie/ecarts/export [get]
func (h *TresorerieHandler) ExporterEcarts(c *gin.Context) {
	var f dto.EcartFilter
	if !bindQuery(c, &f) {
		return
	}
	fichier, err := h.svc.ExporterEcarts(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	envoyerFichier(c, fichier)
}
