package handler

import (
	"net/http"

	"github.com/satch9/app-caisse-compta-sub000/internal/dto"
	"github.com/satch9/app-caisse-compta-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type ComptabiliteHandler struct {
	svc service.ComptabiliteService
}

func NewComptabiliteHandler(svc service.ComptabiliteService) *ComptabiliteHandler {
	return &ComptabiliteHandler{svc: svc}
}

// Rapport godoc
// @Summary Rapport comptable sur une période
// @Tags comptabilite
// @Produce json
// @Param rapport path string true "journal, grand-livre, bilan, compte-resultat ou ventes-par-produit"
// @Param debut query string true "Début (YYYY-MM-DD)"
// @Param fin query string true "Fin (YYYY-MM-DD)"
// @Success 200 {object} model.Rapport
// @Failure 404 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Router /v1/comptabilite/{rapport} [get]
func (h *ComptabiliteHandler) Rapport(c *gin.Context) {
	var f dto.RapportFilter
	if !bindQuery(c, &f) {
		return
	}
	r, err := h.svc.Rapport(c.Request.Context(), c.Param("rapport"), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// Exporter godoc
// @Summary Export Excel d'un rapport comptable
// @Tags comptabilite
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param rapport path string true "Rapport"
// @Param debut query string true "Début (YYYY-MM-DD)"
// @Param fin query string true "Fin (YYYY-MM-DD)"
// @Success 200 {file} binary
// @Router /v1/comptabilite/{rapport}/export [get]
func (h *ComptabiliteHandler) Exporter(c *gin.Context) {
	var f dto.RapportFilter
	if !bindQuery(c, &f) {
		return
	}
	fichier, err := h.svc.Exporter(c.Request.Context(), c.Param("rapport"), f)
	if err != nil {
		respondError(c, err)
		return
	}
	envoyerFichier(c, fichier)
}
