package handler

import (
	"net/http"

	"github.com/satch9/app-caisse-compta-sub000/internal/dto"
	"github.com/satch9/app-caisse-compta-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type StockHandler struct {
	svc service.StockService
}

func NewStockHandler(svc service.StockService) *StockHandler {
	return &StockHandler{svc: svc}
}

// ─── Produits ────────────────────────────────────────────────────────────────

// ListerProduits godoc
// @Summary Liste les produits
// @Tags stock
// @Produce json
// @Param q query string false "Recherche"
// @Param categorie_id query int false "Catégorie"
// @Param niveau_stock query string false "normal, alert ou critical"
// @Success 200 {array} model.Produit
// @Router /v1/stock/produits [get]
func (h *StockHandler) ListerProduits(c *gin.Context) {
	var f dto.ProduitFilter
	if !bindQuery(c, &f) {
		return
	}
	produits, err := h.svc.ListerProduits(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, produits)
}

// CreerProduit godoc
// @Summary Crée un produit
// @Tags stock
// @Accept json
// @Produce json
// @Param body body dto.ProduitRequest true "Produit"
// @Success 201 {object} model.Produit
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/stock/produits [post]
func (h *StockHandler) CreerProduit(c *gin.Context) {
	var req dto.ProduitRequest
	if !bindAndValidate(c, &req) {
		return
	}
	p, err := h.svc.CreerProduit(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// ModifierProduit godoc
// @Summary Modifie un produit
// @Tags stock
// @Accept json
// @Produce json
// @Param id path int true "Produit"
// @Param body body dto.ProduitRequest true "Produit"
// @Success 200 {object} model.Produit
// @Router /v1/stock/produits/{id} [put]
func (h *StockHandler) ModifierProduit(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.ProduitRequest
	if !bindAndValidate(c, &req) {
		return
	}
	p, err := h.svc.ModifierProduit(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// SupprimerProduit godoc
// @Summary Supprime un produit
// @Tags stock
// @Param id path int true "Produit"
// @Success 204
// @Router /v1/stock/produits/{id} [delete]
func (h *StockHandler) SupprimerProduit(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.SupprimerProduit(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ─── Catégories ──────────────────────────────────────────────────────────────

// ListerCategories godoc
// @Summary Liste les catégories
// @Tags stock
// @Produce json
// @Success 200 {array} model.Categorie
// @Router /v1/stock/categories [get]
func (h *StockHandler) ListerCategories(c *gin.Context) {
	cats, err := h.svc.ListerCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

// CreerCategorie godoc
// @Summary Crée une catégorie
// @Tags stock
// @Accept json
// @Produce json
// @Param body body dto.CategorieRequest true "Catégorie"
// @Success 201 {object} model.Categorie
// @Router /v1/stock/categories [post]
func (h *StockHandler) CreerCategorie(c *gin.Context) {
	var req dto.CategorieRequest
	if !bindAndValidate(c, &req) {
		return
	}
	cat, err := h.svc.CreerCategorie(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

// ModifierCategorie godoc
// @Summary Modifie une catégorie
// @Tags stock
// @Param id path int true "Catégorie"
// @Param body body dto.CategorieRequest true "Catégorie"
// @Success 200 {object} model.Categorie
// @Router /v1/stock/categories/{id} [put]
func (h *StockHandler) ModifierCategorie(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.CategorieRequest
	if !bindAndValidate(c, &req) {
		return
	}
	cat, err := h.svc.ModifierCategorie(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// SupprimerCategorie godoc
// @Summary Supprime une catégorie
// @Tags stock
// @Param id path int true "Catégorie"
// @Success 204
// @Router /v1/stock/categories/{id} [delete]
func (h *StockHandler) SupprimerCategorie(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.SupprimerCategorie(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ─── Mouvements ──────────────────────────────────────────────────────────────

// ListerMouvements godoc
// @Summary Historique des mouvements de stock
// @Tags stock
// @Produce json
// @Success 200 {array} model.MouvementStock
// @Router /v1/stock/mouvements [get]
func (h *StockHandler) ListerMouvements(c *gin.Context) {
	var f dto.MouvementFilter
	if !bindQuery(c, &f) {
		return
	}
	mvts, err := h.svc.ListerMouvements(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mvts)
}

// EnregistrerMouvement godoc
// @Summary Entrée, sortie ou ajustement de stock
// @Tags stock
// @Accept json
// @Produce json
// @Param body body dto.MouvementRequest true "Mouvement"
// @Success 201 {object} model.MouvementStock
// @Failure 422 {object} apierror.APIError
// @Router /v1/stock/mouvements [post]
func (h *StockHandler) EnregistrerMouvement(c *gin.Context) {
	var req dto.MouvementRequest
	if !bindAndValidate(c, &req) {
		return
	}
	m, err := h.svc.EnregistrerMouvement(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// ─── Commandes ───────────────────────────────────────────────────────────────

// ListerCommandes godoc
// @Summary Commandes fournisseurs
// @Tags stock
// @Produce json
// @Success 200 {array} model.Commande
// @Router /v1/stock/commandes [get]
func (h *StockHandler) ListerCommandes(c *gin.Context) {
	var f dto.CommandeFilter
	if !bindQuery(c, &f) {
		return
	}
	cmds, err := h.svc.ListerCommandes(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cmds)
}

// CreerCommande godoc
// @Summary Passe une commande fournisseur
// @Tags stock
// @Accept json
// @Produce json
// @Param body body dto.CommandeRequest true "Commande"
// @Success 201 {object} model.Commande
// @Router /v1/stock/commandes [post]
func (h *StockHandler) CreerCommande(c *gin.Context) {
	var req dto.CommandeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	cmd, err := h.svc.CreerCommande(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cmd)
}

// RecevoirCommande godoc
// @Summary Réceptionne une commande (entrée en stock côté backend)
// @Tags stock
// @Param id path int true "Commande"
// @Success 200 {object} model.Commande
// @Router /v1/stock/commandes/{id}/reception [post]
func (h *StockHandler) RecevoirCommande(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	cmd, err := h.svc.RecevoirCommande(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cmd)
}

// AnnulerCommande godoc
// @Summary Annule une commande
// @Tags stock
// @Param id path int true "Commande"
// @Success 200 {object} model.Commande
// @Router /v1/stock/commandes/{id}/annulation [post]
func (h *StockHandler) AnnulerCommande(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	cmd, err := h.svc.AnnulerCommande(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cmd)
}
