package handler

import (
	"context"
	"net/http"

	"github.com/satch9/app-caisse-compta-sub000/internal/caisse"
	"github.com/satch9/app-caisse-compta-sub000/internal/dto"
	"github.com/satch9/app-caisse-compta-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

// CaisseHandler serves the POS screen of the terminal named by X-Terminal-ID.
type CaisseHandler struct {
	svc             service.CaisseService
	terminalDefault string
}

func NewCaisseHandler(svc service.CaisseService, terminalDefault string) *CaisseHandler {
	return &CaisseHandler{svc: svc, terminalDefault: terminalDefault}
}

type operationCaisse func(ctx context.Context, terminalID string) (*dto.EtatCaisseResponse, error)

// executer runs op on the request's terminal and answers with the new state.
func (h *CaisseHandler) executer(c *gin.Context, op operationCaisse) {
	resp, err := op(c.Request.Context(), terminalID(c, h.terminalDefault))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Etat godoc
// @Summary État courant du terminal (panier, paiement, dialogues)
// @Tags caisse
// @Produce json
// @Param X-Terminal-ID header string false "Terminal"
// @Success 200 {object} dto.EtatCaisseResponse
// @Router /v1/caisse [get]
func (h *CaisseHandler) Etat(c *gin.Context) { h.executer(c, h.svc.Etat) }

// Charger godoc
// @Summary Recharge produits, session active et transactions
// @Tags caisse
// @Produce json
// @Success 200 {object} dto.EtatCaisseResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/caisse/charger [post]
func (h *CaisseHandler) Charger(c *gin.Context) { h.executer(c, h.svc.Charger) }

// Action godoc
// @Summary Applique une action d'interface (dialogue, mode de paiement, champ actif, note)
// @Tags caisse
// @Accept json
// @Produce json
// @Param body body dto.ActionRequest true "Action"
// @Success 200 {object} dto.EtatCaisseResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/caisse/actions [post]
func (h *CaisseHandler) Action(c *gin.Context) {
	var req dto.ActionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	a := req.ToAction()
	h.executer(c, func(ctx context.Context, id string) (*dto.EtatCaisseResponse, error) {
		return h.svc.Dispatch(ctx, id, a)
	})
}

// Touche godoc
// @Summary Touche du pavé numérique (0-9, ".", "C", "OK")
// @Tags caisse
// @Accept json
// @Produce json
// @Param body body dto.ToucheRequest true "Touche"
// @Success 200 {object} dto.EtatCaisseResponse
// @Router /v1/caisse/touches [post]
func (h *CaisseHandler) Touche(c *gin.Context) {
	var req dto.ToucheRequest
	if !bindAndValidate(c, &req) {
		return
	}
	h.executer(c, func(ctx context.Context, id string) (*dto.EtatCaisseResponse, error) {
		return h.svc.Touche(ctx, id, caisse.Touche(req.Touche))
	})
}

// AjouterProduit godoc
// @Summary Ajoute une unité d'un produit au panier
// @Tags caisse
// @Accept json
// @Produce json
// @Param body body dto.AjouterProduitRequest true "Produit"
// @Success 200 {object} dto.EtatCaisseResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/caisse/panier [post]
func (h *CaisseHandler) AjouterProduit(c *gin.Context) {
	var req dto.AjouterProduitRequest
	if !bindAndValidate(c, &req) {
		return
	}
	h.executer(c, func(ctx context.Context, id string) (*dto.EtatCaisseResponse, error) {
		return h.svc.AjouterProduit(ctx, id, req.ProduitID)
	})
}

// ModifierQuantite godoc
// @Summary Fixe la quantité d'une ligne (bornée à [1, stock])
// @Tags caisse
// @Accept json
// @Produce json
// @Param produit_id path int true "Produit"
// @Param body body dto.QuantiteRequest true "Quantité"
// @Success 200 {object} dto.EtatCaisseResponse
// @Router /v1/caisse/panier/{produit_id} [put]
func (h *CaisseHandler) ModifierQuantite(c *gin.Context) {
	produitID, ok := paramID(c, "produit_id")
	if !ok {
		return
	}
	var req dto.QuantiteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	h.executer(c, func(ctx context.Context, id string) (*dto.EtatCaisseResponse, error) {
		return h.svc.ModifierQuantite(ctx, id, produitID, req.Quantite)
	})
}

// RetirerProduit godoc
// @Summary Retire une ligne du panier
// @Tags caisse
// @Param produit_id path int true "Produit"
// @Success 200 {object} dto.EtatCaisseResponse
// @Router /v1/caisse/panier/{produit_id} [delete]
func (h *CaisseHandler) RetirerProduit(c *gin.Context) {
	produitID, ok := paramID(c, "produit_id")
	if !ok {
		return
	}
	h.executer(c, func(ctx context.Context, id string) (*dto.EtatCaisseResponse, error) {
		return h.svc.RetirerProduit(ctx, id, produitID)
	})
}

// ViderPanier godoc
// @Summary Vide le panier
// @Tags caisse
// @Success 200 {object} dto.EtatCaisseResponse
// @Router /v1/caisse/panier [delete]
func (h *CaisseHandler) ViderPanier(c *gin.Context) { h.executer(c, h.svc.ViderPanier) }

// Encaisser godoc
// @Summary Enregistre la vente du panier
// @Tags caisse
// @Produce json
// @Success 200 {object} dto.EtatCaisseResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Failure 502 {object} apierror.APIError
// @Router /v1/caisse/encaisser [post]
func (h *CaisseHandler) Encaisser(c *gin.Context) { h.executer(c, h.svc.Encaisser) }

// RendreMonnaie godoc
// @Summary Enregistre une opération de monnaie
// @Tags caisse
// @Success 200 {object} dto.EtatCaisseResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/caisse/monnaie [post]
func (h *CaisseHandler) RendreMonnaie(c *gin.Context) { h.executer(c, h.svc.RendreMonnaie) }

// OuvrirSession godoc
// @Summary Le caissier ouvre la session préparée par le trésorier
// @Tags caisse
// @Success 200 {object} dto.EtatCaisseResponse
// @Router /v1/caisse/session/ouvrir [post]
func (h *CaisseHandler) OuvrirSession(c *gin.Context) { h.executer(c, h.svc.OuvrirSession) }

// FermerSession godoc
// @Summary Clôture la session avec le solde déclaré
// @Tags caisse
// @Success 200 {object} dto.EtatCaisseResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/caisse/session/fermer [post]
func (h *CaisseHandler) FermerSession(c *gin.Context) { h.executer(c, h.svc.FermerSession) }

// Annuler godoc
// @Summary Annule la transaction sélectionnée avec son motif
// @Tags caisse
// @Success 200 {object} dto.EtatCaisseResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/caisse/annulation [post]
func (h *CaisseHandler) Annuler(c *gin.Context) { h.executer(c, h.svc.AnnulerTransaction) }

// Ticket godoc
// @Summary Ticket PDF de la dernière vente
// @Tags caisse
// @Produce application/pdf
// @Success 200 {file} binary
// @Failure 404 {object} apierror.APIError
// @Router /v1/caisse/ticket [get]
func (h *CaisseHandler) Ticket(c *gin.Context) {
	f, err := h.svc.Ticket(c.Request.Context(), terminalID(c, h.terminalDefault))
	if err != nil {
		respondError(c, err)
		return
	}
	envoyerFichier(c, f)
}
