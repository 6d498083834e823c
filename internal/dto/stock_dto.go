package dto

import (
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ProduitRequest struct {
	Nom         string          `json:"nom"          validate:"required,min=1,max=150"`
	PrixVente   decimal.Decimal `json:"prix_vente"   validate:"gt=0"`
	CategorieID *int64          `json:"categorie_id" validate:"omitempty,gt=0"`
	SeuilAlerte int             `json:"seuil_alerte" validate:"min=0"`
	Actif       bool            `json:"actif"`
}

type CategorieRequest struct {
	Nom         string  `json:"nom"         validate:"required,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// MouvementRequest records an entry, exit or adjustment. For an adjustment
// Quantite is the new absolute stock.
type MouvementRequest struct {
	ProduitID int64  `json:"produit_id" validate:"required,gt=0"`
	Type      string `json:"type"       validate:"required,oneof=entree sortie ajustement"`
	Quantite  int    `json:"quantite"   validate:"min=0"`
	Motif     string `json:"motif"      validate:"required,min=3,max=500"`
}

type LigneCommandeRequest struct {
	ProduitID    int64           `json:"produit_id"    validate:"required,gt=0"`
	Quantite     int             `json:"quantite"      validate:"required,min=1"`
	PrixUnitaire decimal.Decimal `json:"prix_unitaire" validate:"min=0"`
}

type CommandeRequest struct {
	Fournisseur string                 `json:"fournisseur" validate:"required,min=1,max=150"`
	Lignes      []LigneCommandeRequest `json:"lignes"      validate:"required,min=1,dive"`
	Note        *string                `json:"note"        validate:"omitempty,max=500"`
}

type ProduitFilter struct {
	Recherche   string `form:"q"`
	CategorieID *int64 `form:"categorie_id"`
	NiveauStock string `form:"niveau_stock" validate:"omitempty,oneof=normal alert critical"`
	Actifs      bool   `form:"actifs"`
}

func (f ProduitFilter) Query() url.Values {
	q := url.Values{}
	setIf(q, "q", f.Recherche)
	if f.CategorieID != nil {
		q.Set("categorie_id", strconv.FormatInt(*f.CategorieID, 10))
	}
	setIf(q, "niveau_stock", f.NiveauStock)
	if f.Actifs {
		q.Set("actif", "true")
	}
	return q
}

type MouvementFilter struct {
	ProduitID *int64 `form:"produit_id"`
	Type      string `form:"type"  validate:"omitempty,oneof=entree sortie ajustement"`
	Debut     string `form:"debut" validate:"omitempty,datetime=2006-01-02"`
	Fin       string `form:"fin"   validate:"omitempty,datetime=2006-01-02"`
	Limit     int    `form:"limit,default=100" validate:"min=1,max=500"`
}

func (f MouvementFilter) Query() url.Values {
	q := url.Values{}
	if f.ProduitID != nil {
		q.Set("produit_id", strconv.FormatInt(*f.ProduitID, 10))
	}
	setIf(q, "type", f.Type)
	setIf(q, "debut", f.Debut)
	setIf(q, "fin", f.Fin)
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

type CommandeFilter struct {
	Statut string `form:"statut" validate:"omitempty,oneof=en_attente recue annulee"`
}

func (f CommandeFilter) Query() url.Values {
	q := url.Values{}
	setIf(q, "statut", f.Statut)
	return q
}
