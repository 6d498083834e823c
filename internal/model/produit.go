package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// NiveauStock is classified by the backend: "normal" | "alert" | "critical".
const (
	NiveauStockNormal   = "normal"
	NiveauStockAlerte   = "alert"
	NiveauStockCritique = "critical"
)

// Produit is a catalogue entry as returned by the backend. The terminal never
// creates or mutates one locally; it refetches after every mutating action.
type Produit struct {
	ID          int64           `json:"id"`
	Nom         string          `json:"nom"`
	PrixVente   decimal.Decimal `json:"prix_vente"`
	Stock       int             `json:"stock"`
	Categorie   string          `json:"categorie"`
	CategorieID *int64          `json:"categorie_id,omitempty"`
	NiveauStock string          `json:"niveau_stock"`
	SeuilAlerte int             `json:"seuil_alerte,omitempty"`
	Actif       bool            `json:"actif"`
}

// EnStock reports whether at least one unit can be sold.
func (p Produit) EnStock() bool { return p.Stock > 0 }

type Categorie struct {
	ID          int64   `json:"id"`
	Nom         string  `json:"nom"`
	Description *string `json:"description,omitempty"`
}

// MouvementStock types: "entree" | "sortie" | "ajustement".
const (
	MouvementEntree     = "entree"
	MouvementSortie     = "sortie"
	MouvementAjustement = "ajustement"
)

// MouvementStock is an immutable stock event recorded by the backend.
type MouvementStock struct {
	ID          int64     `json:"id"`
	ProduitID   int64     `json:"produit_id"`
	Produit     string    `json:"produit,omitempty"`
	Type        string    `json:"type"`
	Quantite    int       `json:"quantite"`
	StockAvant  int       `json:"stock_avant"`
	StockApres  int       `json:"stock_apres"`
	Motif       string    `json:"motif"`
	Utilisateur string    `json:"utilisateur,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Commande statuses: "en_attente" | "recue" | "annulee".
const (
	CommandeEnAttente = "en_attente"
	CommandeRecue     = "recue"
	CommandeAnnulee   = "annulee"
)

// Commande is a supply (procurement) order.
type Commande struct {
	ID          int64           `json:"id"`
	Fournisseur string          `json:"fournisseur"`
	Statut      string          `json:"statut"`
	Lignes      []LigneCommande `json:"lignes"`
	Total       decimal.Decimal `json:"total"`
	Note        *string         `json:"note,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	RecueAt     *time.Time      `json:"recue_at,omitempty"`
}

type LigneCommande struct {
	ProduitID    int64           `json:"produit_id"`
	Produit      string          `json:"produit,omitempty"`
	Quantite     int             `json:"quantite"`
	PrixUnitaire decimal.Decimal `json:"prix_unitaire"`
}
