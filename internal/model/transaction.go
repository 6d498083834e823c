package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TypePaiement covers the three sale payment methods plus the synthetic types
// the backend uses for drawer operations (session funding, closing, change).
const (
	PaiementEspeces = "especes"
	PaiementCheque  = "cheque"
	PaiementCB      = "cb"

	OperationFondInitial     = "fond_initial"
	OperationFermetureCaisse = "fermeture_caisse"
	OperationMonnaie         = "monnaie"
)

// Transaction statut: "validee"; any other value means cancelled.
const (
	TransactionValidee = "validee"
	TransactionAnnulee = "annulee"
)

// Transaction is a completed sale or cash-drawer operation. Read-only history;
// cancellation goes through the backend with a mandatory reason.
type Transaction struct {
	ID              int64              `json:"id"`
	SessionID       *int64             `json:"session_id"`
	TypePaiement    string             `json:"type_paiement"`
	MontantTotal    decimal.Decimal    `json:"montant_total"`
	MontantRecu     *decimal.Decimal   `json:"montant_recu"`
	MonnaieRendue   *decimal.Decimal   `json:"monnaie_rendue"`
	ReferenceCheque *string            `json:"reference_cheque"`
	ReferenceCB     *string            `json:"reference_cb"`
	Statut          string             `json:"statut"`
	MotifAnnulation *string            `json:"motif_annulation"`
	UtilisateurID   int64              `json:"utilisateur_id"`
	Utilisateur     string             `json:"utilisateur"`
	Lignes          []LigneTransaction `json:"lignes"`
	CreatedAt       time.Time          `json:"created_at"`
	AnnuleeAt       *time.Time         `json:"annulee_at"`
}

type LigneTransaction struct {
	ProduitID    int64           `json:"produit_id"`
	Produit      string          `json:"produit"`
	Quantite     int             `json:"quantite"`
	PrixUnitaire decimal.Decimal `json:"prix_unitaire"`
}

func (t Transaction) EstValidee() bool { return t.Statut == TransactionValidee }

// EstVente is false for the synthetic drawer operations.
func (t Transaction) EstVente() bool {
	switch t.TypePaiement {
	case PaiementEspeces, PaiementCheque, PaiementCB:
		return true
	}
	return false
}
