package dto

import (
	"net/url"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// NouvelleSessionRequest funds a session for a cashier. The treasurer is the
// logged-in user.
type NouvelleSessionRequest struct {
	CaissierID   int64           `json:"caissier_id"   validate:"required,gt=0"`
	FondInitial  decimal.Decimal `json:"fond_initial"  validate:"gt=0"`
	NoteCreation *string         `json:"note_creation" validate:"omitempty,max=500"`
}

type ValidationSessionRequest struct {
	SoldeValide    decimal.Decimal `json:"solde_valide"    validate:"min=0"`
	NoteValidation *string         `json:"note_validation" validate:"omitempty,max=500"`
}

type SessionFilter struct {
	Statut     string `form:"statut" validate:"omitempty,oneof=awaiting_cashier open awaiting_validation validated anomaly"`
	CaissierID string `form:"caissier_id" validate:"omitempty,numeric"`
	Debut      string `form:"debut"  validate:"omitempty,datetime=2006-01-02"`
	Fin        string `form:"fin"    validate:"omitempty,datetime=2006-01-02"`
}

func (f SessionFilter) Query() url.Values {
	q := url.Values{}
	setIf(q, "statut", f.Statut)
	setIf(q, "caissier_id", f.CaissierID)
	setIf(q, "debut", f.Debut)
	setIf(q, "fin", f.Fin)
	return q
}

// EcartFilter selects the sessions of a variance report and its format.
type EcartFilter struct {
	SessionFilter
	Format string `form:"format,default=csv" validate:"oneof=csv json xlsx"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// LigneEcart is one row of the variance report: expected against declared
// balance of a closed session.
type LigneEcart struct {
	SessionID    int64            `json:"session_id"`
	Caissier     string           `json:"caissier"`
	Tresorier    string           `json:"tresorier"`
	Statut       string           `json:"statut"`
	FondInitial  decimal.Decimal  `json:"fond_initial"`
	SoldeAttendu *decimal.Decimal `json:"solde_attendu"`
	SoldeDeclare *decimal.Decimal `json:"solde_declare"`
	Ecart        *decimal.Decimal `json:"ecart"`
	ClosedAt     *string          `json:"closed_at"`
}

type RapportEcartsResponse struct {
	Lignes     []LigneEcart    `json:"lignes"`
	TotalEcart decimal.Decimal `json:"total_ecart"`
}
