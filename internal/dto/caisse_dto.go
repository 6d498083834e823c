package dto

import (
	"net/url"
	"strconv"

	"github.com/satch9/app-caisse-compta-sub000/internal/caisse"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AjouterProduitRequest struct {
	ProduitID int64 `json:"produit_id" validate:"required,gt=0"`
}

// QuantiteRequest is not range-validated: the reducer clamps to [1, stock].
type QuantiteRequest struct {
	Quantite int `json:"quantite"`
}

type ToucheRequest struct {
	Touche string `json:"touche" validate:"required,max=2"`
}

// ActionRequest carries the UI actions that need no backend round-trip:
// dialog flags, payment mode, keypad focus, notes and resets.
type ActionRequest struct {
	Type string `json:"type" validate:"required,oneof=SET_MODE_PAIEMENT SET_ACTIVE_INPUT SET_NOTE SET_MOTIF_ANNULATION SET_TRANSACTION_A_ANNULER SHOW_DIALOG RESET_PAYMENT_FORM RESET_MONNAYEUR_FORM RESET_SESSION_FORM"`

	Mode          string `json:"mode"           validate:"omitempty,oneof=especes cheque cb"`
	Input         string `json:"input"          validate:"omitempty,oneof=montant_recu reference_cheque reference_cb monnaieur_recu monnaieur_rendu solde_declare"`
	Dialog        string `json:"dialog"         validate:"omitempty,oneof=succes historique annulation ouvrir_session fermer_session"`
	Visible       bool   `json:"visible"`
	Note          string `json:"note"           validate:"omitempty,oneof=ouverture fermeture"`
	Texte         string `json:"texte"          validate:"max=500"`
	Motif         string `json:"motif"          validate:"max=500"`
	TransactionID *int64 `json:"transaction_id" validate:"omitempty,gt=0"`
}

// ToAction converts the request into the reducer action it names.
func (r ActionRequest) ToAction() caisse.Action {
	switch r.Type {
	case "SET_MODE_PAIEMENT":
		return caisse.SetModePaiement{Mode: caisse.ModePaiement(r.Mode)}
	case "SET_ACTIVE_INPUT":
		return caisse.SetActiveInput{Input: caisse.ActiveInput(r.Input)}
	case "SET_NOTE":
		return caisse.SetNote{Note: caisse.Note(r.Note), Texte: r.Texte}
	case "SET_MOTIF_ANNULATION":
		return caisse.SetMotifAnnulation{Motif: r.Motif}
	case "SET_TRANSACTION_A_ANNULER":
		return caisse.SetTransactionAAnnuler{ID: r.TransactionID}
	case "SHOW_DIALOG":
		return caisse.ShowDialog{Dialog: caisse.Dialog(r.Dialog), Visible: r.Visible}
	case "RESET_PAYMENT_FORM":
		return caisse.ResetPaymentForm{}
	case "RESET_MONNAYEUR_FORM":
		return caisse.ResetMonnayeurForm{}
	case "RESET_SESSION_FORM":
		return caisse.ResetSessionForm{}
	}
	return nil
}

// TransactionFilter is bound from the query string of the history screen.
type TransactionFilter struct {
	SessionID *int64 `form:"session_id"`
	Debut     string `form:"debut"  validate:"omitempty,datetime=2006-01-02"`
	Fin       string `form:"fin"    validate:"omitempty,datetime=2006-01-02"`
	Statut    string `form:"statut" validate:"omitempty,oneof=validee annulee"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=500"`
}

func (f TransactionFilter) Query() url.Values {
	q := url.Values{}
	if f.SessionID != nil {
		q.Set("session_id", strconv.FormatInt(*f.SessionID, 10))
	}
	setIf(q, "debut", f.Debut)
	setIf(q, "fin", f.Fin)
	setIf(q, "statut", f.Statut)
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

// ─── Backend payloads ────────────────────────────────────────────────────────

type LigneVente struct {
	ProduitID int64 `json:"produit_id"`
	Quantite  int   `json:"quantite"`
}

// NouvelleVente is POSTed to /transactions. Amounts are the terminal's view;
// the backend recomputes and re-validates stock.
type NouvelleVente struct {
	SessionID       int64            `json:"session_id"`
	TypePaiement    string           `json:"type_paiement"`
	Lignes          []LigneVente     `json:"lignes"`
	MontantTotal    decimal.Decimal  `json:"montant_total"`
	MontantRecu     *decimal.Decimal `json:"montant_recu,omitempty"`
	MonnaieRendue   *decimal.Decimal `json:"monnaie_rendue,omitempty"`
	ReferenceCheque *string          `json:"reference_cheque,omitempty"`
	ReferenceCB     *string          `json:"reference_cb,omitempty"`
}

// OperationMonnaie is POSTed to /transactions/monnaie (change-making).
type OperationMonnaie struct {
	SessionID    int64           `json:"session_id"`
	MontantRecu  decimal.Decimal `json:"montant_recu"`
	MontantRendu decimal.Decimal `json:"montant_rendu"`
}

type Annulation struct {
	Motif string `json:"motif"`
}

type OuvertureSession struct {
	NoteOuverture *string `json:"note_ouverture,omitempty"`
}

type FermetureSession struct {
	SoldeDeclare  decimal.Decimal `json:"solde_declare"`
	NoteFermeture *string         `json:"note_fermeture,omitempty"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// EtatCaisseResponse is the POS screen: working state, derived values and
// which operations are in flight (buttons to disable).
type EtatCaisseResponse struct {
	Etat           *caisse.State    `json:"etat"`
	Total          decimal.Decimal  `json:"total"`
	NombreArticles int              `json:"nombre_articles"`
	MonnaieARendre *decimal.Decimal `json:"monnaie_a_rendre"`
	ResteMonnayeur *decimal.Decimal `json:"reste_monnayeur"`
	Chargement     map[string]bool  `json:"chargement"`
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
