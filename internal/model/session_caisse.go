package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatutSession is the lifecycle of a cash session. Transitions are strictly
// forward: awaiting_cashier → open → awaiting_validation → validated | anomaly.
type StatutSession string

const (
	StatutAttenteCaissier   StatutSession = "awaiting_cashier"
	StatutOuverte           StatutSession = "open"
	StatutAttenteValidation StatutSession = "awaiting_validation"
	StatutValidee           StatutSession = "validated"
	StatutAnomalie          StatutSession = "anomaly"
)

var transitionsSession = map[StatutSession][]StatutSession{
	StatutAttenteCaissier:   {StatutOuverte},
	StatutOuverte:           {StatutAttenteValidation},
	StatutAttenteValidation: {StatutValidee, StatutAnomalie},
}

// PeutPasserA reports whether next directly follows s in the session machine.
func (s StatutSession) PeutPasserA(next StatutSession) bool {
	for _, t := range transitionsSession[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition exists.
func (s StatutSession) Terminal() bool {
	return s == StatutValidee || s == StatutAnomalie
}

func (s StatutSession) Valide() bool {
	switch s {
	case StatutAttenteCaissier, StatutOuverte, StatutAttenteValidation, StatutValidee, StatutAnomalie:
		return true
	}
	return false
}

// SessionCaisse mirrors the backend's cash session. Expected balance and
// variance are computed server-side and only ever read here.
type SessionCaisse struct {
	ID          int64  `json:"id"`
	TresorierID int64  `json:"tresorier_id"`
	CaissierID  int64  `json:"caissier_id"`
	Tresorier   string `json:"tresorier,omitempty"`
	Caissier    string `json:"caissier,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	OpenedAt    *time.Time `json:"opened_at"`
	ClosedAt    *time.Time `json:"closed_at"`
	ValidatedAt *time.Time `json:"validated_at"`

	FondInitial  decimal.Decimal  `json:"fond_initial"`
	SoldeAttendu *decimal.Decimal `json:"solde_attendu"`
	SoldeDeclare *decimal.Decimal `json:"solde_declare"`
	SoldeValide  *decimal.Decimal `json:"solde_valide"`
	Ecart        *decimal.Decimal `json:"ecart"`

	Statut StatutSession `json:"statut"`

	NoteCreation   *string `json:"note_creation"`
	NoteOuverture  *string `json:"note_ouverture"`
	NoteFermeture  *string `json:"note_fermeture"`
	NoteValidation *string `json:"note_validation"`
}

// EstOuverte is true while sales can be recorded against the session.
func (s *SessionCaisse) EstOuverte() bool {
	return s != nil && s.Statut == StatutOuverte
}
