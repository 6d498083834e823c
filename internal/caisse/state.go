// Package caisse holds the point-of-sale working state of a till terminal and
// the pure transition function that drives it.
//
// Reduce never performs I/O and never fails: every validation (stock, payment
// references, cash received) is the caller's job before dispatching, and every
// network round-trip happens outside, followed by a dispatch of its result.
package caisse

import (
	"github.com/satch9/app-caisse-compta-sub000/internal/model"
)

// ModePaiement is the single active payment method of the sale in progress.
type ModePaiement string

const (
	ModeEspeces ModePaiement = model.PaiementEspeces
	ModeCheque  ModePaiement = model.PaiementCheque
	ModeCB      ModePaiement = model.PaiementCB
)

func (m ModePaiement) Valide() bool {
	return m == ModeEspeces || m == ModeCheque || m == ModeCB
}

// ActiveInput names the field currently receiving keypad keystrokes.
// InputAucun means keystrokes are dropped.
type ActiveInput string

const (
	InputAucun           ActiveInput = ""
	InputMontantRecu     ActiveInput = "montant_recu"
	InputReferenceCheque ActiveInput = "reference_cheque"
	InputReferenceCB     ActiveInput = "reference_cb"
	InputMonnaieurRecu   ActiveInput = "monnaieur_recu"
	InputMonnaieurRendu  ActiveInput = "monnaieur_rendu"
	InputSoldeDeclare    ActiveInput = "solde_declare"
)

// Valide reports whether a is a named keypad target (InputAucun is not).
func (a ActiveInput) Valide() bool {
	switch a {
	case InputMontantRecu, InputReferenceCheque, InputReferenceCB,
		InputMonnaieurRecu, InputMonnaieurRendu, InputSoldeDeclare:
		return true
	}
	return false
}

// Dialog identifies one of the independent dialog visibility flags.
type Dialog string

const (
	DialogSucces        Dialog = "succes"
	DialogHistorique    Dialog = "historique"
	DialogAnnulation    Dialog = "annulation"
	DialogOuvrirSession Dialog = "ouvrir_session"
	DialogFermerSession Dialog = "fermer_session"
)

func (d Dialog) Valide() bool {
	switch d {
	case DialogSucces, DialogHistorique, DialogAnnulation, DialogOuvrirSession, DialogFermerSession:
		return true
	}
	return false
}

// LignePanier is one product of the sale in progress.
// Invariant: 1 <= Quantite <= Produit.Stock (as of the snapshot held).
type LignePanier struct {
	Produit  model.Produit `json:"produit"`
	Quantite int           `json:"quantite"`
}

// State is the whole mutable working set of the POS screen. Keypad-bound fields
// are strings: they hold exactly the characters typed on the keypad.
type State struct {
	Produits []model.Produit `json:"produits"`
	Panier   []LignePanier   `json:"panier"`

	ModePaiement    ModePaiement `json:"mode_paiement"`
	MontantRecu     string       `json:"montant_recu"`
	ReferenceCheque string       `json:"reference_cheque"`
	ReferenceCB     string       `json:"reference_cb"`

	MonnaieurRecu  string `json:"monnaieur_recu"`
	MonnaieurRendu string `json:"monnaieur_rendu"`

	SoldeDeclare  string `json:"solde_declare"`
	NoteOuverture string `json:"note_ouverture"`
	NoteFermeture string `json:"note_fermeture"`

	ActiveInput ActiveInput `json:"active_input"`

	// Dialog flags are independent; several may be true at once.
	ShowSucces        bool `json:"show_succes"`
	ShowHistorique    bool `json:"show_historique"`
	ShowAnnulation    bool `json:"show_annulation"`
	ShowOuvrirSession bool `json:"show_ouvrir_session"`
	ShowFermerSession bool `json:"show_fermer_session"`

	Session             *model.SessionCaisse `json:"session"`
	Transactions        []model.Transaction  `json:"transactions"`
	DerniereVente       *model.Transaction   `json:"derniere_vente"`
	TransactionAAnnuler *int64               `json:"transaction_a_annuler"`
	MotifAnnulation     string               `json:"motif_annulation"`
}

// NewState returns the state of a freshly mounted screen.
func NewState() *State {
	return &State{ModePaiement: ModeEspeces}
}

// clone is a shallow copy. Reduce never writes into a slice it did not
// allocate, so sharing backing arrays between states is safe.
func (s *State) clone() *State {
	c := *s
	return &c
}

// champ returns the address of the string field bound to in, or nil.
func (s *State) champ(in ActiveInput) *string {
	switch in {
	case InputMontantRecu:
		return &s.MontantRecu
	case InputReferenceCheque:
		return &s.ReferenceCheque
	case InputReferenceCB:
		return &s.ReferenceCB
	case InputMonnaieurRecu:
		return &s.MonnaieurRecu
	case InputMonnaieurRendu:
		return &s.MonnaieurRendu
	case InputSoldeDeclare:
		return &s.SoldeDeclare
	}
	return nil
}

// Champ returns the current value of the field bound to in.
func (s *State) Champ(in ActiveInput) string {
	if p := s.champ(in); p != nil {
		return *p
	}
	return ""
}

func (s *State) dialog(d Dialog) *bool {
	switch d {
	case DialogSucces:
		return &s.ShowSucces
	case DialogHistorique:
		return &s.ShowHistorique
	case DialogAnnulation:
		return &s.ShowAnnulation
	case DialogOuvrirSession:
		return &s.ShowOuvrirSession
	case DialogFermerSession:
		return &s.ShowFermerSession
	}
	return nil
}

// Ligne returns the cart line for produitID and its index, or -1.
func (s *State) Ligne(produitID int64) (LignePanier, int) {
	for i, l := range s.Panier {
		if l.Produit.ID == produitID {
			return l, i
		}
	}
	return LignePanier{}, -1
}

// Produit looks a product up in the catalogue snapshot.
func (s *State) Produit(id int64) (model.Produit, bool) {
	for _, p := range s.Produits {
		if p.ID == id {
			return p, true
		}
	}
	return model.Produit{}, false
}
