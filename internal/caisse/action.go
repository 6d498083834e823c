package caisse

import "github.com/satch9/app-caisse-compta-sub000/internal/model"

// Action is one transition request for Reduce. The set is closed: only the
// types of this file implement it.
type Action interface {
	// Type is a stable name used in logs and metrics.
	Type() string
	action()
}

type SetProduits struct{ Produits []model.Produit }

// AddToPanier adds one unit of Produit. Callers must refuse products with no
// stock before dispatching; Reduce does not.
type AddToPanier struct{ Produit model.Produit }

type SetQuantite struct {
	ProduitID int64
	Quantite  int
}

type RemoveFromPanier struct{ ProduitID int64 }

type ClearPanier struct{}

type SetModePaiement struct{ Mode ModePaiement }

type SetActiveInput struct{ Input ActiveInput }

// KeypadDigit carries one keypad character: a digit or the decimal point.
type KeypadDigit struct{ Chiffre string }

type KeypadClear struct{}

// Note selects which free-text session note SetNote writes.
type Note string

const (
	NoteOuverture Note = "ouverture"
	NoteFermeture Note = "fermeture"
)

type SetNote struct {
	Note  Note
	Texte string
}

type SetMotifAnnulation struct{ Motif string }

type SetTransactionAAnnuler struct{ ID *int64 }

type ShowDialog struct {
	Dialog  Dialog
	Visible bool
}

type ResetPaymentForm struct{}

type ResetMonnayeurForm struct{}

type ResetSessionForm struct{}

type SetSession struct{ Session *model.SessionCaisse }

type SetTransactions struct{ Transactions []model.Transaction }

type SetDerniereVente struct{ Vente *model.Transaction }

func (SetProduits) Type() string            { return "SET_PRODUITS" }
func (AddToPanier) Type() string            { return "ADD_TO_PANIER" }
func (SetQuantite) Type() string            { return "SET_QUANTITE" }
func (RemoveFromPanier) Type() string       { return "REMOVE_FROM_PANIER" }
func (ClearPanier) Type() string            { return "CLEAR_PANIER" }
func (SetModePaiement) Type() string        { return "SET_MODE_PAIEMENT" }
func (SetActiveInput) Type() string         { return "SET_ACTIVE_INPUT" }
func (KeypadDigit) Type() string            { return "KEYPAD_DIGIT" }
func (KeypadClear) Type() string            { return "KEYPAD_CLEAR" }
func (SetNote) Type() string                { return "SET_NOTE" }
func (SetMotifAnnulation) Type() string     { return "SET_MOTIF_ANNULATION" }
func (SetTransactionAAnnuler) Type() string { return "SET_TRANSACTION_A_ANNULER" }
func (ShowDialog) Type() string             { return "SHOW_DIALOG" }
func (ResetPaymentForm) Type() string       { return "RESET_PAYMENT_FORM" }
func (ResetMonnayeurForm) Type() string     { return "RESET_MONNAYEUR_FORM" }
func (ResetSessionForm) Type() string       { return "RESET_SESSION_FORM" }
func (SetSession) Type() string             { return "SET_SESSION" }
func (SetTransactions) Type() string        { return "SET_TRANSACTIONS" }
func (SetDerniereVente) Type() string       { return "SET_DERNIERE_VENTE" }

func (SetProduits) action()            {}
func (AddToPanier) action()            {}
func (SetQuantite) action()            {}
func (RemoveFromPanier) action()       {}
func (ClearPanier) action()            {}
func (SetModePaiement) action()        {}
func (SetActiveInput) action()         {}
func (KeypadDigit) action()            {}
func (KeypadClear) action()            {}
func (SetNote) action()                {}
func (SetMotifAnnulation) action()     {}
func (SetTransactionAAnnuler) action() {}
func (ShowDialog) action()             {}
func (ResetPaymentForm) action()       {}
func (ResetMonnayeurForm) action()     {}
func (ResetSessionForm) action()       {}
func (SetSession) action()             {}
func (SetTransactions) action()        {}
func (SetDerniereVente) action()       {}
