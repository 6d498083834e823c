package caisse

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrMontantInvalide = errors.New("montant invalide")

// SousTotal is quantity × sale price.
func (l LignePanier) SousTotal() decimal.Decimal {
	return l.Produit.PrixVente.Mul(decimal.NewFromInt(int64(l.Quantite)))
}

// Total recomputes the cart total from the lines every time; nothing is cached.
func Total(panier []LignePanier) decimal.Decimal {
	total := decimal.Zero
	for _, l := range panier {
		total = total.Add(l.SousTotal())
	}
	return total
}

// NombreArticles sums the quantities of every line.
func NombreArticles(panier []LignePanier) int {
	n := 0
	for _, l := range panier {
		n += l.Quantite
	}
	return n
}

// ParseMontant reads an amount typed on the keypad. Empty input and
// malformed sequences such as "1..2" are rejected.
func ParseMontant(saisie string) (decimal.Decimal, error) {
	saisie = strings.TrimSpace(strings.ReplaceAll(saisie, ",", "."))
	if saisie == "" || strings.Count(saisie, ".") > 1 {
		return decimal.Zero, ErrMontantInvalide
	}
	d, err := decimal.NewFromString(saisie)
	if err != nil {
		return decimal.Zero, ErrMontantInvalide
	}
	return d, nil
}

// MonnaieARendre is received − total for a cash payment. It may be negative;
// flooring is a display concern (see Affichage). ok is false when the payment
// is not cash or the received amount cannot be read.
func MonnaieARendre(s *State) (monnaie decimal.Decimal, ok bool) {
	if s.ModePaiement != ModeEspeces {
		return decimal.Zero, false
	}
	recu, err := ParseMontant(s.MontantRecu)
	if err != nil {
		return decimal.Zero, false
	}
	return recu.Sub(Total(s.Panier)), true
}

// ResteMonnayeur is the change-making remainder: received − returned.
func ResteMonnayeur(s *State) (decimal.Decimal, error) {
	recu, err := ParseMontant(s.MonnaieurRecu)
	if err != nil {
		return decimal.Zero, err
	}
	rendu := decimal.Zero
	if s.MonnaieurRendu != "" {
		if rendu, err = ParseMontant(s.MonnaieurRendu); err != nil {
			return decimal.Zero, err
		}
	}
	return recu.Sub(rendu), nil
}

// Affichage floors a change amount at zero for display.
func Affichage(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
