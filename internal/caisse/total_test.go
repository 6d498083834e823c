package caisse

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotal_RecomputedAfterEveryChange(t *testing.T) {
	s := NewState()
	steps := []Action{
		AddToPanier{Produit: produit(1, "1.20", 10)},
		AddToPanier{Produit: produit(2, "3.05", 10)},
		AddToPanier{Produit: produit(1, "1.20", 10)},
		SetQuantite{ProduitID: 2, Quantite: 4},
		RemoveFromPanier{ProduitID: 1},
		AddToPanier{Produit: produit(3, "0.99", 1)},
		ClearPanier{},
	}
	for _, a := range steps {
		s = Reduce(s, a)

		want := decimal.Zero
		for _, l := range s.Panier {
			want = want.Add(l.Produit.PrixVente.Mul(decimal.NewFromInt(int64(l.Quantite))))
		}
		assert.True(t, want.Equal(Total(s.Panier)), "after %s: want %s got %s", a.Type(), want, Total(s.Panier))
	}
}

func TestNombreArticles(t *testing.T) {
	s := dispatch(NewState(),
		AddToPanier{Produit: produit(1, "1", 10)},
		AddToPanier{Produit: produit(1, "1", 10)},
		AddToPanier{Produit: produit(2, "1", 10)},
	)
	assert.Equal(t, 3, NombreArticles(s.Panier))
}

func TestParseMontant(t *testing.T) {
	for in, want := range map[string]string{"20": "20", "20.00": "20", "0.5": "0.5", "7,25": "7.25", "3.": "3"} {
		d, err := ParseMontant(in)
		require.NoError(t, err, in)
		assert.True(t, d.Equal(decimal.RequireFromString(want)), in)
	}
	for _, in := range []string{"", "  ", "1..2", "1.2.3", "abc"} {
		_, err := ParseMontant(in)
		assert.ErrorIs(t, err, ErrMontantInvalide, in)
	}
}

func TestMonnaieARendre_OnlyCash(t *testing.T) {
	s := dispatch(NewState(),
		AddToPanier{Produit: produit(1, "10", 10)},
		SetActiveInput{Input: InputMontantRecu},
		KeypadDigit{Chiffre: "5"},
	)

	monnaie, ok := MonnaieARendre(s)
	require.True(t, ok)
	assert.True(t, monnaie.Equal(decimal.NewFromInt(-5)), "state keeps the negative value")
	assert.True(t, Affichage(monnaie).IsZero(), "display floors at zero")

	_, ok = MonnaieARendre(Reduce(s, SetModePaiement{Mode: ModeCB}))
	assert.False(t, ok)
}

func TestResteMonnayeur(t *testing.T) {
	s := dispatch(NewState(),
		SetActiveInput{Input: InputMonnaieurRecu},
		KeypadDigit{Chiffre: "5"},
		KeypadDigit{Chiffre: "0"},
		SetActiveInput{Input: InputMonnaieurRendu},
		KeypadDigit{Chiffre: "2"},
		KeypadDigit{Chiffre: "0"},
	)
	reste, err := ResteMonnayeur(s)
	require.NoError(t, err)
	assert.True(t, reste.Equal(decimal.NewFromInt(30)))

	_, err = ResteMonnayeur(NewState())
	assert.ErrorIs(t, err, ErrMontantInvalide)
}
