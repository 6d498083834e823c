package caisse

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoute(t *testing.T) {
	cases := []struct {
		touche  Touche
		action  Action
		valider bool
	}{
		{"0", KeypadDigit{Chiffre: "0"}, false},
		{"9", KeypadDigit{Chiffre: "9"}, false},
		{".", KeypadDigit{Chiffre: "."}, false},
		{",", KeypadDigit{Chiffre: "."}, false},
		{"C", KeypadClear{}, false},
		{"c", KeypadClear{}, false},
		{"OK", nil, true},
	}
	for _, tc := range cases {
		a, valider, err := Route(tc.touche)
		require.NoError(t, err, tc.touche)
		assert.Equal(t, tc.action, a, tc.touche)
		assert.Equal(t, tc.valider, valider, tc.touche)
	}

	_, _, err := Route("12")
	assert.ErrorIs(t, err, ErrToucheInconnue)
	_, _, err = Route("x")
	assert.ErrorIs(t, err, ErrToucheInconnue)
}

func TestSaisir_CashChangeWithDecimalKey(t *testing.T) {
	s := dispatch(NewState(),
		AddToPanier{Produit: produit(1, "5.00", 10)},
		AddToPanier{Produit: produit(1, "5.00", 10)},
		AddToPanier{Produit: produit(2, "2.50", 10)},
	)
	require.True(t, Total(s.Panier).Equal(decimal.RequireFromString("12.50")))

	s = Reduce(s, SetActiveInput{Input: InputMontantRecu})
	s, err := Saisir(s, "2", "0", ".", "0", "0")
	require.NoError(t, err)

	assert.Equal(t, "20.00", s.MontantRecu)
	monnaie, ok := MonnaieARendre(s)
	require.True(t, ok)
	assert.True(t, monnaie.Equal(decimal.RequireFromString("7.50")), "got %s", monnaie)
}

func TestSaisir_WithoutDecimalKeyIsNotCents(t *testing.T) {
	s := Reduce(NewState(), AddToPanier{Produit: produit(1, "12.50", 10)})
	s = Reduce(s, SetActiveInput{Input: InputMontantRecu})

	s, err := Saisir(s, "2", "0", "0", "0")
	require.NoError(t, err)

	// "2000" is two thousand, not 20.00: the keypad never inserts a decimal point.
	monnaie, ok := MonnaieARendre(s)
	require.True(t, ok)
	assert.True(t, monnaie.Equal(decimal.RequireFromString("1987.50")))
}

func TestSaisir_ConfirmIsSkipped(t *testing.T) {
	s := Reduce(NewState(), SetActiveInput{Input: InputSoldeDeclare})
	s, err := Saisir(s, "4", "OK")
	require.NoError(t, err)
	assert.Equal(t, "4", s.SoldeDeclare)
}

func TestSaisir_StopsOnUnknownKey(t *testing.T) {
	s := Reduce(NewState(), SetActiveInput{Input: InputSoldeDeclare})
	s, err := Saisir(s, "4", "?", "5")
	assert.ErrorIs(t, err, ErrToucheInconnue)
	assert.Equal(t, "4", s.SoldeDeclare)
}
