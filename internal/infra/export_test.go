package infra

import (
	"bytes"
	"testing"
	"time"

	"github.com/satch9/app-caisse-compta-sub000/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuildWorkbook(t *testing.T) {
	data, err := BuildWorkbook("Ecarts", []string{"Session", "Ecart"}, [][]any{
		{int64(12), 3.5},
		{int64(13), -1.25},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Ecarts")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Session", "Ecart"}, rows[0])
	assert.Equal(t, []string{"12", "3.5"}, rows[1])
	assert.Equal(t, []string{"13", "-1.25"}, rows[2])
}

func TestGenerateTicketPDF(t *testing.T) {
	recu := decimal.RequireFromString("20")
	rendu := decimal.RequireFromString("7.50")
	vente := &model.Transaction{
		ID:           42,
		TypePaiement: model.PaiementEspeces,
		MontantTotal: decimal.RequireFromString("12.50"),
		MontantRecu:  &recu,
		MonnaieRendue: &rendu,
		Utilisateur:  "Marie",
		Lignes: []model.LigneTransaction{
			{ProduitID: 1, Produit: "Bière pression", Quantite: 2, PrixUnitaire: decimal.RequireFromString("5")},
			{ProduitID: 2, Produit: "Chips", Quantite: 1, PrixUnitaire: decimal.RequireFromString("2.50")},
		},
		CreatedAt: time.Date(2026, 5, 2, 18, 30, 0, 0, time.UTC),
	}

	data, err := GenerateTicketPDF(vente, "Club de rugby")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}
