package infra

// pdf.go — sale receipt generated with go-pdf/fpdf on thermal-paper width.
// The receipt is an ephemeral download: it is written to memory, never stored.

import (
	"bytes"
	"fmt"

	"github.com/satch9/app-caisse-compta-sub000/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

var libellesPaiement = map[string]string{
	model.PaiementEspeces: "Espèces",
	model.PaiementCheque:  "Chèque",
	model.PaiementCB:      "Carte bancaire",
}

// GenerateTicketPDF renders the receipt of a completed sale.
func GenerateTicketPDF(vente *model.Transaction, nomClub string) ([]byte, error) {
	// 74mm × 105mm, close to thermal receipt paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105 + float64(len(vente.Lignes))*5},
	})
	tr := pdf.UnicodeTranslatorFromDescriptor("cp1252")
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, tr(nomClub), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, tr("Ticket de caisse"), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, tr(fmt.Sprintf("Ticket N° %d", vente.ID)), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, vente.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	if vente.Utilisateur != "" {
		pdf.CellFormat(contentW, 4, tr("Caissier : "+vente.Utilisateur), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	col1 := contentW * 0.52
	col2 := contentW * 0.16
	col3 := contentW * 0.32

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, tr("Article"), "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, tr("Qté"), "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, tr("Montant"), "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, l := range vente.Lignes {
		nom := []rune(l.Produit)
		if len(nom) > 22 {
			nom = append(nom[:21], '.')
		}
		montant := l.PrixUnitaire.Mul(decimal.NewFromInt(int64(l.Quantite)))
		pdf.CellFormat(col1, 5, tr(string(nom)), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", l.Quantite), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, tr(montant.StringFixed(2)+" €"), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, tr(vente.MontantTotal.StringFixed(2)+" €"), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	libelle := libellesPaiement[vente.TypePaiement]
	if libelle == "" {
		libelle = vente.TypePaiement
	}
	pdf.CellFormat(col1+col2, 4, tr("Paiement : "+libelle), "", 1, "L", false, 0, "")
	if vente.MontantRecu != nil {
		pdf.CellFormat(col1+col2, 4, tr("Reçu"), "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, tr(vente.MontantRecu.StringFixed(2)+" €"), "", 1, "R", false, 0, "")
	}
	if vente.MonnaieRendue != nil {
		pdf.CellFormat(col1+col2, 4, tr("Rendu"), "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, tr(vente.MonnaieRendue.StringFixed(2)+" €"), "", 1, "R", false, 0, "")
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, tr("Merci et à bientôt !"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render ticket: %w", err)
	}
	return buf.Bytes(), nil
}
