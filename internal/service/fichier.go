package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"github.com/satch9/app-caisse-compta-sub000/internal/infra"
)

// Fichier is an ephemeral download. Nothing produced here is persisted.
type Fichier struct {
	Nom         string
	ContentType string
	Data        []byte
}

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeJSON = "application/json"
	contentTypePDF  = "application/pdf"
)

// tableau is the common shape of tabular exports.
type tableau struct {
	feuille  string
	colonnes []string
	lignes   [][]any
}

func encoderCSV(t tableau) ([]byte, error) {
	var buf bytes.Buffer
	// UTF-8 BOM so spreadsheet apps read accents correctly.
	buf.WriteString("\ufeff")
	w := csv.NewWriter(&buf)
	w.Comma = ';'
	if err := w.Write(t.colonnes); err != nil {
		return nil, err
	}
	for _, l := range t.lignes {
		rec := make([]string, len(l))
		for i, v := range l {
			rec[i] = cellule(v)
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func encoderFichier(nom, format string, t tableau, doc any) (*Fichier, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return &Fichier{Nom: nom + ".json", ContentType: contentTypeJSON, Data: data}, nil
	case "xlsx":
		rows := make([][]any, len(t.lignes))
		for i, l := range t.lignes {
			rows[i] = make([]any, len(l))
			for j, v := range l {
				rows[i][j] = celluleXLSX(v)
			}
		}
		data, err := infra.BuildWorkbook(t.feuille, t.colonnes, rows)
		if err != nil {
			return nil, err
		}
		return &Fichier{Nom: nom + ".xlsx", ContentType: infra.ContentTypeXLSX, Data: data}, nil
	case "", "csv":
		data, err := encoderCSV(t)
		if err != nil {
			return nil, err
		}
		return &Fichier{Nom: nom + ".csv", ContentType: contentTypeCSV, Data: data}, nil
	}
	return nil, invalide("Format d'export inconnu : %s", format)
}

func cellule(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

// celluleXLSX keeps numbers numeric in the workbook.
func celluleXLSX(v any) any {
	if v == nil {
		return ""
	}
	if s, ok := v.(fmt.Stringer); ok {
		if f, ok := v.(interface{ Float64() (float64, bool) }); ok {
			n, _ := f.Float64()
			return n
		}
		return s.String()
	}
	return v
}
