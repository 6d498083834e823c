package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LogSysteme is an entry of the backend's system log.
type LogSysteme struct {
	ID            int64     `json:"id"`
	Niveau        string    `json:"niveau"`
	Module        string    `json:"module"`
	Action        string    `json:"action"`
	Message       string    `json:"message"`
	UtilisateurID *int64    `json:"utilisateur_id"`
	Utilisateur   string    `json:"utilisateur"`
	CreatedAt     time.Time `json:"created_at"`
}

// FiltresLogs lists the distinct values the backend knows for each log filter.
type FiltresLogs struct {
	Niveaux      []string `json:"niveaux"`
	Modules      []string `json:"modules"`
	Actions      []string `json:"actions"`
	Utilisateurs []string `json:"utilisateurs"`
}

// Rapport is an accounting report as computed by the backend. Rows are kept
// generic since each report kind has its own columns.
type Rapport struct {
	Type     string                     `json:"type"`
	Debut    string                     `json:"debut"`
	Fin      string                     `json:"fin"`
	Colonnes []string                   `json:"colonnes"`
	Lignes   []map[string]any           `json:"lignes"`
	Totaux   map[string]decimal.Decimal `json:"totaux"`
}
