package model

import "time"

// Utilisateur is an operator account managed by the admin screens.
type Utilisateur struct {
	ID        int64     `json:"id"`
	Login     string    `json:"login"`
	Nom       string    `json:"nom"`
	Prenom    string    `json:"prenom"`
	Email     *string   `json:"email,omitempty"`
	Actif     bool      `json:"actif"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

// NomComplet is used on receipts and session reports.
func (u Utilisateur) NomComplet() string {
	if u.Prenom == "" {
		return u.Nom
	}
	return u.Prenom + " " + u.Nom
}

type Role struct {
	ID          int64    `json:"id"`
	Nom         string   `json:"nom"`
	Description *string  `json:"description,omitempty"`
	Permissions []string `json:"permissions"`
}

type Permission struct {
	ID          int64   `json:"id"`
	Code        string  `json:"code"`
	Description *string `json:"description,omitempty"`
}
