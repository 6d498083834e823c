package dto

import (
	"github.com/satch9/app-caisse-compta-sub000/internal/model"
	"github.com/satch9/app-caisse-compta-sub000/internal/permission"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Login      string `json:"login"       validate:"required,min=1,max=150"`
	MotDePasse string `json:"mot_de_passe" validate:"required,min=1"`
}

// ─── Backend payloads ────────────────────────────────────────────────────────

// LoginResult is the backend's answer to POST /auth/login.
type LoginResult struct {
	Token       string            `json:"token"`
	Utilisateur model.Utilisateur `json:"utilisateur"`
}

// PermissionsResult is the backend's answer to GET /auth/permissions.
type PermissionsResult struct {
	Permissions []string `json:"permissions"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MeResponse struct {
	Utilisateur *model.Utilisateur `json:"utilisateur"`
	// Permissions is null while still loading.
	Permissions []string `json:"permissions"`
	Chargees    bool     `json:"permissions_chargees"`
}

type DashboardResponse struct {
	Utilisateur *model.Utilisateur   `json:"utilisateur"`
	Ecrans      []permission.Ecran   `json:"ecrans"`
	Session     *model.SessionCaisse `json:"session"`
	Chargement  bool                 `json:"chargement"`
}
