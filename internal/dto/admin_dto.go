package dto

import (
	"net/url"
	"strconv"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type UtilisateurRequest struct {
	Login      string  `json:"login"        validate:"required,min=3,max=50"`
	Nom        string  `json:"nom"          validate:"required,min=1,max=100"`
	Prenom     string  `json:"prenom"       validate:"max=100"`
	Email      *string `json:"email"        validate:"omitempty,email"`
	MotDePasse *string `json:"mot_de_passe" validate:"omitempty,min=8"`
	Actif      bool    `json:"actif"`
}

type RoleRequest struct {
	Nom         string  `json:"nom"         validate:"required,min=1,max=50"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type AssignationRolesRequest struct {
	RoleIDs []int64 `json:"role_ids" validate:"dive,gt=0"`
}

type AssignationPermissionsRequest struct {
	Codes []string `json:"codes" validate:"dive,required"`
}

type LogFilter struct {
	Niveau      string `form:"niveau"`
	Module      string `form:"module"`
	Action      string `form:"action"`
	Utilisateur string `form:"utilisateur"`
	Debut       string `form:"debut" validate:"omitempty,datetime=2006-01-02"`
	Fin         string `form:"fin"   validate:"omitempty,datetime=2006-01-02"`
	Limit       int    `form:"limit,default=200" validate:"min=1,max=5000"`
}

func (f LogFilter) Query() url.Values {
	q := url.Values{}
	setIf(q, "niveau", f.Niveau)
	setIf(q, "module", f.Module)
	setIf(q, "action", f.Action)
	setIf(q, "utilisateur", f.Utilisateur)
	setIf(q, "debut", f.Debut)
	setIf(q, "fin", f.Fin)
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

// PurgeLogsRequest exports the selected logs and deletes them once the export
// succeeded.
type PurgeLogsRequest struct {
	LogFilter
	Format string `form:"format,default=csv" validate:"oneof=csv json xlsx"`
}

// ─── Backend payloads ────────────────────────────────────────────────────────

// SuppressionLogsRequest names the exact entries to delete.
type SuppressionLogsRequest struct {
	IDs []int64 `json:"ids"`
}

type SuppressionLogs struct {
	Supprimes int `json:"supprimes"`
}
