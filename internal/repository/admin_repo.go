package repository

import (
	"context"

	"github.com/satch9/app-caisse-compta-sub000/internal/dto"
	"github.com/satch9/app-caisse-compta-sub000/internal/model"
)

// AdminRepository covers users, roles and the permission catalogue.
type AdminRepository interface {
	ListerUtilisateurs(ctx context.Context) ([]model.Utilisateur, error)
	CreerUtilisateur(ctx context.Context, req dto.UtilisateurRequest) (*model.Utilisateur, error)
	ModifierUtilisateur(ctx context.Context, id int64, req dto.UtilisateurRequest) (*model.Utilisateur, error)
	SupprimerUtilisateur(ctx context.Context, id int64) error
	AssignerRoles(ctx context.Context, id int64, roleIDs []int64) (*model.Utilisateur, error)

	ListerRoles(ctx context.Context) ([]model.Role, error)
	CreerRole(ctx context.Context, req dto.RoleRequest) (*model.Role, error)
	ModifierRole(ctx context.Context, id int64, req dto.RoleRequest) (*model.Role, error)
	SupprimerRole(ctx context.Context, id int64) error
	AssignerPermissions(ctx context.Context, id int64, codes []string) (*model.Role, error)

	ListerPermissions(ctx context.Context) ([]model.Permission, error)
}

type adminRepository struct{ api Backend }

func NewAdminRepository(api Backend) AdminRepository {
	return &adminRepository{api: api}
}

func (r *adminRepository) ListerUtilisateurs(ctx context.Context) ([]model.Utilisateur, error) {
	list := []model.Utilisateur{}
	err := r.api.Get(ctx, "/admin/utilisateurs", nil, &list)
	return list, err
}

func (r *adminRepository) CreerUtilisateur(ctx context.Context, req dto.UtilisateurRequest) (*model.Utilisateur, error) {
	var u model.Utilisateur
	if err := r.api.Post(ctx, "/admin/utilisateurs", req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *adminRepository) ModifierUtilisateur(ctx context.Context, id int64, req dto.UtilisateurRequest) (*model.Utilisateur, error) {
	var u model.Utilisateur
	if err := r.api.Put(ctx, chemin("/admin/utilisateurs/%d", id), req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *adminRepository) SupprimerUtilisateur(ctx context.Context, id int64) error {
	return r.api.Delete(ctx, chemin("/admin/utilisateurs/%d", id), nil, nil)
}

func (r *adminRepository) AssignerRoles(ctx context.Context, id int64, roleIDs []int64) (*model.Utilisateur, error) {
	var u model.Utilisateur
	body := dto.AssignationRolesRequest{RoleIDs: roleIDs}
	if err := r.api.Put(ctx, chemin("/admin/utilisateurs/%d/roles", id), body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *adminRepository) ListerRoles(ctx context.Context) ([]model.Role, error) {
	list := []model.Role{}
	err := r.api.Get(ctx, "/admin/roles", nil, &list)
	return list, err
}

func (r *adminRepository) CreerRole(ctx context.Context, req dto.RoleRequest) (*model.Role, error) {
	var ro model.Role
	if err := r.api.Post(ctx, "/admin/roles", req, &ro); err != nil {
		return nil, err
	}
	return &ro, nil
}

func (r *adminRepository) ModifierRole(ctx context.Context, id int64, req dto.RoleRequest) (*model.Role, error) {
	var ro model.Role
	if err := r.api.Put(ctx, chemin("/admin/roles/%d", id), req, &ro); err != nil {
		return nil, err
	}
	return &ro, nil
}

func (r *adminRepository) SupprimerRole(ctx context.Context, id int64) error {
	return r.api.Delete(ctx, chemin("/admin/roles/%d", id), nil, nil)
}

func (r *adminRepository) AssignerPermissions(ctx context.Context, id int64, codes []string) (*model.Role, error) {
	var ro model.Role
	body := dto.AssignationPermissionsRequest{Codes: codes}
	if err := r.api.Put(ctx, chemin("/admin/roles/%d/permissions", id), body, &ro); err != nil {
		return nil, err
	}
	return &ro, nil
}

func (r *adminRepository) ListerPermissions(ctx context.Context) ([]model.Permission, error) {
	list := []model.Permission{}
	err := r.api.Get(ctx, "/admin/permissions", nil, &list)
	return list, err
}
