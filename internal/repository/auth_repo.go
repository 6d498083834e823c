package repository

import (
	"context"

	"github.com/satch9/app-caisse-compta-sub000/internal/dto"
	"github.com/satch9/app-caisse-compta-sub000/internal/model"
)

type AuthRepository interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResult, error)
	Me(ctx context.Context) (*model.Utilisateur, error)
	Permissions(ctx context.Context) ([]string, error)
}

type authRepository struct{ api Backend }

func NewAuthRepository(api Backend) AuthRepository {
	return &authRepository{api: api}
}

func (r *authRepository) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResult, error) {
	var res dto.LoginResult
	if err := r.api.Post(ctx, "/auth/login", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *authRepository) Me(ctx context.Context) (*model.Utilisateur, error) {
	var u model.Utilisateur
	if err := r.api.Get(ctx, "/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *authRepository) Permissions(ctx context.Context) ([]string, error) {
	var res dto.PermissionsResult
	if err := r.api.Get(ctx, "/auth/permissions", nil, &res); err != nil {
		return nil, err
	}
	if res.Permissions == nil {
		res.Permissions = []string{}
	}
	return res.Permissions, nil
}
