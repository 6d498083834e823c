package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/satch9/app-caisse-compta-sub000/internal/dto"
	"github.com/satch9/app-caisse-compta-sub000/internal/infra"
	"github.com/satch9/app-caisse-compta-sub000/internal/repository"

	"github.com/rs/zerolog/log"
)

// AuthService logs the terminal operator in and out. The token, user and
// permissions live in the shared infra.Session.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.MeResponse, error)
	Logout(ctx context.Context)
	Me(ctx context.Context) (*dto.MeResponse, error)
}

type authService struct {
	repo    repository.AuthRepository
	session *infra.Session
}

func NewAuthService(repo repository.AuthRepository, session *infra.Session) AuthService {
	return &authService{repo: repo, session: session}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.MeResponse, error) {
	// A previous operator's state must not leak into the new session.
	if s.session.Authenticated() {
		s.session.Logout(infra.ReasonLogout)
	}

	res, err := s.repo.Login(ctx, req)
	if err != nil {
		var berr *infra.BackendError
		if errors.As(err, &berr) && berr.Status == http.StatusUnauthorized {
			return nil, invalide("Identifiants invalides")
		}
		log.Error().Err(err).Str("login", req.Login).Msg("auth: login failed")
		return nil, err
	}
	if res.Token == "" {
		return nil, &infra.BackendError{Status: http.StatusBadGateway, Message: infra.MessageGenerique}
	}

	user := res.Utilisateur
	s.session.Login(res.Token, &user)
	log.Info().Int64("utilisateur_id", user.ID).Str("login", user.Login).Msg("operator logged in")

	s.chargerPermissions(ctx)
	return s.me(), nil
}

func (s *authService) Logout(_ context.Context) {
	s.session.Logout(infra.ReasonLogout)
}

// Me reports the session. Permissions that failed to load at login are
// retried here.
func (s *authService) Me(ctx context.Context) (*dto.MeResponse, error) {
	if !s.session.Authenticated() {
		return nil, infra.ErrUnauthorized
	}
	if !s.session.Gate().Loaded() {
		s.chargerPermissions(ctx)
	}
	return s.me(), nil
}

// chargerPermissions leaves the gate loading on failure: restricted screens
// stay hidden rather than denied.
func (s *authService) chargerPermissions(ctx context.Context) {
	perms, err := s.repo.Permissions(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("auth: permissions fetch failed")
		return
	}
	s.session.SetPermissions(perms)
}

func (s *authService) me() *dto.MeResponse {
	resp := &dto.MeResponse{Utilisateur: s.session.User()}
	if g := s.session.Gate(); g.Loaded() {
		resp.Chargees = true
		resp.Permissions = g.Permissions()
	}
	return resp
}
