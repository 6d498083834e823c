package service

import (
	"context"

	"github.com/satch9/app-caisse-compta-sub000/internal/dto"
	"github.com/satch9/app-caisse-compta-sub000/internal/infra"
	"github.com/satch9/app-caisse-compta-sub000/internal/permission"
	"github.com/satch9/app-caisse-compta-sub000/internal/repository"

	"github.com/rs/zerolog/log"
)

type DashboardService interface {
	Tableau(ctx context.Context) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	sessions repository.SessionCaisseRepository
	session  *infra.Session
}

func NewDashboardService(sessions repository.SessionCaisseRepository, session *infra.Session) DashboardService {
	return &dashboardService{sessions: sessions, session: session}
}

// Tableau lists the screens the operator may open. While permissions load
// the list is empty and Chargement is set.
func (s *dashboardService) Tableau(ctx context.Context) (*dto.DashboardResponse, error) {
	if !s.session.Authenticated() {
		return nil, infra.ErrUnauthorized
	}
	g := s.session.Gate()
	resp := &dto.DashboardResponse{
		Utilisateur: s.session.User(),
		Ecrans:      permission.Visibles(g),
		Chargement:  !g.Loaded(),
	}
	if g.Can(permission.CaisseVendre) {
		sc, err := s.sessions.Active(ctx)
		if err != nil {
			// The dashboard still renders without the session summary.
			log.Warn().Err(err).Msg("dashboard: active session fetch failed")
		} else {
			resp.Session = sc
		}
	}
	return resp, nil
}
