package repository

import (
	"context"

	"github.com/satch9/app-caisse-compta-sub000/internal/dto"
	"github.com/satch9/app-caisse-compta-sub000/internal/model"
)

// SessionCaisseRepository drives the cash-session lifecycle on the backend.
// Transitions are checked locally by the services before calling it.
type SessionCaisseRepository interface {
	Lister(ctx context.Context, f dto.SessionFilter) ([]model.SessionCaisse, error)
	Obtenir(ctx context.Context, id int64) (*model.SessionCaisse, error)
	// Active returns the current user's session that is not yet validated,
	// or nil when there is none.
	Active(ctx context.Context) (*model.SessionCaisse, error)
	Creer(ctx context.Context, req dto.NouvelleSessionRequest) (*model.SessionCaisse, error)
	Ouvrir(ctx context.Context, id int64, req dto.OuvertureSession) (*model.SessionCaisse, error)
	Fermer(ctx context.Context, id int64, req dto.FermetureSession) (*model.SessionCaisse, error)
	Valider(ctx context.Context, id int64, req dto.ValidationSessionRequest) (*model.SessionCaisse, error)
}

type sessionCaisseRepository struct{ api Backend }

func NewSessionCaisseRepository(api Backend) SessionCaisseRepository {
	return &sessionCaisseRepository{api: api}
}

func (r *sessionCaisseRepository) Lister(ctx context.Context, f dto.SessionFilter) ([]model.SessionCaisse, error) {
	list := []model.SessionCaisse{}
	err := r.api.Get(ctx, "/sessions-caisse", f.Query(), &list)
	return list, err
}

func (r *sessionCaisseRepository) Obtenir(ctx context.Context, id int64) (*model.SessionCaisse, error) {
	var s model.SessionCaisse
	err := r.api.Get(ctx, chemin("/sessions-caisse/%d", id), nil, &s)
	if estIntrouvable(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionCaisseRepository) Active(ctx context.Context) (*model.SessionCaisse, error) {
	var s *model.SessionCaisse
	err := r.api.Get(ctx, "/sessions-caisse/active", nil, &s)
	if estIntrouvable(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if s != nil && s.ID == 0 {
		return nil, nil
	}
	return s, nil
}

func (r *sessionCaisseRepository) Creer(ctx context.Context, req dto.NouvelleSessionRequest) (*model.SessionCaisse, error) {
	return r.post(ctx, "/sessions-caisse", req)
}

func (r *sessionCaisseRepository) Ouvrir(ctx context.Context, id int64, req dto.OuvertureSession) (*model.SessionCaisse, error) {
	return r.post(ctx, chemin("/sessions-caisse/%d/ouvrir", id), req)
}

func (r *sessionCaisseRepository) Fermer(ctx context.Context, id int64, req dto.FermetureSession) (*model.SessionCaisse, error) {
	return r.post(ctx, chemin("/sessions-caisse/%d/fermer", id), req)
}

func (r *sessionCaisseRepository) Valider(ctx context.Context, id int64, req dto.ValidationSessionRequest) (*model.SessionCaisse, error) {
	return r.post(ctx, chemin("/sessions-caisse/%d/valider", id), req)
}

func (r *sessionCaisseRepository) post(ctx context.Context, path string, body any) (*model.SessionCaisse, error) {
	var s model.SessionCaisse
	if err := r.api.Post(ctx, path, body, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
