package repository

import (
	"context"

	"github.com/satch9/app-caisse-compta-sub000/internal/dto"
	"github.com/satch9/app-caisse-compta-sub000/internal/model"
)

type ComptabiliteRepository interface {
	Rapport(ctx context.Context, kind string, f dto.RapportFilter) (*model.Rapport, error)
	// Exporter returns the backend-built workbook and its content type.
	Exporter(ctx context.Context, kind string, f dto.RapportFilter) ([]byte, string, error)
}

type comptabiliteRepository struct{ api Backend }

func NewComptabiliteRepository(api Backend) ComptabiliteRepository {
	return &comptabiliteRepository{api: api}
}

func (r *comptabiliteRepository) Rapport(ctx context.Context, kind string, f dto.RapportFilter) (*model.Rapport, error) {
	var rp model.Rapport
	if err := r.api.Get(ctx, "/comptabilite/"+kind, f.Query(), &rp); err != nil {
		return nil, err
	}
	if rp.Type == "" {
		rp.Type = kind
	}
	return &rp, nil
}

func (r *comptabiliteRepository) Exporter(ctx context.Context, kind string, f dto.RapportFilter) ([]byte, string, error) {
	return r.api.Download(ctx, "/comptabilite/"+kind+"/export", f.Query())
}
