package repository

import (
	"context"

	"github.com/satch9/app-caisse-compta-sub000/internal/dto"
	"github.com/satch9/app-caisse-compta-sub000/internal/model"
)

// MouvementStockRepository is append-only: movements are never edited.
type MouvementStockRepository interface {
	Lister(ctx context.Context, f dto.MouvementFilter) ([]model.MouvementStock, error)
	Creer(ctx context.Context, req dto.MouvementRequest) (*model.MouvementStock, error)
}

type mouvementStockRepository struct{ api Backend }

func NewMouvementStockRepository(api Backend) MouvementStockRepository {
	return &mouvementStockRepository{api: api}
}

func (r *mouvementStockRepository) Lister(ctx context.Context, f dto.MouvementFilter) ([]model.MouvementStock, error) {
	list := []model.MouvementStock{}
	err := r.api.Get(ctx, "/mouvements-stock", f.Query(), &list)
	return list, err
}

func (r *mouvementStockRepository) Creer(ctx context.Context, req dto.MouvementRequest) (*model.MouvementStock, error) {
	var m model.MouvementStock
	if err := r.api.Post(ctx, "/mouvements-stock", req, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
