package repository

import (
	"context"

	"github.com/satch9/app-caisse-compta-sub000/internal/dto"
	"github.com/satch9/app-caisse-compta-sub000/internal/model"
)

// ProduitRepository reads and writes the catalogue through the backend.
type ProduitRepository interface {
	Lister(ctx context.Context, f dto.ProduitFilter) ([]model.Produit, error)
	Obtenir(ctx context.Context, id int64) (*model.Produit, error)
	Creer(ctx context.Context, req dto.ProduitRequest) (*model.Produit, error)
	Modifier(ctx context.Context, id int64, req dto.ProduitRequest) (*model.Produit, error)
	Supprimer(ctx context.Context, id int64) error
}

type produitRepository struct{ api Backend }

func NewProduitRepository(api Backend) ProduitRepository {
	return &produitRepository{api: api}
}

func (r *produitRepository) Lister(ctx context.Context, f dto.ProduitFilter) ([]model.Produit, error) {
	list := []model.Produit{}
	err := r.api.Get(ctx, "/produits", f.Query(), &list)
	return list, err
}

// Obtenir returns nil, nil for an unknown product.
func (r *produitRepository) Obtenir(ctx context.Context, id int64) (*model.Produit, error) {
	var p model.Produit
	err := r.api.Get(ctx, chemin("/produits/%d", id), nil, &p)
	if estIntrouvable(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *produitRepository) Creer(ctx context.Context, req dto.ProduitRequest) (*model.Produit, error) {
	var p model.Produit
	if err := r.api.Post(ctx, "/produits", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *produitRepository) Modifier(ctx context.Context, id int64, req dto.ProduitRequest) (*model.Produit, error) {
	var p model.Produit
	if err := r.api.Put(ctx, chemin("/produits/%d", id), req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *produitRepository) Supprimer(ctx context.Context, id int64) error {
	return r.api.Delete(ctx, chemin("/produits/%d", id), nil, nil)
}
