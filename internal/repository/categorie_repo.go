package repository

import (
	"context"

	"github.com/satch9/app-caisse-compta-sub000/internal/dto"
	"github.com/satch9/app-caisse-compta-sub000/internal/model"
)

type CategorieRepository interface {
	Lister(ctx context.Context) ([]model.Categorie, error)
	Creer(ctx context.Context, req dto.CategorieRequest) (*model.Categorie, error)
	Modifier(ctx context.Context, id int64, req dto.CategorieRequest) (*model.Categorie, error)
	Supprimer(ctx context.Context, id int64) error
}

type categorieRepository struct{ api Backend }

func NewCategorieRepository(api Backend) CategorieRepository {
	return &categorieRepository{api: api}
}

func (r *categorieRepository) Lister(ctx context.Context) ([]model.Categorie, error) {
	list := []model.Categorie{}
	err := r.api.Get(ctx, "/categories", nil, &list)
	return list, err
}

func (r *categorieRepository) Creer(ctx context.Context, req dto.CategorieRequest) (*model.Categorie, error) {
	var c model.Categorie
	if err := r.api.Post(ctx, "/categories", req, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categorieRepository) Modifier(ctx context.Context, id int64, req dto.CategorieRequest) (*model.Categorie, error) {
	var c model.Categorie
	if err := r.api.Put(ctx, chemin("/categories/%d", id), req, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categorieRepository) Supprimer(ctx context.Context, id int64) error {
	return r.api.Delete(ctx, chemin("/categories/%d", id), nil, nil)
}
