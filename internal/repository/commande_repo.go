package repository

import (
	"context"

	"github.com/satch9/app-caisse-compta-sub000/internal/dto"
	"github.com/satch9/app-caisse-compta-sub000/internal/model"
)

type CommandeRepository interface {
	Lister(ctx context.Context, f dto.CommandeFilter) ([]model.Commande, error)
	Creer(ctx context.Context, req dto.CommandeRequest) (*model.Commande, error)
	// Recevoir marks the order received; the backend books the stock entries.
	Recevoir(ctx context.Context, id int64) (*model.Commande, error)
	Annuler(ctx context.Context, id int64) (*model.Commande, error)
}

type commandeRepository struct{ api Backend }

func NewCommandeRepository(api Backend) CommandeRepository {
	return &commandeRepository{api: api}
}

func (r *commandeRepository) Lister(ctx context.Context, f dto.CommandeFilter) ([]model.Commande, error) {
	list := []model.Commande{}
	err := r.api.Get(ctx, "/commandes", f.Query(), &list)
	return list, err
}

func (r *commandeRepository) Creer(ctx context.Context, req dto.CommandeRequest) (*model.Commande, error) {
	var c model.Commande
	if err := r.api.Post(ctx, "/commandes", req, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *commandeRepository) Recevoir(ctx context.Context, id int64) (*model.Commande, error) {
	var c model.Commande
	if err := r.api.Post(ctx, chemin("/commandes/%d/reception", id), nil, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *commandeRepository) Annuler(ctx context.Context, id int64) (*model.Commande, error) {
	var c model.Commande
	if err := r.api.Post(ctx, chemin("/commandes/%d/annuler", id), nil, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
