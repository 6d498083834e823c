package repository

import (
	"context"

	"github.com/satch9/app-caisse-compta-sub000/internal/dto"
	"github.com/satch9/app-caisse-compta-sub000/internal/model"
)

type TransactionRepository interface {
	Lister(ctx context.Context, f dto.TransactionFilter) ([]model.Transaction, error)
	Vendre(ctx context.Context, v dto.NouvelleVente) (*model.Transaction, error)
	Monnaie(ctx context.Context, op dto.OperationMonnaie) (*model.Transaction, error)
	Annuler(ctx context.Context, id int64, motif string) (*model.Transaction, error)
}

type transactionRepository struct{ api Backend }

func NewTransactionRepository(api Backend) TransactionRepository {
	return &transactionRepository{api: api}
}

func (r *transactionRepository) Lister(ctx context.Context, f dto.TransactionFilter) ([]model.Transaction, error) {
	list := []model.Transaction{}
	err := r.api.Get(ctx, "/transactions", f.Query(), &list)
	return list, err
}

func (r *transactionRepository) Vendre(ctx context.Context, v dto.NouvelleVente) (*model.Transaction, error) {
	var t model.Transaction
	if err := r.api.Post(ctx, "/transactions", v, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *transactionRepository) Monnaie(ctx context.Context, op dto.OperationMonnaie) (*model.Transaction, error) {
	var t model.Transaction
	if err := r.api.Post(ctx, "/transactions/monnaie", op, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *transactionRepository) Annuler(ctx context.Context, id int64, motif string) (*model.Transaction, error) {
	var t model.Transaction
	if err := r.api.Post(ctx, chemin("/transactions/%d/annuler", id), dto.Annulation{Motif: motif}, &t); err != nil {
		return nil, err
	}
	return &t, nil
}
