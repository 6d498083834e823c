package service

import (
	"context"

	"github.com/satch9/app-caisse-compta-sub000/internal/dto"
	"github.com/satch9/app-caisse-compta-sub000/internal/model"
	"github.com/satch9/app-caisse-compta-sub000/internal/repository"

	"github.com/rs/zerolog/log"
)

// StockService backs the stock screen: catalogue, categories, stock
// movements and supply orders.
type StockService interface {
	ListerProduits(ctx context.Context, f dto.ProduitFilter) ([]model.Produit, error)
	CreerProduit(ctx context.Context, req dto.ProduitRequest) (*model.Produit, error)
	ModifierProduit(ctx context.Context, id int64, req dto.ProduitRequest) (*model.Produit, error)
	SupprimerProduit(ctx context.Context, id int64) error

	ListerCategories(ctx context.Context) ([]model.Categorie, error)
	CreerCategorie(ctx context.Context, req dto.CategorieRequest) (*model.Categorie, error)
	ModifierCategorie(ctx context.Context, id int64, req dto.CategorieRequest) (*model.Categorie, error)
	SupprimerCategorie(ctx context.Context, id int64) error

	ListerMouvements(ctx context.Context, f dto.MouvementFilter) ([]model.MouvementStock, error)
	EnregistrerMouvement(ctx context.Context, req dto.MouvementRequest) (*model.MouvementStock, error)

	ListerCommandes(ctx context.Context, f dto.CommandeFilter) ([]model.Commande, error)
	CreerCommande(ctx context.Context, req dto.CommandeRequest) (*model.Commande, error)
	RecevoirCommande(ctx context.Context, id int64) (*model.Commande, error)
	AnnulerCommande(ctx context.Context, id int64) (*model.Commande, error)
}

type stockService struct {
	produits   repository.ProduitRepository
	categories repository.CategorieRepository
	mouvements repository.MouvementStockRepository
	commandes  repository.CommandeRepository
}

func NewStockService(
	produits repository.ProduitRepository,
	categories repository.CategorieRepository,
	mouvements repository.MouvementStockRepository,
	commandes repository.CommandeRepository,
) StockService {
	return &stockService{produits: produits, categories: categories, mouvements: mouvements, commandes: commandes}
}

// ── Produits ─────────────────────────────────────────────────────────────────

func (s *stockService) ListerProduits(ctx context.Context, f dto.ProduitFilter) ([]model.Produit, error) {
	return s.produits.Lister(ctx, f)
}

func (s *stockService) CreerProduit(ctx context.Context, req dto.ProduitRequest) (*model.Produit, error) {
	p, err := s.produits.Creer(ctx, req)
	if err != nil {
		log.Error().Err(err).Str("nom", req.Nom).Msg("stock: product create failed")
		return nil, err
	}
	return p, nil
}

func (s *stockService) ModifierProduit(ctx context.Context, id int64, req dto.ProduitRequest) (*model.Produit, error) {
	p, err := s.produits.Modifier(ctx, id, req)
	if err != nil {
		log.Error().Err(err).Int64("produit_id", id).Msg("stock: product update failed")
		return nil, err
	}
	return p, nil
}

func (s *stockService) SupprimerProduit(ctx context.Context, id int64) error {
	if err := s.produits.Supprimer(ctx, id); err != nil {
		log.Error().Err(err).Int64("produit_id", id).Msg("stock: product delete failed")
		return err
	}
	return nil
}

// ── Categories ───────────────────────────────────────────────────────────────

func (s *stockService) ListerCategories(ctx context.Context) ([]model.Categorie, error) {
	return s.categories.Lister(ctx)
}

func (s *stockService) CreerCategorie(ctx context.Context, req dto.CategorieRequest) (*model.Categorie, error) {
	return s.categories.Creer(ctx, req)
}

func (s *stockService) ModifierCategorie(ctx context.Context, id int64, req dto.CategorieRequest) (*model.Categorie, error) {
	return s.categories.Modifier(ctx, id, req)
}

func (s *stockService) SupprimerCategorie(ctx context.Context, id int64) error {
	return s.categories.Supprimer(ctx, id)
}

// ── Mouvements ───────────────────────────────────────────────────────────────

func (s *stockService) ListerMouvements(ctx context.Context, f dto.MouvementFilter) ([]model.MouvementStock, error) {
	return s.mouvements.Lister(ctx, f)
}

// EnregistrerMouvement refuses an exit larger than the known stock before
// calling the backend. Entries and exits need a positive quantity.
func (s *stockService) EnregistrerMouvement(ctx context.Context, req dto.MouvementRequest) (*model.MouvementStock, error) {
	if req.Type != model.MouvementAjustement && req.Quantite <= 0 {
		return nil, invalide("La quantité doit être supérieure à zéro")
	}
	if req.Type == model.MouvementSortie {
		p, err := s.produits.Obtenir(ctx, req.ProduitID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, introuvable("Produit %d introuvable", req.ProduitID)
		}
		if req.Quantite > p.Stock {
			return nil, invalide("Stock insuffisant pour %s (%d disponible)", p.Nom, p.Stock)
		}
	}
	m, err := s.mouvements.Creer(ctx, req)
	if err != nil {
		log.Error().Err(err).Int64("produit_id", req.ProduitID).Str("type", req.Type).Msg("stock: movement failed")
		return nil, err
	}
	log.Info().Int64("produit_id", m.ProduitID).Str("type", m.Type).Int("quantite", m.Quantite).Msg("stock movement recorded")
	return m, nil
}

// ── Commandes ────────────────────────────────────────────────────────────────

func (s *stockService) ListerCommandes(ctx context.Context, f dto.CommandeFilter) ([]model.Commande, error) {
	return s.commandes.Lister(ctx, f)
}

func (s *stockService) CreerCommande(ctx context.Context, req dto.CommandeRequest) (*model.Commande, error) {
	if len(req.Lignes) == 0 {
		return nil, invalide("La commande doit contenir au moins une ligne")
	}
	return s.commandes.Creer(ctx, req)
}

func (s *stockService) RecevoirCommande(ctx context.Context, id int64) (*model.Commande, error) {
	c, err := s.commandes.Recevoir(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("commande_id", id).Msg("stock: order reception failed")
		return nil, err
	}
	log.Info().Int64("commande_id", id).Msg("supply order received")
	return c, nil
}

func (s *stockService) AnnulerCommande(ctx context.Context, id int64) (*model.Commande, error) {
	return s.commandes.Annuler(ctx, id)
}
