package service

import (
	"context"
	"fmt"

	"github.com/satch9/app-caisse-compta-sub000/internal/dto"
	"github.com/satch9/app-caisse-compta-sub000/internal/infra"
	"github.com/satch9/app-caisse-compta-sub000/internal/model"
	"github.com/satch9/app-caisse-compta-sub000/internal/repository"
)

// Accounting report kinds computed by the backend.
const (
	RapportJournal          = "journal"
	RapportGrandLivre       = "grand-livre"
	RapportBilan            = "bilan"
	RapportCompteResultat   = "compte-resultat"
	RapportVentesParProduit = "ventes-par-produit"
)

var rapports = map[string]bool{
	RapportJournal:          true,
	RapportGrandLivre:       true,
	RapportBilan:            true,
	RapportCompteResultat:   true,
	RapportVentesParProduit: true,
}

type ComptabiliteService interface {
	Rapport(ctx context.Context, kind string, f dto.RapportFilter) (*model.Rapport, error)
	Exporter(ctx context.Context, kind string, f dto.RapportFilter) (*Fichier, error)
}

type comptabiliteService struct {
	repo repository.ComptabiliteRepository
}

func NewComptabiliteService(repo repository.ComptabiliteRepository) ComptabiliteService {
	return &comptabiliteService{repo: repo}
}

func verifierPeriode(kind string, f dto.RapportFilter) error {
	if !rapports[kind] {
		return introuvable("Rapport inconnu : %s", kind)
	}
	// ISO dates compare lexically.
	if f.Debut > f.Fin {
		return invalide("La date de début doit précéder la date de fin")
	}
	return nil
}

func (s *comptabiliteService) Rapport(ctx context.Context, kind string, f dto.RapportFilter) (*model.Rapport, error) {
	if err := verifierPeriode(kind, f); err != nil {
		return nil, err
	}
	return s.repo.Rapport(ctx, kind, f)
}

// Exporter passes the backend's workbook through unchanged.
func (s *comptabiliteService) Exporter(ctx context.Context, kind string, f dto.RapportFilter) (*Fichier, error) {
	if err := verifierPeriode(kind, f); err != nil {
		return nil, err
	}
	data, ct, err := s.repo.Exporter(ctx, kind, f)
	if err != nil {
		return nil, err
	}
	if ct == "" {
		ct = infra.ContentTypeXLSX
	}
	return &Fichier{
		Nom:         fmt.Sprintf("%s_%s_%s.xlsx", kind, f.Debut, f.Fin),
		ContentType: ct,
		Data:        data,
	}, nil
}
