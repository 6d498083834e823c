package service

import (
	"context"
	"fmt"
	"time"

	"github.com/satch9/app-caisse-compta-sub000/internal/dto"
	"github.com/satch9/app-caisse-compta-sub000/internal/model"
	"github.com/satch9/app-caisse-compta-sub000/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// TresorerieService backs the treasury screen: funding cash sessions,
// validating closed ones and reporting variances.
type TresorerieService interface {
	ListerSessions(ctx context.Context, f dto.SessionFilter) ([]model.SessionCaisse, error)
	CreerSession(ctx context.Context, req dto.NouvelleSessionRequest) (*model.SessionCaisse, error)
	ValiderSession(ctx context.Context, id int64, req dto.ValidationSessionRequest) (*model.SessionCaisse, error)
	RapportEcarts(ctx context.Context, f dto.SessionFilter) (*dto.RapportEcartsResponse, error)
	ExporterEcarts(ctx context.Context, f dto.EcartFilter) (*Fichier, error)
}

type tresorerieService struct {
	sessions repository.SessionCaisseRepository
	now      func() time.Time
}

func NewTresorerieService(sessions repository.SessionCaisseRepository) TresorerieService {
	return &tresorerieService{sessions: sessions, now: time.Now}
}

func (s *tresorerieService) ListerSessions(ctx context.Context, f dto.SessionFilter) ([]model.SessionCaisse, error) {
	return s.sessions.Lister(ctx, f)
}

func (s *tresorerieService) CreerSession(ctx context.Context, req dto.NouvelleSessionRequest) (*model.SessionCaisse, error) {
	if !req.FondInitial.IsPositive() {
		return nil, invalide("Le fond de caisse initial doit être supérieur à zéro")
	}
	sc, err := s.sessions.Creer(ctx, req)
	if err != nil {
		log.Error().Err(err).Int64("caissier_id", req.CaissierID).Msg("tresorerie: session create failed")
		return nil, err
	}
	log.Info().
		Int64("session_id", sc.ID).
		Int64("caissier_id", req.CaissierID).
		Str("fond_initial", req.FondInitial.StringFixed(2)).
		Msg("cash session funded")
	return sc, nil
}

// ValiderSession accepts the counted balance of a session awaiting
// validation. The backend decides between validated and anomaly.
func (s *tresorerieService) ValiderSession(ctx context.Context, id int64, req dto.ValidationSessionRequest) (*model.SessionCaisse, error) {
	if req.SoldeValide.IsNegative() {
		return nil, invalide("Le solde validé doit être positif ou nul")
	}
	sc, err := s.sessions.Obtenir(ctx, id)
	if err != nil {
		return nil, err
	}
	if sc == nil {
		return nil, introuvable("Session de caisse %d introuvable", id)
	}
	if !sc.Statut.PeutPasserA(model.StatutValidee) {
		return nil, invalide("La session %d n'est pas en attente de validation (statut %s)", id, sc.Statut)
	}
	validee, err := s.sessions.Valider(ctx, id, req)
	if err != nil {
		log.Error().Err(err).Int64("session_id", id).Msg("tresorerie: session validation failed")
		return nil, err
	}
	log.Info().Int64("session_id", id).Str("statut", string(validee.Statut)).Msg("cash session validated")
	return validee, nil
}

// ── Variance report ──────────────────────────────────────────────────────────

// RapportEcarts lists closed sessions with their expected and declared
// balances. Variances are the backend's; a session it sent without one keeps
// a nil Ecart and does not count in TotalEcart. Open and unfunded sessions
// have no variance yet.
func (s *tresorerieService) RapportEcarts(ctx context.Context, f dto.SessionFilter) (*dto.RapportEcartsResponse, error) {
	list, err := s.sessions.Lister(ctx, f)
	if err != nil {
		return nil, err
	}
	resp := &dto.RapportEcartsResponse{Lignes: []dto.LigneEcart{}, TotalEcart: decimal.Zero}
	for _, sc := range list {
		if sc.Statut == model.StatutAttenteCaissier || sc.Statut == model.StatutOuverte {
			continue
		}
		l := dto.LigneEcart{
			SessionID:    sc.ID,
			Caissier:     sc.Caissier,
			Tresorier:    sc.Tresorier,
			Statut:       string(sc.Statut),
			FondInitial:  sc.FondInitial,
			SoldeAttendu: sc.SoldeAttendu,
			SoldeDeclare: sc.SoldeDeclare,
			Ecart:        sc.Ecart,
		}
		if sc.ClosedAt != nil {
			at := sc.ClosedAt.Format(time.RFC3339)
			l.ClosedAt = &at
		}
		resp.TotalEcart = resp.TotalEcart.Add(montantOuZero(l.Ecart))
		resp.Lignes = append(resp.Lignes, l)
	}
	return resp, nil
}

func (s *tresorerieService) ExporterEcarts(ctx context.Context, f dto.EcartFilter) (*Fichier, error) {
	rapport, err := s.RapportEcarts(ctx, f.SessionFilter)
	if err != nil {
		return nil, err
	}
	t := tableau{
		feuille:  "Ecarts",
		colonnes: []string{"Session", "Caissier", "Trésorier", "Statut", "Fond initial", "Solde attendu", "Solde déclaré", "Écart", "Clôturée le"},
	}
	for _, l := range rapport.Lignes {
		t.lignes = append(t.lignes, []any{
			l.SessionID, l.Caissier, l.Tresorier, l.Statut,
			l.FondInitial, montantCellule(l.SoldeAttendu), montantCellule(l.SoldeDeclare), montantCellule(l.Ecart),
			texteCellule(l.ClosedAt),
		})
	}
	nom := fmt.Sprintf("ecarts_%s", s.now().Format("20060102_150405"))
	return encoderFichier(nom, f.Format, t, rapport)
}

func montantOuZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func montantCellule(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return *d
}

func texteCellule(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
