package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/satch9/app-caisse-compta-sub000/internal/caisse"
	"github.com/satch9/app-caisse-compta-sub000/internal/dto"
	"github.com/satch9/app-caisse-compta-sub000/internal/infra"
	"github.com/satch9/app-caisse-compta-sub000/internal/model"
	"github.com/satch9/app-caisse-compta-sub000/internal/repository"

	"github.com/rs/zerolog/log"
)

// Operations that call the backend. While one is in flight on a terminal a
// second submission of the same operation is refused.
const (
	OpCharger   = "charger"
	OpEncaisser = "encaisser"
	OpMonnaie   = "monnaie"
	OpOuvrir    = "ouvrir_session"
	OpFermer    = "fermer_session"
	OpAnnuler   = "annuler"
)

const historiqueLimite = 50

// CaisseService is the POS screen container. Each terminal's working state is
// a caisse.State kept in a TerminalStore and only changed through
// caisse.Reduce.
type CaisseService interface {
	Etat(ctx context.Context, terminalID string) (*dto.EtatCaisseResponse, error)
	Charger(ctx context.Context, terminalID string) (*dto.EtatCaisseResponse, error)
	Dispatch(ctx context.Context, terminalID string, a caisse.Action) (*dto.EtatCaisseResponse, error)
	Touche(ctx context.Context, terminalID string, t caisse.Touche) (*dto.EtatCaisseResponse, error)

	AjouterProduit(ctx context.Context, terminalID string, produitID int64) (*dto.EtatCaisseResponse, error)
	ModifierQuantite(ctx context.Context, terminalID string, produitID int64, quantite int) (*dto.EtatCaisseResponse, error)
	RetirerProduit(ctx context.Context, terminalID string, produitID int64) (*dto.EtatCaisseResponse, error)
	ViderPanier(ctx context.Context, terminalID string) (*dto.EtatCaisseResponse, error)

	Encaisser(ctx context.Context, terminalID string) (*dto.EtatCaisseResponse, error)
	RendreMonnaie(ctx context.Context, terminalID string) (*dto.EtatCaisseResponse, error)
	OuvrirSession(ctx context.Context, terminalID string) (*dto.EtatCaisseResponse, error)
	FermerSession(ctx context.Context, terminalID string) (*dto.EtatCaisseResponse, error)
	AnnulerTransaction(ctx context.Context, terminalID string) (*dto.EtatCaisseResponse, error)
	Ticket(ctx context.Context, terminalID string) (*Fichier, error)

	// Reinitialiser drops every terminal's working state.
	Reinitialiser(ctx context.Context) error
}

type caisseService struct {
	store        repository.TerminalStore
	produits     repository.ProduitRepository
	transactions repository.TransactionRepository
	sessions     repository.SessionCaisseRepository
	nomClub      string

	mu        sync.Mutex
	terminaux map[string]*sync.Mutex
	enCours   map[string]bool // terminalID + "/" + op
}

// NewCaisseService wires the screen to its backend repositories. When session
// is non-nil every logout resets all terminals.
func NewCaisseService(
	store repository.TerminalStore,
	produits repository.ProduitRepository,
	transactions repository.TransactionRepository,
	sessions repository.SessionCaisseRepository,
	session *infra.Session,
	nomClub string,
) CaisseService {
	s := &caisseService{
		store:        store,
		produits:     produits,
		transactions: transactions,
		sessions:     sessions,
		nomClub:      nomClub,
		terminaux:    make(map[string]*sync.Mutex),
		enCours:      make(map[string]bool),
	}
	if session != nil {
		session.Subscribe(func(ev infra.SessionEvent) {
			if err := s.Reinitialiser(context.Background()); err != nil {
				log.Error().Err(err).Str("reason", string(ev.Reason)).Msg("caisse: reset after logout failed")
			}
		})
	}
	return s
}

// ── State plumbing ───────────────────────────────────────────────────────────

func (s *caisseService) verrou(terminalID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.terminaux[terminalID]
	if !ok {
		m = &sync.Mutex{}
		s.terminaux[terminalID] = m
	}
	return m
}

func (s *caisseService) lire(ctx context.Context, terminalID string) (*caisse.State, error) {
	m := s.verrou(terminalID)
	m.Lock()
	defer m.Unlock()
	return s.store.Load(ctx, terminalID)
}

// appliquer runs load → reduce → save under the terminal's lock. The state is
// written back only when an action changed it.
func (s *caisseService) appliquer(ctx context.Context, terminalID string, actions ...caisse.Action) (*caisse.State, error) {
	m := s.verrou(terminalID)
	m.Lock()
	defer m.Unlock()
	return s.reduire(ctx, terminalID, actions...)
}

// appliquerPanier is appliquer for cart edits. They are refused while a sale
// is being posted, so the cart cleared afterwards is the cart that was sold.
func (s *caisseService) appliquerPanier(ctx context.Context, terminalID string, a caisse.Action) (*caisse.State, error) {
	m := s.verrou(terminalID)
	m.Lock()
	defer m.Unlock()
	if s.estEnCours(terminalID, OpEncaisser) {
		return nil, ErrOperationEnCours
	}
	return s.reduire(ctx, terminalID, a)
}

// must be called under the terminal's lock
func (s *caisseService) reduire(ctx context.Context, terminalID string, actions ...caisse.Action) (*caisse.State, error) {
	initial, err := s.store.Load(ctx, terminalID)
	if err != nil {
		return nil, fmt.Errorf("caisse: load %s: %w", terminalID, err)
	}
	st := initial
	for _, a := range actions {
		if a == nil {
			continue
		}
		st = caisse.Reduce(st, a)
		infra.Dispatches.WithLabelValues(a.Type()).Inc()
	}
	if st != initial {
		if err := s.store.Save(ctx, terminalID, st); err != nil {
			return nil, fmt.Errorf("caisse: save %s: %w", terminalID, err)
		}
	}
	return st, nil
}

// commencer marks op in flight; the returned func clears it and may be called
// more than once. Operations clear the flag before building their response so
// the display sees the operation as finished.
func (s *caisseService) commencer(terminalID, op string) (func(), error) {
	key := terminalID + "/" + op
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.enCours[key] {
		return nil, ErrOperationEnCours
	}
	s.enCours[key] = true
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.enCours, key)
			s.mu.Unlock()
		})
	}, nil
}

func (s *caisseService) estEnCours(terminalID, op string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enCours[terminalID+"/"+op]
}

func (s *caisseService) chargement(terminalID string) map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]bool)
	prefix := terminalID + "/"
	for k := range s.enCours {
		if strings.HasPrefix(k, prefix) {
			out[strings.TrimPrefix(k, prefix)] = true
		}
	}
	return out
}

func (s *caisseService) reponse(terminalID string, st *caisse.State) *dto.EtatCaisseResponse {
	resp := &dto.EtatCaisseResponse{
		Etat:           st,
		Total:          caisse.Total(st.Panier),
		NombreArticles: caisse.NombreArticles(st.Panier),
		Chargement:     s.chargement(terminalID),
	}
	if m, ok := caisse.MonnaieARendre(st); ok {
		m = caisse.Affichage(m)
		resp.MonnaieARendre = &m
	}
	if r, err := caisse.ResteMonnayeur(st); err == nil {
		resp.ResteMonnayeur = &r
	}
	return resp
}

func (s *caisseService) repondre(terminalID string, st *caisse.State, err error) (*dto.EtatCaisseResponse, error) {
	if err != nil {
		return nil, err
	}
	return s.reponse(terminalID, st), nil
}

// ── Read / generic dispatch ──────────────────────────────────────────────────

func (s *caisseService) Etat(ctx context.Context, terminalID string) (*dto.EtatCaisseResponse, error) {
	st, err := s.lire(ctx, terminalID)
	return s.repondre(terminalID, st, err)
}

// Charger refreshes products, the active session and its recent transactions.
func (s *caisseService) Charger(ctx context.Context, terminalID string) (*dto.EtatCaisseResponse, error) {
	fin, err := s.commencer(terminalID, OpCharger)
	if err != nil {
		return nil, err
	}
	defer fin()

	produits, err := s.produits.Lister(ctx, dto.ProduitFilter{Actifs: true})
	if err != nil {
		log.Error().Err(err).Str("terminal", terminalID).Msg("caisse: products fetch failed")
		return nil, err
	}
	session, err := s.sessions.Active(ctx)
	if err != nil {
		log.Error().Err(err).Str("terminal", terminalID).Msg("caisse: active session fetch failed")
		return nil, err
	}
	actions := []caisse.Action{caisse.SetProduits{Produits: produits}, caisse.SetSession{Session: session}}
	if session != nil {
		txs, err := s.transactions.Lister(ctx, dto.TransactionFilter{SessionID: &session.ID, Limit: historiqueLimite})
		if err != nil {
			log.Error().Err(err).Str("terminal", terminalID).Msg("caisse: transactions fetch failed")
			return nil, err
		}
		actions = append(actions, caisse.SetTransactions{Transactions: txs})
	} else {
		actions = append(actions, caisse.SetTransactions{Transactions: nil})
	}
	st, err := s.appliquer(ctx, terminalID, actions...)
	fin()
	return s.repondre(terminalID, st, err)
}

func (s *caisseService) Dispatch(ctx context.Context, terminalID string, a caisse.Action) (*dto.EtatCaisseResponse, error) {
	if a == nil {
		return nil, invalide("Action inconnue")
	}
	st, err := s.appliquer(ctx, terminalID, a)
	return s.repondre(terminalID, st, err)
}

// Touche routes a keypad key. OK confirms the operation bound to the active
// field: payment fields cash in, change-making fields make change, the
// declared balance closes the session.
func (s *caisseService) Touche(ctx context.Context, terminalID string, t caisse.Touche) (*dto.EtatCaisseResponse, error) {
	a, valider, err := caisse.Route(t)
	if err != nil {
		return nil, invalide("Touche inconnue : %s", t)
	}
	if !valider {
		return s.Dispatch(ctx, terminalID, a)
	}

	st, err := s.lire(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	switch st.ActiveInput {
	case caisse.InputMontantRecu, caisse.InputReferenceCheque, caisse.InputReferenceCB:
		return s.Encaisser(ctx, terminalID)
	case caisse.InputMonnaieurRecu, caisse.InputMonnaieurRendu:
		return s.RendreMonnaie(ctx, terminalID)
	case caisse.InputSoldeDeclare:
		return s.FermerSession(ctx, terminalID)
	}
	return s.reponse(terminalID, st), nil
}

// ── Cart ─────────────────────────────────────────────────────────────────────

// AjouterProduit adds one unit from the loaded catalogue. Out-of-stock and
// unknown products are refused here; the reducer clamps the rest.
func (s *caisseService) AjouterProduit(ctx context.Context, terminalID string, produitID int64) (*dto.EtatCaisseResponse, error) {
	st, err := s.lire(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	p, ok := st.Produit(produitID)
	if !ok {
		return nil, introuvable("Produit %d introuvable", produitID)
	}
	if !p.EnStock() {
		return nil, invalide("%s est en rupture de stock", p.Nom)
	}
	st, err = s.appliquerPanier(ctx, terminalID, caisse.AddToPanier{Produit: p})
	return s.repondre(terminalID, st, err)
}

func (s *caisseService) ModifierQuantite(ctx context.Context, terminalID string, produitID int64, quantite int) (*dto.EtatCaisseResponse, error) {
	st, err := s.appliquerPanier(ctx, terminalID, caisse.SetQuantite{ProduitID: produitID, Quantite: quantite})
	return s.repondre(terminalID, st, err)
}

func (s *caisseService) RetirerProduit(ctx context.Context, terminalID string, produitID int64) (*dto.EtatCaisseResponse, error) {
	st, err := s.appliquerPanier(ctx, terminalID, caisse.RemoveFromPanier{ProduitID: produitID})
	return s.repondre(terminalID, st, err)
}

func (s *caisseService) ViderPanier(ctx context.Context, terminalID string) (*dto.EtatCaisseResponse, error) {
	st, err := s.appliquerPanier(ctx, terminalID, caisse.ClearPanier{})
	return s.repondre(terminalID, st, err)
}

// ── Encaisser ────────────────────────────────────────────────────────────────

// Encaisser validates the sale locally, posts it, and on success shows the
// success dialog, keeps the sale for the receipt, empties the cart and
// refetches products and transactions.
func (s *caisseService) Encaisser(ctx context.Context, terminalID string) (*dto.EtatCaisseResponse, error) {
	fin, err := s.commencer(terminalID, OpEncaisser)
	if err != nil {
		return nil, err
	}
	defer fin()

	st, err := s.lire(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	vente, err := nouvelleVente(st)
	if err != nil {
		return nil, err
	}

	tx, err := s.transactions.Vendre(ctx, *vente)
	if err != nil {
		log.Error().Err(err).Str("terminal", terminalID).Msg("caisse: sale failed")
		return nil, err
	}
	log.Info().
		Str("terminal", terminalID).
		Int64("transaction_id", tx.ID).
		Str("total", tx.MontantTotal.StringFixed(2)).
		Str("paiement", tx.TypePaiement).
		Msg("sale recorded")

	st, err = s.appliquer(ctx, terminalID,
		caisse.SetDerniereVente{Vente: tx},
		caisse.ShowDialog{Dialog: caisse.DialogSucces, Visible: true},
		caisse.ClearPanier{},
		caisse.ResetPaymentForm{},
	)
	fin()
	if err != nil {
		return nil, err
	}
	return s.rafraichir(ctx, terminalID, st)
}

func nouvelleVente(st *caisse.State) (*dto.NouvelleVente, error) {
	if len(st.Panier) == 0 {
		return nil, invalide("Le panier est vide")
	}
	if !st.Session.EstOuverte() {
		return nil, invalide("Aucune session de caisse ouverte")
	}
	lignes := make([]dto.LigneVente, 0, len(st.Panier))
	for _, l := range st.Panier {
		if l.Quantite > l.Produit.Stock {
			return nil, invalide("Stock insuffisant pour %s (%d disponible)", l.Produit.Nom, l.Produit.Stock)
		}
		lignes = append(lignes, dto.LigneVente{ProduitID: l.Produit.ID, Quantite: l.Quantite})
	}

	total := caisse.Total(st.Panier)
	v := &dto.NouvelleVente{
		SessionID:    st.Session.ID,
		TypePaiement: string(st.ModePaiement),
		Lignes:       lignes,
		MontantTotal: total,
	}
	switch st.ModePaiement {
	case caisse.ModeEspeces:
		recu, err := caisse.ParseMontant(st.MontantRecu)
		if err != nil {
			return nil, invalide("Montant reçu invalide")
		}
		if recu.LessThan(total) {
			return nil, invalide("Montant reçu insuffisant (total %s €)", total.StringFixed(2))
		}
		rendu := recu.Sub(total)
		v.MontantRecu, v.MonnaieRendue = &recu, &rendu
	case caisse.ModeCheque:
		ref := strings.TrimSpace(st.ReferenceCheque)
		if ref == "" {
			return nil, invalide("La référence du chèque est obligatoire")
		}
		v.ReferenceCheque = &ref
	case caisse.ModeCB:
		ref := strings.TrimSpace(st.ReferenceCB)
		if ref == "" {
			return nil, invalide("La référence du paiement CB est obligatoire")
		}
		v.ReferenceCB = &ref
	default:
		return nil, invalide("Mode de paiement inconnu")
	}
	return v, nil
}

// rafraichir refetches products and transactions after a successful mutation.
// The mutation already happened, so a failed refetch is only logged.
func (s *caisseService) rafraichir(ctx context.Context, terminalID string, st *caisse.State) (*dto.EtatCaisseResponse, error) {
	var actions []caisse.Action
	if produits, err := s.produits.Lister(ctx, dto.ProduitFilter{Actifs: true}); err != nil {
		log.Warn().Err(err).Str("terminal", terminalID).Msg("caisse: products refetch failed")
	} else {
		actions = append(actions, caisse.SetProduits{Produits: produits})
	}
	if st.Session != nil {
		f := dto.TransactionFilter{SessionID: &st.Session.ID, Limit: historiqueLimite}
		if txs, err := s.transactions.Lister(ctx, f); err != nil {
			log.Warn().Err(err).Str("terminal", terminalID).Msg("caisse: transactions refetch failed")
		} else {
			actions = append(actions, caisse.SetTransactions{Transactions: txs})
		}
	}
	if len(actions) == 0 {
		return s.reponse(terminalID, st), nil
	}
	next, err := s.appliquer(ctx, terminalID, actions...)
	if err != nil {
		return nil, err
	}
	return s.reponse(terminalID, next), nil
}

// ── Monnayeur ────────────────────────────────────────────────────────────────

// RendreMonnaie records a change-making operation (no sale): a customer hands
// a note and gets coins back.
func (s *caisseService) RendreMonnaie(ctx context.Context, terminalID string) (*dto.EtatCaisseResponse, error) {
	fin, err := s.commencer(terminalID, OpMonnaie)
	if err != nil {
		return nil, err
	}
	defer fin()

	st, err := s.lire(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	if !st.Session.EstOuverte() {
		return nil, invalide("Aucune session de caisse ouverte")
	}
	recu, err := caisse.ParseMontant(st.MonnaieurRecu)
	if err != nil || !recu.IsPositive() {
		return nil, invalide("Le montant reçu doit être supérieur à zéro")
	}
	rendu, err := caisse.ParseMontant(st.MonnaieurRendu)
	if err != nil || !rendu.IsPositive() {
		return nil, invalide("Le montant rendu doit être supérieur à zéro")
	}
	if rendu.GreaterThan(recu) {
		return nil, invalide("Le montant rendu ne peut pas dépasser le montant reçu")
	}

	op := dto.OperationMonnaie{SessionID: st.Session.ID, MontantRecu: recu, MontantRendu: rendu}
	if _, err := s.transactions.Monnaie(ctx, op); err != nil {
		log.Error().Err(err).Str("terminal", terminalID).Msg("caisse: change-making failed")
		return nil, err
	}
	st, err = s.appliquer(ctx, terminalID, caisse.ResetMonnayeurForm{})
	fin()
	if err != nil {
		return nil, err
	}
	return s.rafraichir(ctx, terminalID, st)
}

// ── Session lifecycle ────────────────────────────────────────────────────────

// OuvrirSession is the cashier accepting a session the treasurer funded.
func (s *caisseService) OuvrirSession(ctx context.Context, terminalID string) (*dto.EtatCaisseResponse, error) {
	fin, err := s.commencer(terminalID, OpOuvrir)
	if err != nil {
		return nil, err
	}
	defer fin()

	st, err := s.lire(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	if st.Session == nil {
		return nil, invalide("Aucune session de caisse à ouvrir")
	}
	if !st.Session.Statut.PeutPasserA(model.StatutOuverte) {
		return nil, invalide("La session ne peut pas être ouverte (statut %s)", st.Session.Statut)
	}

	req := dto.OuvertureSession{NoteOuverture: noteOptionnelle(st.NoteOuverture)}
	session, err := s.sessions.Ouvrir(ctx, st.Session.ID, req)
	if err != nil {
		log.Error().Err(err).Str("terminal", terminalID).Int64("session_id", st.Session.ID).Msg("caisse: session open failed")
		return nil, err
	}
	log.Info().Str("terminal", terminalID).Int64("session_id", session.ID).Msg("cash session opened")

	st, err = s.appliquer(ctx, terminalID,
		caisse.SetSession{Session: session},
		caisse.ShowDialog{Dialog: caisse.DialogOuvrirSession, Visible: false},
		caisse.ResetSessionForm{},
	)
	fin()
	return s.repondre(terminalID, st, err)
}

// FermerSession closes an open session with the declared drawer balance. The
// backend computes expected balance and variance.
func (s *caisseService) FermerSession(ctx context.Context, terminalID string) (*dto.EtatCaisseResponse, error) {
	fin, err := s.commencer(terminalID, OpFermer)
	if err != nil {
		return nil, err
	}
	defer fin()

	st, err := s.lire(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	if st.Session == nil || !st.Session.Statut.PeutPasserA(model.StatutAttenteValidation) {
		return nil, invalide("Aucune session de caisse ouverte")
	}
	solde, err := caisse.ParseMontant(st.SoldeDeclare)
	if err != nil || solde.IsNegative() {
		return nil, invalide("Le solde déclaré doit être un montant positif ou nul")
	}

	req := dto.FermetureSession{SoldeDeclare: solde, NoteFermeture: noteOptionnelle(st.NoteFermeture)}
	session, err := s.sessions.Fermer(ctx, st.Session.ID, req)
	if err != nil {
		log.Error().Err(err).Str("terminal", terminalID).Int64("session_id", st.Session.ID).Msg("caisse: session close failed")
		return nil, err
	}
	ev := log.Info().Str("terminal", terminalID).Int64("session_id", session.ID).Str("solde_declare", solde.StringFixed(2))
	if session.Ecart != nil {
		ev = ev.Str("ecart", session.Ecart.StringFixed(2))
	}
	ev.Msg("cash session closed")

	st, err = s.appliquer(ctx, terminalID,
		caisse.SetSession{Session: session},
		caisse.ShowDialog{Dialog: caisse.DialogFermerSession, Visible: false},
		caisse.ResetSessionForm{},
	)
	fin()
	return s.repondre(terminalID, st, err)
}

func noteOptionnelle(note string) *string {
	note = strings.TrimSpace(note)
	if note == "" {
		return nil
	}
	return &note
}

// ── Annulation ───────────────────────────────────────────────────────────────

// AnnulerTransaction cancels the transaction selected in the cancellation
// dialog. A reason is mandatory.
func (s *caisseService) AnnulerTransaction(ctx context.Context, terminalID string) (*dto.EtatCaisseResponse, error) {
	fin, err := s.commencer(terminalID, OpAnnuler)
	if err != nil {
		return nil, err
	}
	defer fin()

	st, err := s.lire(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	if st.TransactionAAnnuler == nil {
		return nil, invalide("Aucune transaction sélectionnée")
	}
	motif := strings.TrimSpace(st.MotifAnnulation)
	if motif == "" {
		return nil, invalide("Le motif d'annulation est obligatoire")
	}
	for _, t := range st.Transactions {
		if t.ID == *st.TransactionAAnnuler && !t.EstValidee() {
			return nil, invalide("La transaction %d est déjà annulée", t.ID)
		}
	}

	id := *st.TransactionAAnnuler
	if _, err := s.transactions.Annuler(ctx, id, motif); err != nil {
		log.Error().Err(err).Str("terminal", terminalID).Int64("transaction_id", id).Msg("caisse: cancellation failed")
		return nil, err
	}
	log.Info().Str("terminal", terminalID).Int64("transaction_id", id).Str("motif", motif).Msg("transaction cancelled")

	st, err = s.appliquer(ctx, terminalID,
		caisse.ShowDialog{Dialog: caisse.DialogAnnulation, Visible: false},
		caisse.SetTransactionAAnnuler{ID: nil},
		caisse.SetMotifAnnulation{Motif: ""},
	)
	fin()
	if err != nil {
		return nil, err
	}
	return s.rafraichir(ctx, terminalID, st)
}

// ── Ticket ───────────────────────────────────────────────────────────────────

func (s *caisseService) Ticket(ctx context.Context, terminalID string) (*Fichier, error) {
	st, err := s.lire(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	if st.DerniereVente == nil {
		return nil, introuvable("Aucune vente à imprimer")
	}
	data, err := infra.GenerateTicketPDF(st.DerniereVente, s.nomClub)
	if err != nil {
		return nil, fmt.Errorf("caisse: ticket: %w", err)
	}
	return &Fichier{
		Nom:         fmt.Sprintf("ticket-%d.pdf", st.DerniereVente.ID),
		ContentType: contentTypePDF,
		Data:        data,
	}, nil
}

// ── Reset ────────────────────────────────────────────────────────────────────

func (s *caisseService) Reinitialiser(ctx context.Context) error {
	ids, err := s.store.List(ctx)
	if err != nil {
		return fmt.Errorf("caisse: list terminals: %w", err)
	}
	for _, id := range ids {
		m := s.verrou(id)
		m.Lock()
		err := s.store.Delete(ctx, id)
		m.Unlock()
		if err != nil {
			return fmt.Errorf("caisse: reset %s: %w", id, err)
		}
	}
	log.Info().Int("terminals", len(ids)).Msg("caisse: terminal states reset")
	return nil
}
