package service

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/satch9/app-caisse-compta-sub000/internal/infra"
	"github.com/satch9/app-caisse-compta-sub000/internal/model"
	"github.com/satch9/app-caisse-compta-sub000/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// ── Fake club backend ─────────────────────────────────────────────────────────

type fakeBackend struct {
	t   *testing.T
	mux *http.ServeMux
	srv *httptest.Server

	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	appels   map[string]int
	corps    map[string][]byte
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	b := &fakeBackend{
		t:        t,
		mux:      http.NewServeMux(),
		handlers: make(map[string]http.HandlerFunc),
		appels:   make(map[string]int),
		corps:    make(map[string][]byte),
	}
	b.srv = httptest.NewServer(b.mux)
	t.Cleanup(b.srv.Close)
	return b
}

// repond makes pattern ("METHOD /path") answer status with body as JSON,
// replacing any previous answer.
func (b *fakeBackend) repond(pattern string, status int, body any) {
	b.handle(pattern, jsonHandler(status, body))
}

// parDefaut is repond unless the test already registered pattern.
func (b *fakeBackend) parDefaut(pattern string, status int, body any) {
	b.mu.Lock()
	_, ok := b.handlers[pattern]
	b.mu.Unlock()
	if !ok {
		b.repond(pattern, status, body)
	}
}

func jsonHandler(status int, body any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if body != nil {
			_ = json.NewEncoder(w).Encode(body)
		}
	}
}

func (b *fakeBackend) handle(pattern string, h http.HandlerFunc) {
	b.mu.Lock()
	_, existe := b.handlers[pattern]
	b.handlers[pattern] = h
	b.mu.Unlock()
	if existe {
		return
	}
	b.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.appels[pattern]++
		b.corps[pattern] = data
		current := b.handlers[pattern]
		b.mu.Unlock()
		current(w, r)
	})
}

func (b *fakeBackend) nbAppels(pattern string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.appels[pattern]
}

// decode unmarshals the last body received on pattern into out.
func (b *fakeBackend) decode(pattern string, out any) {
	b.t.Helper()
	b.mu.Lock()
	data := b.corps[pattern]
	b.mu.Unlock()
	require.NoError(b.t, json.Unmarshal(data, out))
}

// client returns a backend client over a logged-in session.
func (b *fakeBackend) client() (*infra.BackendClient, *infra.Session) {
	session := infra.NewSession()
	session.Login("jeton-test", &model.Utilisateur{ID: 1, Login: "caissier", Nom: "Martin"})
	return infra.NewBackendClient(b.srv.URL, 0, session), session
}

// ── Fixtures ──────────────────────────────────────────────────────────────────

func prix(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func catalogue() []model.Produit {
	return []model.Produit{
		{ID: 1, Nom: "Bière", PrixVente: prix("5.00"), Stock: 2, Actif: true},
		{ID: 2, Nom: "Sandwich", PrixVente: prix("4.50"), Stock: 0, Actif: true},
		{ID: 3, Nom: "Café", PrixVente: prix("1.20"), Stock: 40, Actif: true},
	}
}

func sessionOuverte() *model.SessionCaisse {
	return &model.SessionCaisse{ID: 7, CaissierID: 1, FondInitial: prix("100"), Statut: model.StatutOuverte}
}

type caisseFixture struct {
	svc     CaisseService
	store   repository.TerminalStore
	session *infra.Session
	backend *fakeBackend
}

const terminal = "caisse-test"

// newCaisseFixture serves the catalogue, an open session and no transactions.
func newCaisseFixture(t *testing.T, b *fakeBackend) *caisseFixture {
	t.Helper()
	b.parDefaut("GET /produits", http.StatusOK, catalogue())
	b.parDefaut("GET /sessions-caisse/active", http.StatusOK, sessionOuverte())
	b.parDefaut("GET /transactions", http.StatusOK, []model.Transaction{})

	client, session := b.client()
	store := repository.NewMemoryTerminalStore()
	svc := NewCaisseService(
		store,
		repository.NewProduitRepository(client),
		repository.NewTransactionRepository(client),
		repository.NewSessionCaisseRepository(client),
		session,
		"Club test",
	)
	return &caisseFixture{svc: svc, store: store, session: session, backend: b}
}
