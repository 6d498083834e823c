package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/satch9/app-caisse-compta-sub000/internal/apierror"
	"github.com/satch9/app-caisse-compta-sub000/internal/config"
	"github.com/satch9/app-caisse-compta-sub000/internal/dto"
	"github.com/satch9/app-caisse-compta-sub000/internal/infra"
	"github.com/satch9/app-caisse-compta-sub000/internal/model"
	"github.com/satch9/app-caisse-compta-sub000/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

type clubBackend struct {
	srv         *httptest.Server
	permissions []string
	expire      atomic.Bool // every authenticated call answers 401
}

func json200(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

func newClubBackend(t *testing.T, perms ...string) *clubBackend {
	t.Helper()
	b := &clubBackend{permissions: perms}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, _ *http.Request) {
		json200(w, dto.LoginResult{Token: "jeton", Utilisateur: model.Utilisateur{ID: 1, Login: "caissier"}})
	})
	mux.HandleFunc("GET /auth/permissions", func(w http.ResponseWriter, _ *http.Request) {
		json200(w, dto.PermissionsResult{Permissions: b.permissions})
	})
	mux.HandleFunc("GET /produits", func(w http.ResponseWriter, _ *http.Request) {
		json200(w, []model.Produit{
			{ID: 1, Nom: "Bière", PrixVente: decimal.RequireFromString("5.00"), Stock: 10, Actif: true},
			{ID: 2, Nom: "Café", PrixVente: decimal.RequireFromString("1.20"), Stock: 40, Actif: true},
		})
	})
	mux.HandleFunc("GET /sessions-caisse/active", func(w http.ResponseWriter, _ *http.Request) {
		json200(w, model.SessionCaisse{ID: 7, CaissierID: 1, Statut: model.StatutOuverte})
	})
	mux.HandleFunc("GET /transactions", func(w http.ResponseWriter, _ *http.Request) {
		json200(w, []model.Transaction{})
	})

	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if b.expire.Load() && r.URL.Path != "/auth/login" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(b.srv.Close)
	return b
}

type app struct {
	engine  *gin.Engine
	session *infra.Session
}

func newApp(t *testing.T, backend *clubBackend) *app {
	t.Helper()
	cfg := &config.Config{
		Env:        "test",
		APIBaseURL: backend.srv.URL,
		TerminalID: "caisse-1",
		NomClub:    "Club test",
		StateStore: "memory",
		CORSOrigin: "*",
	}
	session := infra.NewSession()
	return &app{engine: New(cfg, repository.NewMemoryTerminalStore(), session), session: session}
}

func (a *app) do(method, path, terminal string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if terminal != "" {
		req.Header.Set("X-Terminal-ID", terminal)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *app) login(t *testing.T) {
	t.Helper()
	w := a.do(http.MethodPost, "/v1/auth/login", "", dto.LoginRequest{Login: "caissier", MotDePasse: "secret"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func etat(t *testing.T, w *httptest.ResponseRecorder) dto.EtatCaisseResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp dto.EtatCaisseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	a := newApp(t, newClubBackend(t))

	w := a.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"store":"memory"`)
	assert.Contains(t, w.Body.String(), `"session":false`)
	assert.Contains(t, w.Body.String(), `"backend":"closed"`)
}

func TestCaisse_RequiresLogin(t *testing.T) {
	a := newApp(t, newClubBackend(t, "caisse.*"))

	w := a.do(http.MethodGet, "/v1/caisse", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	var body apierror.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "/login", body.Redirect)
}

func TestCaisse_SaleFlowPerTerminal(t *testing.T) {
	a := newApp(t, newClubBackend(t, "caisse.*"))
	a.login(t)

	st := etat(t, a.do(http.MethodPost, "/v1/caisse/charger", "bar", nil))
	assert.Len(t, st.Etat.Produits, 2)
	require.NotNil(t, st.Etat.Session)

	etat(t, a.do(http.MethodPost, "/v1/caisse/panier", "bar", dto.AjouterProduitRequest{ProduitID: 1}))
	st = etat(t, a.do(http.MethodPut, "/v1/caisse/panier/1", "bar", dto.QuantiteRequest{Quantite: 3}))
	require.Len(t, st.Etat.Panier, 1)
	assert.Equal(t, 3, st.Etat.Panier[0].Quantite)
	assert.True(t, st.Total.Equal(decimal.RequireFromString("15")))

	// Another terminal has its own cart.
	other := etat(t, a.do(http.MethodGet, "/v1/caisse", "buvette", nil))
	assert.Empty(t, other.Etat.Panier)

	st = etat(t, a.do(http.MethodDelete, "/v1/caisse/panier/1", "bar", nil))
	assert.Empty(t, st.Etat.Panier)
}

func TestCaisse_ActionValidation(t *testing.T) {
	a := newApp(t, newClubBackend(t, "caisse.*"))
	a.login(t)

	w := a.do(http.MethodPost, "/v1/caisse/actions", "", map[string]any{"type": "NOPE"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	st := etat(t, a.do(http.MethodPost, "/v1/caisse/actions", "", dto.ActionRequest{Type: "SHOW_DIALOG", Dialog: "historique", Visible: true}))
	assert.True(t, st.Etat.ShowHistorique)
}

func TestStock_ForbiddenWithoutPermission(t *testing.T) {
	a := newApp(t, newClubBackend(t, "caisse.vendre"))
	a.login(t)

	w := a.do(http.MethodGet, "/v1/stock/produits", "", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBackend401_EndsSession(t *testing.T) {
	backend := newClubBackend(t, "caisse.*")
	a := newApp(t, backend)
	a.login(t)
	etat(t, a.do(http.MethodPost, "/v1/caisse/charger", "", nil))
	etat(t, a.do(http.MethodPost, "/v1/caisse/panier", "", dto.AjouterProduitRequest{ProduitID: 2}))

	backend.expire.Store(true)
	w := a.do(http.MethodPost, "/v1/caisse/charger", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"redirect":"/login"`)
	assert.False(t, a.session.Authenticated())

	// The next operator finds an empty terminal.
	backend.expire.Store(false)
	a.login(t)
	st := etat(t, a.do(http.MethodGet, "/v1/caisse", "", nil))
	assert.Empty(t, st.Etat.Panier)
}
