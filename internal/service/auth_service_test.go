package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/satch9/app-caisse-compta-sub000/internal/dto"
	"github.com/satch9/app-caisse-compta-sub000/internal/infra"
	"github.com/satch9/app-caisse-compta-sub000/internal/model"
	"github.com/satch9/app-caisse-compta-sub000/internal/permission"
	"github.com/satch9/app-caisse-compta-sub000/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth(b *fakeBackend) (AuthService, DashboardService, *infra.Session) {
	session := infra.NewSession()
	client := infra.NewBackendClient(b.srv.URL, 0, session)
	auth := NewAuthService(repository.NewAuthRepository(client), session)
	dash := NewDashboardService(repository.NewSessionCaisseRepository(client), session)
	return auth, dash, session
}

func TestAuth_LoginLoadsPermissions(t *testing.T) {
	b := newFakeBackend(t)
	b.repond("POST /auth/login", http.StatusOK, dto.LoginResult{
		Token:       "jeton",
		Utilisateur: model.Utilisateur{ID: 3, Login: "martin", Nom: "Martin"},
	})
	b.repond("GET /auth/permissions", http.StatusOK, dto.PermissionsResult{Permissions: []string{"caisse.*"}})
	auth, _, session := newAuth(b)

	me, err := auth.Login(context.Background(), dto.LoginRequest{Login: "martin", MotDePasse: "secret"})
	require.NoError(t, err)
	assert.True(t, me.Chargees)
	assert.Equal(t, []string{"caisse.*"}, me.Permissions)
	assert.True(t, session.Gate().Can(permission.CaisseVendre))

	var envoye dto.LoginRequest
	b.decode("POST /auth/login", &envoye)
	assert.Equal(t, "secret", envoye.MotDePasse)
}

func TestAuth_BadCredentials(t *testing.T) {
	b := newFakeBackend(t)
	b.repond("POST /auth/login", http.StatusUnauthorized, map[string]string{"message": "Mot de passe incorrect"})
	auth, _, session := newAuth(b)

	_, err := auth.Login(context.Background(), dto.LoginRequest{Login: "martin", MotDePasse: "faux"})
	require.ErrorIs(t, err, ErrValidation)
	assert.False(t, session.Authenticated())
}

func TestAuth_PermissionsRetriedByMe(t *testing.T) {
	b := newFakeBackend(t)
	b.repond("POST /auth/login", http.StatusOK, dto.LoginResult{Token: "jeton", Utilisateur: model.Utilisateur{ID: 3}})
	b.repond("GET /auth/permissions", http.StatusInternalServerError, nil)
	auth, dash, _ := newAuth(b)
	ctx := context.Background()

	me, err := auth.Login(ctx, dto.LoginRequest{Login: "martin", MotDePasse: "secret"})
	require.NoError(t, err)
	assert.False(t, me.Chargees)
	assert.Nil(t, me.Permissions)

	tableau, err := dash.Tableau(ctx)
	require.NoError(t, err)
	assert.True(t, tableau.Chargement)
	assert.Empty(t, tableau.Ecrans, "nothing shown while permissions load")

	b.repond("GET /auth/permissions", http.StatusOK, dto.PermissionsResult{Permissions: []string{"stock.voir"}})
	me, err = auth.Me(ctx)
	require.NoError(t, err)
	assert.True(t, me.Chargees)
	assert.Equal(t, 2, b.nbAppels("GET /auth/permissions"))
}

func TestAuth_LogoutThenMe(t *testing.T) {
	b := newFakeBackend(t)
	b.repond("POST /auth/login", http.StatusOK, dto.LoginResult{Token: "jeton", Utilisateur: model.Utilisateur{ID: 3}})
	b.repond("GET /auth/permissions", http.StatusOK, dto.PermissionsResult{Permissions: []string{}})
	auth, dash, _ := newAuth(b)
	ctx := context.Background()

	_, err := auth.Login(ctx, dto.LoginRequest{Login: "martin", MotDePasse: "secret"})
	require.NoError(t, err)
	auth.Logout(ctx)

	_, err = auth.Me(ctx)
	assert.ErrorIs(t, err, infra.ErrUnauthorized)
	_, err = dash.Tableau(ctx)
	assert.ErrorIs(t, err, infra.ErrUnauthorized)
}

func TestDashboard_ShowsActiveSessionForCashiers(t *testing.T) {
	b := newFakeBackend(t)
	b.repond("POST /auth/login", http.StatusOK, dto.LoginResult{Token: "jeton", Utilisateur: model.Utilisateur{ID: 3}})
	b.repond("GET /auth/permissions", http.StatusOK, dto.PermissionsResult{Permissions: []string{"caisse.vendre", "admin.logs"}})
	b.repond("GET /sessions-caisse/active", http.StatusOK, sessionOuverte())
	auth, dash, _ := newAuth(b)
	ctx := context.Background()

	_, err := auth.Login(ctx, dto.LoginRequest{Login: "martin", MotDePasse: "secret"})
	require.NoError(t, err)

	tableau, err := dash.Tableau(ctx)
	require.NoError(t, err)
	codes := make([]string, 0, len(tableau.Ecrans))
	for _, e := range tableau.Ecrans {
		codes = append(codes, e.Code)
	}
	assert.Equal(t, []string{"caisse", "admin", "admin/logs"}, codes)
	require.NotNil(t, tableau.Session)
	assert.Equal(t, int64(7), tableau.Session.ID)
}
