package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/satch9/app-caisse-compta-sub000/internal/dto"
	"github.com/satch9/app-caisse-compta-sub000/internal/model"
	"github.com/satch9/app-caisse-compta-sub000/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTresorerie(b *fakeBackend) *tresorerieService {
	client, _ := b.client()
	svc := NewTresorerieService(repository.NewSessionCaisseRepository(client)).(*tresorerieService)
	svc.now = func() time.Time { return time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC) }
	return svc
}

func sessionsCloturees() []model.SessionCaisse {
	ferme := time.Date(2026, 3, 14, 17, 0, 0, 0, time.UTC)
	attendu1, declare1 := prix("250.00"), prix("247.50")
	attendu2, declare2, ecart2 := prix("180.00"), prix("181.00"), prix("1.00")
	return []model.SessionCaisse{
		{ID: 1, Caissier: "Martin", Tresorier: "Durand", Statut: model.StatutAttenteValidation, FondInitial: prix("100"),
			SoldeAttendu: &attendu1, SoldeDeclare: &declare1, ClosedAt: &ferme},
		{ID: 2, Caissier: "Bernard", Tresorier: "Durand", Statut: model.StatutValidee, FondInitial: prix("100"),
			SoldeAttendu: &attendu2, SoldeDeclare: &declare2, Ecart: &ecart2, ClosedAt: &ferme},
		{ID: 3, Caissier: "Petit", Statut: model.StatutOuverte, FondInitial: prix("50")},
	}
}

func TestTresorerie_CreerSessionNeedsPositiveFloat(t *testing.T) {
	b := newFakeBackend(t)
	b.repond("POST /sessions-caisse", http.StatusCreated, model.SessionCaisse{ID: 4, Statut: model.StatutAttenteCaissier})
	svc := newTresorerie(b)
	ctx := context.Background()

	_, err := svc.CreerSession(ctx, dto.NouvelleSessionRequest{CaissierID: 2, FondInitial: prix("0")})
	require.ErrorIs(t, err, ErrValidation)
	assert.Zero(t, b.nbAppels("POST /sessions-caisse"))

	sc, err := svc.CreerSession(ctx, dto.NouvelleSessionRequest{CaissierID: 2, FondInitial: prix("150")})
	require.NoError(t, err)
	assert.Equal(t, model.StatutAttenteCaissier, sc.Statut)

	var envoye dto.NouvelleSessionRequest
	b.decode("POST /sessions-caisse", &envoye)
	assert.True(t, envoye.FondInitial.Equal(prix("150")))
}

func TestTresorerie_ValiderSession(t *testing.T) {
	b := newFakeBackend(t)
	ouverte := sessionOuverte()
	b.repond("GET /sessions-caisse/{id}", http.StatusOK, ouverte)
	svc := newTresorerie(b)
	ctx := context.Background()

	_, err := svc.ValiderSession(ctx, 7, dto.ValidationSessionRequest{SoldeValide: prix("-1")})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.ValiderSession(ctx, 7, dto.ValidationSessionRequest{SoldeValide: prix("200")})
	require.ErrorIs(t, err, ErrValidation, "open session cannot be validated")

	attente := sessionOuverte()
	attente.Statut = model.StatutAttenteValidation
	validee := sessionOuverte()
	validee.Statut = model.StatutValidee
	b.repond("GET /sessions-caisse/{id}", http.StatusOK, attente)
	b.repond("POST /sessions-caisse/{id}/valider", http.StatusOK, validee)

	sc, err := svc.ValiderSession(ctx, 7, dto.ValidationSessionRequest{SoldeValide: prix("200")})
	require.NoError(t, err)
	assert.Equal(t, model.StatutValidee, sc.Statut)
}

func TestTresorerie_ValiderUnknownSession(t *testing.T) {
	b := newFakeBackend(t)
	b.repond("GET /sessions-caisse/{id}", http.StatusNotFound, map[string]string{"message": "introuvable"})
	svc := newTresorerie(b)

	_, err := svc.ValiderSession(context.Background(), 99, dto.ValidationSessionRequest{SoldeValide: prix("1")})
	assert.ErrorIs(t, err, ErrIntrouvable)
}

func TestTresorerie_RapportEcarts(t *testing.T) {
	b := newFakeBackend(t)
	b.repond("GET /sessions-caisse", http.StatusOK, sessionsCloturees())
	svc := newTresorerie(b)

	r, err := svc.RapportEcarts(context.Background(), dto.SessionFilter{})
	require.NoError(t, err)
	require.Len(t, r.Lignes, 2, "open session has no variance")
	assert.Nil(t, r.Lignes[0].Ecart, "the backend sent no variance")
	require.NotNil(t, r.Lignes[1].Ecart)
	assert.True(t, r.Lignes[1].Ecart.Equal(prix("1.00")))
	assert.True(t, r.TotalEcart.Equal(prix("1.00")))
}

func TestTresorerie_ExporterEcarts(t *testing.T) {
	b := newFakeBackend(t)
	b.repond("GET /sessions-caisse", http.StatusOK, sessionsCloturees())
	svc := newTresorerie(b)
	ctx := context.Background()

	csvFile, err := svc.ExporterEcarts(ctx, dto.EcartFilter{Format: "csv"})
	require.NoError(t, err)
	assert.Equal(t, "ecarts_20260314_183000.csv", csvFile.Nom)
	lignes := strings.Split(strings.TrimSpace(strings.TrimPrefix(string(csvFile.Data), "\ufeff")), "\n")
	require.Len(t, lignes, 3)
	assert.True(t, strings.HasPrefix(lignes[0], "Session;Caissier;"))
	assert.Contains(t, lignes[1], ";250;247.5;;", "no variance without the backend's")
	assert.Contains(t, lignes[2], ";180;181;1;")

	jsonFile, err := svc.ExporterEcarts(ctx, dto.EcartFilter{Format: "json"})
	require.NoError(t, err)
	var doc dto.RapportEcartsResponse
	require.NoError(t, json.Unmarshal(jsonFile.Data, &doc))
	assert.Len(t, doc.Lignes, 2)

	xlsx, err := svc.ExporterEcarts(ctx, dto.EcartFilter{Format: "xlsx"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(xlsx.Data, []byte("PK")), "xlsx is a zip archive")

	_, err = svc.ExporterEcarts(ctx, dto.EcartFilter{Format: "pdf"})
	assert.ErrorIs(t, err, ErrValidation)
}
