package service

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/satch9/app-caisse-compta-sub000/internal/dto"
	"github.com/satch9/app-caisse-compta-sub000/internal/model"
	"github.com/satch9/app-caisse-compta-sub000/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdmin(b *fakeBackend) AdminService {
	client, _ := b.client()
	return NewAdminService(repository.NewAdminRepository(client), repository.NewLogRepository(client))
}

func logsFixture() []model.LogSysteme {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return []model.LogSysteme{
		{ID: 1, Niveau: "info", Module: "caisse", Action: "vente", Message: "Vente 42", Utilisateur: "martin", CreatedAt: at},
		{ID: 2, Niveau: "error", Module: "stock", Action: "sortie", Message: "Stock; insuffisant", Utilisateur: "durand", CreatedAt: at},
	}
}

func TestAdmin_PurgerLogsDeletesAfterExport(t *testing.T) {
	b := newFakeBackend(t)
	b.repond("GET /logs", http.StatusOK, logsFixture())
	b.repond("POST /logs/suppression", http.StatusOK, dto.SuppressionLogs{Supprimes: 2})
	svc := newAdmin(b)

	f, n, err := svc.PurgerLogs(context.Background(), dto.PurgeLogsRequest{LogFilter: dto.LogFilter{Module: "caisse"}, Format: "csv"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, strings.HasSuffix(f.Nom, ".csv"))
	assert.Contains(t, string(f.Data), `"Stock; insuffisant"`, "separator inside a field is quoted")

	var req dto.SuppressionLogsRequest
	b.decode("POST /logs/suppression", &req)
	assert.Equal(t, []int64{1, 2}, req.IDs)
}

func TestAdmin_PurgerLogsOnlyDeletesExportedRows(t *testing.T) {
	b := newFakeBackend(t)
	stocke := make([]model.LogSysteme, 1000)
	for i := range stocke {
		stocke[i] = model.LogSysteme{ID: int64(i + 1), Module: "caisse", Message: "vente"}
	}
	b.handle("GET /logs", func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit <= 0 || limit > len(stocke) {
			limit = len(stocke)
		}
		jsonHandler(http.StatusOK, stocke[:limit])(w, r)
	})
	b.repond("POST /logs/suppression", http.StatusOK, dto.SuppressionLogs{Supprimes: 3})
	svc := newAdmin(b)

	f, n, err := svc.PurgerLogs(context.Background(), dto.PurgeLogsRequest{
		LogFilter: dto.LogFilter{Module: "caisse", Limit: 3},
		Format:    "json",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	var exportes []model.LogSysteme
	require.NoError(t, json.Unmarshal(f.Data, &exportes))
	var req dto.SuppressionLogsRequest
	b.decode("POST /logs/suppression", &req)
	assert.Len(t, exportes, 3)
	assert.Equal(t, []int64{1, 2, 3}, req.IDs)
}

func TestAdmin_PurgerLogsWithEmptyExportDeletesNothing(t *testing.T) {
	b := newFakeBackend(t)
	b.repond("GET /logs", http.StatusOK, []model.LogSysteme{})
	b.repond("POST /logs/suppression", http.StatusOK, dto.SuppressionLogs{Supprimes: 50})
	svc := newAdmin(b)

	_, n, err := svc.PurgerLogs(context.Background(), dto.PurgeLogsRequest{Format: "csv"})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, b.nbAppels("POST /logs/suppression"))
}

func TestAdmin_PurgerLogsKeepsLogsWhenExportFails(t *testing.T) {
	b := newFakeBackend(t)
	b.repond("GET /logs", http.StatusInternalServerError, map[string]string{"error": "base indisponible"})
	b.repond("POST /logs/suppression", http.StatusOK, dto.SuppressionLogs{Supprimes: 2})
	svc := newAdmin(b)

	_, _, err := svc.PurgerLogs(context.Background(), dto.PurgeLogsRequest{Format: "json"})
	require.Error(t, err)
	assert.Equal(t, "base indisponible", err.Error())
	assert.Zero(t, b.nbAppels("POST /logs/suppression"))
}

func TestAdmin_PurgerLogsRejectsUnknownFormat(t *testing.T) {
	b := newFakeBackend(t)
	b.repond("GET /logs", http.StatusOK, logsFixture())
	svc := newAdmin(b)

	_, _, err := svc.PurgerLogs(context.Background(), dto.PurgeLogsRequest{Format: "pdf"})
	require.ErrorIs(t, err, ErrValidation)
	assert.Zero(t, b.nbAppels("POST /logs/suppression"))
}

func TestAdmin_ExporterLogsXLSX(t *testing.T) {
	b := newFakeBackend(t)
	b.repond("GET /logs", http.StatusOK, logsFixture())
	svc := newAdmin(b)

	f, err := svc.ExporterLogs(context.Background(), dto.LogFilter{}, "xlsx")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(f.Nom, ".xlsx"))
	assert.NotEmpty(t, f.Data)
}

func TestAdmin_AssignerPermissionsChecksCatalogue(t *testing.T) {
	b := newFakeBackend(t)
	b.repond("GET /admin/permissions", http.StatusOK, []model.Permission{
		{ID: 1, Code: "caisse.vendre"}, {ID: 2, Code: "stock.voir"}, {ID: 3, Code: "stock.modifier"},
	})
	b.repond("PUT /admin/roles/{id}/permissions", http.StatusOK, model.Role{ID: 2, Nom: "Magasinier", Permissions: []string{"stock.*"}})
	svc := newAdmin(b)
	ctx := context.Background()

	_, err := svc.AssignerPermissions(ctx, 2, dto.AssignationPermissionsRequest{Codes: []string{"compta.voir"}})
	require.ErrorIs(t, err, ErrValidation)

	ro, err := svc.AssignerPermissions(ctx, 2, dto.AssignationPermissionsRequest{Codes: []string{"stock.*", "caisse.vendre"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"stock.*"}, ro.Permissions)
}

func TestAdmin_CreerUtilisateurNeedsPassword(t *testing.T) {
	b := newFakeBackend(t)
	svc := newAdmin(b)

	_, err := svc.CreerUtilisateur(context.Background(), dto.UtilisateurRequest{Login: "lea", Nom: "Lea"})
	assert.ErrorIs(t, err, ErrValidation)
}
