package service

import (
	"context"
	"fmt"
	"time"

	"github.com/satch9/app-caisse-compta-sub000/internal/dto"
	"github.com/satch9/app-caisse-compta-sub000/internal/model"
	"github.com/satch9/app-caisse-compta-sub000/internal/permission"
	"github.com/satch9/app-caisse-compta-sub000/internal/repository"

	"github.com/rs/zerolog/log"
)

// AdminService backs the four admin sub-screens: users, roles, the
// permission catalogue and the system log.
type AdminService interface {
	ListerUtilisateurs(ctx context.Context) ([]model.Utilisateur, error)
	CreerUtilisateur(ctx context.Context, req dto.UtilisateurRequest) (*model.Utilisateur, error)
	ModifierUtilisateur(ctx context.Context, id int64, req dto.UtilisateurRequest) (*model.Utilisateur, error)
	SupprimerUtilisateur(ctx context.Context, id int64) error
	AssignerRoles(ctx context.Context, id int64, req dto.AssignationRolesRequest) (*model.Utilisateur, error)

	ListerRoles(ctx context.Context) ([]model.Role, error)
	CreerRole(ctx context.Context, req dto.RoleRequest) (*model.Role, error)
	ModifierRole(ctx context.Context, id int64, req dto.RoleRequest) (*model.Role, error)
	SupprimerRole(ctx context.Context, id int64) error
	AssignerPermissions(ctx context.Context, id int64, req dto.AssignationPermissionsRequest) (*model.Role, error)

	ListerPermissions(ctx context.Context) ([]model.Permission, error)

	ListerLogs(ctx context.Context, f dto.LogFilter) ([]model.LogSysteme, error)
	FiltresLogs(ctx context.Context) (*model.FiltresLogs, error)
	ExporterLogs(ctx context.Context, f dto.LogFilter, format string) (*Fichier, error)
	// PurgerLogs exports the selected logs, then deletes them. Nothing is
	// deleted when the export fails.
	PurgerLogs(ctx context.Context, req dto.PurgeLogsRequest) (*Fichier, int, error)
}

type adminService struct {
	admin repository.AdminRepository
	logs  repository.LogRepository
	now   func() time.Time
}

func NewAdminService(admin repository.AdminRepository, logs repository.LogRepository) AdminService {
	return &adminService{admin: admin, logs: logs, now: time.Now}
}

// ── Utilisateurs ─────────────────────────────────────────────────────────────

func (s *adminService) ListerUtilisateurs(ctx context.Context) ([]model.Utilisateur, error) {
	return s.admin.ListerUtilisateurs(ctx)
}

func (s *adminService) CreerUtilisateur(ctx context.Context, req dto.UtilisateurRequest) (*model.Utilisateur, error) {
	if req.MotDePasse == nil || *req.MotDePasse == "" {
		return nil, invalide("Le mot de passe est obligatoire pour un nouvel utilisateur")
	}
	u, err := s.admin.CreerUtilisateur(ctx, req)
	if err != nil {
		log.Error().Err(err).Str("login", req.Login).Msg("admin: user create failed")
		return nil, err
	}
	log.Info().Int64("utilisateur_id", u.ID).Str("login", u.Login).Msg("user created")
	return u, nil
}

func (s *adminService) ModifierUtilisateur(ctx context.Context, id int64, req dto.UtilisateurRequest) (*model.Utilisateur, error) {
	return s.admin.ModifierUtilisateur(ctx, id, req)
}

func (s *adminService) SupprimerUtilisateur(ctx context.Context, id int64) error {
	if err := s.admin.SupprimerUtilisateur(ctx, id); err != nil {
		log.Error().Err(err).Int64("utilisateur_id", id).Msg("admin: user delete failed")
		return err
	}
	log.Info().Int64("utilisateur_id", id).Msg("user deleted")
	return nil
}

func (s *adminService) AssignerRoles(ctx context.Context, id int64, req dto.AssignationRolesRequest) (*model.Utilisateur, error) {
	return s.admin.AssignerRoles(ctx, id, req.RoleIDs)
}

// ── Roles & permissions ──────────────────────────────────────────────────────

func (s *adminService) ListerRoles(ctx context.Context) ([]model.Role, error) {
	return s.admin.ListerRoles(ctx)
}

func (s *adminService) CreerRole(ctx context.Context, req dto.RoleRequest) (*model.Role, error) {
	return s.admin.CreerRole(ctx, req)
}

func (s *adminService) ModifierRole(ctx context.Context, id int64, req dto.RoleRequest) (*model.Role, error) {
	return s.admin.ModifierRole(ctx, id, req)
}

func (s *adminService) SupprimerRole(ctx context.Context, id int64) error {
	return s.admin.SupprimerRole(ctx, id)
}

// AssignerPermissions only accepts codes the backend's catalogue knows, plus
// wildcard grants over a known prefix.
func (s *adminService) AssignerPermissions(ctx context.Context, id int64, req dto.AssignationPermissionsRequest) (*model.Role, error) {
	catalogue, err := s.admin.ListerPermissions(ctx)
	if err != nil {
		return nil, err
	}
	connus := make([]string, 0, len(catalogue))
	for _, p := range catalogue {
		connus = append(connus, p.Code)
	}
	for _, code := range req.Codes {
		if !codeConnu(connus, code) {
			return nil, invalide("Permission inconnue : %s", code)
		}
	}
	ro, err := s.admin.AssignerPermissions(ctx, id, req.Codes)
	if err != nil {
		log.Error().Err(err).Int64("role_id", id).Msg("admin: permission assignment failed")
		return nil, err
	}
	log.Info().Int64("role_id", id).Strs("codes", req.Codes).Msg("role permissions updated")
	return ro, nil
}

func (s *adminService) ListerPermissions(ctx context.Context) ([]model.Permission, error) {
	return s.admin.ListerPermissions(ctx)
}

// ── Logs ─────────────────────────────────────────────────────────────────────

func (s *adminService) ListerLogs(ctx context.Context, f dto.LogFilter) ([]model.LogSysteme, error) {
	return s.logs.Lister(ctx, f)
}

func (s *adminService) FiltresLogs(ctx context.Context) (*model.FiltresLogs, error) {
	return s.logs.Filtres(ctx)
}

func (s *adminService) ExporterLogs(ctx context.Context, f dto.LogFilter, format string) (*Fichier, error) {
	fichier, _, err := s.exporterLogs(ctx, f, format)
	return fichier, err
}

func (s *adminService) exporterLogs(ctx context.Context, f dto.LogFilter, format string) (*Fichier, []model.LogSysteme, error) {
	list, err := s.logs.Lister(ctx, f)
	if err != nil {
		return nil, nil, err
	}
	t := tableau{
		feuille:  "Logs",
		colonnes: []string{"Date", "Niveau", "Module", "Action", "Utilisateur", "Message"},
	}
	for _, l := range list {
		t.lignes = append(t.lignes, []any{
			l.CreatedAt.Format(time.RFC3339), l.Niveau, l.Module, l.Action, l.Utilisateur, l.Message,
		})
	}
	nom := fmt.Sprintf("logs_%s", s.now().Format("20060102_150405"))
	fichier, err := encoderFichier(nom, format, t, list)
	if err != nil {
		return nil, nil, err
	}
	return fichier, list, nil
}

// PurgerLogs deletes exactly the entries present in the export, so rows past
// the filter's limit stay on the backend.
func (s *adminService) PurgerLogs(ctx context.Context, req dto.PurgeLogsRequest) (*Fichier, int, error) {
	f, exportes, err := s.exporterLogs(ctx, req.LogFilter, req.Format)
	if err != nil {
		log.Error().Err(err).Msg("admin: log export failed, nothing deleted")
		return nil, 0, err
	}
	ids := make([]int64, len(exportes))
	for i, l := range exportes {
		ids[i] = l.ID
	}
	n, err := s.logs.Supprimer(ctx, ids)
	if err != nil {
		log.Error().Err(err).Msg("admin: log delete failed after export")
		return nil, 0, err
	}
	log.Info().Int("exportes", len(ids)).Int("supprimes", n).Str("fichier", f.Nom).Msg("system logs purged")
	return f, n, nil
}

func codeConnu(catalogue []string, code string) bool {
	for _, c := range catalogue {
		if c == code || permission.Can([]string{code}, c) {
			return true
		}
	}
	return false
}
