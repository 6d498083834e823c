package permission

// Permission codes checked by the terminal. The backend owns which roles hold
// which codes; these are only the names the terminal asks about.
const (
	CaisseVendre     = "caisse.vendre"
	CaisseAnnuler    = "caisse.annuler"
	CaisseSession    = "caisse.session"
	CaisseMonnaie    = "caisse.monnaie"
	CaisseHistorique = "caisse.historique"

	StockVoir      = "stock.voir"
	StockModifier  = "stock.modifier"
	StockCommandes = "stock.commandes"

	ComptabiliteVoir     = "comptabilite.voir"
	ComptabiliteExporter = "comptabilite.exporter"

	TresorerieVoir    = "tresorerie.voir"
	TresorerieCreer   = "tresorerie.creer"
	TresorerieValider = "tresorerie.valider"

	AdminUtilisateurs = "admin.utilisateurs"
	AdminRoles        = "admin.roles"
	AdminPermissions  = "admin.permissions"
	AdminLogs         = "admin.logs"
)

// Ecran is a navigable screen of the terminal and the permissions revealing it.
// A screen with several permissions is visible when any of them is granted.
type Ecran struct {
	Code        string   `json:"code"`
	Titre       string   `json:"titre"`
	Route       string   `json:"route"`
	Permissions []string `json:"-"`
}

// Ecrans lists every screen behind /login, in menu order.
var Ecrans = []Ecran{
	{Code: "caisse", Titre: "Caisse", Route: "/caisse", Permissions: []string{CaisseVendre}},
	{Code: "stock", Titre: "Stock", Route: "/stock", Permissions: []string{StockVoir}},
	{Code: "comptabilite", Titre: "Comptabilité", Route: "/comptabilite", Permissions: []string{ComptabiliteVoir}},
	{Code: "tresorerie", Titre: "Trésorerie", Route: "/tresorerie", Permissions: []string{TresorerieVoir}},
	{Code: "admin", Titre: "Administration", Route: "/admin", Permissions: []string{AdminUtilisateurs, AdminRoles, AdminPermissions, AdminLogs}},
	{Code: "admin/utilisateurs", Titre: "Utilisateurs", Route: "/admin/utilisateurs", Permissions: []string{AdminUtilisateurs}},
	{Code: "admin/roles", Titre: "Rôles", Route: "/admin/roles", Permissions: []string{AdminRoles}},
	{Code: "admin/permissions", Titre: "Permissions", Route: "/admin/permissions", Permissions: []string{AdminPermissions}},
	{Code: "admin/logs", Titre: "Journaux", Route: "/admin/logs", Permissions: []string{AdminLogs}},
}

// Visibles filters Ecrans through g. While g is loading nothing is visible.
func Visibles(g Gate) []Ecran {
	out := make([]Ecran, 0, len(Ecrans))
	for _, e := range Ecrans {
		if g.Any(e.Permissions...) == Granted {
			out = append(out, e)
		}
	}
	return out
}
