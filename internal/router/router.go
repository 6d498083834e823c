package router

import (
	"time"

	"github.com/satch9/app-caisse-compta-sub000/internal/config"
	"github.com/satch9/app-caisse-compta-sub000/internal/handler"
	"github.com/satch9/app-caisse-compta-sub000/internal/infra"
	"github.com/satch9/app-caisse-compta-sub000/internal/middleware"
	"github.com/satch9/app-caisse-compta-sub000/internal/permission"
	"github.com/satch9/app-caisse-compta-sub000/internal/repository"
	"github.com/satch9/app-caisse-compta-sub000/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← BackendClient/TerminalStore
func New(cfg *config.Config, store repository.TerminalStore, session *infra.Session) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigin))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.Metrics())
	r.Use(middleware.RateLimiter(cfg.RateLimitPerIP, time.Minute))

	// ── Infrastructure ───────────────────────────────────────────────────────
	api := infra.NewBackendClient(cfg.APIBaseURL, cfg.APITimeout(), session)

	// ── Repositories ─────────────────────────────────────────────────────────
	authRepo := repository.NewAuthRepository(api)
	produitRepo := repository.NewProduitRepository(api)
	categorieRepo := repository.NewCategorieRepository(api)
	mouvementRepo := repository.NewMouvementStockRepository(api)
	commandeRepo := repository.NewCommandeRepository(api)
	transactionRepo := repository.NewTransactionRepository(api)
	sessionRepo := repository.NewSessionCaisseRepository(api)
	comptaRepo := repository.NewComptabiliteRepository(api)
	adminRepo := repository.NewAdminRepository(api)
	logRepo := repository.NewLogRepository(api)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(authRepo, session)
	dashSvc := service.NewDashboardService(sessionRepo, session)
	caisseSvc := service.NewCaisseService(store, produitRepo, transactionRepo, sessionRepo, session, cfg.NomClub)
	stockSvc := service.NewStockService(produitRepo, categorieRepo, mouvementRepo, commandeRepo)
	tresoSvc := service.NewTresorerieService(sessionRepo)
	comptaSvc := service.NewComptabiliteService(comptaRepo)
	adminSvc := service.NewAdminService(adminRepo, logRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc, dashSvc)
	caisseH := handler.NewCaisseHandler(caisseSvc, cfg.TerminalID)
	stockH := handler.NewStockHandler(stockSvc)
	tresoH := handler.NewTresorerieHandler(tresoSvc)
	comptaH := handler.NewComptabiliteHandler(comptaSvc)
	adminH := handler.NewAdminHandler(adminSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(store, session, cfg.StateStore, api))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/logout", authH.Logout)
		auth.GET("/me", middleware.RequireSession(session), authH.Me)
	}

	need := func(perms ...string) gin.HandlerFunc {
		return middleware.RequirePermission(session, perms...)
	}

	v1 := r.Group("/v1", middleware.RequireSession(session))
	{
		v1.GET("/dashboard", authH.Dashboard)

		caisse := v1.Group("/caisse", need(permission.CaisseVendre))
		{
			caisse.GET("", caisseH.Etat)
			caisse.POST("/charger", caisseH.Charger)
			caisse.POST("/actions", caisseH.Action)
			caisse.POST("/touches", caisseH.Touche)
			caisse.POST("/panier", caisseH.AjouterProduit)
			caisse.PUT("/panier/:produit_id", caisseH.ModifierQuantite)
			caisse.DELETE("/panier/:produit_id", caisseH.RetirerProduit)
			caisse.DELETE("/panier", caisseH.ViderPanier)
			caisse.POST("/encaisser", caisseH.Encaisser)
			caisse.GET("/ticket", caisseH.Ticket)
			caisse.POST("/monnaie", need(permission.CaisseMonnaie), caisseH.RendreMonnaie)
			caisse.POST("/session/ouvrir", need(permission.CaisseSession), caisseH.OuvrirSession)
			caisse.POST("/session/fermer", need(permission.CaisseSession), caisseH.FermerSession)
			caisse.POST("/annulation", need(permission.CaisseAnnuler), caisseH.Annuler)
		}

		stock := v1.Group("/stock")
		{
			stock.GET("/produits", need(permission.StockVoir), stockH.ListerProduits)
			stock.GET("/categories", need(permission.StockVoir), stockH.ListerCategories)
			stock.GET("/mouvements", need(permission.StockVoir), stockH.ListerMouvements)

			edit := stock.Group("", need(permission.StockModifier))
			{
				edit.POST("/produits", stockH.CreerProduit)
				edit.PUT("/produits/:id", stockH.ModifierProduit)
				edit.DELETE("/produits/:id", stockH.SupprimerProduit)
				edit.POST("/categories", stockH.CreerCategorie)
				edit.PUT("/categories/:id", stockH.ModifierCategorie)
				edit.DELETE("/categories/:id", stockH.SupprimerCategorie)
				edit.POST("/mouvements", stockH.EnregistrerMouvement)
			}

			cmd := stock.Group("/commandes", need(permission.StockCommandes))
			{
				cmd.GET("", stockH.ListerCommandes)
				cmd.POST("", stockH.CreerCommande)
				cmd.POST("/:id/reception", stockH.RecevoirCommande)
				cmd.POST("/:id/annulation", stockH.AnnulerCommande)
			}
		}

		treso := v1.Group("/tresorerie")
		{
			treso.GET("/sessions", need(permission.TresorerieVoir), tresoH.ListerSessions)
			treso.POST("/sessions", need(permission.TresorerieCreer), tresoH.CreerSession)
			treso.POST("/sessions/:id/validation", need(permission.TresorerieValider), tresoH.ValiderSession)
			treso.GET("/ecarts", need(permission.TresorerieVoir), tresoH.RapportEcarts)
			treso.GET("/ecarts/export", need(permission.TresorerieVoir), tresoH.ExporterEcarts)
		}

		compta := v1.Group("/comptabilite")
		{
			compta.GET("/:rapport", need(permission.ComptabiliteVoir), comptaH.Rapport)
			compta.GET("/:rapport/export", need(permission.ComptabiliteExporter), comptaH.Exporter)
		}

		admin := v1.Group("/admin")
		{
			users := admin.Group("/utilisateurs", need(permission.AdminUtilisateurs))
			{
				users.GET("", adminH.ListerUtilisateurs)
				users.POST("", adminH.CreerUtilisateur)
				users.PUT("/:id", adminH.ModifierUtilisateur)
				users.DELETE("/:id", adminH.SupprimerUtilisateur)
				users.PUT("/:id/roles", need(permission.AdminRoles), adminH.AssignerRoles)
			}

			roles := admin.Group("/roles", need(permission.AdminRoles))
			{
				roles.GET("", adminH.ListerRoles)
				roles.POST("", adminH.CreerRole)
				roles.PUT("/:id", adminH.ModifierRole)
				roles.DELETE("/:id", adminH.SupprimerRole)
				roles.PUT("/:id/permissions", need(permission.AdminPermissions), adminH.AssignerPermissions)
			}

			admin.GET("/permissions", need(permission.AdminPermissions), adminH.ListerPermissions)

			logs := admin.Group("/logs", need(permission.AdminLogs))
			{
				logs.GET("", adminH.ListerLogs)
				logs.GET("/filtres", adminH.FiltresLogs)
				logs.GET("/export", adminH.ExporterLogs)
				logs.DELETE("", adminH.PurgerLogs)
			}
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
