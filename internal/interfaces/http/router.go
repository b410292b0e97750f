package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/Activos-api/internal/application/analytics"
	"github.com/jhoicas/Activos-api/internal/application/auth"
	"github.com/jhoicas/Activos-api/internal/application/history"
	"github.com/jhoicas/Activos-api/internal/application/licensing"
	"github.com/jhoicas/Activos-api/internal/application/lifecycle"
	"github.com/jhoicas/Activos-api/internal/application/reports"
	"github.com/jhoicas/Activos-api/internal/application/usecase"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Engine      *lifecycle.Engine
	AssetUC     *usecase.AssetUseCase
	CustodyUC   *usecase.CustodyUseCase
	UserUC      *usecase.UserUseCase
	AuthUC      *auth.AuthUseCase
	Licensing   *licensing.Service
	Reports     *reports.Service
	DashboardUC *appanalytics.DashboardUseCase
	History     *history.Feed
	JWTSecret   string
	Cookie      CookieConfig
	Log         *logger.Logger
}

// NewApp crea la aplicación Fiber con recover, log de peticiones, manejo de errores común y /health.
func NewApp(name string, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      name,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		UnescapePath: true,
		ErrorHandler: ErrorHandler(log),
	})
	// El log va por fuera de recover para registrar también los pánicos (500).
	app.Use(RequestLogger(log))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": name})
	})
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	r := newResponder(deps.Log)
	api := app.Group("/api")

	writers := RequireRole(entity.RoleAdmin, entity.RoleITStaff)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth (login/logout públicos)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookie, r)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)

	// Rutas protegidas (Bearer Token o cookie de sesión)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Cookie.Name))
	protected.Get("/auth/me", authHandler.Me)

	// Users (solo admin)
	userHandler := NewUserHandler(deps.AuthUC, deps.UserUC, r)
	users := protected.Group("/users", adminOnly)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)

	// Assets
	assetHandler := NewAssetHandler(deps.Engine, deps.AssetUC, deps.History, r)
	assets := protected.Group("/assets")
	assets.Get("/", assetHandler.List)
	assets.Post("/", writers, assetHandler.Create)
	assets.Get("/code/:code/history", assetHandler.History)
	assets.Get("/:id", assetHandler.GetByID)
	assets.Get("/:id/issues", assetHandler.Custody)
	assets.Post("/:id/garbage", writers, assetHandler.MarkGarbage)
	protected.Get("/history", assetHandler.RecentHistory)

	// Issues
	issueHandler := NewIssueHandler(deps.Engine, deps.CustodyUC, deps.Reports, r)
	issues := protected.Group("/issues")
	issues.Get("/", issueHandler.List)
	issues.Post("/", writers, issueHandler.Create)
	issues.Get("/:id", issueHandler.GetByID)
	issues.Post("/:id/return", writers, issueHandler.Return)
	issues.Get("/:id/form", issueHandler.Form)

	// Transfers + Garbage
	transferHandler := NewTransferHandler(deps.Engine, deps.CustodyUC, r)
	transfers := protected.Group("/transfers")
	transfers.Get("/", transferHandler.List)
	transfers.Post("/", writers, transferHandler.Create)
	transfers.Patch("/:id", adminOnly, transferHandler.Decide)
	protected.Get("/garbage", transferHandler.Garbage)

	// Software
	softwareHandler := NewSoftwareHandler(deps.Licensing, r)
	software := protected.Group("/software")
	software.Get("/", softwareHandler.List)
	software.Post("/", writers, softwareHandler.Create)
	software.Get("/:id", softwareHandler.GetByID)
	software.Post("/:id/assignments", writers, softwareHandler.Assign)
	software.Delete("/:id/assignments/:code", writers, softwareHandler.Unassign)

	// Reports + Dashboard
	reportHandler := NewReportHandler(deps.Reports, r)
	protected.Get("/reports/csv", reportHandler.CSV)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, r)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)
}
