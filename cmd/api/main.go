// @title        Activos API
// @version      1.0
// @description  Inventario de activos de TI: registro, entregas, traspasos, devoluciones, bajas, licencias y reportes.
// @BasePath     /
// @securityDefinitions.apikey Bearer
// @in           header
// @name         Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2/middleware/cors"

	_ "github.com/jhoicas/Activos-api/docs"
	appanalytics "github.com/jhoicas/Activos-api/internal/application/analytics"
	"github.com/jhoicas/Activos-api/internal/application/auth"
	"github.com/jhoicas/Activos-api/internal/application/history"
	"github.com/jhoicas/Activos-api/internal/application/licensing"
	"github.com/jhoicas/Activos-api/internal/application/lifecycle"
	"github.com/jhoicas/Activos-api/internal/application/ports"
	"github.com/jhoicas/Activos-api/internal/application/reports"
	"github.com/jhoicas/Activos-api/internal/application/usecase"
	"github.com/jhoicas/Activos-api/internal/application/warranty"
	"github.com/jhoicas/Activos-api/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/Activos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Activos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Activos-api/internal/interfaces/http"
	"github.com/jhoicas/Activos-api/internal/scheduler"
	"github.com/jhoicas/Activos-api/pkg/config"
	"github.com/jhoicas/Activos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	if len(applied) > 0 {
		log.Info().Strs("files", applied).Msg("migraciones aplicadas")
	}

	repos := postgres.NewRepos(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	recorder := history.NewRecorder(log)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if cfg.Admin.Email != "" {
		created, err := authUC.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Name)
		if err != nil {
			log.Fatal().Err(err).Msg("crear administrador inicial")
		}
		if created {
			log.Info().Str("email", cfg.Admin.Email).Msg("administrador inicial creado")
		}
	}

	// PDF: acta de entrega del activo
	issueForms := infrapdf.NewMarotoIssueFormGenerator(cfg.App.Name)

	// Aviso de garantías: webhook si hay URL, si no al log
	var notifier ports.Notifier = notify.NewLogNotifier(log)
	if cfg.Webhook.URL != "" {
		notifier = notify.NewWebhookNotifier(notify.WebhookConfig{
			URL:     cfg.Webhook.URL,
			Token:   cfg.Webhook.Token,
			Timeout: time.Duration(cfg.Webhook.Timeout) * time.Second,
		})
	}
	warrantyUC := warranty.NewAlertUseCase(repos.Assets, notifier, cfg.Warranty.WindowDays, log)

	var sched *scheduler.Scheduler
	if cfg.Warranty.AlertCron != "" {
		sched = scheduler.New(cfg.Warranty.AlertCron, warrantyUC, log)
		if err := sched.Start(); err != nil {
			log.Fatal().Err(err).Msg("scheduler")
		}
	}

	app := httpRouter.NewApp(cfg.App.Name, log)
	if cfg.HTTP.CORSOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.HTTP.CORSOrigins,
			AllowCredentials: true,
		}))
	}

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Activos API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Engine:      lifecycle.NewEngine(txRunner, recorder),
		AssetUC:     usecase.NewAssetUseCase(repos.Assets, repos.Issues, repos.Garbage),
		CustodyUC:   usecase.NewCustodyUseCase(repos.Issues, repos.Transfers, repos.Garbage),
		UserUC:      usecase.NewUserUseCase(userRepo),
		AuthUC:      authUC,
		Licensing:   licensing.NewService(txRunner, repos.Software, recorder),
		Reports:     reports.NewService(repos.Assets, repos.Issues, repos.Transfers, repos.Garbage, issueForms),
		DashboardUC: appanalytics.NewDashboardUseCase(repos.Assets, repos.Issues, repos.Transfers, repos.Software, cfg.Warranty.WindowDays),
		History:     history.NewFeed(repos.History),
		JWTSecret:   cfg.JWT.Secret,
		Cookie: httpRouter.CookieConfig{
			Name:   cfg.Cookie.Name,
			Secure: cfg.Cookie.Secure,
			Domain: cfg.Cookie.Domain,
		},
		Log: log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if sched != nil {
		sched.Stop(shutdownCtx)
	}
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
