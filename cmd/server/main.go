package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/PuntoVenta-local/internal/application/analytics"
	"github.com/jhoicas/PuntoVenta-local/internal/application/auth"
	appsync "github.com/jhoicas/PuntoVenta-local/internal/application/sync"
	"github.com/jhoicas/PuntoVenta-local/internal/application/usecase"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/repository"
	"github.com/jhoicas/PuntoVenta-local/internal/infrastructure/jsonfile"
	"github.com/jhoicas/PuntoVenta-local/internal/infrastructure/sheets"
	"github.com/jhoicas/PuntoVenta-local/internal/infrastructure/sqlite"
	httpRouter "github.com/jhoicas/PuntoVenta-local/internal/interfaces/http"
	"github.com/jhoicas/PuntoVenta-local/internal/scheduler"
	"github.com/jhoicas/PuntoVenta-local/pkg/config"
	"github.com/jhoicas/PuntoVenta-local/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("backend", cfg.Store.Backend).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var store repository.Store
	switch cfg.Store.Backend {
	case config.BackendJSON:
		store, err = jsonfile.Open(cfg.Store.JSONPath(), log)
	default:
		store, err = sqlite.Open(cfg.Store.SQLitePath(), log)
	}
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Store.Backend).Msg("abrir store")
	}
	defer store.Close()

	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if err := authUC.EnsureDefaultAdmin(ctx); err != nil {
		log.Fatal().Err(err).Msg("crear admin de arranque")
	}

	productUC := usecase.NewProductUseCase(store.Products())
	saleUC := usecase.NewSaleUseCase(store)
	expenseUC := usecase.NewExpenseUseCase(store.Expenses())
	capitalUC := usecase.NewCapitalUseCase(store.Capital())
	settingUC := usecase.NewSettingUseCase(store.Settings())
	pendingUC := usecase.NewPendingChangeUseCase(store.Ledger())
	maintenanceUC := usecase.NewMaintenanceUseCase(store, cfg.Store.BackupDir)
	dashboardUC := appanalytics.NewDashboardUseCase(store)

	var syncService *appsync.Service
	if cfg.Sheets.Enabled() {
		mirror, err := sheets.NewMirror(ctx, cfg.Sheets, log)
		if err != nil {
			log.Fatal().Err(err).Msg("inicializar espejo de sheets")
		}
		syncService = appsync.NewService(store.Ledger(), mirror, log)
	} else {
		log.Warn().Msg("espejo remoto sin configurar: el ledger solo acumula")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "backend": cfg.Store.Backend})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:     productUC,
		SaleUC:        saleUC,
		ExpenseUC:     expenseUC,
		CapitalUC:     capitalUC,
		SettingUC:     settingUC,
		PendingUC:     pendingUC,
		MaintenanceUC: maintenanceUC,
		DashboardUC:   dashboardUC,
		AuthUC:        authUC,
		SyncService:   syncService,
		JWTSecret:     cfg.JWT.Secret,
	})

	sched := scheduler.NewScheduler(cfg.Sync, syncService, maintenanceUC, log)
	sched.Start()

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	if err := store.Flush(context.Background()); err != nil {
		log.Error().Err(err).Msg("flush final del store")
	}

	log.Info().Msg("aplicación detenida")
}
