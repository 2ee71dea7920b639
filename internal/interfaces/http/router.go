package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/PuntoVenta-local/internal/application/analytics"
	"github.com/jhoicas/PuntoVenta-local/internal/application/auth"
	"github.com/jhoicas/PuntoVenta-local/internal/application/sync"
	"github.com/jhoicas/PuntoVenta-local/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC     *usecase.ProductUseCase
	SaleUC        *usecase.SaleUseCase
	ExpenseUC     *usecase.ExpenseUseCase
	CapitalUC     *usecase.CapitalUseCase
	SettingUC     *usecase.SettingUseCase
	PendingUC     *usecase.PendingChangeUseCase
	MaintenanceUC *usecase.MaintenanceUseCase
	DashboardUC   *analytics.DashboardUseCase
	AuthUC        *auth.AuthUseCase
	SyncService   *sync.Service // nil si el espejo no está configurado
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público): login y la puerta de rescate del admin de arranque.
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/reset-default", authHandler.ResetDefault)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/logout", authHandler.Logout)

	// Users (solo admin)
	users := protected.Group("/users", RequireAdmin())
	users.Get("/", authHandler.ListUsers)
	users.Post("/", authHandler.CreateUser)
	users.Put("/:id", authHandler.UpdateUser)
	users.Delete("/:id", authHandler.DeleteUser)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/barcode/:barcode", productHandler.GetByBarcode)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Sales (protegido)
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales.Post("/", saleHandler.Create)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Delete("/:id", saleHandler.Delete)

	// Expenses (protegido)
	expenses := protected.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/", expenseHandler.List)
	expenses.Delete("/:id", expenseHandler.Delete)

	// Capital (protegido)
	capital := protected.Group("/capital")
	capitalHandler := NewCapitalHandler(deps.CapitalUC)
	capital.Post("/", capitalHandler.Create)
	capital.Get("/", capitalHandler.List)
	capital.Get("/balance", capitalHandler.Balance)

	// Settings (protegido)
	settings := protected.Group("/settings")
	settingHandler := NewSettingHandler(deps.SettingUC)
	settings.Get("/", settingHandler.GetAll)
	settings.Put("/", settingHandler.SetAll)
	settings.Get("/:key", settingHandler.Get)
	settings.Put("/:key", settingHandler.Set)

	// Ledger de cambios pendientes y sincronización (protegido)
	syncGroup := protected.Group("/sync")
	pendingHandler := NewPendingHandler(deps.PendingUC, deps.SyncService)
	syncGroup.Post("/changes", pendingHandler.Add)
	syncGroup.Get("/changes", pendingHandler.List)
	syncGroup.Delete("/changes", pendingHandler.Clear)
	syncGroup.Post("/drain", pendingHandler.Drain)
	syncGroup.Get("/status", pendingHandler.Status)

	// Dashboard (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Stats)

	// Mantenimiento (protegido)
	maintenanceHandler := NewMaintenanceHandler(deps.MaintenanceUC)
	protected.Post("/backup", maintenanceHandler.Backup)
	protected.Post("/save", maintenanceHandler.Save)
}
