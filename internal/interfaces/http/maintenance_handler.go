package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/PuntoVenta-local/internal/application/usecase"
)

// MaintenanceHandler maneja respaldos y flush explícito del store.
type MaintenanceHandler struct {
	uc *usecase.MaintenanceUseCase
}

// NewMaintenanceHandler construye el handler.
func NewMaintenanceHandler(uc *usecase.MaintenanceUseCase) *MaintenanceHandler {
	return &MaintenanceHandler{uc: uc}
}

// Backup escribe un respaldo del documento lógico completo.
func (h *MaintenanceHandler) Backup(c *fiber.Ctx) error {
	out, err := h.uc.CreateBackup(c.Context())
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusCreated, out)
}

// Save fuerza la escritura durable inmediata.
func (h *MaintenanceHandler) Save(c *fiber.Ctx) error {
	if err := h.uc.Save(c.Context()); err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, nil)
}
