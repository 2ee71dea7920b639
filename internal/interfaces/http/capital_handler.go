package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/PuntoVenta-local/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-local/internal/application/usecase"
)

// CapitalHandler maneja las peticiones HTTP para movimientos de capital.
type CapitalHandler struct {
	uc *usecase.CapitalUseCase
}

// NewCapitalHandler construye el handler.
func NewCapitalHandler(uc *usecase.CapitalUseCase) *CapitalHandler {
	return &CapitalHandler{uc: uc}
}

// Create registra un movimiento de capital con signo.
func (h *CapitalHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCapitalRequest
	if err := parseBody(c, &in); err != nil {
		return failErr(c, err)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusCreated, out)
}

// List lista todos los movimientos.
func (h *CapitalHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Balance suma con signo de todos los movimientos.
func (h *CapitalHandler) Balance(c *fiber.Ctx) error {
	total, err := h.uc.Balance(c.Context())
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"balance": total})
}
