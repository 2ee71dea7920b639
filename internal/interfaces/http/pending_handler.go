package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/PuntoVenta-local/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-local/internal/application/sync"
	"github.com/jhoicas/PuntoVenta-local/internal/application/usecase"
)

// PendingHandler maneja el ledger de cambios pendientes y su drenado.
type PendingHandler struct {
	uc  *usecase.PendingChangeUseCase
	svc *sync.Service // nil cuando el espejo no está configurado
}

// NewPendingHandler construye el handler. svc puede ser nil si el espejo
// remoto no está habilitado.
func NewPendingHandler(uc *usecase.PendingChangeUseCase, svc *sync.Service) *PendingHandler {
	return &PendingHandler{uc: uc, svc: svc}
}

// Add registra una entrada de ledger originada por la UI.
func (h *PendingHandler) Add(c *fiber.Ctx) error {
	var in dto.AddPendingChangeRequest
	if err := parseBody(c, &in); err != nil {
		return failErr(c, err)
	}
	out, err := h.uc.Add(c.Context(), in)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusCreated, out)
}

// List lista las entradas pendientes, más antigua primero.
func (h *PendingHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.Pending(c.Context())
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Clear marca todas las entradas pendientes como sincronizadas.
func (h *PendingHandler) Clear(c *fiber.Ctx) error {
	if err := h.uc.Clear(c.Context()); err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, nil)
}

// Drain empuja las entradas pendientes al espejo remoto.
func (h *PendingHandler) Drain(c *fiber.Ctx) error {
	if h.svc == nil {
		return fail(c, fiber.StatusServiceUnavailable, "MIRROR_DISABLED", "espejo remoto no configurado")
	}
	out, err := h.svc.Drain(c.Context())
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Status cuenta las entradas aún pendientes.
func (h *PendingHandler) Status(c *fiber.Ctx) error {
	if h.svc == nil {
		out, err := h.uc.Pending(c.Context())
		if err != nil {
			return failErr(c, err)
		}
		return ok(c, fiber.StatusOK, dto.SyncStatusResponse{Pending: len(out)})
	}
	out, err := h.svc.Status(c.Context())
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}
