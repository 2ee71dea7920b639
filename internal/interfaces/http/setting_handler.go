package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/PuntoVenta-local/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-local/internal/application/usecase"
)

// SettingHandler maneja la configuración clave → valor de la tienda.
type SettingHandler struct {
	uc *usecase.SettingUseCase
}

// NewSettingHandler construye el handler.
func NewSettingHandler(uc *usecase.SettingUseCase) *SettingHandler {
	return &SettingHandler{uc: uc}
}

// GetAll devuelve todas las claves.
func (h *SettingHandler) GetAll(c *fiber.Ctx) error {
	out, err := h.uc.GetAll(c.Context())
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Get devuelve una clave.
func (h *SettingHandler) Get(c *fiber.Ctx) error {
	key := c.Params("key")
	value, err := h.uc.Get(c.Context(), key)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"key": key, "value": value})
}

// Set guarda una clave.
func (h *SettingHandler) Set(c *fiber.Ctx) error {
	var in dto.SaveSettingRequest
	if err := parseBody(c, &in); err != nil {
		return failErr(c, err)
	}
	key := c.Params("key")
	if err := h.uc.Set(c.Context(), key, in.Value); err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"key": key, "value": in.Value})
}

// SetAll guarda varias claves de una vez.
func (h *SettingHandler) SetAll(c *fiber.Ctx) error {
	var in map[string]string
	if err := parseBody(c, &in); err != nil {
		return failErr(c, err)
	}
	if err := h.uc.SetAll(c.Context(), in); err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, in)
}
