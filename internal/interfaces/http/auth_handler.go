package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/PuntoVenta-local/internal/application/auth"
	"github.com/jhoicas/PuntoVenta-local/internal/application/dto"
)

// AuthHandler maneja login, sesión y administración de usuarios.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login valida credenciales y devuelve token + usuario saneado.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return failErr(c, err)
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Logout cierra la sesión. Los tokens son stateless: el servidor no guarda
// sesiones, así que basta con que la UI descarte el token; esta operación
// existe para que el flujo sea simétrico con login.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return ok(c, fiber.StatusOK, nil)
}

// Me devuelve el usuario de la sesión actual.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.CurrentUser(c.Context(), GetUserID(c))
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// ResetDefault restaura el usuario admin de arranque. Es la puerta de rescate
// cuando se pierde la única credencial admin, por eso es pública.
func (h *AuthHandler) ResetDefault(c *fiber.Ctx) error {
	out, err := h.uc.ResetDefaultUser(c.Context())
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// CreateUser alta de usuario (solo admin).
func (h *AuthHandler) CreateUser(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := parseBody(c, &in); err != nil {
		return failErr(c, err)
	}
	out, err := h.uc.CreateUser(c.Context(), in)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusCreated, out)
}

// UpdateUser actualización parcial de usuario (solo admin).
func (h *AuthHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return failErr(c, err)
	}
	var in dto.UpdateUserRequest
	if err := parseBody(c, &in); err != nil {
		return failErr(c, err)
	}
	out, err := h.uc.UpdateUser(c.Context(), id, in)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// DeleteUser elimina un usuario (solo admin).
func (h *AuthHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return failErr(c, err)
	}
	if err := h.uc.DeleteUser(c.Context(), id); err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, nil)
}

// ListUsers lista usuarios saneados (solo admin).
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	out, err := h.uc.ListUsers(c.Context())
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}
