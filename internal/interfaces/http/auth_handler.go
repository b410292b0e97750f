package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Activos-api/internal/application/auth"
	"github.com/jhoicas/Activos-api/internal/application/dto"
)

// CookieConfig cookie de sesión que acompaña al token.
type CookieConfig struct {
	Name   string
	Secure bool
	Domain string
}

// AuthHandler maneja login, logout y perfil.
type AuthHandler struct {
	responder
	uc     *auth.AuthUseCase
	cookie CookieConfig
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, cookie CookieConfig, r responder) *AuthHandler {
	return &AuthHandler{responder: r, uc: uc, cookie: cookie}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := bind(c, &in); err != nil {
		return h.fail(c, err)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	if h.cookie.Name != "" {
		c.Cookie(h.sessionCookie(out.Token, out.ExpiresAt))
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión (borra la cookie)
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if h.cookie.Name != "" {
		c.Cookie(h.sessionCookie("", time.Unix(0, 0)))
	}
	return c.JSON(dto.MessageResponse{Message: "sesión cerrada"})
}

// Me godoc
// @Summary      Usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext(), GetUserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

func (h *AuthHandler) sessionCookie(value string, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     "/",
		Domain:   h.cookie.Domain,
		Expires:  expires,
		Secure:   h.cookie.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}
