package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/TobiasMontone/hotel-mirage-frontend/internal/domain"
	"github.com/TobiasMontone/hotel-mirage-frontend/internal/session"
)

const localCredencial = "credencial"

// RequiereRol es el único guard del back-office. Sin credencial vigente o con
// un rol sin acceso al panel redirige a /admin/login; con credencial de rol
// insuficiente redirige al panel. La credencial queda en c.Locals para los
// handlers protegidos.
func RequiereRol(manager *session.Manager, rol domain.Rol) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cred, ok := manager.Credencial(c)
		if !ok {
			return c.Redirect("/admin/login", fiber.StatusFound)
		}
		if !cred.Usuario.EsOperadorOAdmin() {
			return c.Redirect("/admin/login", fiber.StatusFound)
		}
		if rol == domain.RolAdmin && !cred.Usuario.EsAdmin() {
			return c.Redirect("/admin", fiber.StatusFound)
		}
		c.Locals(localCredencial, cred)
		return c.Next()
	}
}

// credencialDe recupera la credencial que dejó el guard.
func credencialDe(c *fiber.Ctx) *domain.Credencial {
	cred, _ := c.Locals(localCredencial).(*domain.Credencial)
	return cred
}
