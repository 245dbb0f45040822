package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/TobiasMontone/hotel-mirage-frontend/internal/domain"
	"github.com/TobiasMontone/hotel-mirage-frontend/internal/session"
	"github.com/TobiasMontone/hotel-mirage-frontend/internal/storage"
)

type authConRol struct {
	rol domain.Rol
}

func (a *authConRol) Login(ctx context.Context, correo, password string) (*domain.Credencial, error) {
	return &domain.Credencial{
		Token: "tok-guard",
		Usuario: domain.Usuario{
			ID:     "u1",
			Nombre: "Usuario",
			Correo: correo,
			Rol:    a.rol,
		},
	}, nil
}

// arma una app con las dos variantes del guard y devuelve la cookie de una
// sesión iniciada con el rol dado.
func appConGuard(t *testing.T, rol domain.Rol) (*fiber.App, *http.Cookie) {
	t.Helper()
	almacen := storage.NewMemoria(time.Minute)
	t.Cleanup(func() { almacen.Close() })

	manager := session.NewManager(almacen, &authConRol{rol: rol})

	app := fiber.New()
	app.Post("/login", func(c *fiber.Ctx) error {
		if _, err := manager.Iniciar(c, "alguien@hotel.test", "secreto"); err != nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/panel", RequiereRol(manager, ""), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/solo-admin", RequiereRol(manager, domain.RolAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp := pedir(t, app, "/login", nil, fiber.MethodPost)
	for _, ck := range resp.Cookies() {
		if ck.Name == "hotel_session" {
			return app, ck
		}
	}
	t.Fatal("el login debía dejar cookie de sesión")
	return nil, nil
}

func pedir(t *testing.T, app *fiber.App, path string, cookie *http.Cookie, method string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func TestGuardSinSesionRedirigeALogin(t *testing.T) {
	app, _ := appConGuard(t, domain.RolAdmin)

	resp := pedir(t, app, "/panel", nil, fiber.MethodGet)
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("sin sesión, /panel = %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/admin/login" {
		t.Errorf("redirección = %q, se esperaba /admin/login", loc)
	}
}

func TestGuardAdmiteOperadorEnElPanel(t *testing.T) {
	app, cookie := appConGuard(t, domain.RolOperador)

	resp := pedir(t, app, "/panel", cookie, fiber.MethodGet)
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("operador en /panel = %d", resp.StatusCode)
	}
}

func TestGuardRechazaRolesAjenosAlPanel(t *testing.T) {
	app, cookie := appConGuard(t, domain.Rol("huesped"))

	resp := pedir(t, app, "/panel", cookie, fiber.MethodGet)
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("rol huesped en /panel = %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/admin/login" {
		t.Errorf("redirección = %q, se esperaba /admin/login", loc)
	}
}

func TestGuardOperadorNoEntraALoExclusivoDeAdmin(t *testing.T) {
	app, cookie := appConGuard(t, domain.RolOperador)

	resp := pedir(t, app, "/solo-admin", cookie, fiber.MethodGet)
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("operador en /solo-admin = %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/admin" {
		t.Errorf("redirección = %q, se esperaba /admin", loc)
	}
}

func TestGuardAdminEntraATodo(t *testing.T) {
	app, cookie := appConGuard(t, domain.RolAdmin)

	for _, path := range []string{"/panel", "/solo-admin"} {
		resp := pedir(t, app, path, cookie, fiber.MethodGet)
		if resp.StatusCode != fiber.StatusOK {
			t.Errorf("admin en %s = %d", path, resp.StatusCode)
		}
	}
}
