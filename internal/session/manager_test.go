package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/TobiasMontone/hotel-mirage-frontend/internal/domain"
	"github.com/TobiasMontone/hotel-mirage-frontend/internal/storage"
)

type authFalso struct {
	err error
}

func (a *authFalso) Login(ctx context.Context, correo, password string) (*domain.Credencial, error) {
	if a.err != nil {
		return nil, a.err
	}
	return &domain.Credencial{
		Token: "tok-123",
		Usuario: domain.Usuario{
			ID:     "u1",
			Nombre: "Admin",
			Correo: correo,
			Rol:    domain.RolAdmin,
		},
	}, nil
}

// arma una app mínima con rutas que ejercitan el manager.
func appDePrueba(t *testing.T, auth Autenticador) (*fiber.App, *Manager) {
	t.Helper()
	almacen := storage.NewMemoria(time.Minute)
	t.Cleanup(func() { almacen.Close() })

	manager := NewManager(almacen, auth)

	app := fiber.New()
	app.Post("/login", func(c *fiber.Ctx) error {
		if _, err := manager.Iniciar(c, "admin@hotel.test", "secreto"); err != nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/quien", func(c *fiber.Ctx) error {
		cred, ok := manager.Credencial(c)
		if !ok {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.JSON(cred.Usuario)
	})
	app.Post("/logout", func(c *fiber.Ctx) error {
		if err := manager.Cerrar(c); err != nil {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendStatus(fiber.StatusOK)
	})
	app.Post("/corromper", func(c *fiber.Ctx) error {
		sess, err := manager.sesiones.Get(c)
		if err != nil {
			return err
		}
		sess.Set(claveToken, "tok-roto")
		sess.Set(claveUsuario, "esto no es json")
		return sess.Save()
	})
	return app, manager
}

func cookieDe(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, ck := range resp.Cookies() {
		if ck.Name == "hotel_session" {
			return ck
		}
	}
	return nil
}

func hacer(t *testing.T, app *fiber.App, method, path string, cookie *http.Cookie) *http.Response {
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

func TestIniciarYCredencial(t *testing.T) {
	app, _ := appDePrueba(t, &authFalso{})

	resp := hacer(t, app, fiber.MethodPost, "/login", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}
	cookie := cookieDe(t, resp)
	if cookie == nil {
		t.Fatal("el login debía dejar cookie de sesión")
	}

	resp = hacer(t, app, fiber.MethodGet, "/quien", cookie)
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("con sesión, /quien = %d", resp.StatusCode)
	}
}

func TestLoginFallidoNoDejaSesion(t *testing.T) {
	app, _ := appDePrueba(t, &authFalso{err: errors.New("credenciales inválidas")})

	resp := hacer(t, app, fiber.MethodPost, "/login", nil)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("login status = %d", resp.StatusCode)
	}

	resp = hacer(t, app, fiber.MethodGet, "/quien", cookieDe(t, resp))
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("sin login exitoso, /quien = %d", resp.StatusCode)
	}
}

func TestCerrarEsIdempotente(t *testing.T) {
	app, _ := appDePrueba(t, &authFalso{})

	resp := hacer(t, app, fiber.MethodPost, "/login", nil)
	cookie := cookieDe(t, resp)

	for i := 0; i < 2; i++ {
		resp = hacer(t, app, fiber.MethodPost, "/logout", cookie)
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("logout #%d status = %d", i+1, resp.StatusCode)
		}
	}

	resp = hacer(t, app, fiber.MethodGet, "/quien", cookie)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("tras logout, /quien = %d", resp.StatusCode)
	}
}

func TestPerfilCorruptoSeLimpia(t *testing.T) {
	app, _ := appDePrueba(t, &authFalso{})

	resp := hacer(t, app, fiber.MethodPost, "/corromper", nil)
	cookie := cookieDe(t, resp)
	if cookie == nil {
		t.Fatal("la corrupción debía dejar cookie de sesión")
	}

	// La primera lectura encuentra el JSON roto y destruye la sesión.
	resp = hacer(t, app, fiber.MethodGet, "/quien", cookie)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("con perfil corrupto, /quien = %d", resp.StatusCode)
	}

	resp = hacer(t, app, fiber.MethodGet, "/quien", cookie)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("la sesión corrupta debía quedar destruida, /quien = %d", resp.StatusCode)
	}
}

func TestTokenRevocadoDestruyeSesion(t *testing.T) {
	app, manager := appDePrueba(t, &authFalso{})

	resp := hacer(t, app, fiber.MethodPost, "/login", nil)
	cookie := cookieDe(t, resp)

	resp = hacer(t, app, fiber.MethodGet, "/quien", cookie)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("antes de revocar, /quien = %d", resp.StatusCode)
	}

	manager.Revocar("tok-123")

	resp = hacer(t, app, fiber.MethodGet, "/quien", cookie)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("tras revocar el token, /quien = %d", resp.StatusCode)
	}
}
