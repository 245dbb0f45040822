// Package session maneja la credencial del back-office: se crea al iniciar
// sesión, se rehidrata desde el almacén durable en cada request y se destruye
// al cerrar sesión o cuando el backend rechaza el token.
package session

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/TobiasMontone/hotel-mirage-frontend/internal/domain"
)

const (
	claveToken   = "token"
	claveUsuario = "usuario"

	// cuánto tiempo se recuerda un token revocado por 401
	ttlRevocacion = 24 * time.Hour
)

// Autenticador es el contrato mínimo contra el servicio de auth del backend.
type Autenticador interface {
	Login(ctx context.Context, correo, password string) (*domain.Credencial, error)
}

// Manager es el dueño del estado de autenticación. Se construye una vez en
// main y se pasa por referencia a los handlers y al guard.
type Manager struct {
	sesiones  *session.Store
	revocadas fiber.Storage
	auth      Autenticador
}

// NewManager arma el manager sobre el almacén durable dado. El mismo almacén
// respalda las sesiones y la lista de tokens revocados.
func NewManager(almacen fiber.Storage, auth Autenticador) *Manager {
	store := session.New(session.Config{
		Storage:        almacen,
		Expiration:     24 * time.Hour,
		KeyLookup:      "cookie:hotel_session",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
	return &Manager{sesiones: store, revocadas: almacen, auth: auth}
}

// Iniciar autentica contra el backend y, solo si tuvo éxito, guarda token y
// usuario juntos en la sesión. Ante fallo no muta nada y devuelve el error.
func (m *Manager) Iniciar(c *fiber.Ctx, correo, password string) (*domain.Usuario, error) {
	credencial, err := m.auth.Login(c.Context(), correo, password)
	if err != nil {
		return nil, err
	}

	sess, err := m.sesiones.Get(c)
	if err != nil {
		return nil, err
	}
	perfil, err := json.Marshal(credencial.Usuario)
	if err != nil {
		return nil, err
	}
	sess.Set(claveToken, credencial.Token)
	sess.Set(claveUsuario, string(perfil))
	if err := sess.Save(); err != nil {
		return nil, err
	}
	return &credencial.Usuario, nil
}

// Cerrar destruye la sesión incondicionalmente. Es idempotente: cerrar una
// sesión ya cerrada deja el mismo estado limpio.
func (m *Manager) Cerrar(c *fiber.Ctx) error {
	sess, err := m.sesiones.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}

// Credencial rehidrata {token, usuario} de la sesión. Estado corrupto o un
// token revocado se tratan como sesión ausente y se limpian, nunca como
// condición de crash.
func (m *Manager) Credencial(c *fiber.Ctx) (*domain.Credencial, bool) {
	sess, err := m.sesiones.Get(c)
	if err != nil {
		return nil, false
	}

	token, _ := sess.Get(claveToken).(string)
	perfil, _ := sess.Get(claveUsuario).(string)
	if token == "" || perfil == "" {
		return nil, false
	}

	if m.estaRevocado(token) {
		if err := sess.Destroy(); err != nil {
			log.Printf("Error destruyendo sesión revocada: %v", err)
		}
		return nil, false
	}

	var usuario domain.Usuario
	if err := json.Unmarshal([]byte(perfil), &usuario); err != nil {
		log.Printf("Perfil de sesión corrupto, limpiando: %v", err)
		if err := sess.Destroy(); err != nil {
			log.Printf("Error destruyendo sesión corrupta: %v", err)
		}
		return nil, false
	}
	return &domain.Credencial{Token: token, Usuario: usuario}, true
}

// Token devuelve el bearer token actual, o vacío si no hay sesión.
func (m *Manager) Token(c *fiber.Ctx) string {
	if cred, ok := m.Credencial(c); ok {
		return cred.Token
	}
	return ""
}

// EstaAutenticado indica si hay una credencial vigente.
func (m *Manager) EstaAutenticado(c *fiber.Ctx) bool {
	_, ok := m.Credencial(c)
	return ok
}

// Revocar marca un token como rechazado por el backend. Es el hook de 401
// del cliente API: la próxima lectura de cualquier sesión que cargue ese
// token la destruye, sin importar desde qué pantalla salió la llamada.
func (m *Manager) Revocar(token string) {
	if token == "" {
		return
	}
	if err := m.revocadas.Set("revocado:"+token, []byte("1"), ttlRevocacion); err != nil {
		log.Printf("Error registrando token revocado: %v", err)
	}
}

func (m *Manager) estaRevocado(token string) bool {
	val, err := m.revocadas.Get("revocado:" + token)
	if err != nil {
		log.Printf("Error consultando revocación: %v", err)
		return false
	}
	return val != nil
}
