package backend

import (
	"context"
	"net/http"

	"github.com/TobiasMontone/hotel-mirage-frontend/internal/domain"
)

// AuthService expone los endpoints de autenticación. El token es opaco para
// esta capa: se guarda y se reenvía, nunca se interpreta.
type AuthService struct {
	client *Client
}

func NewAuthService(client *Client) *AuthService {
	return &AuthService{client: client}
}

type loginRequest struct {
	Correo   string `json:"email"`
	Password string `json:"password"`
}

// Login autentica al usuario y devuelve la credencial {token, usuario}.
func (s *AuthService) Login(ctx context.Context, correo, password string) (*domain.Credencial, error) {
	var credencial domain.Credencial
	body := loginRequest{Correo: correo, Password: password}
	if err := s.client.Do(ctx, http.MethodPost, "/auth/login", "", body, &credencial); err != nil {
		return nil, err
	}
	return &credencial, nil
}

// Perfil obtiene el perfil del usuario autenticado.
func (s *AuthService) Perfil(ctx context.Context, token string) (*domain.Usuario, error) {
	var usuario domain.Usuario
	if err := s.client.Do(ctx, http.MethodGet, "/auth/me", token, nil, &usuario); err != nil {
		return nil, err
	}
	return &usuario, nil
}

// ActualizarPerfil edita el perfil del usuario autenticado.
func (s *AuthService) ActualizarPerfil(ctx context.Context, token string, usuario domain.Usuario) (*domain.Usuario, error) {
	var actualizado domain.Usuario
	if err := s.client.Do(ctx, http.MethodPut, "/auth/me", token, usuario, &actualizado); err != nil {
		return nil, err
	}
	return &actualizado, nil
}

type cambioPassword struct {
	Actual string `json:"currentPassword"`
	Nueva  string `json:"newPassword"`
}

// CambiarPassword cambia la contraseña del usuario autenticado.
func (s *AuthService) CambiarPassword(ctx context.Context, token, actual, nueva string) error {
	body := cambioPassword{Actual: actual, Nueva: nueva}
	return s.client.Do(ctx, http.MethodPut, "/auth/change-password", token, body, nil)
}

// Registrar da de alta un usuario del back-office (solo admin).
func (s *AuthService) Registrar(ctx context.Context, token string, usuario domain.Usuario, password string) error {
	body := struct {
		domain.Usuario
		Password string `json:"password"`
	}{Usuario: usuario, Password: password}
	return s.client.Do(ctx, http.MethodPost, "/auth/register", token, body, nil)
}
