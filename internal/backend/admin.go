package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/TobiasMontone/hotel-mirage-frontend/internal/domain"
)

// AdminService expone los endpoints administrativos del backend.
type AdminService struct {
	client *Client
}

func NewAdminService(client *Client) *AdminService {
	return &AdminService{client: client}
}

// Estadisticas obtiene los agregados del dashboard.
func (s *AdminService) Estadisticas(ctx context.Context, token string) (*domain.Estadisticas, error) {
	var stats domain.Estadisticas
	if err := s.client.Do(ctx, http.MethodGet, "/admin/stats", token, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ReservasActivas obtiene las reservas pendientes y confirmadas vigentes.
func (s *AdminService) ReservasActivas(ctx context.Context, token string) ([]domain.Reserva, error) {
	var reservas []domain.Reserva
	if err := s.client.Do(ctx, http.MethodGet, "/admin/active-bookings", token, nil, &reservas); err != nil {
		return nil, err
	}
	return reservas, nil
}

type reporteRequest struct {
	Tipo        string            `json:"reportType"`
	FechaInicio string            `json:"startDate"`
	FechaFin    string            `json:"endDate"`
	Filtros     map[string]string `json:"filters"`
}

// GenerarReporte pide un reporte personalizado al backend.
func (s *AdminService) GenerarReporte(ctx context.Context, token, tipo, inicio, fin string, filtros map[string]string) (map[string]interface{}, error) {
	if filtros == nil {
		filtros = map[string]string{}
	}
	body := reporteRequest{Tipo: tipo, FechaInicio: inicio, FechaFin: fin, Filtros: filtros}
	var reporte map[string]interface{}
	if err := s.client.Do(ctx, http.MethodPost, "/admin/reports", token, body, &reporte); err != nil {
		return nil, err
	}
	return reporte, nil
}

// Usuarios lista los usuarios del back-office.
func (s *AdminService) Usuarios(ctx context.Context, token string) ([]domain.Usuario, error) {
	var usuarios []domain.Usuario
	if err := s.client.Do(ctx, http.MethodGet, "/admin/users", token, nil, &usuarios); err != nil {
		return nil, err
	}
	return usuarios, nil
}

// ActualizarUsuario edita un usuario del back-office.
func (s *AdminService) ActualizarUsuario(ctx context.Context, token, id string, usuario domain.Usuario) error {
	path := "/admin/users/" + url.PathEscape(id)
	return s.client.Do(ctx, http.MethodPut, path, token, usuario, nil)
}

// EliminarUsuario borra un usuario del back-office.
func (s *AdminService) EliminarUsuario(ctx context.Context, token, id string) error {
	path := "/admin/users/" + url.PathEscape(id)
	return s.client.Do(ctx, http.MethodDelete, path, token, nil, nil)
}
