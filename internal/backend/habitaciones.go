package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/TobiasMontone/hotel-mirage-frontend/internal/domain"
)

// HabitacionesService expone los endpoints de habitaciones del backend.
// Sin lógica propia: armado de petición y desarmado de respuesta.
type HabitacionesService struct {
	client *Client
}

func NewHabitacionesService(client *Client) *HabitacionesService {
	return &HabitacionesService{client: client}
}

// Listar obtiene todas las habitaciones, con filtros opcionales.
func (s *HabitacionesService) Listar(ctx context.Context, token string, filtros domain.FiltrosHabitacion) ([]domain.Habitacion, error) {
	params := url.Values{}
	if filtros.Tipo != "" {
		params.Set("type", filtros.Tipo)
	}
	if filtros.PrecioMax > 0 {
		params.Set("maxPrice", fmt.Sprintf("%g", filtros.PrecioMax))
	}
	if filtros.Capacidad > 0 {
		params.Set("capacity", fmt.Sprintf("%d", filtros.Capacidad))
	}

	path := "/rooms"
	if q := params.Encode(); q != "" {
		path += "?" + q
	}

	var habitaciones []domain.Habitacion
	if err := s.client.Do(ctx, http.MethodGet, path, token, nil, &habitaciones); err != nil {
		return nil, err
	}
	return habitaciones, nil
}

// Tipos obtiene el resumen agregado por tipo de habitación.
func (s *HabitacionesService) Tipos(ctx context.Context) ([]domain.TipoResumen, error) {
	var tipos []domain.TipoResumen
	if err := s.client.Do(ctx, http.MethodGet, "/rooms/types", "", nil, &tipos); err != nil {
		return nil, err
	}
	return tipos, nil
}

// DisponiblesPorTipo obtiene las habitaciones de un tipo sin reservas activas.
func (s *HabitacionesService) DisponiblesPorTipo(ctx context.Context, tipo string) ([]domain.Habitacion, error) {
	var habitaciones []domain.Habitacion
	path := "/rooms/available/" + url.PathEscape(tipo)
	if err := s.client.Do(ctx, http.MethodGet, path, "", nil, &habitaciones); err != nil {
		return nil, err
	}
	return habitaciones, nil
}

// PorTipoAdmin obtiene las habitaciones de un tipo con su estado real de
// ocupación (solo back-office).
func (s *HabitacionesService) PorTipoAdmin(ctx context.Context, token, tipo string) ([]domain.Habitacion, error) {
	var habitaciones []domain.Habitacion
	path := "/rooms/admin/type/" + url.PathEscape(tipo)
	if err := s.client.Do(ctx, http.MethodGet, path, token, nil, &habitaciones); err != nil {
		return nil, err
	}
	return habitaciones, nil
}

// ObtenerPorID obtiene una habitación puntual.
func (s *HabitacionesService) ObtenerPorID(ctx context.Context, id string) (*domain.Habitacion, error) {
	var habitacion domain.Habitacion
	path := "/rooms/" + url.PathEscape(id)
	if err := s.client.Do(ctx, http.MethodGet, path, "", nil, &habitacion); err != nil {
		return nil, err
	}
	return &habitacion, nil
}

// Crear crea una habitación (back-office).
func (s *HabitacionesService) Crear(ctx context.Context, token string, habitacion domain.Habitacion) (*domain.Habitacion, error) {
	var creada domain.Habitacion
	if err := s.client.Do(ctx, http.MethodPost, "/rooms", token, habitacion, &creada); err != nil {
		return nil, err
	}
	return &creada, nil
}

// Actualizar edita una habitación (back-office).
func (s *HabitacionesService) Actualizar(ctx context.Context, token, id string, habitacion domain.Habitacion) (*domain.Habitacion, error) {
	var actualizada domain.Habitacion
	path := "/rooms/" + url.PathEscape(id)
	if err := s.client.Do(ctx, http.MethodPut, path, token, habitacion, &actualizada); err != nil {
		return nil, err
	}
	return &actualizada, nil
}

// Eliminar borra una habitación (back-office).
func (s *HabitacionesService) Eliminar(ctx context.Context, token, id string) error {
	path := "/rooms/" + url.PathEscape(id)
	return s.client.Do(ctx, http.MethodDelete, path, token, nil, nil)
}
