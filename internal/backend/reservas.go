package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/TobiasMontone/hotel-mirage-frontend/internal/domain"
)

// ReservasService expone los endpoints de reservas del backend.
type ReservasService struct {
	client *Client
}

func NewReservasService(client *Client) *ReservasService {
	return &ReservasService{client: client}
}

// Crear crea una reserva nueva. La validación autoritativa de fechas,
// disponibilidad y capacidad ocurre en el backend; lo local es solo UX.
func (s *ReservasService) Crear(ctx context.Context, reserva domain.NuevaReserva) (*domain.Reserva, error) {
	var creada domain.Reserva
	if err := s.client.Do(ctx, http.MethodPost, "/bookings", "", reserva, &creada); err != nil {
		return nil, err
	}
	return &creada, nil
}

type chequeoDisponibilidad struct {
	HabitacionID string `json:"habitacionId"`
	FechaEntrada string `json:"fechaEntrada"`
	FechaSalida  string `json:"fechaSalida"`
}

// VerificarDisponibilidad consulta si la habitación está libre para el rango.
func (s *ReservasService) VerificarDisponibilidad(ctx context.Context, habitacionID, fechaEntrada, fechaSalida string) (*domain.Disponibilidad, error) {
	body := chequeoDisponibilidad{
		HabitacionID: habitacionID,
		FechaEntrada: fechaEntrada,
		FechaSalida:  fechaSalida,
	}
	var resultado domain.Disponibilidad
	if err := s.client.Do(ctx, http.MethodPost, "/bookings/verificar-disponibilidad", "", body, &resultado); err != nil {
		return nil, err
	}
	return &resultado, nil
}

// Listar obtiene las reservas, con filtro opcional por estado (back-office).
func (s *ReservasService) Listar(ctx context.Context, token, estado string) ([]domain.Reserva, error) {
	path := "/bookings"
	if estado != "" {
		path += "?status=" + url.QueryEscape(estado)
	}
	var reservas []domain.Reserva
	if err := s.client.Do(ctx, http.MethodGet, path, token, nil, &reservas); err != nil {
		return nil, err
	}
	return reservas, nil
}

// ObtenerPorID obtiene una reserva puntual (back-office).
func (s *ReservasService) ObtenerPorID(ctx context.Context, token, id string) (*domain.Reserva, error) {
	var reserva domain.Reserva
	path := "/bookings/" + url.PathEscape(id)
	if err := s.client.Do(ctx, http.MethodGet, path, token, nil, &reserva); err != nil {
		return nil, err
	}
	return &reserva, nil
}

// ObtenerPorCodigo obtiene una reserva por su código de confirmación.
func (s *ReservasService) ObtenerPorCodigo(ctx context.Context, codigo string) (*domain.Reserva, error) {
	var reserva domain.Reserva
	path := "/bookings/confirmation/" + url.PathEscape(codigo)
	if err := s.client.Do(ctx, http.MethodGet, path, "", nil, &reserva); err != nil {
		return nil, err
	}
	return &reserva, nil
}

// Confirmar pide la transición pendiente → confirmada.
func (s *ReservasService) Confirmar(ctx context.Context, token, id string) error {
	path := "/bookings/" + url.PathEscape(id) + "/confirm"
	return s.client.Do(ctx, http.MethodPatch, path, token, nil, nil)
}

// Cancelar pide la cancelación de la reserva.
func (s *ReservasService) Cancelar(ctx context.Context, token, id string) error {
	path := "/bookings/" + url.PathEscape(id) + "/cancel"
	return s.client.Do(ctx, http.MethodPatch, path, token, nil, nil)
}

// Completar pide la transición confirmada → completada (checkout).
func (s *ReservasService) Completar(ctx context.Context, token, id string) error {
	path := "/bookings/" + url.PathEscape(id) + "/complete"
	return s.client.Do(ctx, http.MethodPatch, path, token, nil, nil)
}
