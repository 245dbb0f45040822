package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/TobiasMontone/hotel-mirage-frontend/internal/domain"
)

// PagosService expone los endpoints del proveedor de pagos que intermedia el
// backend (creación de preferencias y consulta de estado).
type PagosService struct {
	client *Client
}

func NewPagosService(client *Client) *PagosService {
	return &PagosService{client: client}
}

// preferenciaRequest lleva el contexto completo de la reserva pendiente al
// backend, que es quien habla con el proveedor.
type preferenciaRequest struct {
	Habitacion     string              `json:"habitacion"`
	HabitacionData preferenciaRoomData `json:"habitacionData"`
	Cliente        domain.DatosHuesped `json:"cliente"`
	FechaEntrada   string              `json:"fechaEntrada"`
	FechaSalida    string              `json:"fechaSalida"`
	NumeroPersonas int                 `json:"numeroPersonas"`
	Noches         int                 `json:"noches"`
	Observaciones  string              `json:"observaciones"`
	PrecioTotal    float64             `json:"precioTotal"`
}

type preferenciaRoomData struct {
	Tipo        string  `json:"tipo"`
	Numero      string  `json:"numero"`
	PrecioNoche float64 `json:"precioNoche"`
}

// CrearPreferencia crea una preferencia de pago y devuelve la URL del
// checkout alojado más el id de preferencia.
func (s *PagosService) CrearPreferencia(ctx context.Context, pendiente domain.ReservaPendientePago, precioNoche float64) (*domain.PreferenciaPago, error) {
	body := preferenciaRequest{
		Habitacion: pendiente.HabitacionID,
		HabitacionData: preferenciaRoomData{
			Tipo:        pendiente.TipoHabitacion,
			Numero:      pendiente.NumeroHab,
			PrecioNoche: precioNoche,
		},
		Cliente:        pendiente.Huesped,
		FechaEntrada:   pendiente.FechaEntrada,
		FechaSalida:    pendiente.FechaSalida,
		NumeroPersonas: pendiente.NumeroPersonas,
		Noches:         pendiente.Noches,
		Observaciones:  pendiente.Observaciones,
		PrecioTotal:    pendiente.PrecioTotal,
	}

	var preferencia domain.PreferenciaPago
	if err := s.client.Do(ctx, http.MethodPost, "/mercadopago/create-preference", "", body, &preferencia); err != nil {
		return nil, err
	}
	return &preferencia, nil
}

// EstadoPago consulta el estado de un pago ya procesado por el proveedor.
func (s *PagosService) EstadoPago(ctx context.Context, pagoID string) (*domain.EstadoPagoProveedor, error) {
	var estado domain.EstadoPagoProveedor
	path := "/mercadopago/payment/" + url.PathEscape(pagoID)
	if err := s.client.Do(ctx, http.MethodGet, path, "", nil, &estado); err != nil {
		return nil, err
	}
	return &estado, nil
}
