package domain

// EstadoReserva representa el ciclo de vida de una reserva. Las transiciones
// las decide el backend; esta capa solo pide confirmar/cancelar/completar.
type EstadoReserva string

const (
	ReservaPendiente  EstadoReserva = "pendiente"
	ReservaConfirmada EstadoReserva = "confirmada"
	ReservaCancelada  EstadoReserva = "cancelada"
	ReservaCompletada EstadoReserva = "completada"
)

// MetodoPago es el método elegido por el huésped al reservar.
type MetodoPago string

const (
	PagoEfectivo MetodoPago = "efectivo"
	PagoOnline   MetodoPago = "mercadopago"
)

// EstadoPago es el estado del cobro asociado a la reserva.
type EstadoPago string

const (
	PagoPendiente EstadoPago = "pendiente"
	PagoAprobado  EstadoPago = "aprobado"
	PagoRechazado EstadoPago = "rechazado"
)

// DatosHuesped son los datos personales que captura el formulario de reserva.
type DatosHuesped struct {
	Nombre   string `json:"firstName"`
	Apellido string `json:"lastName"`
	Correo   string `json:"email"`
	Telefono string `json:"phone"`
	DNI      string `json:"dni"`
}

// Reserva es la vista cliente de una reserva creada por el backend.
type Reserva struct {
	ID                 string        `json:"_id"`
	CodigoConfirmacion string        `json:"confirmationCode"`
	Habitacion         Habitacion    `json:"room"`
	Huesped            DatosHuesped  `json:"guestInfo"`
	FechaEntrada       string        `json:"checkIn"`
	FechaSalida        string        `json:"checkOut"`
	NumeroPersonas     int           `json:"numberOfGuests"`
	Noches             int           `json:"numberOfNights"`
	PrecioTotal        float64       `json:"totalPrice"`
	Estado             EstadoReserva `json:"status"`
	MetodoPago         MetodoPago    `json:"paymentMethod"`
	EstadoPago         EstadoPago    `json:"paymentStatus"`
	Observaciones      string        `json:"specialRequests,omitempty"`
}

// NuevaReserva es el payload de creación que espera el backend.
type NuevaReserva struct {
	Habitacion     string       `json:"room"`
	Huesped        DatosHuesped `json:"guestInfo"`
	FechaEntrada   string       `json:"checkIn"`
	FechaSalida    string       `json:"checkOut"`
	NumeroPersonas int          `json:"numberOfGuests"`
	Observaciones  string       `json:"specialRequests"`
	MetodoPago     MetodoPago   `json:"paymentMethod"`
	EstadoPago     EstadoPago   `json:"paymentStatus"`
	PrecioTotal    float64      `json:"totalPrice"`
}

// PuedeConfirmarse indica si el panel debe ofrecer la transición a confirmada.
func (r Reserva) PuedeConfirmarse() bool {
	return r.Estado == ReservaPendiente
}

// PuedeCancelarse indica si el panel debe ofrecer la cancelación.
func (r Reserva) PuedeCancelarse() bool {
	return r.Estado == ReservaPendiente || r.Estado == ReservaConfirmada
}

// PuedeCompletarse indica si el panel debe ofrecer el checkout.
func (r Reserva) PuedeCompletarse() bool {
	return r.Estado == ReservaConfirmada
}
