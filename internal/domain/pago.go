package domain

// PreferenciaPago es el resultado efímero de crear una preferencia en el
// proveedor de pagos: se consume de inmediato redirigiendo el navegador.
type PreferenciaPago struct {
	URLRedireccion string `json:"init_point"`
	PreferenciaID  string `json:"preference_id"`
}

// EstadoPagoProveedor es la consulta puntual del estado de un pago ya
// procesado por el proveedor.
type EstadoPagoProveedor struct {
	PagoID string `json:"payment_id"`
	Estado string `json:"status"`
	Monto  float64 `json:"amount,omitempty"`
}

// Aprobado indica si el proveedor reporta el pago como acreditado.
func (e EstadoPagoProveedor) Aprobado() bool {
	return e.Estado == "approved"
}

// ReservaPendientePago es la instantánea que se guarda antes de redirigir al
// proveedor, para poder mostrarla si el huésped vuelve por error o pendiente.
type ReservaPendientePago struct {
	PreferenciaID  string       `json:"preferenciaId"`
	HabitacionID   string       `json:"habitacionId"`
	TipoHabitacion string       `json:"tipoHabitacion"`
	NumeroHab      string       `json:"numeroHabitacion"`
	Huesped        DatosHuesped `json:"huesped"`
	FechaEntrada   string       `json:"fechaEntrada"`
	FechaSalida    string       `json:"fechaSalida"`
	NumeroPersonas int          `json:"numeroPersonas"`
	Noches         int          `json:"noches"`
	PrecioTotal    float64      `json:"precioTotal"`
	Observaciones  string       `json:"observaciones,omitempty"`
}
