package domain

// TotalesEstadisticas son los agregados principales del dashboard, calculados
// por el backend.
type TotalesEstadisticas struct {
	Habitaciones            int     `json:"rooms"`
	HabitacionesDisponibles int     `json:"availableRooms"`
	Reservas                int     `json:"bookings"`
	ReservasActivas         int     `json:"activeBookings"`
	Ingresos                float64 `json:"revenue"`
}

// ConteoPorClave es un bucket de agregación { _id, count } tal como lo
// devuelve el backend.
type ConteoPorClave struct {
	Clave  string `json:"_id"`
	Conteo int    `json:"count"`
}

// IngresoMensual es un punto de la serie mensual de ingresos.
type IngresoMensual struct {
	Periodo struct {
		Anho int `json:"year"`
		Mes  int `json:"month"`
	} `json:"_id"`
	Total float64 `json:"total"`
}

// Estadisticas es la respuesta completa del endpoint de estadísticas.
type Estadisticas struct {
	Totales           TotalesEstadisticas `json:"totals"`
	HabitacionesTipo  []ConteoPorClave    `json:"roomsByType"`
	ReservasPorEstado []ConteoPorClave    `json:"bookingsByStatus"`
	IngresosMensuales []IngresoMensual    `json:"monthlyRevenue"`
}

// PorcentajeOcupacion calcula (total − disponibles) / total redondeado,
// protegido contra división por cero.
func (e Estadisticas) PorcentajeOcupacion() int {
	if e.Totales.Habitaciones <= 0 {
		return 0
	}
	ocupadas := e.Totales.Habitaciones - e.Totales.HabitacionesDisponibles
	return int(float64(ocupadas)/float64(e.Totales.Habitaciones)*100 + 0.5)
}

// IngresoPromedio calcula el ingreso promedio por reserva, protegido contra
// división por cero.
func (e Estadisticas) IngresoPromedio() float64 {
	if e.Totales.Reservas <= 0 {
		return 0
	}
	return e.Totales.Ingresos / float64(e.Totales.Reservas)
}
