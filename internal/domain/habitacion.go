package domain

// TipoHabitacion es uno de los tipos fijos que maneja el hotel.
type TipoHabitacion string

const (
	TipoSimple            TipoHabitacion = "Simple"
	TipoDoble             TipoHabitacion = "Doble"
	TipoTriple            TipoHabitacion = "Triple"
	TipoSuite             TipoHabitacion = "Suite"
	TipoSuitePresidencial TipoHabitacion = "Suite Presidencial"
)

// EstadoHabitacion es el estado operativo de una habitación, propiedad del backend.
type EstadoHabitacion string

const (
	HabitacionDisponible    EstadoHabitacion = "disponible"
	HabitacionOcupada       EstadoHabitacion = "ocupada"
	HabitacionMantenimiento EstadoHabitacion = "mantenimiento"
	HabitacionLimpieza      EstadoHabitacion = "limpieza"
)

// Habitacion es la vista cliente de una habitación. El backend es dueño del
// registro; esta capa solo lee y envía ediciones.
type Habitacion struct {
	ID             string           `json:"_id"`
	Numero         string           `json:"roomNumber"`
	Nombre         string           `json:"name"`
	Tipo           TipoHabitacion   `json:"type"`
	Descripcion    string           `json:"description"`
	PrecioPorNoche float64          `json:"pricePerNight"`
	Capacidad      int              `json:"capacity"`
	Tamanho        float64          `json:"size"`
	Amenities      []string         `json:"amenities"`
	Piso           int              `json:"floor"`
	Vista          string           `json:"view"`
	Estado         EstadoHabitacion `json:"status"`
	Imagenes       []string         `json:"images,omitempty"`
}

// TipoResumen es la vista agregada por tipo que calcula el backend y que
// alimenta la grilla de selección de tipos.
type TipoResumen struct {
	Tipo            TipoHabitacion `json:"tipo"`
	Cantidad        int            `json:"cantidad"`
	Disponibles     int            `json:"disponibles"`
	PrecioMinimo    float64        `json:"precioMinimo"`
	CapacidadMaxima int            `json:"capacidadMaxima"`
	Amenities       []string       `json:"amenities,omitempty"`
	Imagenes        []string       `json:"imagenes,omitempty"`
}

// Disponibilidad es el resultado efímero de un chequeo (habitación, rango de
// fechas). No se persiste; se recalcula en cada cambio de fechas.
type Disponibilidad struct {
	Disponible bool   `json:"disponible"`
	Mensaje    string `json:"mensaje,omitempty"`
}

// FiltrosHabitacion son los filtros opcionales del listado público.
type FiltrosHabitacion struct {
	Tipo      string
	PrecioMax float64
	Capacidad int
}

// NivelDisponibilidad es la banda de color que se muestra por tipo en el
// panel de administración.
type NivelDisponibilidad string

const (
	DisponibilidadBuena    NivelDisponibilidad = "buena"
	DisponibilidadLimitada NivelDisponibilidad = "limitada"
	DisponibilidadBaja     NivelDisponibilidad = "baja"
)

// PorcentajeDisponible calcula el porcentaje de habitaciones disponibles del
// tipo, redondeado al entero más cercano.
func (t TipoResumen) PorcentajeDisponible() int {
	if t.Cantidad <= 0 {
		return 0
	}
	return int(float64(t.Disponibles)/float64(t.Cantidad)*100 + 0.5)
}

// Nivel clasifica el porcentaje disponible en tres bandas: >50 buena,
// 25–50 limitada, <25 baja.
func (t TipoResumen) Nivel() NivelDisponibilidad {
	p := t.PorcentajeDisponible()
	switch {
	case p > 50:
		return DisponibilidadBuena
	case p >= 25:
		return DisponibilidadLimitada
	default:
		return DisponibilidadBaja
	}
}
