// Package booking coordina el flujo de la página de reserva: carga de la
// habitación, chequeos de disponibilidad al cambiar fechas, validación del
// formulario y los dos caminos de envío (efectivo y pago online).
package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/TobiasMontone/hotel-mirage-frontend/internal/domain"
	"github.com/TobiasMontone/hotel-mirage-frontend/internal/validate"
)

// Estado es la fase del flujo de reserva.
type Estado string

const (
	EstadoCargando    Estado = "cargando"
	EstadoCapturando  Estado = "capturando"
	EstadoVerificando Estado = "verificando"
	EstadoListo       Estado = "listo"
	EstadoEnviando    Estado = "enviando"
	EstadoExito       Estado = "exito"
	EstadoFallo       Estado = "fallo"
)

// Habitaciones es lo que el coordinador necesita del servicio de habitaciones.
type Habitaciones interface {
	ObtenerPorID(ctx context.Context, id string) (*domain.Habitacion, error)
}

// Reservas es lo que el coordinador necesita del servicio de reservas.
type Reservas interface {
	Crear(ctx context.Context, reserva domain.NuevaReserva) (*domain.Reserva, error)
	VerificarDisponibilidad(ctx context.Context, habitacionID, fechaEntrada, fechaSalida string) (*domain.Disponibilidad, error)
}

// Pagos es lo que el coordinador necesita del servicio de pagos.
type Pagos interface {
	CrearPreferencia(ctx context.Context, pendiente domain.ReservaPendientePago, precioNoche float64) (*domain.PreferenciaPago, error)
}

// ErrorBloqueo es un envío bloqueado localmente: nunca llegó a la red y trae
// un motivo visible, más los errores por campo si los hubo.
type ErrorBloqueo struct {
	Motivo string
	Campos map[string]string
}

func (e *ErrorBloqueo) Error() string {
	return e.Motivo
}

// Coordinador lleva el estado de un flujo de reserva sobre una habitación.
// Los chequeos de disponibilidad se etiquetan con una secuencia monótona y
// las respuestas que ya no son la última emitida se descartan.
type Coordinador struct {
	habitaciones Habitaciones
	reservas     Reservas
	pagos        Pagos
	validador    *validate.Validador

	mu             sync.Mutex
	estado         Estado
	habitacion     *domain.Habitacion
	seq            uint64
	disponibilidad *domain.Disponibilidad
	fechasChequeo  [2]string
	ultimoUso      time.Time
}

// NewCoordinador arma un flujo nuevo en estado cargando.
func NewCoordinador(habitaciones Habitaciones, reservas Reservas, pagos Pagos, validador *validate.Validador) *Coordinador {
	return &Coordinador{
		habitaciones: habitaciones,
		reservas:     reservas,
		pagos:        pagos,
		validador:    validador,
		estado:       EstadoCargando,
		ultimoUso:    time.Now(),
	}
}

// CargarHabitacion trae la habitación del flujo. Si falla, el flujo no sirve
// y el llamador devuelve al huésped al listado, sin reintentos.
func (co *Coordinador) CargarHabitacion(ctx context.Context, id string) error {
	habitacion, err := co.habitaciones.ObtenerPorID(ctx, id)
	if err != nil {
		return fmt.Errorf("error al cargar la habitación: %w", err)
	}
	co.mu.Lock()
	co.habitacion = habitacion
	co.estado = EstadoCapturando
	co.ultimoUso = time.Now()
	co.mu.Unlock()
	return nil
}

// Habitacion devuelve la habitación cargada, o nil.
func (co *Coordinador) Habitacion() *domain.Habitacion {
	co.mu.Lock()
	defer co.mu.Unlock()
	return co.habitacion
}

// Estado devuelve la fase actual del flujo.
func (co *Coordinador) Estado() Estado {
	co.mu.Lock()
	defer co.mu.Unlock()
	return co.estado
}

// VerificarDisponibilidad emite un chequeo para el rango dado. Si al volver
// la respuesta ya se emitió un chequeo más nuevo, el resultado se descarta y
// se devuelve el vigente: gana siempre el último emitido.
func (co *Coordinador) VerificarDisponibilidad(ctx context.Context, fechaEntrada, fechaSalida string, hoy time.Time) (*domain.Disponibilidad, error) {
	if errores := validate.ValidarFechas(fechaEntrada, fechaSalida, hoy); len(errores) > 0 {
		return nil, &ErrorBloqueo{Motivo: "Las fechas seleccionadas no son válidas", Campos: errores}
	}

	co.mu.Lock()
	if co.habitacion == nil {
		co.mu.Unlock()
		return nil, fmt.Errorf("el flujo no tiene habitación cargada")
	}
	habitacionID := co.habitacion.ID
	co.seq++
	emitido := co.seq
	co.estado = EstadoVerificando
	co.ultimoUso = time.Now()
	co.mu.Unlock()

	resultado, err := co.reservas.VerificarDisponibilidad(ctx, habitacionID, fechaEntrada, fechaSalida)

	co.mu.Lock()
	defer co.mu.Unlock()

	if emitido != co.seq {
		// Respuesta vieja: la descartamos y reportamos el estado vigente.
		return co.disponibilidad, nil
	}

	if err != nil {
		resultado = &domain.Disponibilidad{Disponible: false, Mensaje: "Error al verificar disponibilidad"}
	}
	co.disponibilidad = resultado
	co.fechasChequeo = [2]string{fechaEntrada, fechaSalida}
	if resultado.Disponible {
		co.estado = EstadoListo
	} else {
		co.estado = EstadoCapturando
	}
	return resultado, nil
}

// Disponibilidad devuelve el último resultado vigente, o nil si todavía no
// hay chequeo.
func (co *Coordinador) Disponibilidad() *domain.Disponibilidad {
	co.mu.Lock()
	defer co.mu.Unlock()
	return co.disponibilidad
}

// Resumen calcula noches y total para el rango dado.
func (co *Coordinador) Resumen(fechaEntrada, fechaSalida string) (int, float64) {
	noches := validate.Noches(fechaEntrada, fechaSalida)
	co.mu.Lock()
	defer co.mu.Unlock()
	if co.habitacion == nil {
		return noches, 0
	}
	return noches, float64(noches) * co.habitacion.PrecioPorNoche
}

// validarParaEnvio aplica las tres compuertas: formulario válido, último
// chequeo disponible para esas fechas, y huéspedes dentro de la capacidad.
// Devuelve la habitación bajo la cual quedó validado el envío.
func (co *Coordinador) validarParaEnvio(form validate.FormularioHuesped, hoy time.Time) (*domain.Habitacion, error) {
	if errores := co.validador.Validar(form, hoy); len(errores) > 0 {
		return nil, &ErrorBloqueo{
			Motivo: "Por favor, completa correctamente todos los campos",
			Campos: errores,
		}
	}

	co.mu.Lock()
	defer co.mu.Unlock()

	if co.habitacion == nil {
		return nil, fmt.Errorf("el flujo no tiene habitación cargada")
	}
	if co.disponibilidad == nil || !co.disponibilidad.Disponible ||
		co.fechasChequeo != [2]string{form.FechaEntrada, form.FechaSalida} {
		return nil, &ErrorBloqueo{Motivo: "La habitación no está disponible para las fechas seleccionadas"}
	}
	if form.NumeroPersonas > co.habitacion.Capacidad {
		return nil, &ErrorBloqueo{
			Motivo: fmt.Sprintf("La habitación solo admite %d personas", co.habitacion.Capacidad),
		}
	}
	return co.habitacion, nil
}

// ReservarEfectivo crea la reserva con pago en efectivo al llegar. Éxito o
// fallo son terminales para el flujo.
func (co *Coordinador) ReservarEfectivo(ctx context.Context, form validate.FormularioHuesped, hoy time.Time) (*domain.Reserva, error) {
	habitacion, err := co.validarParaEnvio(form, hoy)
	if err != nil {
		return nil, err
	}

	co.setEstado(EstadoEnviando)
	noches := validate.Noches(form.FechaEntrada, form.FechaSalida)
	reserva, err := co.reservas.Crear(ctx, domain.NuevaReserva{
		Habitacion:     habitacion.ID,
		Huesped:        huespedDe(form),
		FechaEntrada:   form.FechaEntrada,
		FechaSalida:    form.FechaSalida,
		NumeroPersonas: form.NumeroPersonas,
		Observaciones:  form.Observaciones,
		MetodoPago:     domain.PagoEfectivo,
		EstadoPago:     domain.PagoPendiente,
		PrecioTotal:    float64(noches) * habitacion.PrecioPorNoche,
	})
	if err != nil {
		co.setEstado(EstadoFallo)
		return nil, err
	}
	co.setEstado(EstadoExito)
	return reserva, nil
}

// CrearPago crea la preferencia de pago online y devuelve, junto con ella,
// la instantánea de la reserva pendiente para guardar antes de redirigir.
// El flujo queda en enviando hasta que el llamador confirme la redirección
// con PagoRedirigido o la aborte con PagoNoIniciado. Ante fallo el flujo
// queda listo para reintentar: no se creó ninguna reserva todavía.
func (co *Coordinador) CrearPago(ctx context.Context, form validate.FormularioHuesped, hoy time.Time) (*domain.PreferenciaPago, *domain.ReservaPendientePago, error) {
	habitacion, err := co.validarParaEnvio(form, hoy)
	if err != nil {
		return nil, nil, err
	}

	co.setEstado(EstadoEnviando)
	noches := validate.Noches(form.FechaEntrada, form.FechaSalida)
	pendiente := domain.ReservaPendientePago{
		HabitacionID:   habitacion.ID,
		TipoHabitacion: string(habitacion.Tipo),
		NumeroHab:      habitacion.Numero,
		Huesped:        huespedDe(form),
		FechaEntrada:   form.FechaEntrada,
		FechaSalida:    form.FechaSalida,
		NumeroPersonas: form.NumeroPersonas,
		Noches:         noches,
		PrecioTotal:    float64(noches) * habitacion.PrecioPorNoche,
		Observaciones:  form.Observaciones,
	}

	preferencia, err := co.pagos.CrearPreferencia(ctx, pendiente, habitacion.PrecioPorNoche)
	if err != nil {
		co.setEstado(EstadoListo)
		return nil, nil, err
	}
	pendiente.PreferenciaID = preferencia.PreferenciaID
	return preferencia, &pendiente, nil
}

// PagoRedirigido marca el flujo como exitoso. Se llama recién cuando la
// instantánea quedó guardada y el huésped sale hacia el proveedor de pago.
func (co *Coordinador) PagoRedirigido() {
	co.setEstado(EstadoExito)
}

// PagoNoIniciado devuelve el flujo a listo cuando la redirección no pudo
// completarse. No se creó ninguna reserva.
func (co *Coordinador) PagoNoIniciado() {
	co.setEstado(EstadoListo)
}

func (co *Coordinador) setEstado(estado Estado) {
	co.mu.Lock()
	co.estado = estado
	co.ultimoUso = time.Now()
	co.mu.Unlock()
}

func huespedDe(form validate.FormularioHuesped) domain.DatosHuesped {
	return domain.DatosHuesped{
		Nombre:   form.Nombre,
		Apellido: form.Apellido,
		Correo:   form.Correo,
		Telefono: form.Telefono,
		DNI:      form.DNI,
	}
}
