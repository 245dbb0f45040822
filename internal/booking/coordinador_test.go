package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/TobiasMontone/hotel-mirage-frontend/internal/domain"
	"github.com/TobiasMontone/hotel-mirage-frontend/internal/validate"
)

var hoy = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

type habitacionesFalsas struct {
	habitacion *domain.Habitacion
	err        error
}

func (f *habitacionesFalsas) ObtenerPorID(ctx context.Context, id string) (*domain.Habitacion, error) {
	return f.habitacion, f.err
}

type reservasFalsas struct {
	mu           sync.Mutex
	verificar    func(habitacionID, fechaEntrada, fechaSalida string) (*domain.Disponibilidad, error)
	creadas      []domain.NuevaReserva
	crearErr     error
	llamadasCheq int
}

func (f *reservasFalsas) Crear(ctx context.Context, reserva domain.NuevaReserva) (*domain.Reserva, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.crearErr != nil {
		return nil, f.crearErr
	}
	f.creadas = append(f.creadas, reserva)
	return &domain.Reserva{
		ID:                 "b1",
		CodigoConfirmacion: "ABC123",
		Estado:             domain.ReservaPendiente,
		MetodoPago:         reserva.MetodoPago,
		EstadoPago:         reserva.EstadoPago,
		PrecioTotal:        reserva.PrecioTotal,
	}, nil
}

func (f *reservasFalsas) VerificarDisponibilidad(ctx context.Context, habitacionID, fechaEntrada, fechaSalida string) (*domain.Disponibilidad, error) {
	f.mu.Lock()
	f.llamadasCheq++
	fn := f.verificar
	f.mu.Unlock()
	if fn != nil {
		return fn(habitacionID, fechaEntrada, fechaSalida)
	}
	return &domain.Disponibilidad{Disponible: true}, nil
}

type pagosFalsos struct {
	preferencia *domain.PreferenciaPago
	err         error
}

func (f *pagosFalsos) CrearPreferencia(ctx context.Context, pendiente domain.ReservaPendientePago, precioNoche float64) (*domain.PreferenciaPago, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.preferencia, nil
}

func habitacionDePrueba() *domain.Habitacion {
	return &domain.Habitacion{
		ID:             "R1",
		Numero:         "101",
		Nombre:         "Habitación 101",
		Tipo:           domain.TipoDoble,
		PrecioPorNoche: 50000,
		Capacidad:      2,
		Estado:         domain.HabitacionDisponible,
	}
}

func coordinadorDePrueba(t *testing.T, reservas *reservasFalsas, pagos *pagosFalsos) *Coordinador {
	t.Helper()
	co := NewCoordinador(&habitacionesFalsas{habitacion: habitacionDePrueba()}, reservas, pagos, validate.New())
	if err := co.CargarHabitacion(context.Background(), "R1"); err != nil {
		t.Fatalf("CargarHabitacion: %v", err)
	}
	return co
}

func formularioValido() validate.FormularioHuesped {
	return validate.FormularioHuesped{
		Nombre:         "María",
		Apellido:       "Pérez",
		Correo:         "maria@ejemplo.com",
		DNI:            "30.123.456",
		Telefono:       "+54 11 4444 5555",
		FechaEntrada:   "2025-06-10",
		FechaSalida:    "2025-06-12",
		NumeroPersonas: 2,
	}
}

func TestCargarHabitacionFalla(t *testing.T) {
	co := NewCoordinador(&habitacionesFalsas{err: errors.New("404")}, &reservasFalsas{}, &pagosFalsos{}, validate.New())
	if err := co.CargarHabitacion(context.Background(), "R9"); err == nil {
		t.Fatal("esperaba error al cargar la habitación")
	}
	if co.Estado() != EstadoCargando {
		t.Errorf("estado = %v, el flujo no debería avanzar", co.Estado())
	}
}

func TestReservaEfectivoEndToEnd(t *testing.T) {
	reservas := &reservasFalsas{}
	co := coordinadorDePrueba(t, reservas, &pagosFalsos{})

	if _, err := co.VerificarDisponibilidad(context.Background(), "2025-06-10", "2025-06-12", hoy); err != nil {
		t.Fatalf("VerificarDisponibilidad: %v", err)
	}
	if co.Estado() != EstadoListo {
		t.Fatalf("estado = %v, esperaba listo", co.Estado())
	}

	noches, total := co.Resumen("2025-06-10", "2025-06-12")
	if noches != 2 || total != 100000 {
		t.Errorf("Resumen = %d noches $%.0f, esperaba 2 noches $100000", noches, total)
	}

	reserva, err := co.ReservarEfectivo(context.Background(), formularioValido(), hoy)
	if err != nil {
		t.Fatalf("ReservarEfectivo: %v", err)
	}
	if reserva.MetodoPago != domain.PagoEfectivo || reserva.EstadoPago != domain.PagoPendiente {
		t.Errorf("pago = %s/%s, esperaba efectivo/pendiente", reserva.MetodoPago, reserva.EstadoPago)
	}
	if reserva.Estado != domain.ReservaPendiente {
		t.Errorf("estado = %s, esperaba pendiente", reserva.Estado)
	}
	if co.Estado() != EstadoExito {
		t.Errorf("estado del flujo = %v", co.Estado())
	}

	enviada := reservas.creadas[0]
	if enviada.PrecioTotal != 100000 {
		t.Errorf("precio total enviado = %.0f", enviada.PrecioTotal)
	}
	if enviada.Huesped.DNI != "30.123.456" {
		t.Errorf("dni enviado = %q", enviada.Huesped.DNI)
	}
}

func TestCapacidadExcedidaBloqueaSinLlamarALaRed(t *testing.T) {
	reservas := &reservasFalsas{}
	co := coordinadorDePrueba(t, reservas, &pagosFalsos{})
	co.VerificarDisponibilidad(context.Background(), "2025-06-10", "2025-06-12", hoy)

	form := formularioValido()
	form.NumeroPersonas = 3

	_, err := co.ReservarEfectivo(context.Background(), form, hoy)
	var bloqueo *ErrorBloqueo
	if !errors.As(err, &bloqueo) {
		t.Fatalf("err = %v, esperaba *ErrorBloqueo", err)
	}
	if bloqueo.Motivo != "La habitación solo admite 2 personas" {
		t.Errorf("motivo = %q", bloqueo.Motivo)
	}
	if len(reservas.creadas) != 0 {
		t.Error("no debía llegar ninguna creación a la red")
	}
}

func TestFechasInvalidasBloqueanAunqueHayaDisponibilidad(t *testing.T) {
	reservas := &reservasFalsas{}
	co := coordinadorDePrueba(t, reservas, &pagosFalsos{})
	co.VerificarDisponibilidad(context.Background(), "2025-06-10", "2025-06-12", hoy)

	// salida anterior a la entrada
	form := formularioValido()
	form.FechaEntrada = "2025-06-12"
	form.FechaSalida = "2025-06-10"
	if _, err := co.ReservarEfectivo(context.Background(), form, hoy); err == nil {
		t.Error("salida ≤ entrada debería bloquear el envío")
	}

	// estadía mayor a 30 noches
	form = formularioValido()
	form.FechaSalida = "2025-07-20"
	if _, err := co.ReservarEfectivo(context.Background(), form, hoy); err == nil {
		t.Error("más de 30 noches debería bloquear el envío")
	}
	if len(reservas.creadas) != 0 {
		t.Error("ningún envío bloqueado debía llegar a la red")
	}
}

func TestNoDisponibleBloqueaConMensajeDelServidor(t *testing.T) {
	reservas := &reservasFalsas{
		verificar: func(id, entrada, salida string) (*domain.Disponibilidad, error) {
			return &domain.Disponibilidad{Disponible: false, Mensaje: "no disponible"}, nil
		},
	}
	co := coordinadorDePrueba(t, reservas, &pagosFalsos{})

	resultado, err := co.VerificarDisponibilidad(context.Background(), "2025-06-10", "2025-06-12", hoy)
	if err != nil {
		t.Fatalf("VerificarDisponibilidad: %v", err)
	}
	if resultado.Disponible || resultado.Mensaje != "no disponible" {
		t.Errorf("resultado = %+v, el mensaje debe conservarse literal", resultado)
	}
	if co.Estado() == EstadoListo {
		t.Error("el flujo no puede quedar listo sin disponibilidad")
	}

	if _, err := co.ReservarEfectivo(context.Background(), formularioValido(), hoy); err == nil {
		t.Error("el envío debía quedar bloqueado")
	}
	if _, _, err := co.CrearPago(context.Background(), formularioValido(), hoy); err == nil {
		t.Error("el pago online también debía quedar bloqueado")
	}
}

// Dos chequeos emitidos en orden A→B cuyas respuestas llegan B→A: el estado
// debe reflejar B, el último emitido.
func TestRespuestaViejaDeDisponibilidadSeDescarta(t *testing.T) {
	liberarA := make(chan struct{})
	reservas := &reservasFalsas{}
	reservas.verificar = func(id, entrada, salida string) (*domain.Disponibilidad, error) {
		if entrada == "2025-06-10" { // chequeo A: se demora hasta que B termine
			<-liberarA
			return &domain.Disponibilidad{Disponible: true}, nil
		}
		return &domain.Disponibilidad{Disponible: false, Mensaje: "no disponible"}, nil
	}
	co := coordinadorDePrueba(t, reservas, &pagosFalsos{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		co.VerificarDisponibilidad(context.Background(), "2025-06-10", "2025-06-12", hoy)
	}()

	// Esperar a que A esté en vuelo antes de emitir B.
	for {
		reservas.mu.Lock()
		enVuelo := reservas.llamadasCheq >= 1
		reservas.mu.Unlock()
		if enVuelo {
			break
		}
		time.Sleep(time.Millisecond)
	}

	resultadoB, err := co.VerificarDisponibilidad(context.Background(), "2025-06-15", "2025-06-17", hoy)
	if err != nil {
		t.Fatalf("chequeo B: %v", err)
	}
	if resultadoB.Disponible {
		t.Fatal("B debía reportar no disponible")
	}

	close(liberarA)
	wg.Wait()

	vigente := co.Disponibilidad()
	if vigente == nil || vigente.Disponible {
		t.Errorf("el estado vigente = %+v, debía ser el resultado de B", vigente)
	}
	if vigente.Mensaje != "no disponible" {
		t.Errorf("mensaje vigente = %q", vigente.Mensaje)
	}
}

func TestCrearPagoDevuelveSnapshotYPreferencia(t *testing.T) {
	pagos := &pagosFalsos{preferencia: &domain.PreferenciaPago{
		URLRedireccion: "https://mp.example/checkout/123",
		PreferenciaID:  "pref-123",
	}}
	co := coordinadorDePrueba(t, &reservasFalsas{}, pagos)
	co.VerificarDisponibilidad(context.Background(), "2025-06-10", "2025-06-12", hoy)

	preferencia, pendiente, err := co.CrearPago(context.Background(), formularioValido(), hoy)
	if err != nil {
		t.Fatalf("CrearPago: %v", err)
	}
	if preferencia.URLRedireccion == "" {
		t.Error("falta la URL de redirección")
	}
	if pendiente.PreferenciaID != "pref-123" {
		t.Errorf("snapshot sin preferencia: %+v", pendiente)
	}
	if pendiente.Noches != 2 || pendiente.PrecioTotal != 100000 {
		t.Errorf("snapshot = %d noches $%.0f", pendiente.Noches, pendiente.PrecioTotal)
	}
}

func TestCrearPagoNoEsExitoHastaConfirmarRedireccion(t *testing.T) {
	pagos := &pagosFalsos{preferencia: &domain.PreferenciaPago{
		URLRedireccion: "https://mp.example/checkout/123",
		PreferenciaID:  "pref-123",
	}}
	co := coordinadorDePrueba(t, &reservasFalsas{}, pagos)
	co.VerificarDisponibilidad(context.Background(), "2025-06-10", "2025-06-12", hoy)

	if _, _, err := co.CrearPago(context.Background(), formularioValido(), hoy); err != nil {
		t.Fatalf("CrearPago: %v", err)
	}
	if co.Estado() != EstadoEnviando {
		t.Fatalf("estado tras CrearPago = %v, el flujo no debe declararse exitoso antes de guardar la instantánea", co.Estado())
	}

	// Si la instantánea no pudo guardarse, el flujo vuelve a listo.
	co.PagoNoIniciado()
	if co.Estado() != EstadoListo {
		t.Errorf("estado tras abortar = %v", co.Estado())
	}

	if _, _, err := co.CrearPago(context.Background(), formularioValido(), hoy); err != nil {
		t.Fatalf("CrearPago (reintento): %v", err)
	}
	co.PagoRedirigido()
	if co.Estado() != EstadoExito {
		t.Errorf("estado tras redirigir = %v", co.Estado())
	}
}

func TestCrearPagoFallaQuedaListoParaReintentar(t *testing.T) {
	pagos := &pagosFalsos{err: errors.New("proveedor caído")}
	co := coordinadorDePrueba(t, &reservasFalsas{}, pagos)
	co.VerificarDisponibilidad(context.Background(), "2025-06-10", "2025-06-12", hoy)

	if _, _, err := co.CrearPago(context.Background(), formularioValido(), hoy); err == nil {
		t.Fatal("esperaba el error del proveedor")
	}
	if co.Estado() != EstadoListo {
		t.Errorf("estado = %v, el flujo debía quedar listo para reintentar", co.Estado())
	}
}

func TestRegistroPodaInactivos(t *testing.T) {
	registro := NewRegistro(func() *Coordinador {
		return NewCoordinador(&habitacionesFalsas{habitacion: habitacionDePrueba()}, &reservasFalsas{}, &pagosFalsos{}, validate.New())
	})

	co, nuevo := registro.Obtener("sess1:R1")
	if !nuevo {
		t.Fatal("el primer acceso debía crear el flujo")
	}
	if otra, nuevo := registro.Obtener("sess1:R1"); nuevo || otra != co {
		t.Error("el segundo acceso debía devolver el mismo flujo")
	}

	co.mu.Lock()
	co.ultimoUso = time.Now().Add(-2 * time.Hour)
	co.mu.Unlock()

	if podados := registro.PodarInactivos(time.Hour); podados != 1 {
		t.Errorf("podados = %d, esperaba 1", podados)
	}
	if _, nuevo := registro.Obtener("sess1:R1"); !nuevo {
		t.Error("tras la poda el flujo debía crearse de nuevo")
	}
}
