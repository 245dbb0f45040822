package domain

import "testing"

func TestPorcentajeDisponible(t *testing.T) {
	casos := []struct {
		nombre      string
		disponibles int
		cantidad    int
		esperado    int
	}{
		{"mitad", 1, 2, 50},
		{"redondeo hacia arriba", 2, 3, 67},
		{"redondeo hacia abajo", 1, 3, 33},
		{"todo disponible", 4, 4, 100},
		{"nada disponible", 0, 5, 0},
		{"sin habitaciones", 0, 0, 0},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			r := TipoResumen{Disponibles: c.disponibles, Cantidad: c.cantidad}
			if got := r.PorcentajeDisponible(); got != c.esperado {
				t.Errorf("PorcentajeDisponible(%d/%d) = %d, esperaba %d", c.disponibles, c.cantidad, got, c.esperado)
			}
		})
	}
}

func TestNivelDisponibilidad(t *testing.T) {
	casos := []struct {
		nombre      string
		disponibles int
		cantidad    int
		esperado    NivelDisponibilidad
	}{
		{"arriba de 50 es buena", 3, 4, DisponibilidadBuena},
		{"50 exacto es limitada", 1, 2, DisponibilidadLimitada},
		{"25 exacto es limitada", 1, 4, DisponibilidadLimitada},
		{"debajo de 25 es baja", 1, 5, DisponibilidadBaja},
		{"cero es baja", 0, 4, DisponibilidadBaja},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			r := TipoResumen{Disponibles: c.disponibles, Cantidad: c.cantidad}
			if got := r.Nivel(); got != c.esperado {
				t.Errorf("Nivel(%d/%d) = %s, esperaba %s", c.disponibles, c.cantidad, got, c.esperado)
			}
		})
	}
}

func TestTransicionesDeReserva(t *testing.T) {
	pendiente := Reserva{Estado: ReservaPendiente}
	confirmada := Reserva{Estado: ReservaConfirmada}
	cancelada := Reserva{Estado: ReservaCancelada}
	completada := Reserva{Estado: ReservaCompletada}

	if !pendiente.PuedeConfirmarse() || !pendiente.PuedeCancelarse() || pendiente.PuedeCompletarse() {
		t.Error("pendiente: puede confirmarse y cancelarse, no completarse")
	}
	if confirmada.PuedeConfirmarse() || !confirmada.PuedeCancelarse() || !confirmada.PuedeCompletarse() {
		t.Error("confirmada: puede cancelarse y completarse, no confirmarse")
	}
	if cancelada.PuedeConfirmarse() || cancelada.PuedeCancelarse() || cancelada.PuedeCompletarse() {
		t.Error("cancelada es terminal")
	}
	if completada.PuedeConfirmarse() || completada.PuedeCancelarse() || completada.PuedeCompletarse() {
		t.Error("completada es terminal")
	}
}
