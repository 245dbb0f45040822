package domain

import "testing"

func TestPorcentajeOcupacion(t *testing.T) {
	e := Estadisticas{Totales: TotalesEstadisticas{Habitaciones: 20, HabitacionesDisponibles: 5}}
	if got := e.PorcentajeOcupacion(); got != 75 {
		t.Errorf("PorcentajeOcupacion = %d, esperaba 75", got)
	}

	vacia := Estadisticas{}
	if got := vacia.PorcentajeOcupacion(); got != 0 {
		t.Errorf("sin habitaciones, PorcentajeOcupacion = %d", got)
	}
}

func TestIngresoPromedio(t *testing.T) {
	e := Estadisticas{Totales: TotalesEstadisticas{Reservas: 4, Ingresos: 200000}}
	if got := e.IngresoPromedio(); got != 50000 {
		t.Errorf("IngresoPromedio = %.0f, esperaba 50000", got)
	}

	vacia := Estadisticas{}
	if got := vacia.IngresoPromedio(); got != 0 {
		t.Errorf("sin reservas, IngresoPromedio = %.0f", got)
	}
}
