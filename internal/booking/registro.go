package booking

import (
	"sync"
	"time"
)

// Registro guarda los flujos de reserva en curso, uno por sesión y
// habitación. Los flujos inactivos se podan periódicamente.
type Registro struct {
	mu     sync.Mutex
	flujos map[string]*Coordinador
	crear  func() *Coordinador
}

// NewRegistro arma el registro con la fábrica de coordinadores.
func NewRegistro(crear func() *Coordinador) *Registro {
	return &Registro{
		flujos: make(map[string]*Coordinador),
		crear:  crear,
	}
}

// Obtener devuelve el flujo de la clave, creándolo si no existe. El segundo
// valor indica si es nuevo (y por lo tanto necesita cargar la habitación).
func (r *Registro) Obtener(clave string) (*Coordinador, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if co, ok := r.flujos[clave]; ok {
		return co, false
	}
	co := r.crear()
	r.flujos[clave] = co
	return co, true
}

// Descartar elimina el flujo de la clave, si existe.
func (r *Registro) Descartar(clave string) {
	r.mu.Lock()
	delete(r.flujos, clave)
	r.mu.Unlock()
}

// PodarInactivos elimina los flujos sin actividad desde hace más de maxEdad
// y devuelve cuántos se fueron.
func (r *Registro) PodarInactivos(maxEdad time.Duration) int {
	limite := time.Now().Add(-maxEdad)
	r.mu.Lock()
	defer r.mu.Unlock()

	podados := 0
	for clave, co := range r.flujos {
		co.mu.Lock()
		inactivo := co.ultimoUso.Before(limite)
		co.mu.Unlock()
		if inactivo {
			delete(r.flujos, clave)
			podados++
		}
	}
	return podados
}
