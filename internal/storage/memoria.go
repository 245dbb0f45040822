// Package storage provee los almacenes clave-valor durables de esta capa:
// sesiones y snapshots de reservas pendientes de pago. Implementan
// fiber.Storage para poder enchufarse al middleware de sesión.
package storage

import (
	"sync"
	"time"
)

type entrada struct {
	valor  []byte
	expira time.Time // zero = sin expiración
}

// Memoria es un almacén en proceso con expiración por TTL. Es el backend por
// defecto cuando no hay Redis configurado.
type Memoria struct {
	mu      sync.RWMutex
	datos   map[string]entrada
	detener chan struct{}
	unaVez  sync.Once
}

// NewMemoria crea el almacén y arranca el janitor que barre las entradas
// vencidas con el intervalo dado.
func NewMemoria(intervaloLimpieza time.Duration) *Memoria {
	m := &Memoria{
		datos:   make(map[string]entrada),
		detener: make(chan struct{}),
	}
	if intervaloLimpieza > 0 {
		go m.limpiar(intervaloLimpieza)
	}
	return m
}

func (m *Memoria) limpiar(intervalo time.Duration) {
	ticker := time.NewTicker(intervalo)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			ahora := time.Now()
			m.mu.Lock()
			for k, e := range m.datos {
				if !e.expira.IsZero() && ahora.After(e.expira) {
					delete(m.datos, k)
				}
			}
			m.mu.Unlock()
		case <-m.detener:
			return
		}
	}
}

// Get devuelve el valor o nil si no existe o expiró.
func (m *Memoria) Get(key string) ([]byte, error) {
	m.mu.RLock()
	e, ok := m.datos[key]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if !e.expira.IsZero() && time.Now().After(e.expira) {
		m.mu.Lock()
		// Un Set concurrente pudo reemplazar la entrada entre ambos locks;
		// solo se borra si sigue vencida.
		if actual, ok := m.datos[key]; ok && !actual.expira.IsZero() && time.Now().After(actual.expira) {
			delete(m.datos, key)
		}
		m.mu.Unlock()
		return nil, nil
	}
	return e.valor, nil
}

// Set guarda el valor; exp cero significa sin vencimiento.
func (m *Memoria) Set(key string, val []byte, exp time.Duration) error {
	e := entrada{valor: append([]byte(nil), val...)}
	if exp > 0 {
		e.expira = time.Now().Add(exp)
	}
	m.mu.Lock()
	m.datos[key] = e
	m.mu.Unlock()
	return nil
}

// Delete borra la clave; borrar una clave inexistente no es error.
func (m *Memoria) Delete(key string) error {
	m.mu.Lock()
	delete(m.datos, key)
	m.mu.Unlock()
	return nil
}

// Reset vacía el almacén completo.
func (m *Memoria) Reset() error {
	m.mu.Lock()
	m.datos = make(map[string]entrada)
	m.mu.Unlock()
	return nil
}

// Close detiene el janitor.
func (m *Memoria) Close() error {
	m.unaVez.Do(func() { close(m.detener) })
	return nil
}
