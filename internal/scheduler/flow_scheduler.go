package scheduler

import (
	"log"
	"time"

	"github.com/TobiasMontone/hotel-mirage-frontend/internal/booking"
)

// FlowScheduler poda periódicamente los flujos de reserva abandonados para
// que el registro en memoria no crezca sin límite.
type FlowScheduler struct {
	registro *booking.Registro
	maxEdad  time.Duration
	ticker   *time.Ticker
	done     chan struct{}
}

// NewFlowScheduler crea una nueva instancia del scheduler de flujos
func NewFlowScheduler(registro *booking.Registro, maxEdad time.Duration) *FlowScheduler {
	return &FlowScheduler{
		registro: registro,
		maxEdad:  maxEdad,
		done:     make(chan struct{}),
	}
}

// Start inicia el scheduler que poda flujos inactivos cada hora
func (s *FlowScheduler) Start() {
	log.Printf("🕐 Scheduler de flujos iniciado - poda cada hora, edad máxima %s", s.maxEdad)

	s.ticker = time.NewTicker(time.Hour)
	go func() {
		for {
			select {
			case <-s.ticker.C:
				s.PodarFlujos()
			case <-s.done:
				return
			}
		}
	}()
}

// Stop detiene el scheduler
func (s *FlowScheduler) Stop() {
	if s.ticker != nil {
		s.ticker.Stop()
		close(s.done)
		log.Println("🛑 Scheduler de flujos detenido")
	}
}

// PodarFlujos descarta los flujos de reserva sin actividad reciente
func (s *FlowScheduler) PodarFlujos() {
	if podados := s.registro.PodarInactivos(s.maxEdad); podados > 0 {
		log.Printf("🔄 Flujos de reserva podados: %d", podados)
	}
}
