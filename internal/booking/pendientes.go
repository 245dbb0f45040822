package booking

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/TobiasMontone/hotel-mirage-frontend/internal/domain"
)

// ttlPendiente cubre con holgura la ida y vuelta al checkout del proveedor.
const ttlPendiente = 2 * time.Hour

// AlmacenPendientes guarda la instantánea de una reserva mientras el huésped
// está pagando en el sitio del proveedor, indexada por el id de preferencia
// que vuelve en la URL de retorno.
type AlmacenPendientes struct {
	storage fiber.Storage
}

func NewAlmacenPendientes(storage fiber.Storage) *AlmacenPendientes {
	return &AlmacenPendientes{storage: storage}
}

// Guardar persiste la instantánea antes de redirigir al checkout.
func (a *AlmacenPendientes) Guardar(pendiente domain.ReservaPendientePago) error {
	if pendiente.PreferenciaID == "" {
		return fmt.Errorf("instantánea sin id de preferencia")
	}
	datos, err := json.Marshal(pendiente)
	if err != nil {
		return fmt.Errorf("error serializando reserva pendiente: %w", err)
	}
	return a.storage.Set(clavePendiente(pendiente.PreferenciaID), datos, ttlPendiente)
}

// Leer recupera la instantánea, o (nil, nil) si expiró o ya fue consumida.
func (a *AlmacenPendientes) Leer(preferenciaID string) (*domain.ReservaPendientePago, error) {
	datos, err := a.storage.Get(clavePendiente(preferenciaID))
	if err != nil {
		return nil, err
	}
	if datos == nil {
		return nil, nil
	}
	var pendiente domain.ReservaPendientePago
	if err := json.Unmarshal(datos, &pendiente); err != nil {
		return nil, fmt.Errorf("reserva pendiente corrupta: %w", err)
	}
	return &pendiente, nil
}

// Borrar descarta la instantánea una vez resuelto el pago.
func (a *AlmacenPendientes) Borrar(preferenciaID string) error {
	return a.storage.Delete(clavePendiente(preferenciaID))
}

func clavePendiente(preferenciaID string) string {
	return "pendiente:" + preferenciaID
}
