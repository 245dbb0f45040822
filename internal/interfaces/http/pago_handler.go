package http

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/TobiasMontone/hotel-mirage-frontend/internal/backend"
	"github.com/TobiasMontone/hotel-mirage-frontend/internal/booking"
	"github.com/TobiasMontone/hotel-mirage-frontend/internal/domain"
	"github.com/TobiasMontone/hotel-mirage-frontend/internal/email"
)

// PagoHandler atiende las páginas de retorno del checkout del proveedor de
// pagos. El proveedor vuelve con payment_id, status y preference_id en la
// query; la instantánea de la reserva espera en el almacén de pendientes.
type PagoHandler struct {
	pagos      *backend.PagosService
	reservas   *backend.ReservasService
	pendientes *booking.AlmacenPendientes
	mail       *email.Client
}

func NewPagoHandler(pagos *backend.PagosService, reservas *backend.ReservasService, pendientes *booking.AlmacenPendientes, mail *email.Client) *PagoHandler {
	return &PagoHandler{
		pagos:      pagos,
		reservas:   reservas,
		pendientes: pendientes,
		mail:       mail,
	}
}

// Exito confirma el pago contra el backend y recién entonces crea la
// reserva desde la instantánea. Si la verificación no prueba la aprobación,
// la página degrada a la vista de pendiente en vez de afirmar un pago que
// no consta.
func (h *PagoHandler) Exito(c *fiber.Ctx) error {
	pagoID := c.Query("payment_id")
	preferenciaID := c.Query("preference_id")

	pendiente, err := h.leerPendiente(preferenciaID)
	if err != nil {
		log.Printf("Error leyendo reserva pendiente %s: %v", preferenciaID, err)
	}

	if pagoID == "" {
		return h.renderPendiente(c, pendiente, "No recibimos la confirmación del pago todavía")
	}

	estado, err := h.pagos.EstadoPago(c.Context(), pagoID)
	if err != nil {
		log.Printf("Error verificando pago %s: %v", pagoID, err)
		return h.renderPendiente(c, pendiente, "No pudimos verificar el pago todavía")
	}
	if !estado.Aprobado() {
		return h.renderPendiente(c, pendiente, "El pago aún figura como "+estado.Estado)
	}

	if pendiente == nil {
		// Instantánea ya consumida o expirada: el pago está aprobado igual.
		return c.Render("pago_exito", fiber.Map{"Titulo": "Pago aprobado"})
	}

	reserva, err := h.reservas.Crear(c.Context(), domain.NuevaReserva{
		Habitacion:     pendiente.HabitacionID,
		Huesped:        pendiente.Huesped,
		FechaEntrada:   pendiente.FechaEntrada,
		FechaSalida:    pendiente.FechaSalida,
		NumeroPersonas: pendiente.NumeroPersonas,
		Observaciones:  pendiente.Observaciones,
		MetodoPago:     domain.PagoOnline,
		EstadoPago:     domain.PagoAprobado,
		PrecioTotal:    pendiente.PrecioTotal,
	})
	if err != nil {
		log.Printf("Error creando reserva tras pago aprobado %s: %v", pagoID, err)
		return c.Status(fiber.StatusInternalServerError).Render("error", fiber.Map{
			"Titulo":  "Pago aprobado",
			"Mensaje": "El pago fue aprobado pero no pudimos registrar la reserva. Contáctanos con tu número de pago: " + pagoID,
		})
	}

	if err := h.pendientes.Borrar(preferenciaID); err != nil {
		log.Printf("Error borrando reserva pendiente %s: %v", preferenciaID, err)
	}

	if h.mail != nil {
		enviada := *reserva
		go func() {
			if err := h.mail.SendReservaConfirmacion(enviada); err != nil {
				log.Printf("Error enviando correo de confirmación %s: %v", enviada.CodigoConfirmacion, err)
			}
		}()
	}

	return c.Render("pago_exito", fiber.Map{
		"Titulo":  "Pago aprobado",
		"Reserva": reserva,
	})
}

// Pendiente muestra la reserva retenida mientras el proveedor resuelve.
func (h *PagoHandler) Pendiente(c *fiber.Ctx) error {
	pendiente, err := h.leerPendiente(c.Query("preference_id"))
	if err != nil {
		log.Printf("Error leyendo reserva pendiente: %v", err)
	}
	return h.renderPendiente(c, pendiente, "El pago está pendiente de confirmación")
}

// Error muestra el rechazo. La instantánea se conserva: el huésped puede
// volver a intentar el pago desde el formulario.
func (h *PagoHandler) Error(c *fiber.Ctx) error {
	pendiente, err := h.leerPendiente(c.Query("preference_id"))
	if err != nil {
		log.Printf("Error leyendo reserva pendiente: %v", err)
	}
	return c.Render("pago_error", fiber.Map{
		"Titulo":    "Pago rechazado",
		"Pendiente": pendiente,
	})
}

func (h *PagoHandler) leerPendiente(preferenciaID string) (*domain.ReservaPendientePago, error) {
	if preferenciaID == "" {
		return nil, nil
	}
	return h.pendientes.Leer(preferenciaID)
}

func (h *PagoHandler) renderPendiente(c *fiber.Ctx, pendiente *domain.ReservaPendientePago, mensaje string) error {
	return c.Render("pago_pendiente", fiber.Map{
		"Titulo":    "Pago pendiente",
		"Mensaje":   mensaje,
		"Pendiente": pendiente,
	})
}
