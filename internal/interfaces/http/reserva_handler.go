package http

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/TobiasMontone/hotel-mirage-frontend/internal/backend"
	"github.com/TobiasMontone/hotel-mirage-frontend/internal/booking"
	"github.com/TobiasMontone/hotel-mirage-frontend/internal/domain"
	"github.com/TobiasMontone/hotel-mirage-frontend/internal/email"
	"github.com/TobiasMontone/hotel-mirage-frontend/internal/pdf"
	"github.com/TobiasMontone/hotel-mirage-frontend/internal/validate"
)

const cookieFlujo = "flujo_id"

// ReservaHandler conduce el flujo de reserva de una habitación: formulario,
// chequeo de disponibilidad, envío en efectivo o salto al pago online.
type ReservaHandler struct {
	registro    *booking.Registro
	reservas    *backend.ReservasService
	pendientes  *booking.AlmacenPendientes
	mail        *email.Client
	nombreHotel string
}

func NewReservaHandler(registro *booking.Registro, reservas *backend.ReservasService, pendientes *booking.AlmacenPendientes, mail *email.Client, nombreHotel string) *ReservaHandler {
	return &ReservaHandler{
		registro:    registro,
		reservas:    reservas,
		pendientes:  pendientes,
		mail:        mail,
		nombreHotel: nombreHotel,
	}
}

// flujoDe identifica el flujo del visitante sobre una habitación. El id de
// flujo vive en una cookie propia para no depender de la sesión del
// back-office.
func (h *ReservaHandler) flujoDe(c *fiber.Ctx, habitacionID string) (*booking.Coordinador, string, bool) {
	flujoID := c.Cookies(cookieFlujo)
	if flujoID == "" {
		flujoID = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     cookieFlujo,
			Value:    flujoID,
			Expires:  time.Now().Add(24 * time.Hour),
			HTTPOnly: true,
			SameSite: "Lax",
		})
	}
	clave := flujoID + ":" + habitacionID
	co, nuevo := h.registro.Obtener(clave)
	return co, clave, nuevo
}

// MostrarReserva carga la habitación y renderiza el formulario de reserva.
// Si la habitación no se puede cargar, de vuelta al listado.
func (h *ReservaHandler) MostrarReserva(c *fiber.Ctx) error {
	habitacionID := c.Params("id")
	co, clave, nuevo := h.flujoDe(c, habitacionID)

	if nuevo || co.Habitacion() == nil {
		if err := co.CargarHabitacion(c.Context(), habitacionID); err != nil {
			log.Printf("Error cargando habitación %s: %v", habitacionID, err)
			h.registro.Descartar(clave)
			return c.Redirect("/habitaciones", fiber.StatusFound)
		}
	}

	return c.Render("reservar", fiber.Map{
		"Titulo":     "Reservar",
		"Habitacion": co.Habitacion(),
		"HoyMin":     hoyLocal().Format(validate.FormatoFecha),
	})
}

type disponibilidadRequest struct {
	FechaEntrada string `json:"fechaEntrada" form:"fechaEntrada"`
	FechaSalida  string `json:"fechaSalida" form:"fechaSalida"`
}

// VerificarDisponibilidad responde al chequeo asincrónico del formulario.
// El coordinador descarta las respuestas que llegan fuera de orden.
func (h *ReservaHandler) VerificarDisponibilidad(c *fiber.Ctx) error {
	habitacionID := c.Params("id")
	co, _, _ := h.flujoDe(c, habitacionID)
	if co.Habitacion() == nil {
		if err := co.CargarHabitacion(c.Context(), habitacionID); err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "habitación no encontrada"})
		}
	}

	var req disponibilidadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	resultado, err := co.VerificarDisponibilidad(c.Context(), req.FechaEntrada, req.FechaSalida, hoyLocal())
	if err != nil {
		var bloqueo *booking.ErrorBloqueo
		if errors.As(err, &bloqueo) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"disponible": false,
				"mensaje":    bloqueo.Motivo,
				"campos":     bloqueo.Campos,
			})
		}
		log.Printf("Error verificando disponibilidad: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error al verificar disponibilidad"})
	}

	noches, total := co.Resumen(req.FechaEntrada, req.FechaSalida)
	return c.JSON(fiber.Map{
		"disponible": resultado.Disponible,
		"mensaje":    resultado.Mensaje,
		"noches":     noches,
		"total":      total,
	})
}

// EnviarReserva recibe el formulario completo. Según el método de pago crea
// la reserva en efectivo o arma la preferencia y redirige al checkout.
func (h *ReservaHandler) EnviarReserva(c *fiber.Ctx) error {
	habitacionID := c.Params("id")
	co, _, _ := h.flujoDe(c, habitacionID)
	if co.Habitacion() == nil {
		return c.Redirect("/reservar/"+habitacionID, fiber.StatusFound)
	}

	var form validate.FormularioHuesped
	if err := c.BodyParser(&form); err != nil {
		return h.renderBloqueo(c, co, form, "Por favor, completa correctamente todos los campos", nil)
	}

	if c.FormValue("metodoPago") == string(domain.PagoOnline) {
		return h.crearPago(c, co, form)
	}
	return h.reservarEfectivo(c, co, form)
}

func (h *ReservaHandler) reservarEfectivo(c *fiber.Ctx, co *booking.Coordinador, form validate.FormularioHuesped) error {
	reserva, err := co.ReservarEfectivo(c.Context(), form, hoyLocal())
	if err != nil {
		var bloqueo *booking.ErrorBloqueo
		if errors.As(err, &bloqueo) {
			return h.renderBloqueo(c, co, form, bloqueo.Motivo, bloqueo.Campos)
		}
		log.Printf("Error creando reserva: %v", err)
		return h.renderBloqueo(c, co, form, backend.MensajeDeError(err, "Error al crear la reserva"), nil)
	}

	if h.mail != nil {
		enviada := *reserva
		go func() {
			if err := h.mail.SendReservaConfirmacion(enviada); err != nil {
				log.Printf("Error enviando correo de confirmación %s: %v", enviada.CodigoConfirmacion, err)
			}
		}()
	}

	return c.Redirect("/reserva/confirmada/"+reserva.CodigoConfirmacion, fiber.StatusFound)
}

func (h *ReservaHandler) crearPago(c *fiber.Ctx, co *booking.Coordinador, form validate.FormularioHuesped) error {
	preferencia, pendiente, err := co.CrearPago(c.Context(), form, hoyLocal())
	if err != nil {
		var bloqueo *booking.ErrorBloqueo
		if errors.As(err, &bloqueo) {
			return h.renderBloqueo(c, co, form, bloqueo.Motivo, bloqueo.Campos)
		}
		log.Printf("Error creando preferencia de pago: %v", err)
		return h.renderBloqueo(c, co, form, backend.MensajeDeError(err, "Error al iniciar el pago online"), nil)
	}

	if err := h.pendientes.Guardar(*pendiente); err != nil {
		log.Printf("Error guardando reserva pendiente %s: %v", pendiente.PreferenciaID, err)
		co.PagoNoIniciado()
		return h.renderBloqueo(c, co, form, "Error al iniciar el pago online", nil)
	}

	co.PagoRedirigido()
	return c.Redirect(preferencia.URLRedireccion, fiber.StatusFound)
}

func (h *ReservaHandler) renderBloqueo(c *fiber.Ctx, co *booking.Coordinador, form validate.FormularioHuesped, motivo string, campos map[string]string) error {
	return c.Status(fiber.StatusBadRequest).Render("reservar", fiber.Map{
		"Titulo":     "Reservar",
		"Habitacion": co.Habitacion(),
		"HoyMin":     hoyLocal().Format(validate.FormatoFecha),
		"Form":       form,
		"Error":      motivo,
		"Campos":     campos,
	})
}

// Confirmada muestra la reserva por su código de confirmación.
func (h *ReservaHandler) Confirmada(c *fiber.Ctx) error {
	codigo := c.Params("codigo")
	reserva, err := h.reservas.ObtenerPorCodigo(c.Context(), codigo)
	if err != nil {
		log.Printf("Error buscando reserva %s: %v", codigo, err)
		return c.Status(fiber.StatusNotFound).Render("error", fiber.Map{
			"Titulo":  "Reserva no encontrada",
			"Mensaje": backend.MensajeDeError(err, "No encontramos una reserva con ese código"),
		})
	}

	return c.Render("reserva_confirmada", fiber.Map{
		"Titulo":  "Reserva confirmada",
		"Reserva": reserva,
	})
}

// Comprobante descarga el comprobante de la reserva en PDF.
func (h *ReservaHandler) Comprobante(c *fiber.Ctx) error {
	codigo := c.Params("codigo")
	reserva, err := h.reservas.ObtenerPorCodigo(c.Context(), codigo)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "reserva no encontrada"})
	}

	datos, nombre, err := pdf.Comprobante(h.nombreHotel, *reserva)
	if err != nil {
		log.Printf("Error generando comprobante %s: %v", codigo, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "error generando el comprobante"})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+nombre+`"`)
	return c.Send(datos)
}
