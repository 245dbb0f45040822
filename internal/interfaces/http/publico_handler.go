package http

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/TobiasMontone/hotel-mirage-frontend/internal/backend"
	"github.com/TobiasMontone/hotel-mirage-frontend/internal/domain"
	"github.com/TobiasMontone/hotel-mirage-frontend/internal/email"
	"github.com/TobiasMontone/hotel-mirage-frontend/internal/validate"
)

const cookieIntroVista = "intro_vista"

// PublicoHandler sirve las páginas públicas del hotel.
type PublicoHandler struct {
	habitaciones  *backend.HabitacionesService
	mail          *email.Client
	contactoEmail string
	nombreHotel   string
}

func NewPublicoHandler(habitaciones *backend.HabitacionesService, mail *email.Client, contactoEmail, nombreHotel string) *PublicoHandler {
	return &PublicoHandler{
		habitaciones:  habitaciones,
		mail:          mail,
		contactoEmail: contactoEmail,
		nombreHotel:   nombreHotel,
	}
}

// Inicio renderiza la portada. La animación de entrada se muestra una sola
// vez por visitante; la marca vive en una cookie.
func (h *PublicoHandler) Inicio(c *fiber.Ctx) error {
	mostrarIntro := c.Cookies(cookieIntroVista) == ""
	if mostrarIntro {
		c.Cookie(&fiber.Cookie{
			Name:     cookieIntroVista,
			Value:    "1",
			Expires:  time.Now().Add(365 * 24 * time.Hour),
			HTTPOnly: true,
			SameSite: "Lax",
		})
	}

	tipos, err := h.habitaciones.Tipos(c.Context())
	if err != nil {
		log.Printf("Error obteniendo tipos para la portada: %v", err)
		tipos = nil
	}

	return c.Render("inicio", fiber.Map{
		"Titulo":       h.nombreHotel,
		"MostrarIntro": mostrarIntro,
		"Tipos":        tipos,
	})
}

// Habitaciones lista los tipos con su disponibilidad agregada. Con filtros
// en la query muestra además las habitaciones que los cumplen.
func (h *PublicoHandler) Habitaciones(c *fiber.Ctx) error {
	tipos, err := h.habitaciones.Tipos(c.Context())
	if err != nil {
		log.Printf("Error obteniendo tipos de habitación: %v", err)
		return c.Status(fiber.StatusInternalServerError).Render("error", fiber.Map{
			"Titulo":  "Error",
			"Mensaje": backend.MensajeDeError(err, "Error al cargar las habitaciones"),
		})
	}

	filtros := domain.FiltrosHabitacion{Tipo: c.Query("tipo")}
	filtros.PrecioMax, _ = strconv.ParseFloat(c.Query("precioMax"), 64)
	filtros.Capacidad, _ = strconv.Atoi(c.Query("capacidad"))

	var resultados []domain.Habitacion
	conFiltros := filtros.Tipo != "" || filtros.PrecioMax > 0 || filtros.Capacidad > 0
	if conFiltros {
		resultados, err = h.habitaciones.Listar(c.Context(), "", filtros)
		if err != nil {
			log.Printf("Error filtrando habitaciones: %v", err)
		}
	}

	return c.Render("habitaciones", fiber.Map{
		"Titulo":     "Habitaciones",
		"Tipos":      tipos,
		"Filtros":    filtros,
		"ConFiltros": conFiltros,
		"Resultados": resultados,
	})
}

// HabitacionesPorTipo muestra las habitaciones disponibles de un tipo.
func (h *PublicoHandler) HabitacionesPorTipo(c *fiber.Ctx) error {
	tipo, err := decodeParam(c, "tipo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).Render("error", fiber.Map{
			"Titulo":  "Error",
			"Mensaje": "Tipo de habitación inválido",
		})
	}

	habitaciones, err := h.habitaciones.DisponiblesPorTipo(c.Context(), tipo)
	if err != nil {
		log.Printf("Error obteniendo habitaciones del tipo %q: %v", tipo, err)
		return c.Status(fiber.StatusInternalServerError).Render("error", fiber.Map{
			"Titulo":  "Error",
			"Mensaje": backend.MensajeDeError(err, "Error al cargar las habitaciones"),
		})
	}

	return c.Render("habitaciones_tipo", fiber.Map{
		"Titulo":       tipo,
		"Tipo":         tipo,
		"Habitaciones": habitaciones,
	})
}

// Servicios es una página estática.
func (h *PublicoHandler) Servicios(c *fiber.Ctx) error {
	return c.Render("servicios", fiber.Map{"Titulo": "Servicios"})
}

// Contacto muestra el formulario de consulta.
func (h *PublicoHandler) Contacto(c *fiber.Ctx) error {
	return c.Render("contacto", fiber.Map{"Titulo": "Contacto"})
}

// EnviarConsulta recibe el formulario de contacto y lo reenvía por correo a
// la casilla del hotel.
func (h *PublicoHandler) EnviarConsulta(c *fiber.Ctx) error {
	consulta := domain.Consulta{
		Nombre:   strings.TrimSpace(c.FormValue("nombre")),
		Correo:   strings.TrimSpace(c.FormValue("correo")),
		Telefono: strings.TrimSpace(c.FormValue("telefono")),
		Asunto:   strings.TrimSpace(c.FormValue("asunto")),
		Mensaje:  strings.TrimSpace(c.FormValue("mensaje")),
	}

	if consulta.Nombre == "" || consulta.Mensaje == "" || !validate.ValidarCorreo(consulta.Correo) {
		return c.Status(fiber.StatusBadRequest).Render("contacto", fiber.Map{
			"Titulo":   "Contacto",
			"Error":    "Por favor, completa nombre, correo válido y mensaje",
			"Consulta": consulta,
		})
	}

	if h.mail == nil {
		log.Printf("Consulta recibida sin cliente de correo configurado: %s <%s>", consulta.Nombre, consulta.Correo)
		return c.Status(fiber.StatusServiceUnavailable).Render("contacto", fiber.Map{
			"Titulo":   "Contacto",
			"Error":    "El envío de consultas no está disponible en este momento",
			"Consulta": consulta,
		})
	}

	if err := h.mail.SendConsulta(h.contactoEmail, consulta); err != nil {
		log.Printf("Error enviando consulta: %v", err)
		return c.Status(fiber.StatusInternalServerError).Render("contacto", fiber.Map{
			"Titulo":   "Contacto",
			"Error":    "No pudimos enviar tu consulta, intenta nuevamente",
			"Consulta": consulta,
		})
	}

	return c.Render("contacto", fiber.Map{
		"Titulo": "Contacto",
		"Exito":  "¡Gracias por tu consulta! Te responderemos a la brevedad",
	})
}

// NoEncontrado es el catch-all para rutas desconocidas.
func (h *PublicoHandler) NoEncontrado(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).Render("no_encontrado", fiber.Map{
		"Titulo": "Página no encontrada",
	})
}
