package http

import (
	"context"
	"log"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/TobiasMontone/hotel-mirage-frontend/internal/backend"
	"github.com/TobiasMontone/hotel-mirage-frontend/internal/domain"
	"github.com/TobiasMontone/hotel-mirage-frontend/internal/session"
)

// AdminHandler sirve el back-office: login, panel, habitaciones y reservas.
type AdminHandler struct {
	manager      *session.Manager
	auth         *backend.AuthService
	habitaciones *backend.HabitacionesService
	reservas     *backend.ReservasService
	admin        *backend.AdminService
}

func NewAdminHandler(manager *session.Manager, auth *backend.AuthService, habitaciones *backend.HabitacionesService, reservas *backend.ReservasService, admin *backend.AdminService) *AdminHandler {
	return &AdminHandler{
		manager:      manager,
		auth:         auth,
		habitaciones: habitaciones,
		reservas:     reservas,
		admin:        admin,
	}
}

// LoginForm muestra el formulario. Con sesión vigente va directo al panel.
func (h *AdminHandler) LoginForm(c *fiber.Ctx) error {
	if h.manager.EstaAutenticado(c) {
		return c.Redirect("/admin", fiber.StatusFound)
	}
	return c.Render("admin_login", fiber.Map{"Titulo": "Iniciar sesión"})
}

// Login autentica contra el backend. Ante fallo re-renderiza el formulario
// con el mensaje del servidor y ningún estado mutado.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	correo := strings.TrimSpace(c.FormValue("correo"))
	password := c.FormValue("password")

	usuario, err := h.manager.Iniciar(c, correo, password)
	if err != nil {
		log.Printf("Login rechazado para %s: %v", correo, err)
		return c.Status(fiber.StatusUnauthorized).Render("admin_login", fiber.Map{
			"Titulo": "Iniciar sesión",
			"Error":  backend.MensajeDeError(err, "Credenciales inválidas"),
			"Correo": correo,
		})
	}

	log.Printf("Sesión iniciada: %s (%s)", usuario.Correo, usuario.Rol)
	return c.Redirect("/admin", fiber.StatusFound)
}

// Logout cierra la sesión. Es idempotente.
func (h *AdminHandler) Logout(c *fiber.Ctx) error {
	if err := h.manager.Cerrar(c); err != nil {
		log.Printf("Error cerrando sesión: %v", err)
	}
	return c.Redirect("/admin/login", fiber.StatusFound)
}

// Dashboard muestra las estadísticas del hotel y, para administradores, el
// listado de usuarios.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	cred := credencialDe(c)

	// Refresca el perfil contra el backend; si cambió el rol aquí se nota.
	if perfil, err := h.auth.Perfil(c.Context(), cred.Token); err == nil {
		cred.Usuario = *perfil
	}

	estadisticas, err := h.admin.Estadisticas(c.Context(), cred.Token)
	if err != nil {
		log.Printf("Error obteniendo estadísticas: %v", err)
		return h.renderError(c, err, "Error al cargar las estadísticas")
	}

	activas, err := h.admin.ReservasActivas(c.Context(), cred.Token)
	if err != nil {
		log.Printf("Error obteniendo reservas activas: %v", err)
		activas = nil
	}

	var usuarios []domain.Usuario
	if cred.Usuario.EsAdmin() {
		usuarios, err = h.admin.Usuarios(c.Context(), cred.Token)
		if err != nil {
			log.Printf("Error obteniendo usuarios: %v", err)
		}
	}

	return c.Render("admin_dashboard", fiber.Map{
		"Titulo":          "Panel",
		"Usuario":         cred.Usuario,
		"Estadisticas":    estadisticas,
		"ReservasActivas": activas,
		"Usuarios":        usuarios,
	})
}

// Habitaciones lista los tipos con su banda de disponibilidad.
func (h *AdminHandler) Habitaciones(c *fiber.Ctx) error {
	tipos, err := h.habitaciones.Tipos(c.Context())
	if err != nil {
		log.Printf("Error obteniendo tipos: %v", err)
		return h.renderError(c, err, "Error al cargar las habitaciones")
	}

	return c.Render("admin_habitaciones", fiber.Map{
		"Titulo":  "Habitaciones",
		"Usuario": credencialDe(c).Usuario,
		"Tipos":   tipos,
	})
}

// HabitacionesPorTipo muestra todas las habitaciones de un tipo, incluidas
// las no disponibles, con las acciones de edición.
func (h *AdminHandler) HabitacionesPorTipo(c *fiber.Ctx) error {
	tipo, err := decodeParam(c, "tipo")
	if err != nil {
		return c.Redirect("/admin/habitaciones", fiber.StatusFound)
	}

	cred := credencialDe(c)
	habitaciones, err := h.habitaciones.PorTipoAdmin(c.Context(), cred.Token, tipo)
	if err != nil {
		log.Printf("Error obteniendo habitaciones del tipo %q: %v", tipo, err)
		return h.renderError(c, err, "Error al cargar las habitaciones")
	}

	return c.Render("admin_habitaciones_tipo", fiber.Map{
		"Titulo":       tipo,
		"Usuario":      cred.Usuario,
		"Tipo":         tipo,
		"Habitaciones": habitaciones,
	})
}

// CrearHabitacion da de alta una habitación desde el formulario del panel.
func (h *AdminHandler) CrearHabitacion(c *fiber.Ctx) error {
	habitacion, err := habitacionDeFormulario(c)
	if err != nil {
		return h.redirectHabitaciones(c, habitacion.Tipo)
	}

	if _, err := h.habitaciones.Crear(c.Context(), credencialDe(c).Token, habitacion); err != nil {
		log.Printf("Error creando habitación: %v", err)
	}
	return h.redirectHabitaciones(c, habitacion.Tipo)
}

// ActualizarHabitacion guarda la edición de una habitación.
func (h *AdminHandler) ActualizarHabitacion(c *fiber.Ctx) error {
	habitacion, err := habitacionDeFormulario(c)
	if err != nil {
		return h.redirectHabitaciones(c, habitacion.Tipo)
	}

	if _, err := h.habitaciones.Actualizar(c.Context(), credencialDe(c).Token, c.Params("id"), habitacion); err != nil {
		log.Printf("Error actualizando habitación %s: %v", c.Params("id"), err)
	}
	return h.redirectHabitaciones(c, habitacion.Tipo)
}

// EliminarHabitacion da de baja una habitación.
func (h *AdminHandler) EliminarHabitacion(c *fiber.Ctx) error {
	if err := h.habitaciones.Eliminar(c.Context(), credencialDe(c).Token, c.Params("id")); err != nil {
		log.Printf("Error eliminando habitación %s: %v", c.Params("id"), err)
	}
	return c.Redirect("/admin/habitaciones", fiber.StatusFound)
}

// Reservas lista las reservas, con filtro opcional por estado.
func (h *AdminHandler) Reservas(c *fiber.Ctx) error {
	estado := c.Query("estado")
	cred := credencialDe(c)

	reservas, err := h.reservas.Listar(c.Context(), cred.Token, estado)
	if err != nil {
		log.Printf("Error listando reservas: %v", err)
		return h.renderError(c, err, "Error al cargar las reservas")
	}

	return c.Render("admin_reservas", fiber.Map{
		"Titulo":   "Reservas",
		"Usuario":  cred.Usuario,
		"Reservas": reservas,
		"Estado":   estado,
	})
}

// DetalleReserva muestra una reserva puntual con los datos del huésped.
func (h *AdminHandler) DetalleReserva(c *fiber.Ctx) error {
	cred := credencialDe(c)

	reserva, err := h.reservas.ObtenerPorID(c.Context(), cred.Token, c.Params("id"))
	if err != nil {
		log.Printf("Error obteniendo reserva %s: %v", c.Params("id"), err)
		return h.renderError(c, err, "No encontramos esa reserva")
	}

	return c.Render("admin_reserva_detalle", fiber.Map{
		"Titulo":  "Reserva " + reserva.CodigoConfirmacion,
		"Usuario": cred.Usuario,
		"Reserva": reserva,
	})
}

// ConfirmarReserva pasa una reserva pendiente a confirmada.
func (h *AdminHandler) ConfirmarReserva(c *fiber.Ctx) error {
	return h.transicion(c, h.reservas.Confirmar)
}

// CancelarReserva cancela una reserva pendiente o confirmada.
func (h *AdminHandler) CancelarReserva(c *fiber.Ctx) error {
	return h.transicion(c, h.reservas.Cancelar)
}

// CompletarReserva cierra una reserva confirmada ya transcurrida.
func (h *AdminHandler) CompletarReserva(c *fiber.Ctx) error {
	return h.transicion(c, h.reservas.Completar)
}

func (h *AdminHandler) transicion(c *fiber.Ctx, op func(ctx context.Context, token, id string) error) error {
	id := c.Params("id")
	if err := op(c.Context(), credencialDe(c).Token, id); err != nil {
		log.Printf("Error en transición de reserva %s: %v", id, err)
	}

	destino := "/admin/reservas"
	if estado := c.Query("estado"); estado != "" {
		destino += "?estado=" + url.QueryEscape(estado)
	}
	return c.Redirect(destino, fiber.StatusFound)
}

// CrearUsuario registra un usuario nuevo del back-office. Solo admin.
func (h *AdminHandler) CrearUsuario(c *fiber.Ctx) error {
	cred := credencialDe(c)
	usuario := domain.Usuario{
		Nombre: strings.TrimSpace(c.FormValue("nombre")),
		Correo: strings.TrimSpace(c.FormValue("correo")),
		Rol:    domain.Rol(c.FormValue("rol")),
	}

	if err := h.auth.Registrar(c.Context(), cred.Token, usuario, c.FormValue("password")); err != nil {
		log.Printf("Error registrando usuario %s: %v", usuario.Correo, err)
	}
	return c.Redirect("/admin", fiber.StatusFound)
}

// ActualizarUsuario cambia el rol de un usuario. Solo admin.
func (h *AdminHandler) ActualizarUsuario(c *fiber.Ctx) error {
	cred := credencialDe(c)
	usuario := domain.Usuario{Rol: domain.Rol(c.FormValue("rol"))}

	if err := h.admin.ActualizarUsuario(c.Context(), cred.Token, c.Params("id"), usuario); err != nil {
		log.Printf("Error actualizando usuario %s: %v", c.Params("id"), err)
	}
	return c.Redirect("/admin", fiber.StatusFound)
}

// EliminarUsuario da de baja un usuario. Solo admin.
func (h *AdminHandler) EliminarUsuario(c *fiber.Ctx) error {
	if err := h.admin.EliminarUsuario(c.Context(), credencialDe(c).Token, c.Params("id")); err != nil {
		log.Printf("Error eliminando usuario %s: %v", c.Params("id"), err)
	}
	return c.Redirect("/admin", fiber.StatusFound)
}

// ActualizarPerfil cambia el nombre del usuario autenticado.
func (h *AdminHandler) ActualizarPerfil(c *fiber.Ctx) error {
	cred := credencialDe(c)
	cred.Usuario.Nombre = strings.TrimSpace(c.FormValue("nombre"))

	if _, err := h.auth.ActualizarPerfil(c.Context(), cred.Token, cred.Usuario); err != nil {
		log.Printf("Error actualizando perfil: %v", err)
		return c.Status(fiber.StatusBadRequest).Render("admin_password", fiber.Map{
			"Titulo":  "Cambiar contraseña",
			"Usuario": cred.Usuario,
			"Error":   backend.MensajeDeError(err, "No se pudo actualizar el perfil"),
		})
	}
	return c.Redirect("/admin/password", fiber.StatusFound)
}

// CambiarPassword actualiza la contraseña del usuario autenticado.
func (h *AdminHandler) CambiarPassword(c *fiber.Ctx) error {
	cred := credencialDe(c)
	actual := c.FormValue("actual")
	nueva := c.FormValue("nueva")

	if len(nueva) < 6 {
		return c.Status(fiber.StatusBadRequest).Render("admin_password", fiber.Map{
			"Titulo":  "Cambiar contraseña",
			"Usuario": cred.Usuario,
			"Error":   "La nueva contraseña debe tener al menos 6 caracteres",
		})
	}

	if err := h.auth.CambiarPassword(c.Context(), cred.Token, actual, nueva); err != nil {
		log.Printf("Error cambiando contraseña: %v", err)
		return c.Status(fiber.StatusBadRequest).Render("admin_password", fiber.Map{
			"Titulo":  "Cambiar contraseña",
			"Usuario": cred.Usuario,
			"Error":   backend.MensajeDeError(err, "No se pudo cambiar la contraseña"),
		})
	}

	return c.Render("admin_password", fiber.Map{
		"Titulo":  "Cambiar contraseña",
		"Usuario": cred.Usuario,
		"Exito":   "Contraseña actualizada",
	})
}

// PasswordForm muestra el formulario de cambio de contraseña.
func (h *AdminHandler) PasswordForm(c *fiber.Ctx) error {
	return c.Render("admin_password", fiber.Map{
		"Titulo":  "Cambiar contraseña",
		"Usuario": credencialDe(c).Usuario,
	})
}

// Reporte genera un reporte del backend y lo muestra tal cual llega.
func (h *AdminHandler) Reporte(c *fiber.Ctx) error {
	cred := credencialDe(c)
	tipo := c.Query("tipo", "bookings")
	inicio := c.Query("inicio")
	fin := c.Query("fin")

	var reporte map[string]interface{}
	if inicio != "" && fin != "" {
		var err error
		reporte, err = h.admin.GenerarReporte(c.Context(), cred.Token, tipo, inicio, fin, nil)
		if err != nil {
			log.Printf("Error generando reporte %s: %v", tipo, err)
			return h.renderError(c, err, "Error al generar el reporte")
		}
	}

	return c.Render("admin_reporte", fiber.Map{
		"Titulo":      "Reportes",
		"Usuario":     cred.Usuario,
		"TipoReporte": tipo,
		"Inicio":      inicio,
		"Fin":         fin,
		"Reporte":     reporte,
	})
}

func (h *AdminHandler) renderError(c *fiber.Ctx, err error, generico string) error {
	return c.Status(fiber.StatusInternalServerError).Render("error", fiber.Map{
		"Titulo":  "Error",
		"Mensaje": backend.MensajeDeError(err, generico),
	})
}

func (h *AdminHandler) redirectHabitaciones(c *fiber.Ctx, tipo domain.TipoHabitacion) error {
	if tipo == "" {
		return c.Redirect("/admin/habitaciones", fiber.StatusFound)
	}
	return c.Redirect("/admin/habitaciones/"+url.PathEscape(string(tipo)), fiber.StatusFound)
}

// habitacionDeFormulario arma la habitación desde los campos del panel. Los
// numéricos ilegibles quedan en cero; el backend valida el resto.
func habitacionDeFormulario(c *fiber.Ctx) (domain.Habitacion, error) {
	precio, _ := strconv.ParseFloat(c.FormValue("precioPorNoche"), 64)
	capacidad, _ := strconv.Atoi(c.FormValue("capacidad"))
	tamanho, _ := strconv.ParseFloat(c.FormValue("tamanho"), 64)
	piso, _ := strconv.Atoi(c.FormValue("piso"))

	habitacion := domain.Habitacion{
		Numero:         strings.TrimSpace(c.FormValue("numero")),
		Nombre:         strings.TrimSpace(c.FormValue("nombre")),
		Tipo:           domain.TipoHabitacion(c.FormValue("tipo")),
		Descripcion:    strings.TrimSpace(c.FormValue("descripcion")),
		PrecioPorNoche: precio,
		Capacidad:      capacidad,
		Tamanho:        tamanho,
		Piso:           piso,
		Vista:          strings.TrimSpace(c.FormValue("vista")),
		Estado:         domain.EstadoHabitacion(c.FormValue("estado")),
	}

	if amenities := strings.TrimSpace(c.FormValue("amenities")); amenities != "" {
		for _, a := range strings.Split(amenities, ",") {
			if a = strings.TrimSpace(a); a != "" {
				habitacion.Amenities = append(habitacion.Amenities, a)
			}
		}
	}

	if habitacion.Numero == "" || habitacion.Tipo == "" {
		return habitacion, fiber.ErrBadRequest
	}
	return habitacion, nil
}
