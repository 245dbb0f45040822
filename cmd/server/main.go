package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"

	"github.com/TobiasMontone/hotel-mirage-frontend/internal/backend"
	"github.com/TobiasMontone/hotel-mirage-frontend/internal/booking"
	"github.com/TobiasMontone/hotel-mirage-frontend/internal/config"
	"github.com/TobiasMontone/hotel-mirage-frontend/internal/domain"
	"github.com/TobiasMontone/hotel-mirage-frontend/internal/email"
	handlers "github.com/TobiasMontone/hotel-mirage-frontend/internal/interfaces/http"
	"github.com/TobiasMontone/hotel-mirage-frontend/internal/scheduler"
	"github.com/TobiasMontone/hotel-mirage-frontend/internal/session"
	"github.com/TobiasMontone/hotel-mirage-frontend/internal/storage"
	"github.com/TobiasMontone/hotel-mirage-frontend/internal/validate"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Almacén durable: Redis si está configurado, memoria si no.
	var almacen fiber.Storage
	if cfg.RedisURL != "" {
		redis, err := storage.NewRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Error connecting to Redis: %v", err)
		}
		defer redis.Close()
		almacen = redis
		log.Printf("Sesiones y pendientes respaldados en Redis (%s)", cfg.RedisURL)
	} else {
		memoria := storage.NewMemoria(10 * time.Minute)
		defer memoria.Close()
		almacen = memoria
		log.Println("Sesiones y pendientes en memoria (REDIS_URL no configurado)")
	}

	// Cliente del backend. El hook de 401 revoca el token en todas las
	// sesiones que lo carguen; el manager se asigna después de construirse.
	var manager *session.Manager
	client := backend.NewClient(cfg.APIBaseURL, func(token string) {
		if manager != nil {
			manager.Revocar(token)
		}
	})

	habitacionesService := backend.NewHabitacionesService(client)
	reservasService := backend.NewReservasService(client)
	pagosService := backend.NewPagosService(client)
	authService := backend.NewAuthService(client)
	adminService := backend.NewAdminService(client)

	manager = session.NewManager(almacen, authService)

	// Email Client
	var emailClient *email.Client
	if cfg.SMTPHost == "" {
		log.Println("Warning: SMTP_HOST no configurado, correo deshabilitado")
	} else if emailClient, err = email.NewClient(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPassword,
		cfg.SMTPFromName,
		cfg.SMTPFromEmail,
	); err != nil {
		log.Printf("Warning: Email client initialization failed: %v", err)
		emailClient = nil // Continuar sin email
	}

	// Flujos de reserva
	validador := validate.New()
	registro := booking.NewRegistro(func() *booking.Coordinador {
		return booking.NewCoordinador(habitacionesService, reservasService, pagosService, validador)
	})
	pendientes := booking.NewAlmacenPendientes(almacen)

	flowScheduler := scheduler.NewFlowScheduler(registro, 2*time.Hour)
	flowScheduler.Start()
	defer flowScheduler.Stop()

	engine := html.New("./web/templates", ".html")
	app := fiber.New(fiber.Config{
		Views:       engine,
		ViewsLayout: "layouts/main",
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.PublicURL,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept",
		AllowCredentials: true,
	}))

	app.Static("/static", "./web/static")

	publicoHandler := handlers.NewPublicoHandler(habitacionesService, emailClient, cfg.ContactoEmail, cfg.SMTPFromName)
	reservaHandler := handlers.NewReservaHandler(registro, reservasService, pendientes, emailClient, cfg.SMTPFromName)
	pagoHandler := handlers.NewPagoHandler(pagosService, reservasService, pendientes, emailClient)
	adminHandler := handlers.NewAdminHandler(manager, authService, habitacionesService, reservasService, adminService)

	// Páginas públicas
	app.Get("/", publicoHandler.Inicio)
	app.Get("/habitaciones", publicoHandler.Habitaciones)
	app.Get("/habitaciones/:tipo", publicoHandler.HabitacionesPorTipo)
	app.Get("/servicios", publicoHandler.Servicios)
	app.Get("/contacto", publicoHandler.Contacto)
	app.Post("/contacto", limiter.New(limiter.Config{
		Max:        5,
		Expiration: time.Minute,
	}), publicoHandler.EnviarConsulta)

	// Flujo de reserva
	app.Get("/reservar/:id", reservaHandler.MostrarReserva)
	app.Post("/reservar/:id/disponibilidad", reservaHandler.VerificarDisponibilidad)
	app.Post("/reservar/:id", reservaHandler.EnviarReserva)
	app.Get("/reserva/confirmada/:codigo", reservaHandler.Confirmada)
	app.Get("/reserva/:codigo/comprobante.pdf", reservaHandler.Comprobante)

	// Retorno del proveedor de pagos
	app.Get("/pago/exito", pagoHandler.Exito)
	app.Get("/pago/pendiente", pagoHandler.Pendiente)
	app.Get("/pago/error", pagoHandler.Error)

	// Back-office
	app.Get("/admin/login", adminHandler.LoginForm)
	app.Post("/admin/login", adminHandler.Login)
	app.Get("/admin/logout", adminHandler.Logout)

	admin := app.Group("/admin", handlers.RequiereRol(manager, ""))
	admin.Get("/", adminHandler.Dashboard)
	admin.Get("/habitaciones", adminHandler.Habitaciones)
	admin.Post("/habitaciones", adminHandler.CrearHabitacion)
	admin.Get("/habitaciones/:tipo", adminHandler.HabitacionesPorTipo)
	admin.Post("/habitaciones/:id", adminHandler.ActualizarHabitacion)
	admin.Post("/habitaciones/:id/eliminar", adminHandler.EliminarHabitacion)
	admin.Get("/reservas", adminHandler.Reservas)
	admin.Get("/reservas/:id", adminHandler.DetalleReserva)
	admin.Post("/reservas/:id/confirmar", adminHandler.ConfirmarReserva)
	admin.Post("/reservas/:id/cancelar", adminHandler.CancelarReserva)
	admin.Post("/reservas/:id/completar", adminHandler.CompletarReserva)
	admin.Get("/reportes", adminHandler.Reporte)
	admin.Get("/password", adminHandler.PasswordForm)
	admin.Post("/password", adminHandler.CambiarPassword)
	admin.Post("/perfil", adminHandler.ActualizarPerfil)

	// Gestión de usuarios, solo para administradores
	usuarios := app.Group("/admin/usuarios", handlers.RequiereRol(manager, domain.RolAdmin))
	usuarios.Post("/", adminHandler.CrearUsuario)
	usuarios.Post("/:id", adminHandler.ActualizarUsuario)
	usuarios.Post("/:id/eliminar", adminHandler.EliminarUsuario)

	// Catch-all
	app.Use(publicoHandler.NoEncontrado)

	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
