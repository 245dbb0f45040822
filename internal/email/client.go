package email

import (
	"crypto/tls"
	"fmt"
	"html"
	"log"
	"strconv"

	"github.com/wneessen/go-mail"

	"github.com/TobiasMontone/hotel-mirage-frontend/internal/domain"
)

// Client representa el cliente de correo electrónico
type Client struct {
	host      string
	port      int
	user      string
	password  string
	fromName  string
	fromEmail string
}

// NewClient crea una nueva instancia del cliente de email
func NewClient(host, portStr, user, password, fromName, fromEmail string) (*Client, error) {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("puerto SMTP inválido: %w", err)
	}

	return &Client{
		host:      host,
		port:      port,
		user:      user,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}, nil
}

// SendEmail envía un correo electrónico
func (c *Client) SendEmail(to, subject, htmlBody string) error {
	m := mail.NewMsg()

	if err := m.From(fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail)); err != nil {
		return fmt.Errorf("error al configurar remitente: %w", err)
	}

	if err := m.To(to); err != nil {
		return fmt.Errorf("error al configurar destinatario: %w", err)
	}

	m.Subject(subject)
	m.SetBodyString(mail.TypeTextHTML, htmlBody)

	log.Printf("SMTP: connecting to %s:%d as user=%s", c.host, c.port, c.user)

	client, err := mail.NewClient(c.host,
		mail.WithPort(c.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(c.user),
		mail.WithPassword(c.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTLSConfig(&tls.Config{
			ServerName: c.host,
		}),
	)
	if err != nil {
		return fmt.Errorf("error al crear cliente SMTP (host=%s port=%d user=%s): %w", c.host, c.port, c.user, err)
	}

	if err := client.DialAndSend(m); err != nil {
		// Añadir contexto útil al error sin exponer credenciales
		return fmt.Errorf("error al enviar correo (host=%s port=%d user=%s): %w", c.host, c.port, c.user, err)
	}

	return nil
}

// SendConsulta reenvía una consulta del formulario de contacto a la casilla
// del hotel, con el correo del visitante como referencia para responder.
func (c *Client) SendConsulta(destino string, consulta domain.Consulta) error {
	subject := fmt.Sprintf("Consulta web: %s", consulta.Asunto)
	htmlBody := generarHTMLConsulta(consulta)

	return c.SendEmail(destino, subject, htmlBody)
}

// SendReservaConfirmacion envía al huésped el correo con el código de
// confirmación de su reserva
func (c *Client) SendReservaConfirmacion(reserva domain.Reserva) error {
	subject := fmt.Sprintf("Confirmación de Reserva %s - %s", reserva.CodigoConfirmacion, c.fromName)
	htmlBody := generarHTMLConfirmacion(reserva)

	return c.SendEmail(reserva.Huesped.Correo, subject, htmlBody)
}

func generarHTMLConsulta(consulta domain.Consulta) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="es">
<head><meta charset="UTF-8"><title>Consulta web</title></head>
<body style="margin: 0; padding: 20px; font-family: Arial, sans-serif; background-color: #f4f4f4;">
	<table width="600" cellpadding="0" cellspacing="0" style="background-color: #ffffff; border-radius: 8px; padding: 20px;">
		<tr><td style="padding: 8px 0;"><strong>Nombre:</strong></td><td style="padding: 8px 0;">%s</td></tr>
		<tr><td style="padding: 8px 0;"><strong>Correo:</strong></td><td style="padding: 8px 0;">%s</td></tr>
		<tr><td style="padding: 8px 0;"><strong>Teléfono:</strong></td><td style="padding: 8px 0;">%s</td></tr>
		<tr><td style="padding: 8px 0;"><strong>Asunto:</strong></td><td style="padding: 8px 0;">%s</td></tr>
		<tr><td style="padding: 8px 0; vertical-align: top;"><strong>Mensaje:</strong></td><td style="padding: 8px 0; white-space: pre-line;">%s</td></tr>
	</table>
</body>
</html>
	`,
		html.EscapeString(consulta.Nombre),
		html.EscapeString(consulta.Correo),
		html.EscapeString(consulta.Telefono),
		html.EscapeString(consulta.Asunto),
		html.EscapeString(consulta.Mensaje),
	)
}

// generarHTMLConfirmacion genera el HTML del correo de confirmación
func generarHTMLConfirmacion(reserva domain.Reserva) string {
	pago := "Pago al llegar al hotel"
	if reserva.MetodoPago == domain.PagoOnline {
		pago = "Pago online"
	}

	cuerpo := fmt.Sprintf(`
<!DOCTYPE html>
<html lang="es">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Confirmación de Reserva</title>
</head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f4f4f4;">
	<table width="100%%" cellpadding="0" cellspacing="0" style="background-color: #f4f4f4; padding: 20px;">
		<tr>
			<td align="center">
				<table width="600" cellpadding="0" cellspacing="0" style="background-color: #ffffff; border-radius: 8px; overflow: hidden; box-shadow: 0 2px 4px rgba(0,0,0,0.1);">
					<!-- Header -->
					<tr>
						<td style="background: linear-gradient(135deg, #1a2b4a 0%%, #c8a45d 100%%); padding: 40px 20px; text-align: center;">
							<h1 style="color: #ffffff; margin: 0; font-size: 28px;">¡Reserva Recibida!</h1>
							<p style="color: #ffffff; margin: 10px 0 0 0; font-size: 16px;">Gracias por reservar con nosotros</p>
						</td>
					</tr>

					<!-- Contenido -->
					<tr>
						<td style="padding: 40px 30px;">
							<div style="background-color: #f8f9fa; border-left: 4px solid #c8a45d; padding: 20px; margin-bottom: 30px; text-align: center;">
								<p style="margin: 0 0 10px 0; color: #333;">Su código de confirmación es</p>
								<p style="margin: 0; font-size: 28px; letter-spacing: 3px; color: #1a2b4a;"><strong>%s</strong></p>
							</div>

							<table width="100%%" cellpadding="0" cellspacing="0">
								<tr>
									<td style="padding: 8px 0;"><strong>Huésped:</strong></td>
									<td style="padding: 8px 0; text-align: right;">%s %s</td>
								</tr>
								<tr>
									<td style="padding: 8px 0;"><strong>Habitación:</strong></td>
									<td style="padding: 8px 0; text-align: right;">%s (N° %s)</td>
								</tr>
								<tr>
									<td style="padding: 8px 0;"><strong>Check-in:</strong></td>
									<td style="padding: 8px 0; text-align: right;">%s</td>
								</tr>
								<tr>
									<td style="padding: 8px 0;"><strong>Check-out:</strong></td>
									<td style="padding: 8px 0; text-align: right;">%s</td>
								</tr>
								<tr>
									<td style="padding: 8px 0;"><strong>Huéspedes:</strong></td>
									<td style="padding: 8px 0; text-align: right;">%d persona(s)</td>
								</tr>
								<tr>
									<td style="padding: 8px 0;"><strong>Método de pago:</strong></td>
									<td style="padding: 8px 0; text-align: right;">%s</td>
								</tr>
								<tr style="border-top: 2px solid #c8a45d;">
									<td style="padding: 15px 0 0 0;"><strong style="font-size: 18px;">Total (%d noche(s)):</strong></td>
									<td style="padding: 15px 0 0 0; text-align: right;"><strong style="font-size: 24px; color: #1a2b4a;">$%.2f</strong></td>
								</tr>
							</table>

							<div style="margin-top: 30px; padding: 20px; background-color: #fff3cd; border-radius: 8px; border-left: 4px solid #ffc107;">
								<h4 style="margin: 0 0 10px 0; color: #856404;">Información Importante</h4>
								<ul style="margin: 0; padding-left: 20px; color: #856404;">
									<li>Presentar este correo al momento del check-in</li>
									<li>Check-in: 15:00 hrs | Check-out: 12:00 hrs</li>
									<li>Para cancelaciones, contactar con 48 horas de anticipación</li>
								</ul>
							</div>
						</td>
					</tr>

					<!-- Footer -->
					<tr>
						<td style="background-color: #f8f9fa; padding: 30px; text-align: center; border-top: 1px solid #e0e0e0;">
							<p style="margin: 0 0 10px 0; color: #666; font-size: 14px;">
								Si tiene alguna pregunta, no dude en contactarnos
							</p>
							<p style="margin: 0; color: #999; font-size: 12px;">
								Este es un correo automático, por favor no responder directamente
							</p>
						</td>
					</tr>
				</table>
			</td>
		</tr>
	</table>
</body>
</html>
	`,
		reserva.CodigoConfirmacion,
		reserva.Huesped.Nombre,
		reserva.Huesped.Apellido,
		reserva.Habitacion.Nombre,
		reserva.Habitacion.Numero,
		reserva.FechaEntrada,
		reserva.FechaSalida,
		reserva.NumeroPersonas,
		pago,
		reserva.Noches,
		reserva.PrecioTotal,
	)

	return cuerpo
}
