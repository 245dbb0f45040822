package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/TobiasMontone/hotel-mirage-frontend/internal/domain"
)

// Comprobante genera el PDF del comprobante de una reserva, descargable
// desde la página de confirmación por código.
func Comprobante(hotel string, reserva domain.Reserva) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Comprobante de Reserva", false)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, tr(hotel))
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 13)
	pdf.Cell(0, 8, "Comprobante de Reserva")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 9, tr(fmt.Sprintf("Código: %s", safe(reserva.CodigoConfirmacion, "-"))))
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Huésped        : %s %s", safe(reserva.Huesped.Nombre, "-"), reserva.Huesped.Apellido),
		fmt.Sprintf("DNI            : %s", safe(reserva.Huesped.DNI, "-")),
		fmt.Sprintf("Correo         : %s", safe(reserva.Huesped.Correo, "-")),
		fmt.Sprintf("Habitación     : %s (N° %s)", safe(reserva.Habitacion.Nombre, "-"), safe(reserva.Habitacion.Numero, "-")),
		fmt.Sprintf("Check-in       : %s", safe(reserva.FechaEntrada, "-")),
		fmt.Sprintf("Check-out      : %s", safe(reserva.FechaSalida, "-")),
		fmt.Sprintf("Huéspedes      : %d", reserva.NumeroPersonas),
		fmt.Sprintf("Noches         : %d", reserva.Noches),
		fmt.Sprintf("Método de pago : %s", metodoPago(reserva.MetodoPago)),
		fmt.Sprintf("Estado         : %s", string(reserva.Estado)),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, tr(l))
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, tr(fmt.Sprintf("Total: $%.2f", reserva.PrecioTotal)))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, tr("Presentar este comprobante al momento del check-in. Check-in: 15:00 hrs | Check-out: 12:00 hrs."), "", "", false)
	pdf.Ln(4)
	pdf.Cell(0, 6, "Emitido: "+time.Now().Format("2006-01-02 15:04"))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("RESERVA_%s.pdf", safeFilenamePart(reserva.CodigoConfirmacion))
	return buf.Bytes(), filename, nil
}

func metodoPago(m domain.MetodoPago) string {
	if m == domain.PagoOnline {
		return "Pago online"
	}
	return "Pago al llegar"
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
