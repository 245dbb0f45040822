package http

import (
	"time"
)

// Zona horaria de Argentina (UTC-3)
var zonaLocal *time.Location

func init() {
	var err error
	zonaLocal, err = time.LoadLocation("America/Argentina/Buenos_Aires")
	if err != nil {
		// Fallback a UTC-3 si no se puede cargar la zona horaria
		zonaLocal = time.FixedZone("ART", -3*60*60)
	}
}

// hoyLocal retorna la fecha de hoy a las 00:00:00 en la zona horaria local.
// Es el "hoy" contra el que se validan las fechas de entrada.
func hoyLocal() time.Time {
	now := time.Now().In(zonaLocal)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, zonaLocal)
}
