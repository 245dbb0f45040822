package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
)

// decodeParam devuelve un parámetro de ruta ya des-escapado. Los tipos de
// habitación llevan espacios ("Suite Presidencial") y llegan percent-encoded.
func decodeParam(c *fiber.Ctx, nombre string) (string, error) {
	return url.PathUnescape(c.Params(nombre))
}
