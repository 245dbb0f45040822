package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// ErrNoAutorizado se devuelve cuando el backend rechaza la credencial. El
// llamador nunca ve una respuesta usable en este caso: la sesión ya fue
// invalidada por el hook.
var ErrNoAutorizado = errors.New("credencial rechazada por el backend")

// APIError es un rechazo de regla de negocio del backend (habitación no
// disponible, capacidad excedida, etc). Mensaje listo para mostrar.
type APIError struct {
	Status  int
	Mensaje string
}

func (e *APIError) Error() string {
	if e.Mensaje != "" {
		return e.Mensaje
	}
	return fmt.Sprintf("el servidor respondió %d", e.Status)
}

// Client es el único punto de salida HTTP hacia el backend de reservas.
// Adjunta el bearer token cuando está presente y maneja el 401 globalmente.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	noAutorizado func(token string)
}

// NewClient crea el cliente con la URL base del backend. El hook
// noAutorizado se invoca una vez por cada respuesta 401, antes de devolver
// ErrNoAutorizado, para que la sesión asociada al token se limpie.
func NewClient(baseURL string, noAutorizado func(token string)) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		noAutorizado: noAutorizado,
	}
}

// envelope es la envoltura { success, message, data } que usa el backend en
// la mayoría de sus respuestas. Algunos endpoints responden el objeto pelado;
// Do tolera ambas formas.
type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Do envía una petición al backend y decodifica la respuesta en out (si out
// no es nil). Errores de transporte se propagan envueltos; un 401 limpia la
// sesión vía hook y devuelve ErrNoAutorizado; cualquier otro no-2xx se
// devuelve como *APIError con el mensaje del servidor si lo hay.
func (c *Client) Do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error al codificar la petición: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("error al construir la petición: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error de red hacia el backend: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error al leer la respuesta: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if c.noAutorizado != nil {
			c.noAutorizado(token)
		}
		return ErrNoAutorizado
	}

	var env envelope
	if len(raw) > 0 {
		// El cuerpo puede no ser una envoltura; en ese caso se decodifica
		// directo en out más abajo.
		if err := json.Unmarshal(raw, &env); err != nil {
			env = envelope{}
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Mensaje: env.Message}
	}
	if env.Success != nil && !*env.Success {
		return &APIError{Status: resp.StatusCode, Mensaje: env.Message}
	}

	if out == nil {
		return nil
	}
	if env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("error al decodificar la respuesta: %w", err)
		}
		return nil
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("error al decodificar la respuesta: %w", err)
	}
	return nil
}

// MensajeDeError extrae un mensaje mostrable de un error del cliente, con un
// texto genérico cuando el servidor no aportó uno.
func MensajeDeError(err error, generico string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Mensaje != "" {
		return apiErr.Mensaje
	}
	if err != nil {
		log.Printf("Error sin mensaje de negocio: %v", err)
	}
	return generico
}
