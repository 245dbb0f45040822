package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config agrupa toda la configuración del servidor web. Se carga una sola vez
// en main y se pasa por referencia.
type Config struct {
	ServerPort string
	PublicURL  string

	// Backend de reservas
	APIBaseURL string

	// Redis opcional para sesiones y snapshots; vacío usa memoria
	RedisURL string

	// SMTP para consultas y confirmaciones
	SMTPHost      string
	SMTPPort      string
	SMTPUser      string
	SMTPPassword  string
	SMTPFromName  string
	SMTPFromEmail string
	ContactoEmail string
}

// LoadConfig lee .env si existe y arma la configuración desde el entorno.
func LoadConfig() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		ServerPort:    getEnv("SERVER_PORT", "3000"),
		PublicURL:     getEnv("PUBLIC_URL", "http://localhost:3000"),
		APIBaseURL:    getEnv("API_BASE_URL", "http://localhost:5000/api"),
		RedisURL:      os.Getenv("REDIS_URL"),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		SMTPFromName:  getEnv("SMTP_FROM_NAME", "Hotel Mirage"),
		SMTPFromEmail: os.Getenv("SMTP_FROM_EMAIL"),
		ContactoEmail: os.Getenv("CONTACT_EMAIL"),
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL es requerido")
	}
	cfg.APIBaseURL = strings.TrimSuffix(cfg.APIBaseURL, "/")
	cfg.PublicURL = strings.TrimSuffix(cfg.PublicURL, "/")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
