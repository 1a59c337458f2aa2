// Package config loads the client's settings from the environment, with an
// optional .env file for development.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config carries everything the CLI needs to talk to a timetable backend.
// The CSRF token and session cookie are supplied here because obtaining
// them (login, token endpoints) is outside this subsystem.
type Config struct {
	BaseURL       string // backend root, e.g. http://localhost:8080
	CSRFToken     string // sent as csrfmiddlewaretoken on every POST
	SessionCookie string // value of the backend's sessionid cookie
	Environment   string // "development" or "production"
	DatabaseURL   string // optional Postgres DSN for the stub server
	Port          string // listen port for the stub server
}

// Load reads configuration from the environment. A missing .env file is not
// an error.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		BaseURL:       os.Getenv("TT_BASE_URL"),
		CSRFToken:     os.Getenv("TT_CSRF_TOKEN"),
		SessionCookie: os.Getenv("TT_SESSION_COOKIE"),
		Environment:   os.Getenv("ENV"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		Port:          os.Getenv("PORT"),
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	return cfg, nil
}

// Validate checks the fields a command actually requires.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("TT_BASE_URL is required but not set")
	}
	return nil
}
