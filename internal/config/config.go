package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	DatabaseURL    string
	MigrationsPath string
	Store          string // "postgres" or "memory"
	DiscordToken   string // empty = log-only notifier
	DefaultLocale  string
}

// Load reads the configuration from environment variables and validates it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env is optional when variables come from the environment (Docker, CI, etc.).
	}

	cfg := &Config{
		Port:           os.Getenv("PORT"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		Store:          os.Getenv("STORE"),
		DiscordToken:   os.Getenv("TOKEN"),
		DefaultLocale:  os.Getenv("DEFAULT_LOCALE"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate applies defaults and all the rules on the loaded configuration.
func (c *Config) validate() error {
	if strings.TrimSpace(c.Port) == "" {
		c.Port = "8080"
	}
	for _, r := range c.Port {
		if r < '0' || r > '9' {
			return fmt.Errorf("config: PORT must be numeric, got %q", c.Port)
		}
	}

	if strings.TrimSpace(c.Store) == "" {
		c.Store = "postgres"
	}
	if c.Store != "postgres" && c.Store != "memory" {
		return fmt.Errorf("config: STORE must be \"postgres\" or \"memory\", got %q", c.Store)
	}

	if c.Store == "postgres" {
		if strings.TrimSpace(c.DatabaseURL) == "" {
			// Useful local default when DATABASE_URL is not provided.
			c.DatabaseURL = "postgres://localhost:5432/cricketxpert?sslmode=disable"
		}
		parsed, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return fmt.Errorf("config: invalid DATABASE_URL (%q): %w", c.DatabaseURL, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config: invalid DATABASE_URL (%q): missing scheme or host", c.DatabaseURL)
		}
	}

	if strings.TrimSpace(c.MigrationsPath) == "" {
		c.MigrationsPath = "internal/infrastructure/database/migrations"
	}

	if strings.TrimSpace(c.DefaultLocale) == "" {
		c.DefaultLocale = "en"
	}

	return nil
}
