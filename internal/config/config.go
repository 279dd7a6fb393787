// Package config loads the application configuration from the environment.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into structured Go config.
//   - Fill defaults (port 3001, timeouts, static dir, observability).
//   - Validate required values so the app fails fast on bad/missing config.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	// Loads `.env` into the process environment before anything reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read with the PHONEBOOK_ prefix. The prefix is trimmed and
	the rest lowercased, and "." marks nesting:

	  PHONEBOOK_SERVER.PORT    -> server.port  -> Config.Server.Port
	  PHONEBOOK_DATABASE.URL   -> database.url -> Config.Database.URL

	The bare PORT and DATABASE_URL variables are honoured as fallbacks so the
	service also runs on platforms that only inject those.
*/

const (
	envPrefix = "PHONEBOOK_"

	// ServiceName tags every log line and APM transaction.
	ServiceName = "phonebook"

	DefaultPort      = "3001"
	DefaultStaticDir = "build"
	DefaultDocsDir   = "static"
)

// Config is the root configuration object.
//
// Observability is a pointer because it is optional; defaults are injected
// when it is absent.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server. Timeouts are seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required,numeric"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`

	// StaticDir holds the built frontend served by the catch-all route.
	StaticDir string `koanf:"static_dir"`

	// DocsDir holds openapi.html and openapi.json, served under /docs.
	DocsDir string `koanf:"docs_dir"`
}

// DatabaseConfig contains the connection string and optional pool tuning.
// Zero pool values keep the pgxpool defaults. Lifetimes are seconds.
type DatabaseConfig struct {
	URL             string `koanf:"url" validate:"required"`
	MaxConns        int32  `koanf:"max_conns" validate:"min=0"`
	MinConns        int32  `koanf:"min_conns" validate:"min=0"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"min=0"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"min=0"`
}

// LoadConfig reads the environment into a validated Config.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	// Observability starts from its defaults so a partial
	// PHONEBOOK_OBSERVABILITY.* block only overrides what it names.
	mainConfig := &Config{Observability: DefaultObservabilityConfig()}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	mainConfig.applyDefaults()

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment always follow the primary config.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

func (c *Config) applyDefaults() {
	if c.Primary.Env == "" {
		c.Primary.Env = "development"
	}

	if c.Server.Port == "" {
		c.Server.Port = os.Getenv("PORT")
	}
	if c.Server.Port == "" {
		c.Server.Port = DefaultPort
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if len(c.Server.CORSAllowedOrigins) == 0 {
		c.Server.CORSAllowedOrigins = []string{"*"}
	}
	if c.Server.StaticDir == "" {
		c.Server.StaticDir = DefaultStaticDir
	}
	if c.Server.DocsDir == "" {
		c.Server.DocsDir = DefaultDocsDir
	}

	if c.Database.URL == "" {
		c.Database.URL = os.Getenv("DATABASE_URL")
	}
}
