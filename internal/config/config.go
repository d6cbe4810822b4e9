// Package config provides configuration management for the solar siting
// UI service.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the complete application configuration loaded from environment variables.
type Config struct {
	Server  ServerConfig  `envPrefix:"SERVER_"`
	Engine  EngineConfig  `envPrefix:"ENGINE_"`
	Map     MapConfig     `envPrefix:"MAP_"`
	UI      UIConfig      `envPrefix:"UI_"`
	Logging LoggingConfig `envPrefix:"LOG_"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host            string        `env:"HOST" envDefault:"0.0.0.0"`
	Port            int           `env:"PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"300s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// EngineConfig contains analysis backend client configuration.
// The backend performs the actual elevation/slope/suitability
// computation; an Earth Engine run over a large AOI can take minutes,
// hence the generous default timeout.
type EngineConfig struct {
	BaseURL string        `env:"BASE_URL" envDefault:"http://localhost:5000"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"240s"`
}

// MapConfig contains the map widget's default view and base imagery.
type MapConfig struct {
	DefaultLat  float64 `env:"DEFAULT_LAT" envDefault:"20.5937"`
	DefaultLon  float64 `env:"DEFAULT_LON" envDefault:"78.9629"`
	DefaultZoom int     `env:"DEFAULT_ZOOM" envDefault:"5"`
	BaseTileURL string  `env:"BASE_TILE_URL" envDefault:"https://server.arcgisonline.com/ArcGIS/rest/services/World_Imagery/MapServer/tile/{z}/{y}/{x}"`
}

// UIConfig contains page serving and session configuration.
type UIConfig struct {
	WebDir         string        `env:"WEB_DIR" envDefault:"web"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"12h"`
	SessionCleanup time.Duration `env:"SESSION_CLEANUP" envDefault:"10m"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"json"`
}

// Load parses configuration from environment variables.
// It returns an error if required fields are missing or invalid.
func Load() (*Config, error) {
	cfg := &Config{}

	opts := env.Options{
		RequiredIfNoDef: true,
	}

	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	// Validate server config
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive, got %s", c.Server.ReadTimeout)
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive, got %s", c.Server.WriteTimeout)
	}

	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server shutdown timeout must be positive, got %s", c.Server.ShutdownTimeout)
	}

	// Validate engine config
	if c.Engine.BaseURL == "" {
		return fmt.Errorf("engine base URL is required")
	}

	if c.Engine.Timeout <= 0 {
		return fmt.Errorf("engine timeout must be positive, got %s", c.Engine.Timeout)
	}

	// Validate map config
	if c.Map.DefaultLat < -90 || c.Map.DefaultLat > 90 {
		return fmt.Errorf("default latitude must be between -90 and 90, got %g", c.Map.DefaultLat)
	}

	if c.Map.DefaultLon < -180 || c.Map.DefaultLon > 180 {
		return fmt.Errorf("default longitude must be between -180 and 180, got %g", c.Map.DefaultLon)
	}

	if c.Map.DefaultZoom < 1 || c.Map.DefaultZoom > 20 {
		return fmt.Errorf("default zoom must be between 1 and 20, got %d", c.Map.DefaultZoom)
	}

	if c.Map.BaseTileURL == "" {
		return fmt.Errorf("base tile URL is required")
	}

	// Validate UI config
	if c.UI.WebDir == "" {
		return fmt.Errorf("web directory is required")
	}

	if c.UI.SessionTTL <= 0 {
		return fmt.Errorf("session TTL must be positive, got %s", c.UI.SessionTTL)
	}

	if c.UI.SessionCleanup <= 0 {
		return fmt.Errorf("session cleanup interval must be positive, got %s", c.UI.SessionCleanup)
	}

	// Validate logging config
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level %q, must be one of: debug, info, warn, error", c.Logging.Level)
	}

	validLogFormats := map[string]bool{
		"json": true,
		"text": true,
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("invalid log format %q, must be one of: json, text", c.Logging.Format)
	}

	return nil
}

// Address returns the server listen address in the format "host:port".
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DefaultCenter returns the default map center as [lat, lon].
func (m *MapConfig) DefaultCenter() [2]float64 {
	return [2]float64{m.DefaultLat, m.DefaultLon}
}
