package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with defaults failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Engine.BaseURL != "http://localhost:5000" {
		t.Errorf("unexpected default engine URL: %s", cfg.Engine.BaseURL)
	}
	if cfg.Engine.Timeout != 240*time.Second {
		t.Errorf("unexpected default engine timeout: %s", cfg.Engine.Timeout)
	}
	if cfg.Map.DefaultLat != 20.5937 || cfg.Map.DefaultLon != 78.9629 {
		t.Errorf("unexpected default map center: %g, %g", cfg.Map.DefaultLat, cfg.Map.DefaultLon)
	}
	if cfg.Map.DefaultZoom != 5 {
		t.Errorf("expected default zoom 5, got %d", cfg.Map.DefaultZoom)
	}
	if cfg.UI.WebDir != "web" {
		t.Errorf("unexpected default web dir: %s", cfg.UI.WebDir)
	}
	if cfg.UI.SessionTTL != 12*time.Hour {
		t.Errorf("unexpected default session TTL: %s", cfg.UI.SessionTTL)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected default logging config: %s/%s", cfg.Logging.Level, cfg.Logging.Format)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ENGINE_BASE_URL", "http://analysis.internal:5000")
	t.Setenv("ENGINE_TIMEOUT", "120s")
	t.Setenv("MAP_DEFAULT_LAT", "51.5")
	t.Setenv("MAP_DEFAULT_LON", "-0.12")
	t.Setenv("MAP_DEFAULT_ZOOM", "10")
	t.Setenv("UI_SESSION_TTL", "1h")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Engine.BaseURL != "http://analysis.internal:5000" {
		t.Errorf("unexpected engine URL: %s", cfg.Engine.BaseURL)
	}
	if cfg.Engine.Timeout != 120*time.Second {
		t.Errorf("unexpected engine timeout: %s", cfg.Engine.Timeout)
	}
	if cfg.Map.DefaultLat != 51.5 || cfg.Map.DefaultLon != -0.12 {
		t.Errorf("unexpected map center: %g, %g", cfg.Map.DefaultLat, cfg.Map.DefaultLon)
	}
	if cfg.UI.SessionTTL != time.Hour {
		t.Errorf("unexpected session TTL: %s", cfg.UI.SessionTTL)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("unexpected log level: %s", cfg.Logging.Level)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"port out of range", "SERVER_PORT", "70000"},
		{"empty engine URL", "ENGINE_BASE_URL", ""},
		{"negative engine timeout", "ENGINE_TIMEOUT", "-1s"},
		{"latitude out of range", "MAP_DEFAULT_LAT", "95"},
		{"longitude out of range", "MAP_DEFAULT_LON", "200"},
		{"zoom out of range", "MAP_DEFAULT_ZOOM", "25"},
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"bad log format", "LOG_FORMAT", "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("expected Load to fail with %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestServerConfig_Address(t *testing.T) {
	s := ServerConfig{Host: "0.0.0.0", Port: 8080}
	if got := s.Address(); got != "0.0.0.0:8080" {
		t.Errorf("expected 0.0.0.0:8080, got %s", got)
	}
}

func TestMapConfig_DefaultCenter(t *testing.T) {
	m := MapConfig{DefaultLat: 20.5937, DefaultLon: 78.9629}
	if got := m.DefaultCenter(); got != [2]float64{20.5937, 78.9629} {
		t.Errorf("unexpected center: %v", got)
	}
}
