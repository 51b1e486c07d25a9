package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.WebServer.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.WebServer.Port)
	}
	if cfg.Analytics.ForecastDays != 7 {
		t.Errorf("Expected default forecast days 7, got %d", cfg.Analytics.ForecastDays)
	}
	if cfg.Analytics.CoverageRadiusKM != 5.0 {
		t.Errorf("Expected default coverage radius 5, got %v", cfg.Analytics.CoverageRadiusKM)
	}
	if !cfg.Redis.Enabled {
		t.Error("Expected Redis to be enabled by default")
	}
}

func TestLoadConfig_FileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	yaml := []byte("webserver:\n  port: \"9090\"\nanalytics:\n  max_hotspots: 5\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	t.Setenv("TRANSIT_ANALYTICS_FORECAST_DAYS", "14")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.WebServer.Port != "9090" {
		t.Errorf("Expected port 9090 from file, got %s", cfg.WebServer.Port)
	}
	if cfg.Analytics.MaxHotspots != 5 {
		t.Errorf("Expected max hotspots 5 from file, got %d", cfg.Analytics.MaxHotspots)
	}
	if cfg.Analytics.ForecastDays != 14 {
		t.Errorf("Expected forecast days 14 from env, got %d", cfg.Analytics.ForecastDays)
	}
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("webserver: [unclosed"), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := LoadConfig(); err == nil {
		t.Error("Expected error for malformed config file")
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
