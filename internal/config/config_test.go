package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const validConfig = `
app:
  name: posada-backoffice
  environment: test
  port: 3000
backend:
  base_url: http://localhost:8080/api
  timeout_seconds: 5
stats:
  refresh_cron: "*/15 * * * *"
`

func TestLoadValidConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Port != 3000 {
		t.Errorf("port = %d", cfg.App.Port)
	}
	if cfg.Backend.BaseURL != "http://localhost:8080/api" {
		t.Errorf("backend base url = %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout() != 5*time.Second {
		t.Errorf("timeout = %v", cfg.Backend.Timeout())
	}
	if cfg.Stats.RefreshCron != "*/15 * * * *" {
		t.Errorf("refresh cron = %q", cfg.Stats.RefreshCron)
	}
}

func TestLoadSecretKeyFromEnv(t *testing.T) {
	t.Setenv("APP_SECRET_KEY", "hunter2")
	cfg, err := Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.SecretKey != "hunter2" {
		t.Errorf("secret key = %q", cfg.App.SecretKey)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{"missing name", func(c *Config) { c.App.Name = "" }, "app name"},
		{"missing port", func(c *Config) { c.App.Port = 0 }, "port"},
		{"missing backend url", func(c *Config) { c.Backend.BaseURL = "" }, "base_url"},
		{"bad cron", func(c *Config) { c.Stats.RefreshCron = "not a cron" }, "refresh_cron"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var cfg Config
			cfg.App.Name = "x"
			cfg.App.Port = 3000
			cfg.Backend.BaseURL = "http://localhost:8080/api"
			tc.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Fatalf("error %q does not mention %q", err, tc.wantMsg)
			}
		})
	}
}

func TestBackendTimeoutDefault(t *testing.T) {
	var b BackendConfig
	if b.Timeout() != 10*time.Second {
		t.Fatalf("default timeout = %v", b.Timeout())
	}
}
