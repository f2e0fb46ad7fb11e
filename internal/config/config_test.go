package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 0},
		Database: DatabaseConfig{
			Addrs: []string{"localhost:6379"},
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingDatabaseAddrs(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Addrs: []string{},
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_APIKeyWithoutActor(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Addrs: []string{"localhost:6379"}},
		Auth:     AuthConfig{APIKeys: map[string]string{"token-1": ""}},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for api key without actor")
	}
}

func TestValidate_ValidAPIKeys(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Addrs: []string{"localhost:6379"}},
		Auth:     AuthConfig{APIKeys: map[string]string{"token-1": "alice"}},
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Places.TimeoutSec != 10 {
		t.Errorf("expected Places.TimeoutSec=10, got %d", cfg.Places.TimeoutSec)
	}
	if cfg.Audit.WriteTimeoutSec != 5 {
		t.Errorf("expected Audit.WriteTimeoutSec=5, got %d", cfg.Audit.WriteTimeoutSec)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database: DatabaseConfig{ReadinessTimeout: 15},
		Places:   PlacesConfig{TimeoutSec: 3},
		Audit:    AuditConfig{WriteTimeoutSec: 2},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 || cfg.HTTP.WriteTimeoutSec != 60 || cfg.HTTP.ShutdownSec != 5 {
		t.Errorf("http overrides lost: %+v", cfg.HTTP)
	}
	if cfg.Database.ReadinessTimeout != 15 {
		t.Errorf("database override lost: %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Places.TimeoutSec != 3 || cfg.Audit.WriteTimeoutSec != 2 {
		t.Errorf("places/audit overrides lost: %+v %+v", cfg.Places, cfg.Audit)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("DISCOVERY_TEST_PASSWORD", "s3cret")

	in := []byte("password: ${DISCOVERY_TEST_PASSWORD}\nport: ${DISCOVERY_TEST_PORT:-8080}\n")
	out := string(expandEnvVars(in))

	if out != "password: s3cret\nport: 8080\n" {
		t.Errorf("expanded = %q", out)
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "config")
	if err := os.Mkdir(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}

	yaml := `
http:
  port: 9090
database:
  addrs:
    - localhost:6379
places:
  base_url: http://places.local
auth:
  api_keys:
    tok-1: alice
`
	if err := os.WriteFile(filepath.Join(cfgDir, "test.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("port = %d", cfg.HTTP.Port)
	}
	if cfg.Places.BaseURL != "http://places.local" {
		t.Errorf("places base url = %s", cfg.Places.BaseURL)
	}
	if cfg.Auth.APIKeys["tok-1"] != "alice" {
		t.Errorf("api keys = %v", cfg.Auth.APIKeys)
	}
	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("defaults not applied: %+v", cfg.HTTP)
	}
}
