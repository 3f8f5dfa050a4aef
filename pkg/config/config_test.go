package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/graphport/graphport/pkg/errors"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Protocol != "https" || cfg.Server != DefaultServer || cfg.APIVersion != 1 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.BaseURL() != "https://"+DefaultServer {
		t.Errorf("base url = %q", cfg.BaseURL())
	}
}

func TestLoadTOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
protocol = "http"
server = "localhost:8000"
api_version = 3
username = "alice"
dataset_prefix = "team"
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Protocol != "http" || cfg.Server != "localhost:8000" || cfg.APIVersion != 3 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Username != "alice" || cfg.DatasetPrefix != "team" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Fatalf("expected invalid config, got %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GRAPHPORT_SERVER", "hub.example.com")
	t.Setenv("GRAPHPORT_API_VERSION", "2")
	t.Setenv("GRAPHPORT_API_KEY", "secret")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`server = "from-file"`), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server != "hub.example.com" {
		t.Errorf("env should win over file: %q", cfg.Server)
	}
	if cfg.APIVersion != 2 || cfg.Key != "secret" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad protocol", func(c *Config) { c.Protocol = "ftp" }},
		{"empty server", func(c *Config) { c.Server = "" }},
		{"bad api version", func(c *Config) { c.APIVersion = 4 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Fatalf("expected invalid config, got %v", err)
			}
		})
	}
}

func TestViewBaseURL(t *testing.T) {
	cfg := Default()
	if cfg.ViewBaseURL() != cfg.BaseURL() {
		t.Error("view base should default to api base")
	}
	cfg.ClientProtocolHostname = "https://viewer.example.com"
	if cfg.ViewBaseURL() != "https://viewer.example.com" {
		t.Errorf("view base = %q", cfg.ViewBaseURL())
	}
}
