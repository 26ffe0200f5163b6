package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/solatis/querybuilder/internal/expression"
	"github.com/solatis/querybuilder/internal/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadConfig("")
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.Server.Host != "0.0.0.0" {
			t.Errorf("expected host 0.0.0.0, got %s", cfg.Server.Host)
		}
		if cfg.Server.Port != 50061 {
			t.Errorf("expected port 50061, got %d", cfg.Server.Port)
		}
		if cfg.Server.RequestTimeout != 30*time.Second {
			t.Errorf("expected request_timeout 30s, got %v", cfg.Server.RequestTimeout)
		}
		if cfg.Converter.DefaultOperator != "equals" {
			t.Errorf("expected default_operator equals, got %s", cfg.Converter.DefaultOperator)
		}
		if cfg.Converter.Mode != expression.ModeStrict {
			t.Errorf("expected mode strict, got %s", cfg.Converter.Mode)
		}
	})

	t.Run("config file", func(t *testing.T) {
		path := writeConfig(t, `converter:
  default_operator: contains
  mode: legacy
server:
  host: "127.0.0.1"
  port: 9090
  request_timeout: 5s
database:
  url: "sqlite:///tmp/qb.db"
`)
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.Server.Addr() != "127.0.0.1:9090" {
			t.Errorf("expected addr 127.0.0.1:9090, got %s", cfg.Server.Addr())
		}
		if cfg.Server.RequestTimeout != 5*time.Second {
			t.Errorf("expected request_timeout 5s, got %v", cfg.Server.RequestTimeout)
		}
		if cfg.Converter.Mode != expression.ModeLegacy {
			t.Errorf("expected mode legacy, got %s", cfg.Converter.Mode)
		}
		opts := cfg.Converter.ConverterOptions()
		if opts.DefaultOperator != "contains" {
			t.Errorf("expected default operator contains, got %s", opts.DefaultOperator)
		}
		if cfg.Database.URL != "sqlite:///tmp/qb.db" {
			t.Errorf("expected database url, got %s", cfg.Database.URL)
		}
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := writeConfig(t, "server:\n  port: 9090\n")
		t.Setenv("QB_SERVER_PORT", "7070")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.Server.Port != 7070 {
			t.Errorf("expected port 7070 from env, got %d", cfg.Server.Port)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})
}

func TestLoadConfig_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantIs  error
	}{
		{name: "port out of range", content: "server:\n  port: 70000\n"},
		{name: "zero port", content: "server:\n  port: 0\n"},
		{name: "negative timeout", content: "server:\n  request_timeout: -1s\n"},
		{name: "unknown mode", content: "converter:\n  mode: lenient\n"},
		{name: "unknown operator", content: "converter:\n  default_operator: between\n", wantIs: types.ErrInvalidOperator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("error = %v, want %v", err, tt.wantIs)
			}
		})
	}
}
