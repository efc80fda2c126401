package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/hmercer/marginalia/internal/config"
)

func TestServerConfigDefaults(t *testing.T) {
	var cfg config.ServerConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if cfg.Host != "0.0.0.0" {
		t.Errorf("host = %q, want 0.0.0.0", cfg.Host)
	}
	if cfg.Port == 0 {
		t.Error("port = 0, want a default")
	}
	if cfg.ShutdownTimeoutDuration() <= 0 {
		t.Error("shutdown timeout not defaulted")
	}
}

func TestServerConfigEnvOverride(t *testing.T) {
	t.Setenv(config.EnvServerHost, "127.0.0.1")
	t.Setenv(config.EnvServerPort, "9090")

	var cfg config.ServerConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if got := cfg.Addr(); got != "127.0.0.1:9090" {
		t.Errorf("addr = %q, want 127.0.0.1:9090", got)
	}
}

func TestServerConfigMerge(t *testing.T) {
	base := config.ServerConfig{Host: "0.0.0.0", Port: 8080, ReadTimeout: "15s"}
	overlay := config.ServerConfig{Port: 9000}

	base.Merge(&overlay)

	if base.Port != 9000 {
		t.Errorf("port = %d, want 9000", base.Port)
	}
	if base.Host != "0.0.0.0" {
		t.Errorf("host = %q, want preserved 0.0.0.0", base.Host)
	}
	if base.ReadTimeout != "15s" {
		t.Errorf("read timeout = %q, want preserved 15s", base.ReadTimeout)
	}
}

func TestDatabaseConfigDSN(t *testing.T) {
	cfg := config.DatabaseConfig{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	dsn := cfg.DSN()
	for _, part := range []string{"host=localhost", "port=5432", "sslmode=disable"} {
		if !strings.Contains(dsn, part) {
			t.Errorf("dsn %q missing %q", dsn, part)
		}
	}

	if cfg.ConnMaxLifetimeDuration() != 15*time.Minute {
		t.Errorf("conn max lifetime = %v, want 15m", cfg.ConnMaxLifetimeDuration())
	}
}

func TestAuthConfigRequiresSecret(t *testing.T) {
	var cfg config.AuthConfig
	if err := cfg.Finalize(); err == nil {
		t.Error("finalize with empty secret = nil, want error")
	}

	t.Setenv(config.EnvAuthSecret, "test-secret")

	var withEnv config.AuthConfig
	if err := withEnv.Finalize(); err != nil {
		t.Fatalf("finalize with env secret: %v", err)
	}
	if withEnv.Secret != "test-secret" {
		t.Errorf("secret = %q, want test-secret", withEnv.Secret)
	}
}

func TestStorageConfigUploadSize(t *testing.T) {
	tests := []struct {
		name      string
		size      string
		wantBytes int64
		wantErr   bool
	}{
		{"default", "", 50 * 1000 * 1000, false},
		{"megabytes", "10MB", 10 * 1000 * 1000, false},
		{"kilobytes", "512KB", 512 * 1000, false},
		{"invalid", "lots", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.StorageConfig{MaxUploadSize: tt.size}
			err := cfg.Finalize()

			if tt.wantErr {
				if err == nil {
					t.Error("finalize = nil, want error")
				}
				return
			}

			if err != nil {
				t.Fatalf("finalize: %v", err)
			}
			if cfg.MaxUploadSizeBytes() != tt.wantBytes {
				t.Errorf("bytes = %d, want %d", cfg.MaxUploadSizeBytes(), tt.wantBytes)
			}
		})
	}
}

func TestCORSConfigDefaults(t *testing.T) {
	var cfg config.CORSConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if len(cfg.Origins) == 0 {
		t.Error("origins not defaulted")
	}
	if len(cfg.AllowedMethods) == 0 {
		t.Error("allowed methods not defaulted")
	}
	if cfg.MaxAge != 300 {
		t.Errorf("max age = %d, want 300", cfg.MaxAge)
	}
}

func TestCORSConfigEnvOrigins(t *testing.T) {
	t.Setenv(config.EnvCORSOrigins, "https://a.example.com, https://b.example.com")

	var cfg config.CORSConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if len(cfg.Origins) != 2 {
		t.Fatalf("origins = %v, want 2 entries", cfg.Origins)
	}
	if cfg.Origins[1] != "https://b.example.com" {
		t.Errorf("origins[1] = %q, want trimmed value", cfg.Origins[1])
	}
}
