package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/hmercer/marginalia/pkg/logging"
)

func TestNewTextHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&logging.Config{Level: logging.LevelInfo, Format: logging.FormatText}, &buf)

	logger.Debug("hidden")
	logger.Info("request served", "status", 200)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug record written below the info floor")
	}
	if !strings.Contains(out, "request served") || !strings.Contains(out, "status=200") {
		t.Errorf("output = %q, want text record with attrs", out)
	}
}

func TestNewJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&logging.Config{Level: logging.LevelWarn, Format: logging.FormatJSON}, &buf)

	logger.Info("hidden")
	logger.Warn("disk almost full", "pct", 93)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode record: %v (output %q)", err, buf.String())
	}
	if record["msg"] != "disk almost full" {
		t.Errorf("msg = %v, want disk almost full", record["msg"])
	}
	if record["level"] != "WARN" {
		t.Errorf("level = %v, want WARN", record["level"])
	}
	if record["pct"] != float64(93) {
		t.Errorf("pct = %v, want 93", record["pct"])
	}
}

func TestLevelValidate(t *testing.T) {
	tests := []struct {
		name    string
		level   logging.Level
		wantErr bool
	}{
		{"debug", logging.LevelDebug, false},
		{"info", logging.LevelInfo, false},
		{"warn", logging.LevelWarn, false},
		{"error", logging.LevelError, false},
		{"invalid", logging.Level("verbose"), true},
		{"empty", logging.Level(""), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.level.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}

func TestLevelToSlogLevel(t *testing.T) {
	tests := []struct {
		name  string
		level logging.Level
		want  slog.Level
	}{
		{"debug", logging.LevelDebug, slog.LevelDebug},
		{"info", logging.LevelInfo, slog.LevelInfo},
		{"warn", logging.LevelWarn, slog.LevelWarn},
		{"error", logging.LevelError, slog.LevelError},
		{"unknown defaults to info", logging.Level("verbose"), slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.level.ToSlogLevel(); got != tt.want {
				t.Errorf("ToSlogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatValidate(t *testing.T) {
	if err := logging.FormatText.Validate(); err != nil {
		t.Errorf("text: %v", err)
	}
	if err := logging.FormatJSON.Validate(); err != nil {
		t.Errorf("json: %v", err)
	}
	if err := logging.Format("xml").Validate(); err == nil {
		t.Error("xml: expected error")
	}
}

func TestConfigFinalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var cfg logging.Config
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if cfg.Level != logging.LevelInfo {
			t.Errorf("level = %q, want info", cfg.Level)
		}
		if cfg.Format != logging.FormatText {
			t.Errorf("format = %q, want text", cfg.Format)
		}
	})

	t.Run("env override", func(t *testing.T) {
		t.Setenv("TEST_LOG_LEVEL", "debug")
		t.Setenv("TEST_LOG_FORMAT", "json")

		var cfg logging.Config
		err := cfg.Finalize(&logging.Env{Level: "TEST_LOG_LEVEL", Format: "TEST_LOG_FORMAT"})
		if err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if cfg.Level != logging.LevelDebug {
			t.Errorf("level = %q, want debug", cfg.Level)
		}
		if cfg.Format != logging.FormatJSON {
			t.Errorf("format = %q, want json", cfg.Format)
		}
	})

	t.Run("invalid level rejected", func(t *testing.T) {
		cfg := logging.Config{Level: "verbose"}
		if err := cfg.Finalize(nil); err == nil {
			t.Error("finalize = nil, want error")
		}
	})
}

func TestMerge(t *testing.T) {
	base := logging.Config{Level: logging.LevelInfo, Format: logging.FormatText}
	base.Merge(&logging.Config{Level: logging.LevelDebug})

	if base.Level != logging.LevelDebug {
		t.Errorf("level = %q, want debug", base.Level)
	}
	if base.Format != logging.FormatText {
		t.Errorf("format = %q, want preserved text", base.Format)
	}
}
