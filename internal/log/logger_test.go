package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/inkwell-shop/storefront/internal/config"
)

func TestNewLogger_FromConfig(t *testing.T) {
	for _, format := range []config.LogFormat{config.LogFormatPretty, config.LogFormatJSON} {
		cfg := config.NewAppConfigWithOptions(config.WithLogFormat(format))
		logger := NewLogger(cfg)
		if logger == nil || logger.Slog() == nil || logger.Handler() == nil {
			t.Fatalf("NewLogger(%s) returned an incomplete logger", format)
		}
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "warn")

	logger.Slog().Debug("debug message")
	logger.Slog().Info("info message")
	logger.Slog().Warn("warn message")
	logger.Slog().Error("error message")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %q", len(lines), buf.String())
	}
	for _, line := range lines {
		var data map[string]any
		if err := json.Unmarshal([]byte(line), &data); err != nil {
			t.Errorf("line is not JSON: %q", line)
		}
	}
}

func TestLogger_ContextIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "INFO").With("component", "checkout")

	ctx := WithRequestID(WithCorrelationID(context.Background(), "corr-1"), "req-1")
	logger.Slog().InfoContext(ctx, "order placed", "total", 49900)

	var data map[string]any
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if data["correlation_id"] != "corr-1" {
		t.Errorf("expected correlation_id, got %v", data["correlation_id"])
	}
	if data["request_id"] != "req-1" {
		t.Errorf("expected request_id, got %v", data["request_id"])
	}
	if data["component"] != "checkout" {
		t.Errorf("expected component attr, got %v", data["component"])
	}
}

func TestContextAccessors_Empty(t *testing.T) {
	ctx := context.Background()
	if CorrelationID(ctx) != "" || RequestID(ctx) != "" {
		t.Error("expected empty IDs on a bare context")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARNING": slog.LevelWarn,
		" error ": slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestConfigure_SetsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	l := Configure(config.NewAppConfig())
	if slog.Default().Handler() != l.Slog().Handler() {
		t.Error("expected Configure to install the logger as default")
	}
}
