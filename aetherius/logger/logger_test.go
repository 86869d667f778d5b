package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestCustomHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandlerWithWriter("Aetherius", slog.LevelDebug, &buf))

	log.Info("Command completed",
		slog.String("type", "cmd"),
		slog.String("name", "bless"),
		slog.String("user_name", "lyra"),
		slog.String("status", "success"),
		slog.String("guild_id", "42"))

	out := buf.String()
	for _, want := range []string{"[Aetherius]", "[CMD]", "[bless by lyra]", "[Status: success]", "guild_id=42"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestCustomHandler_ErrorDetails(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandlerWithWriter("Aetherius", slog.LevelDebug, &buf))

	log.Error("Query failed", slog.String("type", "db"), slog.Any("error", errors.New("boom")))

	out := buf.String()
	if !strings.Contains(out, "[DB]") || !strings.Contains(out, ": boom") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestCustomHandler_SkipsGatewayNoise(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandlerWithWriter("Aetherius", slog.LevelDebug, &buf))

	log.Debug("sending heartbeat")
	log.Debug("Locking Buckets for route")

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestCustomHandler_Level(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandlerWithWriter("Aetherius", slog.LevelWarn, &buf))

	log.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at warn level, got %q", buf.String())
	}
	log.Warn("shown")
	if !strings.Contains(buf.String(), "WARN") {
		t.Errorf("expected warn output, got %q", buf.String())
	}
}

func TestTypedHelpers(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(NewHandlerWithWriter("Aetherius", slog.LevelInfo, &buf)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	LogQuery("SELECT 1", time.Millisecond, nil)
	if buf.Len() != 0 {
		t.Errorf("successful queries log at debug, got %q", buf.String())
	}

	LogEvent("Quest completed", slog.String("user_id", "7"))
	if out := buf.String(); !strings.Contains(out, "[EVT]") || !strings.Contains(out, "user_id=7") {
		t.Errorf("unexpected event output %q", out)
	}

	buf.Reset()
	LogQuery("TRUNCATE users", time.Millisecond, errors.New("locked"))
	if out := buf.String(); !strings.Contains(out, "[DB]") || !strings.Contains(out, ": locked") {
		t.Errorf("unexpected query failure output %q", out)
	}
}
