package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
	colorWhite  = "\033[37m"
)

type LogType string

const (
	TypeCommand LogType = "CMD"
	TypeDB      LogType = "DB"
	TypeSystem  LogType = "SYS"
	TypeEvent   LogType = "EVT"
	TypeError   LogType = "ERR"
)

// CustomHandler is a colored single-line slog handler. Records carrying a
// "type" attribute are tagged with it; gateway noise is dropped.
type CustomHandler struct {
	app    string
	level  slog.Leveler
	out    io.Writer
	mu     *sync.Mutex
	attrs  []slog.Attr
	groups []string
}

func NewHandler(app string, level slog.Leveler) *CustomHandler {
	return NewHandlerWithWriter(app, level, os.Stdout)
}

func NewHandlerWithWriter(app string, level slog.Leveler, out io.Writer) *CustomHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &CustomHandler{
		app:   app,
		level: level,
		out:   out,
		mu:    &sync.Mutex{},
	}
}

func (h *CustomHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *CustomHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

func (h *CustomHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)
	return &clone
}

func (h *CustomHandler) Handle(_ context.Context, r slog.Record) error {
	if shouldSkipLog(&r) {
		return nil
	}

	var levelColor, levelText string
	switch {
	case r.Level >= slog.LevelError:
		levelColor, levelText = colorRed, "ERROR"
	case r.Level >= slog.LevelWarn:
		levelColor, levelText = colorYellow, "WARN"
	case r.Level >= slog.LevelInfo:
		levelColor, levelText = colorGreen, "INFO"
	default:
		levelColor, levelText = colorPurple, "DEBUG"
	}

	logType := TypeSystem
	var status, name, userName, errDetails, errLocation string
	var extra strings.Builder

	visit := func(a slog.Attr) {
		switch a.Key {
		case "type":
			logType = parseLogType(a.Value.String())
		case "status":
			status = a.Value.String()
		case "name":
			name = a.Value.String()
		case "user_name":
			userName = a.Value.String()
		case "error":
			errDetails = fmt.Sprintf("%v", a.Value.Any())
		case "error_location":
			errLocation = a.Value.String()
		default:
			key := a.Key
			if len(h.groups) > 0 {
				key = strings.Join(h.groups, ".") + "." + key
			}
			fmt.Fprintf(&extra, " %s=%v", key, a.Value.Any())
		}
	}
	for _, a := range h.attrs {
		visit(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		visit(a)
		return true
	})

	message := r.Message
	if r.Level >= slog.LevelError {
		if errLocation == "" {
			errLocation = sourceLocation(r.PC)
		}
		if errLocation != "" {
			message = fmt.Sprintf("%s (%s)", message, errLocation)
		}
	}
	if errDetails != "" {
		message = fmt.Sprintf("%s: %s", message, errDetails)
	}
	if name != "" && userName != "" {
		message = fmt.Sprintf("%s [%s by %s]", message, name, userName)
	}
	if status != "" {
		message = fmt.Sprintf("%s [Status: %s]", message, status)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.out, "%s[%s] [%s] [%s%s%s] [%s] %s%s%s\n",
		colorWhite,
		h.app,
		r.Time.Format(time.TimeOnly),
		levelColor,
		levelText,
		colorWhite,
		logType,
		message,
		extra.String(),
		colorReset,
	)
	return err
}

func parseLogType(v string) LogType {
	switch v {
	case "cmd":
		return TypeCommand
	case "db":
		return TypeDB
	case "event":
		return TypeEvent
	case "error":
		return TypeError
	default:
		return TypeSystem
	}
}

func shouldSkipLog(r *slog.Record) bool {
	skippedMessages := []string{
		"locking buckets",
		"unlocking buckets",
		"gateway event",
		"cleaning up bucket",
		"cleaned up rate limit buckets",
		"binary message received",
		"received gateway message",
		"locking gateway rate limiter",
		"unlocking gateway rate limiter",
		"sending gateway command",
		"new request",
		"new response",
		"locking rest bucket",
		"unlocking rest bucket",
		"rate limit response headers",
		"sending heartbeat",
	}

	msg := strings.ToLower(r.Message)
	for _, skip := range skippedMessages {
		if strings.Contains(msg, skip) {
			return true
		}
	}
	return false
}

func sourceLocation(pc uintptr) string {
	if pc == 0 {
		return ""
	}
	frames := runtime.CallersFrames([]uintptr{pc})
	frame, _ := frames.Next()
	if frame.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
}
