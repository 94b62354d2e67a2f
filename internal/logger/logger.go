package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"
)

var (
	mu      sync.RWMutex
	level   = new(slog.LevelVar)
	handler slog.Handler
	base    *slog.Logger
)

func init() {
	SetOutput(os.Stdout)
}

// Init configures the process logger. Unknown levels fall back to info.
func Init(lvl string) {
	level.Set(parseLevel(lvl))
	SetOutput(os.Stdout)
	Info("logger initialized", map[string]any{"level": level.Level().String()})
}

// SetOutput redirects log lines, mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	base = slog.New(handler)
}

func parseLevel(lvl string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func Debug(msg string, fields map[string]any) {
	write(slog.LevelDebug, msg, fields)
}

func Info(msg string, fields map[string]any) {
	write(slog.LevelInfo, msg, fields)
}

func Warn(msg string, fields map[string]any) {
	write(slog.LevelWarn, msg, fields)
}

func Error(msg string, fields map[string]any) {
	write(slog.LevelError, msg, fields)
}

func Fatal(msg string, fields map[string]any) {
	write(slog.LevelError, msg, withField(fields, "fatal", true))
	os.Exit(1)
}

func write(lvl slog.Level, msg string, fields map[string]any) {
	mu.RLock()
	l := base
	mu.RUnlock()

	l.LogAttrs(context.Background(), lvl, msg, attrs(fields)...)
}

// attrs renders fields in key order so log lines are stable.
func attrs(fields map[string]any) []slog.Attr {
	if len(fields) == 0 {
		return nil
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		v := fields[k]
		if err, ok := v.(error); ok && err != nil {
			v = err.Error()
		}
		out = append(out, slog.Any(k, v))
	}
	return out
}

func withField(fields map[string]any, key string, value any) map[string]any {
	out := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out[key] = value
	return out
}
