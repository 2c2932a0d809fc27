package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	levelVar   slog.LevelVar
	loggerMu   sync.RWMutex
	baseLogger *slog.Logger
)

func init() {
	levelVar.Set(slog.LevelInfo)
	baseLogger = newLogger(os.Stderr)
}

func newLogger(w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: &levelVar}))
}

// SetOutput redirects all logging to w.
func SetOutput(w io.Writer) {
	loggerMu.Lock()
	baseLogger = newLogger(w)
	loggerMu.Unlock()
}

// ParseLevel maps debug|info|warn|error to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

// SetLevel falls back to info for unknown names.
func SetLevel(level string) {
	l, _ := ParseLevel(level)
	levelVar.Set(l)
}

// L returns the process logger.
func L() *slog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return baseLogger
}

func With(args ...any) *slog.Logger {
	return L().With(args...)
}

func Debugf(format string, v ...any) {
	L().Debug(fmt.Sprintf(format, v...))
}

func Infof(format string, v ...any) {
	L().Info(fmt.Sprintf(format, v...))
}

func Warnf(format string, v ...any) {
	L().Warn(fmt.Sprintf(format, v...))
}

func Errorf(format string, v ...any) {
	L().Error(fmt.Sprintf(format, v...))
}
