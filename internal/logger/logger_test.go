package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Not parallel: the logger is process-wide.
func TestLevelsAndOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(nil)
		SetLevel("info")
	})

	SetLevel("warn")
	Infof("hidden %d", 1)
	Warnf("shown %d", 2)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown 2")

	SetLevel("debug")
	With("symbol", "EUR/USD").Debug("priced")
	assert.Contains(t, buf.String(), "symbol=EUR/USD")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err)
		} else {
			assert.NoError(t, err)
		}
		assert.Equal(t, tt.want, got)
	}
}
