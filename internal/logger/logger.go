package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Log is disabled until Init runs so packages can log unconditionally,
// tests included.
var Log = zerolog.Nop()

// Init opens the log file under the user config directory. The terminal
// belongs to the TUI, so nothing is written to stdout or stderr.
func Init(level string) (io.Closer, error) {
	logPath := filepath.Join(os.TempDir(), "popcorn.log")
	configDir, err := os.UserConfigDir()
	if err == nil {
		dir := filepath.Join(configDir, "popcorn")
		if err := os.MkdirAll(dir, 0755); err == nil {
			logPath = filepath.Join(dir, "popcorn.log")
		}
	}

	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return nil, fmt.Errorf("could not open log file: %w", err)
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	Log = zerolog.New(file).Level(lvl).With().Timestamp().Str("app", "popcorn").Logger()
	Log.Info().Str("path", logPath).Msg("Logger initialized")
	return file, nil
}

// WithRequestID attaches a child of Log tagged with the request's
// correlation id to ctx.
func WithRequestID(ctx context.Context, op, id string) context.Context {
	l := Log.With().Str("op", op).Str("request_id", id).Logger()
	return l.WithContext(ctx)
}

// FromContext returns the logger attached by WithRequestID, or Log.
func FromContext(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &Log
}
