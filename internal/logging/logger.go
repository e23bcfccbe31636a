package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// contextKey is the type for context keys
type contextKey string

// RequestIDKey is the context key for request IDs
const RequestIDKey contextKey = "request_id"

// Logger wraps zerolog for application logging
type Logger struct {
	logger    zerolog.Logger
	errorFile io.Closer
}

// Config holds logging configuration
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, text
	Output io.Writer

	// ErrorFile, when set, receives a copy of every error-level record.
	ErrorFile string
}

// New creates a new logger with the given configuration
func New(cfg Config) (*Logger, error) {
	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if cfg.Format == "text" {
		// Pretty console output for development
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	l := &Logger{}
	if cfg.ErrorFile != "" {
		f, err := os.OpenFile(cfg.ErrorFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open error log: %w", err)
		}
		l.errorFile = f
		output = zerolog.MultiLevelWriter(output, MinLevelWriter{Writer: f, Min: zerolog.ErrorLevel})
	}

	l.logger = zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	return l, nil
}

// Zerolog exposes the underlying logger for injection into components.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.logger
}

// Close releases the error log file, if any.
func (l *Logger) Close() error {
	if l.errorFile == nil {
		return nil
	}
	return l.errorFile.Close()
}

// Info logs an info message
func (l *Logger) Info(msg string) {
	l.logger.Info().Msg(msg)
}

// Error logs an error message
func (l *Logger) Error(err error, msg string) {
	l.logger.Error().Err(err).Msg(msg)
}

// Fatal logs a fatal message and exits
func (l *Logger) Fatal(err error, msg string) {
	l.logger.Fatal().Err(err).Msg(msg)
}

// FromContext returns the request-scoped logger, or a disabled logger when none
// was attached.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// RequestID returns the request id stored by the request logging middleware.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// MinLevelWriter forwards only records at or above Min.
type MinLevelWriter struct {
	io.Writer
	Min zerolog.Level
}

// WriteLevel implements zerolog.LevelWriter.
func (w MinLevelWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < w.Min {
		return len(p), nil
	}
	return w.Writer.Write(p)
}
