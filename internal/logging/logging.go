// Package logging builds the structured logger of a countyq run.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

// RunIDKey is the attribute carrying the id of one CLI invocation.
const RunIDKey = "run_id"

// Config holds the logger configuration
type Config struct {
	Level  slog.Level
	Format string    // "text" or "json"
	Writer io.Writer // defaults to os.Stderr
	RunID  string    // generated when empty
}

// DefaultConfig returns the default logger configuration
func DefaultConfig() Config {
	return Config{
		Level:  slog.LevelWarn,
		Format: "text",
		Writer: os.Stderr,
	}
}

// ParseLevel converts a level name to a slog.Level. Names are
// case-insensitive; the empty string means warn.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

// NewRunID returns a fresh run id.
func NewRunID() string {
	return uuid.NewString()
}

// New creates a logger with the given configuration. Every record carries the
// run id.
func New(config Config) *slog.Logger {
	w := config.Writer
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: config.Level}

	var handler slog.Handler
	switch config.Format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	runID := config.RunID
	if runID == "" {
		runID = NewRunID()
	}
	return slog.New(handler).With(slog.String(RunIDKey, runID))
}
