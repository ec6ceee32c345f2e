package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

const defaultLogFile = "bm-popup.log"

var (
	mu   sync.Mutex
	file *os.File
)

func init() {
	// Nothing is written until Configure runs; the TUI owns stdout/stderr.
	zlog.Logger = zerolog.Nop()
}

// Configure points the global logger at path (JSON lines, timestamped) at the
// given level. Empty path falls back to the default file in the working
// directory. Directories are created automatically when missing.
func Configure(path, level string) error {
	if strings.TrimSpace(path) == "" {
		path = defaultLogFile
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	mu.Lock()
	if file != nil {
		file.Close()
	}
	file = f
	mu.Unlock()

	setOutput(f, ParseLevel(level))
	return nil
}

// ConfigureConsole sends human-readable output to w. Used by CLI subcommands.
func ConfigureConsole(w io.Writer, level string) {
	setOutput(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}, ParseLevel(level))
}

func setOutput(w io.Writer, level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(w).With().Timestamp().Logger()
	if level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}
	zlog.Logger = logger
}

// WithSession tags every subsequent entry with the popup session id.
func WithSession(id string) {
	zlog.Logger = zlog.Logger.With().Str("session", id).Logger()
}

// Close flushes and closes the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	zlog.Logger = zerolog.Nop()
	return err
}

// ParseLevel maps a config string to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Trace records a structured event at debug level.
func Trace(event string, fields map[string]interface{}) {
	zlog.Debug().Str("event", event).Fields(fields).Send()
}

// Info records a noteworthy event.
func Info(event string, fields map[string]interface{}) {
	zlog.Info().Str("event", event).Fields(fields).Send()
}

// Warn records a recoverable failure.
func Warn(event string, err error, fields map[string]interface{}) {
	zlog.Warn().Str("event", event).Err(err).Fields(fields).Send()
}

// Error writes an error entry.
func Error(err error) {
	if err == nil {
		return
	}
	zlog.Error().Err(err).Send()
}
