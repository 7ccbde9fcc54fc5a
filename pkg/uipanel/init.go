package uipanel

import (
	"io"
	"log/slog"
	"os"

	"github.com/BrandonKowalski/uipanel/pkg/uipanel/constants"
	"github.com/BrandonKowalski/uipanel/pkg/uipanel/internal"
)

// Options configures framework-wide logging.
type Options struct {
	LogPath   string    // Full path for log file including filename (creates parent directories)
	LogOutput io.Writer // Console destination, stdout if nil
	LogLevel  string    // Application logger level ("debug", "info", "warn", "error")
	Debug     bool      // Raise the internal logger to debug
}

// Configure sets up logging. Call it before creating controllers; a logger
// that has already been handed out keeps its destination.
// The internal logger is raised to debug in dev mode (ENVIRONMENT=DEV) or
// when UIPANEL_DEBUG is set.
func Configure(options Options) {
	if options.LogPath != "" {
		internal.SetLogPath(options.LogPath)
	}
	if options.LogOutput != nil {
		internal.SetLogOutput(options.LogOutput)
	}

	if options.Debug || constants.IsDevMode() || os.Getenv(constants.DebugEnvVar) != "" {
		internal.SetInternalLogLevel(slog.LevelDebug)
	} else {
		internal.SetInternalLogLevel(slog.LevelError)
	}

	if options.LogLevel != "" {
		internal.SetRawLogLevel(options.LogLevel)
	}
}

// Shutdown closes the log file, if one was opened.
func Shutdown() {
	internal.CloseLogger()
}

// SetLogPath sets the full path for the log file, including filename.
// Call before Configure to take effect.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}
