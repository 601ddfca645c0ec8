package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"ahp_profiler/config"
)

// Init configures the process-wide slog default from config. Level,
// format (text/json) and output (stdout/file/both) all come from the
// Log section. Before Init runs the wrappers fall through to slog's
// built-in default, so tests need no setup.
func Init(cfg *config.Config) error {
	filePath := cfg.Log.FilePath
	if filePath != "" {
		if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
			return err
		}
	}

	var level slog.Level
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var writer io.Writer
	switch strings.ToLower(cfg.Log.Output) {
	case "file":
		file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return err
		}
		writer = file
	case "both":
		file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return err
		}
		writer = io.MultiWriter(os.Stdout, file)
	default:
		writer = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.ToLower(cfg.Log.Format) == "json" {
		handler = slog.NewJSONHandler(writer, opts)
	} else {
		handler = slog.NewTextHandler(writer, opts)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}

// Debug logs at debug level.
func Debug(msg string, args ...any) {
	slog.Default().Debug(msg, args...)
}

// Info logs at info level.
func Info(msg string, args ...any) {
	slog.Default().Info(msg, args...)
}

// Warn logs at warn level.
func Warn(msg string, args ...any) {
	slog.Default().Warn(msg, args...)
}

// Error logs at error level.
func Error(msg string, args ...any) {
	slog.Default().Error(msg, args...)
}
