// Package logging configures the process-wide slog logger and holds the
// canonical field names used in log lines.
package logging

import (
	"io"
	"log/slog"
)

// Canonical log field names.
const (
	KeyPage       = "page"
	KeyPath       = "path"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Page is the source page file name.
func Page(name string) slog.Attr { return slog.String(KeyPage, name) }

// Path is a filesystem path.
func Path(p string) slog.Attr { return slog.String(KeyPath, p) }

// DurationMS is an elapsed time in milliseconds.
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }

// Error records err's message, or an empty string for nil.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

// New returns a text logger writing to w. Verbose enables debug output;
// otherwise only warnings and errors are logged.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Setup installs a logger built by New as the slog default.
func Setup(w io.Writer, verbose bool) *slog.Logger {
	logger := New(w, verbose)
	slog.SetDefault(logger)
	return logger
}
