// Package logger builds the slog loggers used by the dbnet command and,
// through sampling.WithLogger, by the inference engines.
//
// Two formats are supported: "text" (slog.TextHandler, the default) and
// "json" (slog.JSONHandler). Levels are debug, info, warn and error.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

var (
	// ErrUnknownLevel indicates a level name outside debug/info/warn/error.
	ErrUnknownLevel = errors.New("logger: unknown level")

	// ErrUnknownFormat indicates a format other than text or json.
	ErrUnknownFormat = errors.New("logger: unknown format")
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// ParseLevel maps a case-insensitive level name to a slog.Level.
// "warning" is accepted as an alias for warn.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}

// CheckFormat reports whether format names a supported handler.
func CheckFormat(format string) error {
	switch strings.ToLower(format) {
	case "", FormatText, FormatJSON:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// New returns a logger writing to w at the given level and format.
func New(level, format string, w io.Writer) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if err = CheckFormat(format); err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(format, FormatJSON) {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}

	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
