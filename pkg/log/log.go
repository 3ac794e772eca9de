// Package log builds the slog handler used across the module on top of
// charmbracelet/log.
package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

type Format string

const (
	FormatText   Format = "text"
	FormatJSON   Format = "json"
	FormatLogfmt Format = "logfmt"

	EnvLevel  = "SCHEMAFORM_LOG_LEVEL"
	EnvFormat = "SCHEMAFORM_LOG_FORMAT"
)

var (
	ErrInvalidLevel  = errors.New("invalid log level")
	ErrInvalidFormat = errors.New("invalid log format")
)

// Formats lists the accepted format names.
func Formats() []string {
	return []string{string(FormatText), string(FormatJSON), string(FormatLogfmt)}
}

// CreateHandler returns a [slog.Handler] writing to w.
func CreateHandler(w io.Writer, level slog.Level, format Format) slog.Handler {
	opts := charmlog.Options{
		Level:           charmlog.Level(level),
		ReportTimestamp: true,
		Formatter:       charmlog.TextFormatter,
	}
	switch format {
	case FormatJSON:
		opts.Formatter = charmlog.JSONFormatter
	case FormatLogfmt:
		opts.Formatter = charmlog.LogfmtFormatter
	}
	return charmlog.NewWithOptions(w, opts)
}

// CreateHandlerWithStrings parses level and format before calling
// CreateHandler.
func CreateHandlerWithStrings(w io.Writer, level, format string) (slog.Handler, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return CreateHandler(w, lvl, f), nil
}

// NewFromEnv builds a logger from SCHEMAFORM_LOG_LEVEL and
// SCHEMAFORM_LOG_FORMAT, falling back to info/text on bad values.
func NewFromEnv() *slog.Logger {
	h, err := CreateHandlerWithStrings(os.Stderr, os.Getenv(EnvLevel), os.Getenv(EnvFormat))
	if err != nil {
		h = CreateHandler(os.Stderr, slog.LevelInfo, FormatText)
	}
	return slog.New(h)
}

// ParseLevel maps a level name onto a slog level. Empty means info.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "error", "fatal", "panic":
		return slog.LevelError, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "debug", "trace":
		return slog.LevelDebug, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLevel, level)
	}
}

// ParseFormat validates a format name. Empty means text.
func ParseFormat(format string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(format))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatLogfmt:
		return f, nil
	default:
		return FormatText, fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}
}
