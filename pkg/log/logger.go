// Package log provides structured logging for FeaGo transformers.
//
// Logging is built on the standard log/slog package with a JSON handler.
// Errors created by pkg/errors carry cockroachdb stack traces; the handler
// installed here extracts them into a dedicated attribute so that a single
// log call carries both the message and the trace.
package log

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/YuminosukeSato/feago/pkg/errors"
)

// SetupLogger installs the library's default slog JSON logger and routes
// transformer warnings through it.
func SetupLogger(loglevel string) {
	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     ToLogLevel(loglevel),
	}
	handler := slog.NewJSONHandler(os.Stdout, &ops)
	errFmtHandler := WrapByErrFmtHandler(handler)
	slog.SetDefault(slog.New(errFmtHandler))

	errors.SetWarningHandler(func(w error) {
		slog.Warn(w.Error(), ErrAttr(w))
	})
}

// ToLogLevel converts a level name to a slog.Level.
func ToLogLevel(level string) slog.Level {
	switch level {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		panic(fmt.Sprintf("invalid log level :%s", level))
	}
}

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}
