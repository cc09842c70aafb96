package settingstore

import (
	"log/slog"
	"os"
)

// Logger is the leveled diagnostic sink used by a Store. Persistence
// failures are reported here and nowhere else; Save and Load never return
// them to the caller.
//
// *slog.Logger satisfies the interface directly.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// NopLogger returns a Logger that discards everything.
func NopLogger() Logger { return nopLogger{} }

// defaultLogger writes text-formatted records to stderr.
func defaultLogger() Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}
