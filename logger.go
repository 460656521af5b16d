package gwas

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that discards every record. Enabled reports
// false so callers skip formatting altogether.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Input handlers and the render loop log
// from different goroutines, so it is swapped atomically.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for gwas and its sub-packages.
// By default nothing is logged. Passing nil restores the silent default.
//
// Log levels used by gwas:
//   - [slog.LevelDebug]: per-frame diagnostics (uniform refresh, vertex counts)
//   - [slog.LevelInfo]: lifecycle events (coordinate system and dataset built)
//   - [slog.LevelWarn]: records dropped during ingestion
//
// Example:
//
//	gwas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Sub-packages (ingest, render, server)
// call this so the whole module shares one configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
