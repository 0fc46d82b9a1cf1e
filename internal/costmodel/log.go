package costmodel

import (
	"io"
	"log/slog"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// SetLogger routes data-entry diagnostics (bad headers, wrong row width,
// unknown columns, duplicate rows) to log. A nil log silences them.
func SetLogger(log *slog.Logger) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger.Store(log)
}

func warn(msg string, args ...any) {
	logger.Load().Warn(msg, args...)
}
