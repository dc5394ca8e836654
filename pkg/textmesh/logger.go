package textmesh

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// loggerPtr holds the active logger. Stored atomically so SetLogger can race
// with generation on other goroutines.
var loggerPtr atomic.Pointer[zap.Logger]

func init() {
	loggerPtr.Store(zap.NewNop())
}

// SetLogger sets the logger used for glyph fallback warnings and debug
// traces. Pass nil to silence logging again (the default).
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger.
func Logger() *zap.Logger {
	return loggerPtr.Load()
}
