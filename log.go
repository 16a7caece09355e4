package bytepack

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(zap.NewNop())
}

// Logger returns the package logger. It discards everything unless SetLogger
// was called.
func Logger() *zap.Logger {
	return logger.Load()
}

// SetLogger routes package diagnostics to l. A nil l restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l.Named("bytepack"))
}
