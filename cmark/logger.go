package cmark

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the engine's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the engine's logger.
// This must be called before any engine operations.
func SetLogger(l *zap.Logger) {
	logger = l
}

func zapNode(p NodePtr) zap.Field {
	return zap.Uint64("node", uint64(p))
}

func zapIter(it IterPtr) zap.Field {
	return zap.Uint64("iter", uint64(it))
}
