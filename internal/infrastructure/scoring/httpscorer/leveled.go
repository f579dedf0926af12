package httpscorer

import "github.com/orris-inc/modgate/internal/shared/logger"

// leveledLogger adapts logger.Interface to retryablehttp.LeveledLogger.
type leveledLogger struct {
	inner logger.Interface
}

// Error is logged as a warning because the request may still succeed on retry.
func (l leveledLogger) Error(msg string, keysAndValues ...any) {
	l.inner.Warnw(msg, keysAndValues...)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...any) {
	l.inner.Warnw(msg, keysAndValues...)
}

func (l leveledLogger) Info(msg string, keysAndValues ...any) {
	l.inner.Debugw(msg, keysAndValues...)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...any) {
	l.inner.Debugw(msg, keysAndValues...)
}
