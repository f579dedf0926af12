package ratelimit

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/modgate/internal/shared/logger"
)

// nopLogger is a no-op logger for testing.
type nopLogger struct{}

func newNopLogger() logger.Interface { return &nopLogger{} }

func (l *nopLogger) Debug(msg string, args ...any)              {}
func (l *nopLogger) Info(msg string, args ...any)               {}
func (l *nopLogger) Warn(msg string, args ...any)               {}
func (l *nopLogger) Error(msg string, args ...any)              {}
func (l *nopLogger) Fatal(msg string, args ...any)              {}
func (l *nopLogger) With(args ...any) logger.Interface          { return l }
func (l *nopLogger) Named(name string) logger.Interface         { return l }
func (l *nopLogger) Debugw(msg string, keysAndValues ...any)    {}
func (l *nopLogger) Infow(msg string, keysAndValues ...any)     {}
func (l *nopLogger) Warnw(msg string, keysAndValues ...any)     {}
func (l *nopLogger) Errorw(msg string, keysAndValues ...any)    {}
func (l *nopLogger) Fatalw(msg string, keysAndValues ...any)    {}

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return mr, client
}
