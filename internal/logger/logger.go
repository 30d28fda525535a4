package logger

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

var (
	mu   sync.RWMutex
	base *zap.SugaredLogger = zap.NewNop().Sugar()
)

// Init installs the process logger. Production uses JSON output at info level,
// anything else a colored console encoder at debug level.
func Init(env string) error {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	Set(l.Sugar())
	return nil
}

// Set replaces the process logger. Tests use it with zaptest or a nop logger.
func Set(l *zap.SugaredLogger) {
	mu.Lock()
	defer mu.Unlock()
	base = l
}

// Sync flushes buffered entries.
func Sync() {
	_ = get().Sync()
}

// With returns a context whose log lines carry the given key/value pairs.
func With(ctx context.Context, keysAndValues ...interface{}) context.Context {
	return context.WithValue(ctx, ctxKey{}, fromContext(ctx).With(keysAndValues...))
}

func get() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

func fromContext(ctx context.Context) *zap.SugaredLogger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger); ok {
			return l
		}
	}
	return get()
}

func Debugf(ctx context.Context, format string, args ...interface{}) {
	fromContext(ctx).Debugf(format, args...)
}

func Infof(ctx context.Context, format string, args ...interface{}) {
	fromContext(ctx).Infof(format, args...)
}

func Warnf(ctx context.Context, format string, args ...interface{}) {
	fromContext(ctx).Warnf(format, args...)
}

func Errorf(ctx context.Context, format string, args ...interface{}) {
	fromContext(ctx).Errorf(format, args...)
}

func Error(ctx context.Context, msg string) {
	fromContext(ctx).Error(msg)
}

// Fatal logs err and exits. A nil error is ignored.
func Fatal(ctx context.Context, err error) {
	if err == nil {
		return
	}
	fromContext(ctx).Fatal(err.Error())
}
