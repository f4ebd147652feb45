package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap with a flat key-value API so call sites do not
// depend on zap field constructors.
type Logger struct {
	zap *zap.Logger
}

type Config struct {
	Level       string
	Format      string // "json" or "console"
	ServiceName string
}

func New(cfg Config) *Logger {
	var zc zap.Config
	if cfg.Format == "console" {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zc.OutputPaths = []string{"stdout"}
	zc.DisableStacktrace = true

	if level, err := zapcore.ParseLevel(cfg.Level); err == nil {
		zc.Level = zap.NewAtomicLevelAt(level)
	}

	zapLogger, err := zc.Build(zap.AddCallerSkip(1))
	if err != nil {
		zapLogger = zap.NewNop()
	}

	if cfg.ServiceName != "" {
		zapLogger = zapLogger.With(zap.String("service", cfg.ServiceName))
	}

	return &Logger{zap: zapLogger}
}

// Default is the production setup: JSON to stdout at info level.
func Default(serviceName string) *Logger {
	return New(Config{
		Level:       "info",
		Format:      "json",
		ServiceName: serviceName,
	})
}

// Development logs colored console output at debug level.
func Development(serviceName string) *Logger {
	return New(Config{
		Level:       "debug",
		Format:      "console",
		ServiceName: serviceName,
	})
}

func (l *Logger) Debug(msg string, fields ...interface{}) {
	l.zap.Debug(msg, kvFields(fields)...)
}

func (l *Logger) Info(msg string, fields ...interface{}) {
	l.zap.Info(msg, kvFields(fields)...)
}

func (l *Logger) Warn(msg string, fields ...interface{}) {
	l.zap.Warn(msg, kvFields(fields)...)
}

func (l *Logger) Error(msg string, fields ...interface{}) {
	l.zap.Error(msg, kvFields(fields)...)
}

func (l *Logger) Fatal(msg string, fields ...interface{}) {
	l.zap.Fatal(msg, kvFields(fields)...)
}

func (l *Logger) With(fields ...interface{}) *Logger {
	return &Logger{zap: l.zap.With(kvFields(fields)...)}
}

// kvFields pairs up alternating keys and values. A non-string key is
// stringified, a dangling value is dropped.
func kvFields(kv []interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kv[i])
		}
		fields = append(fields, zap.Any(key, kv[i+1]))
	}
	return fields
}
