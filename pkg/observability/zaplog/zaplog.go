// Package zaplog implements observability.Logger on top of go.uber.org/zap.
package zaplog

import (
	"context"
	"fmt"

	"github.com/JailtonJunior94/aop-logging/pkg/observability"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config defines logger configuration.
type Config struct {
	Level       observability.LogLevel
	Format      observability.LogFormat
	ServiceName string
	OutputPaths []string
}

// DefaultConfig returns a console logger at info level writing to stdout.
func DefaultConfig() Config {
	return Config{
		Level:       observability.LogLevelInfo,
		Format:      observability.LogFormatText,
		OutputPaths: []string{"stdout"},
	}
}

// Logger adapts a *zap.Logger to observability.Logger. Entries report the
// caller of the Logger method, not this package.
type Logger struct {
	base *zap.Logger
	zap  *zap.Logger
}

func wrap(base *zap.Logger) *Logger {
	return &Logger{base: base, zap: base.WithOptions(zap.AddCallerSkip(1))}
}

// New builds a zap logger from cfg.
func New(cfg Config) (*Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	outputs := cfg.OutputPaths
	if len(outputs) == 0 {
		outputs = []string{"stdout"}
	}

	zapCfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Encoding:          encoding(cfg.Format),
		EncoderConfig:     encoderConfig(cfg.Format),
		OutputPaths:       outputs,
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: true,
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("zaplog: build logger: %w", err)
	}

	if cfg.ServiceName != "" {
		logger = logger.With(zap.String("service", cfg.ServiceName))
	}

	return wrap(logger), nil
}

// NewFromZap wraps an existing zap logger.
func NewFromZap(logger *zap.Logger) *Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return wrap(logger)
}

// Zap exposes the underlying zap logger, without the adapter's caller skip,
// for libraries that accept one directly.
func (l *Logger) Zap() *zap.Logger {
	return l.base
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.zap.Sync()
}

func (l *Logger) Debug(ctx context.Context, msg string, fields ...observability.Field) {
	l.zap.Debug(msg, toZap(fields)...)
}

func (l *Logger) Info(ctx context.Context, msg string, fields ...observability.Field) {
	l.zap.Info(msg, toZap(fields)...)
}

func (l *Logger) Warn(ctx context.Context, msg string, fields ...observability.Field) {
	l.zap.Warn(msg, toZap(fields)...)
}

func (l *Logger) Error(ctx context.Context, msg string, fields ...observability.Field) {
	l.zap.Error(msg, toZap(fields)...)
}

// With creates a child logger with additional fields.
func (l *Logger) With(fields ...observability.Field) observability.Logger {
	zf := toZap(fields)
	return &Logger{base: l.base.With(zf...), zap: l.zap.With(zf...)}
}

func toZap(fields []observability.Field) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		if err, ok := f.Value.(error); ok {
			out = append(out, zap.NamedError(f.Key, err))
			continue
		}
		out = append(out, zap.Any(f.Key, f.Value))
	}
	return out
}

func parseLevel(level observability.LogLevel) (zapcore.Level, error) {
	if level == "" {
		return zapcore.InfoLevel, nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("%w: %q", observability.ErrInvalidLogLevel, level)
	}
	return l, nil
}

func encoding(format observability.LogFormat) string {
	if format == observability.LogFormatJSON {
		return "json"
	}
	return "console"
}

func encoderConfig(format observability.LogFormat) zapcore.EncoderConfig {
	if format == observability.LogFormatJSON {
		return zapcore.EncoderConfig{
			TimeKey:        "timestamp",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "message",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.MillisDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		}
	}

	return zapcore.EncoderConfig{
		TimeKey:        "T",
		LevelKey:       "L",
		NameKey:        "N",
		CallerKey:      "C",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "M",
		StacktraceKey:  "S",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}
