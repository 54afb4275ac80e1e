package logger

import (
	"context"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type implLogger struct {
	sugar *zap.SugaredLogger
	level zap.AtomicLevel
}

// New creates a Logger writing to stdout. format is "json" or "text".
func New(level, format string) Logger {
	return NewWithWriter(level, format, os.Stdout)
}

// NewWithWriter creates a Logger writing to w.
func NewWithWriter(level, format string, w io.Writer) Logger {
	atom := zap.NewAtomicLevelAt(parseLevel(level))

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if strings.ToLower(format) == "json" {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), atom)
	return &implLogger{
		sugar: zap.New(core).Sugar(),
		level: atom,
	}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return &implLogger{
		sugar: zap.NewNop().Sugar(),
		level: zap.NewAtomicLevelAt(zapcore.FatalLevel),
	}
}

func parseLevel(level string) zapcore.Level {
	levels := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	}

	lvl, ok := levels[strings.ToLower(level)]
	if !ok {
		return zapcore.InfoLevel
	}
	return lvl
}

func (l *implLogger) shouldLog(level string) bool {
	return l.level.Enabled(parseLevel(level))
}

func (l *implLogger) withContext(ctx context.Context) *zap.SugaredLogger {
	if id := RequestID(ctx); id != "" {
		return l.sugar.With("request_id", id)
	}
	return l.sugar
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.withContext(ctx).Debugf(msg, args...)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.withContext(ctx).Infof(msg, args...)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.withContext(ctx).Warnf(msg, args...)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.withContext(ctx).Errorf(msg, args...)
}

func (l *implLogger) With(keysAndValues ...interface{}) Logger {
	return &implLogger{
		sugar: l.sugar.With(keysAndValues...),
		level: l.level,
	}
}

func (l *implLogger) Sync() error {
	return l.sugar.Sync()
}
