package logger

import "context"

// Logger is the printf-style logger shared by every package.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...interface{})
	Info(ctx context.Context, msg string, args ...interface{})
	Warn(ctx context.Context, msg string, args ...interface{})
	Error(ctx context.Context, msg string, args ...interface{})
	// With returns a child logger carrying the given key/value pairs.
	With(keysAndValues ...interface{}) Logger
	Sync() error
}

type ctxKey struct{}

// WithRequestID stores a request ID that loggers attach to every entry
// written with the returned context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestID returns the request ID stored by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
