package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

// ctxKey is the context key type for the attached logger.
type ctxKey struct{}

// WithLogger returns a context carrying logger. Pipeline stages and crawl
// workers receive their logger this way instead of through a parameter on
// every stage interface.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger attached to ctx, or the default logger
// when none is attached.
func FromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(ctxKey{}).(*log.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}
