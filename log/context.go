package log

import (
	"context"

	logrus "github.com/sirupsen/logrus"
)

type ctxKey struct{}

// Fields is an alias so callers don't need to import logrus for field maps.
type Fields = logrus.Fields

// NewContext returns a copy of ctx whose entry carries fields in addition to any already attached.
func NewContext(ctx context.Context, fields Fields) context.Context {
	return context.WithValue(ctx, ctxKey{}, FromContext(ctx).WithFields(fields))
}

// FromContext returns the entry attached to ctx, or a bare entry on the standard logger.
// Entries write through the standard logger, so Setup governs their sinks and level.
func FromContext(ctx context.Context) *logrus.Entry {
	if ctx != nil {
		if entry, ok := ctx.Value(ctxKey{}).(*logrus.Entry); ok {
			return entry
		}
	}
	return logrus.NewEntry(logrus.StandardLogger())
}
