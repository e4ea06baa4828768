package ports

import "context"

// Logger is the logging contract used across the core and adapters. Errorf
// takes the error explicitly so structured backends can attach error codes.
type Logger interface {
	Debugf(ctx context.Context, format string, args ...any)
	Infof(ctx context.Context, format string, args ...any)
	Warnf(ctx context.Context, format string, args ...any)
	Errorf(ctx context.Context, err error, format string, args ...any)
	WithFields(fields map[string]any) Logger
}
