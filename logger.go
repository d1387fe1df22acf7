package realip

import "context"

// Logger records security-significant events observed during resolution.
//
// Implementations must be safe for concurrent use; a single Resolver is
// typically shared across many goroutines. The context is the inbound
// request's context, so trace and span IDs flow through.
//
// The interface intentionally matches slog's WarnContext signature, so a
// *slog.Logger can be used directly without an adapter.
type Logger interface {
	WarnContext(ctx context.Context, msg string, args ...any)
}

// noopLogger is the default when no logger is configured.
type noopLogger struct{}

func (noopLogger) WarnContext(context.Context, string, ...any) {}
