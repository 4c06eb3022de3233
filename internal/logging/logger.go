// Package logging defines the structured logging interface used across the
// project and an slog-backed implementation of it.
package logging

import "context"

// Logger is a context-aware structured logger. Variadic args are alternating
// key/value pairs:
//
//	log.Info(ctx, "starting server", "address", addr)
type Logger interface {
	// Debug logs fine-grained diagnostic detail.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given pairs.
	With(args ...any) Logger
}
