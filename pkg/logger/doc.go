// Package logger builds log/slog loggers with context-based attribute
// injection and optional Sentry reporting.
//
// # Basic Usage
//
//	log := logger.New(requestIDExtractor)
//	log.InfoContext(ctx, "login started", slog.String("provider", "aircall"))
//	// {"level":"INFO","msg":"login started","provider":"aircall","request_id":"..."}
//
// A ContextExtractor pulls one attribute out of a context:
//
//	requestIDExtractor := func(ctx context.Context) (slog.Attr, bool) {
//		if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
//			return slog.String("request_id", id), true
//		}
//		return slog.Attr{}, false
//	}
//
// Extractors run on every log call. Returning false skips the attribute.
//
// # Sentry
//
//	log := logger.NewWithSentry(logger.Config{Level: slog.LevelInfo}, logger.SentryConfig{
//		DSN:         os.Getenv("SENTRY_DSN"),
//		Environment: "production",
//		MinLevel:    slog.LevelWarn,
//	})
//
// Errors become Sentry Issues; records at MinLevel and above are stored as
// Sentry logs. With an empty DSN the logger writes to stdout only, so the
// same code path works in development.
//
// # Libraries
//
// Packages that accept a logger default to NewNope so they stay silent
// unless the application opts in.
package logger
