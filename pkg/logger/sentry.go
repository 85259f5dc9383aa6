package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig is read from SENTRY_* variables.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	// MinLevel is the lowest level shipped to Sentry Logs.
	// Error records are also raised as Sentry events regardless.
	MinLevel slog.Level `env:"SENTRY_MIN_LEVEL" envDefault:"WARN"`
}

// NewWithSentry logs to stdout, and also to Sentry when cfg.DSN is set.
// A failed sentry.Init is reported on stdout and the logger stays stdout-only.
func NewWithSentry(stdout Config, cfg SentryConfig, extractors ...ContextExtractor) *slog.Logger {
	stdoutHandler := newHandler(os.Stdout, stdout)

	if cfg.DSN == "" {
		return slog.New(NewLogHandlerDecorator(stdoutHandler, extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(stdoutHandler).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(NewLogHandlerDecorator(stdoutHandler, extractors...))
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   sentryLogLevels(cfg.MinLevel),
	}.NewSentryHandler(context.Background())

	return slog.New(NewLogHandlerDecorator(fanoutHandler{stdoutHandler, sentryHandler}, extractors...))
}

// sentryLogLevels returns Info, Warn and Error filtered by floor; never empty.
func sentryLogLevels(floor slog.Level) []slog.Level {
	var levels []slog.Level
	for _, l := range []slog.Level{slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if l >= floor {
			levels = append(levels, l)
		}
	}
	if len(levels) == 0 {
		levels = []slog.Level{slog.LevelError}
	}
	return levels
}
