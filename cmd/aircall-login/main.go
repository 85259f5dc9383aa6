// Command aircall-login runs a minimal "Sign in with Aircall" service:
// GET /auth/aircall starts the flow and the callback prints the resource owner.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/getsentry/sentry-go"

	"github.com/dmitrymomot/oauth-aircall/internal/callback"
	"github.com/dmitrymomot/oauth-aircall/internal/server"
	"github.com/dmitrymomot/oauth-aircall/pkg/logger"
	"github.com/dmitrymomot/oauth-aircall/pkg/oauth"
)

type config struct {
	Server       server.Config
	Log          logger.Config
	Sentry       logger.SentryConfig
	Aircall      oauth.AircallConfig
	CookieSecret string `env:"COOKIE_SECRET,required"`
	CookieSecure bool   `env:"COOKIE_SECURE" envDefault:"true"`
}

func main() {
	cfg, err := env.ParseAs[config]()
	if err != nil {
		logger.New().Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.NewWithSentry(cfg.Log, cfg.Sentry, callback.RequestIDExtractor())

	if err := run(cfg, log); err != nil {
		log.Error("application error", slog.String("error", err.Error()))
		sentry.Flush(2 * time.Second)
		os.Exit(1)
	}
}

func run(cfg config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := oauth.NewAircallClient(cfg.Aircall, oauth.WithLogger(log))
	if err != nil {
		return err
	}

	h, err := callback.New(client, cfg.CookieSecret,
		callback.WithLogger(log),
		callback.WithSecureCookie(cfg.CookieSecure),
	)
	if err != nil {
		return err
	}

	return server.Run(ctx, cfg.Server, callback.NewRouter(h, log), log,
		func(context.Context) error {
			sentry.Flush(2 * time.Second)
			return nil
		},
	)
}
