package oauth

import (
	"log/slog"
	"net/http"
)

// Option configures a Client.
type Option func(*options)

type options struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// WithHTTPClient sets a custom HTTP client for OAuth requests.
// This is useful for testing with httptest servers or injecting
// custom transports (e.g., logging, retries).
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithLogger sets the logger used to report rejected provider responses.
// Nil keeps the default no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// ProviderOption configures an AircallProvider.
type ProviderOption func(*AircallProvider)

// WithHost overrides the API host reported by NormalizedHost.
// Empty values are ignored.
func WithHost(host string) ProviderOption {
	return func(p *AircallProvider) {
		if host != "" {
			p.host = host
		}
	}
}
