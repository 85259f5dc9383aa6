package oauth

import (
	"net/http"
	"strings"

	"golang.org/x/oauth2"
)

const (
	// AircallProviderName is the identifier for Aircall OAuth provider.
	AircallProviderName = "aircall"

	// AircallScopeSeparator joins scopes in the authorization request.
	AircallScopeSeparator = " "

	// AircallDefaultHost is the API base used when no host is configured.
	AircallDefaultHost = "https://api.aircall.io/v1"

	aircallAuthURL    = "https://dashboard-v2.aircall.io/oauth/authorize"
	aircallTokenURL   = "https://api.aircall.io/v1/oauth/token"
	aircallProfileURL = "https://api.aircall.io/v1/integrations/me/"
)

// AircallDefaultScopes returns the default scopes for Aircall OAuth.
// The list is empty: it is the floor, not a recommendation, and
// integrations are expected to request the scopes they actually use.
func AircallDefaultScopes() []string {
	return []string{}
}

// AircallProvider implements Adapter for Aircall.
// All methods are pure; a value is safe for concurrent use.
type AircallProvider struct {
	host string
}

var _ Adapter = (*AircallProvider)(nil)

// NewAircallProvider creates the Aircall adapter.
func NewAircallProvider(opts ...ProviderOption) *AircallProvider {
	p := &AircallProvider{host: AircallDefaultHost}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider identifier.
func (p *AircallProvider) Name() string {
	return AircallProviderName
}

// AuthorizationURL returns the authorize endpoint.
func (p *AircallProvider) AuthorizationURL() string {
	return aircallAuthURL
}

// TokenURL returns the token endpoint. Aircall uses a single endpoint,
// so params are ignored.
func (p *AircallProvider) TokenURL(map[string]string) string {
	return aircallTokenURL
}

// ProfileURL returns the "who am I" endpoint. The token is not part of the URL.
func (p *AircallProvider) ProfileURL(*oauth2.Token) string {
	return aircallProfileURL
}

// DefaultScopes returns AircallDefaultScopes.
func (p *AircallProvider) DefaultScopes() []string {
	return AircallDefaultScopes()
}

// ScopeSeparator returns AircallScopeSeparator.
func (p *AircallProvider) ScopeSeparator() string {
	return AircallScopeSeparator
}

// NormalizedHost returns the configured API host without trailing slashes.
func (p *AircallProvider) NormalizedHost() string {
	return strings.TrimRight(p.host, "/")
}

// Endpoint describes the provider for golang.org/x/oauth2.
func (p *AircallProvider) Endpoint() oauth2.Endpoint {
	return oauth2.Endpoint{
		AuthURL:   p.AuthorizationURL(),
		TokenURL:  p.TokenURL(nil),
		AuthStyle: oauth2.AuthStyleInParams,
	}
}

// ValidateResponse rejects every status other than 200 OK.
//
// Aircall's error payloads were not documented well enough to tell rate
// limiting, auth failures and server errors apart, so the body is passed
// through untouched instead of being parsed.
func (p *AircallProvider) ValidateResponse(statusCode int, body []byte) error {
	if statusCode == http.StatusOK {
		return nil
	}
	return &UnexpectedStatusError{
		StatusCode: statusCode,
		Body:       append([]byte(nil), body...),
	}
}

// BuildResourceOwner wraps a decoded profile document.
func (p *AircallProvider) BuildResourceOwner(doc map[string]any) ResourceOwner {
	return NewAircallResourceOwner(doc)
}
