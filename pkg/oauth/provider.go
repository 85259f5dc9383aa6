package oauth

import (
	"context"

	"golang.org/x/oauth2"
)

// UserInfo represents provider-agnostic user information
// retrieved from an OAuth provider's profile endpoint.
type UserInfo struct {
	ID    string // Provider's unique user identifier
	Email string
	Name  string
}

// Provider is the flow a login handler drives: authorization URL,
// code exchange and profile fetch. Client implements it.
type Provider interface {
	// Name returns the provider identifier (e.g., "aircall").
	Name() string

	// AuthCodeURL generates the authorization URL for the OAuth flow.
	AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string

	// Exchange trades an authorization code for tokens.
	Exchange(ctx context.Context, code, redirectURI string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error)

	// FetchUserInfo retrieves user information using the access token.
	FetchUserInfo(ctx context.Context, token *oauth2.Token) (*UserInfo, error)
}

// Adapter supplies everything provider-specific that the generic engine needs.
// Implementations must be immutable after construction and free of I/O.
type Adapter interface {
	// Name returns the provider identifier.
	Name() string

	// AuthorizationURL returns the browser-facing authorize endpoint.
	AuthorizationURL() string

	// TokenURL returns the token endpoint. Params are available to providers
	// whose token URL depends on them.
	TokenURL(params map[string]string) string

	// ProfileURL returns the endpoint describing the authenticated user.
	ProfileURL(token *oauth2.Token) string

	// DefaultScopes returns the scopes requested when the caller configures none.
	DefaultScopes() []string

	// ScopeSeparator joins scopes in the authorization request.
	ScopeSeparator() string

	// ValidateResponse is applied to every provider response before it is accepted.
	ValidateResponse(statusCode int, body []byte) error

	// BuildResourceOwner wraps a decoded profile document.
	BuildResourceOwner(doc map[string]any) ResourceOwner
}

// ResourceOwner is the authenticated user as described by the provider.
type ResourceOwner interface {
	// ID returns the provider's identifier for the user, if present.
	// Its type is whatever the provider sent.
	ID() (any, bool)

	// UserInfo normalizes the owner into provider-agnostic fields.
	UserInfo() *UserInfo

	// ToMap returns the raw profile document.
	ToMap() map[string]any
}
