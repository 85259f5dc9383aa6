package oauth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/oauth2"

	"github.com/dmitrymomot/oauth-aircall/pkg/logger"
)

// Client drives the authorization code flow for a single provider.
// Provider-specific knowledge comes from the Adapter; token mechanics
// (exchange, bearer header, refresh) are delegated to golang.org/x/oauth2.
type Client struct {
	adapter    Adapter
	config     *oauth2.Config
	httpClient *http.Client
	logger     *slog.Logger
	scopes     []string
}

var _ Provider = (*Client)(nil)

// NewClient creates a client for the given adapter.
// Returns an error if the adapter is nil or ClientID or ClientSecret is empty.
// When cfg.Scopes is empty the adapter's default scopes are requested.
func NewClient(adapter Adapter, cfg ClientConfig, opts ...Option) (*Client, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}
	if cfg.ClientID == "" {
		return nil, ErrMissingClientID
	}
	if cfg.ClientSecret == "" {
		return nil, ErrMissingClientSecret
	}

	o := options{logger: logger.NewNope()}
	for _, opt := range opts {
		opt(&o)
	}

	scopes := append([]string(nil), cfg.Scopes...)
	if len(scopes) == 0 {
		scopes = adapter.DefaultScopes()
	}

	return &Client{
		adapter: adapter,
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     endpointFor(adapter),
		},
		httpClient: newValidatingClient(o.httpClient, adapter.ValidateResponse),
		logger:     o.logger,
		scopes:     scopes,
	}, nil
}

// NewAircallClient creates a client backed by AircallProvider.
func NewAircallClient(cfg AircallConfig, opts ...Option) (*Client, error) {
	return NewClient(
		NewAircallProvider(WithHost(cfg.Host)),
		ClientConfig{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
		},
		opts...,
	)
}

// Name returns the provider identifier.
func (c *Client) Name() string {
	return c.adapter.Name()
}

// Adapter returns the provider adapter the client was built with.
func (c *Client) Adapter() Adapter {
	return c.adapter
}

// AuthCodeURL generates the authorization URL.
// The scope parameter is omitted when no scopes are configured.
func (c *Client) AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string {
	if len(c.scopes) > 0 {
		scope := oauth2.SetAuthURLParam("scope", strings.Join(c.scopes, c.adapter.ScopeSeparator()))
		opts = append([]oauth2.AuthCodeOption{scope}, opts...)
	}
	return c.config.AuthCodeURL(state, opts...)
}

// Exchange trades an authorization code for tokens.
// A non-empty redirectURI overrides the configured one for this call.
func (c *Client) Exchange(ctx context.Context, code, redirectURI string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error) {
	cfg := *c.config
	if redirectURI != "" {
		cfg.RedirectURL = redirectURI
	}

	ctx = c.contextWithHTTPClient(ctx)
	token, err := cfg.Exchange(ctx, code, opts...)
	if err != nil {
		c.logRejected(ctx, "exchange", err)
		return nil, errors.Join(ErrExchangeFailed, fmt.Errorf("exchange code: %w", err))
	}
	return token, nil
}

// Refresh obtains a new token from a refresh token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	ctx = c.contextWithHTTPClient(ctx)
	token, err := c.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		c.logRejected(ctx, "refresh", err)
		return nil, errors.Join(ErrExchangeFailed, fmt.Errorf("refresh token: %w", err))
	}
	return token, nil
}

// TokenSource returns a source that refreshes token when it expires.
// Refresh responses are validated like any other provider response.
func (c *Client) TokenSource(ctx context.Context, token *oauth2.Token) oauth2.TokenSource {
	return c.config.TokenSource(c.contextWithHTTPClient(ctx), token)
}

// FetchResourceOwner retrieves the profile document and wraps it
// with the adapter.
func (c *Client) FetchResourceOwner(ctx context.Context, token *oauth2.Token) (ResourceOwner, error) {
	if token == nil {
		return nil, errors.Join(ErrFetchFailed, errors.New("nil token"))
	}

	ctx = c.contextWithHTTPClient(ctx)
	client := c.config.Client(ctx, token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.adapter.ProfileURL(token), nil)
	if err != nil {
		return nil, errors.Join(ErrFetchFailed, fmt.Errorf("build profile request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		c.logRejected(ctx, "profile", err)
		return nil, errors.Join(ErrFetchFailed, fmt.Errorf("fetch profile: %w", err))
	}
	if resp == nil {
		return nil, errors.Join(ErrNilResponse, fmt.Errorf("unexpected nil response from %s profile endpoint", c.adapter.Name()))
	}
	defer resp.Body.Close()

	if isFollowableRedirect(resp) {
		err := &UnexpectedStatusError{StatusCode: resp.StatusCode}
		c.logRejected(ctx, "profile", err)
		return nil, errors.Join(ErrFetchFailed, fmt.Errorf("fetch profile: %w", err))
	}

	var doc map[string]any
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Join(ErrDecodeFailed, fmt.Errorf("decode profile: %w", err))
	}
	if doc == nil {
		return nil, errors.Join(ErrDecodeFailed, errors.New("decode profile: document is not an object"))
	}

	return c.adapter.BuildResourceOwner(doc), nil
}

// FetchUserInfo retrieves the resource owner and normalizes it.
func (c *Client) FetchUserInfo(ctx context.Context, token *oauth2.Token) (*UserInfo, error) {
	owner, err := c.FetchResourceOwner(ctx, token)
	if err != nil {
		return nil, err
	}
	return owner.UserInfo(), nil
}

func (c *Client) contextWithHTTPClient(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

func (c *Client) logRejected(ctx context.Context, op string, err error) {
	var statusErr *UnexpectedStatusError
	if !errors.As(err, &statusErr) {
		return
	}
	c.logger.WarnContext(ctx, "provider rejected request",
		slog.String("provider", c.adapter.Name()),
		slog.String("op", op),
		slog.Int("status", statusErr.StatusCode),
		slog.Int("body_size", len(statusErr.Body)),
	)
}

// endpointFor prefers an adapter-provided endpoint (it may carry an auth style).
func endpointFor(adapter Adapter) oauth2.Endpoint {
	if e, ok := adapter.(interface{ Endpoint() oauth2.Endpoint }); ok {
		return e.Endpoint()
	}
	return oauth2.Endpoint{
		AuthURL:   adapter.AuthorizationURL(),
		TokenURL:  adapter.TokenURL(nil),
		AuthStyle: oauth2.AuthStyleInParams,
	}
}

// maxResponseBody caps how much of a provider response is buffered.
const maxResponseBody = 1 << 20 // 1MB

// validatingTransport runs provider responses through the adapter's
// validation hook before anything upstream gets to read them. Redirects
// pass through untouched so http.Client can follow them; the hop it lands
// on is validated.
type validatingTransport struct {
	base     http.RoundTripper
	validate func(statusCode int, body []byte) error
}

func newValidatingClient(base *http.Client, validate func(int, []byte) error) *http.Client {
	var hc http.Client
	if base != nil {
		hc = *base
	}
	rt := hc.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}
	hc.Transport = &validatingTransport{base: rt, validate: validate}
	return &hc
}

func (t *validatingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, ErrNilResponse
	}
	if isFollowableRedirect(resp) {
		return resp, nil
	}

	body, err := readBody(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, err
	}

	if err := t.validate(resp.StatusCode, body); err != nil {
		return nil, err
	}

	resp.Body = io.NopCloser(bytes.NewReader(body))
	resp.ContentLength = int64(len(body))
	return resp, nil
}

// isFollowableRedirect reports whether http.Client will follow resp.
func isFollowableRedirect(resp *http.Response) bool {
	switch resp.StatusCode {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return resp.Header.Get("Location") != ""
	}
	return false
}

func readBody(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, maxResponseBody+1))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if len(body) > maxResponseBody {
		return nil, ErrResponseTooLarge
	}
	return body, nil
}
