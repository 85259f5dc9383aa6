package callback

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/dmitrymomot/oauth-aircall/pkg/cookie"
	"github.com/dmitrymomot/oauth-aircall/pkg/logger"
	"github.com/dmitrymomot/oauth-aircall/pkg/oauth"
)

const (
	defaultCookieName = "__aircall_oauth"
	defaultStateTTL   = 10 * time.Minute
)

// Provider is the part of oauth.Client the login flow needs.
type Provider interface {
	oauth.Provider
	FetchResourceOwner(ctx context.Context, token *oauth2.Token) (oauth.ResourceOwner, error)
}

// Handler serves the login redirect and the provider callback.
type Handler struct {
	provider     Provider
	state        *stateCookie
	logger       *slog.Logger
	secureCookie bool
}

// Option configures the Handler.
type Option func(*Handler)

// WithLogger sets the handler logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithSecureCookie sets the Secure flag on the flow cookie.
func WithSecureCookie(secure bool) Option {
	return func(h *Handler) {
		h.secureCookie = secure
	}
}

// WithStateTTL sets how long a started login stays valid.
func WithStateTTL(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.state.ttl = d
		}
	}
}

// WithCookieName overrides the flow cookie name.
func WithCookieName(name string) Option {
	return func(h *Handler) {
		if name != "" {
			h.state.name = name
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		if now != nil {
			h.state.now = now
		}
	}
}

// New creates the login handler. The secret encrypts the flow cookie and
// must be at least 32 bytes.
func New(provider Provider, secret string, opts ...Option) (*Handler, error) {
	h := &Handler{
		provider: provider,
		logger:   logger.NewNope(),
		state: &stateCookie{
			now:  time.Now,
			name: defaultCookieName,
			ttl:  defaultStateTTL,
		},
	}
	for _, opt := range opts {
		opt(h)
	}

	cookies, err := cookie.New(secret, cookie.WithSecure(h.secureCookie))
	if err != nil {
		return nil, err
	}
	h.state.cookies = cookies
	return h, nil
}

// Routes mounts GET /auth/{provider} and GET /auth/{provider}/callback.
func (h *Handler) Routes(r chi.Router) {
	base := "/auth/" + h.provider.Name()
	r.Get(base, h.login)
	r.Get(base+"/callback", h.callback)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	st := flowState{
		State:    uuid.NewString(),
		Verifier: oauth2.GenerateVerifier(),
	}
	if err := h.state.save(w, st); err != nil {
		h.logger.ErrorContext(r.Context(), "save oauth state", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}

	url := h.provider.AuthCodeURL(st.State, oauth2.S256ChallengeOption(st.Verifier))
	http.Redirect(w, r, url, http.StatusFound)
}

func (h *Handler) callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	log := h.logger.With(slog.String("provider", h.provider.Name()))

	st, err := h.state.load(r, q.Get("state"))
	if err != nil {
		log.WarnContext(ctx, "oauth state rejected", slog.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, "invalid_state", "")
		return
	}
	h.state.clear(w)

	if e := q.Get("error"); e != "" {
		log.WarnContext(ctx, "authorization denied", slog.String("error", e))
		writeError(w, http.StatusBadRequest, e, q.Get("error_description"))
		return
	}

	code := q.Get("code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing code")
		return
	}

	token, err := h.provider.Exchange(ctx, code, "", oauth2.VerifierOption(st.Verifier))
	if err != nil {
		h.providerFailure(ctx, w, log, "token exchange failed", err)
		return
	}

	owner, err := h.provider.FetchResourceOwner(ctx, token)
	if err != nil {
		h.providerFailure(ctx, w, log, "profile fetch failed", err)
		return
	}

	info := owner.UserInfo()
	id, _ := owner.ID()
	log.InfoContext(ctx, "oauth login completed", slog.String("user_id", info.ID))

	writeJSON(w, http.StatusOK, ownerResponse{
		Provider: h.provider.Name(),
		ID:       id,
		Name:     info.Name,
		Email:    info.Email,
		Raw:      owner.ToMap(),
	})
}

// providerFailure answers 502: the upstream provider, not the caller, failed.
func (h *Handler) providerFailure(ctx context.Context, w http.ResponseWriter, log *slog.Logger, msg string, err error) {
	var statusErr *oauth.UnexpectedStatusError
	if errors.As(err, &statusErr) {
		log.ErrorContext(ctx, msg, slog.Int("status", statusErr.StatusCode), slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadGateway, errorResponse{
			Error:          "provider_error",
			ProviderStatus: statusErr.StatusCode,
		})
		return
	}
	log.ErrorContext(ctx, msg, slog.String("error", err.Error()))
	writeError(w, http.StatusBadGateway, "provider_error", "")
}

type ownerResponse struct {
	ID       any            `json:"id,omitempty"`
	Raw      map[string]any `json:"raw"`
	Provider string         `json:"provider"`
	Name     string         `json:"name,omitempty"`
	Email    string         `json:"email,omitempty"`
}

type errorResponse struct {
	Error          string `json:"error"`
	Description    string `json:"error_description,omitempty"`
	ProviderStatus int    `json:"provider_status,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, description string) {
	writeJSON(w, status, errorResponse{Error: code, Description: description})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
