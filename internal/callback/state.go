package callback

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrymomot/oauth-aircall/pkg/cookie"
)

var (
	// ErrBadSecret is returned when the cookie secret is shorter than 32 bytes.
	ErrBadSecret = cookie.ErrBadSecret

	// ErrStateNotFound is returned when the callback arrives without a flow cookie.
	ErrStateNotFound = errors.New("callback: state cookie not found")

	// ErrStateInvalid is returned when the flow cookie is tampered, expired
	// or does not match the state echoed by the provider.
	ErrStateInvalid = errors.New("callback: invalid state")
)

// flowState is what survives between the redirect to the provider and the callback.
type flowState struct {
	State     string `json:"s"`
	Verifier  string `json:"v"`
	ExpiresAt int64  `json:"e"`
}

// stateCookie keeps flowState in an encrypted cookie; the PKCE verifier
// must not be readable by the browser.
type stateCookie struct {
	cookies *cookie.Manager
	now     func() time.Time
	name    string
	ttl     time.Duration
}

func (c *stateCookie) save(w http.ResponseWriter, st flowState) error {
	st.ExpiresAt = c.now().Add(c.ttl).Unix()
	return c.cookies.SetEncrypted(w, c.name, st, int(c.ttl.Seconds()))
}

// load opens the cookie and checks it against the state from the query string.
func (c *stateCookie) load(r *http.Request, state string) (flowState, error) {
	var st flowState
	if err := c.cookies.GetEncrypted(r, c.name, &st); err != nil {
		if errors.Is(err, cookie.ErrNotFound) {
			return flowState{}, ErrStateNotFound
		}
		return flowState{}, ErrStateInvalid
	}

	if c.now().Unix() > st.ExpiresAt {
		return flowState{}, ErrStateInvalid
	}
	if state == "" || subtle.ConstantTimeCompare([]byte(st.State), []byte(state)) != 1 {
		return flowState{}, ErrStateInvalid
	}
	return st, nil
}

func (c *stateCookie) clear(w http.ResponseWriter) {
	c.cookies.Delete(w, c.name)
}
