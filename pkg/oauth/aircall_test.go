package oauth_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/dmitrymomot/oauth-aircall/pkg/oauth"
)

var _ oauth.Adapter = (*oauth.AircallProvider)(nil)

const (
	wantAuthURL    = "https://dashboard-v2.aircall.io/oauth/authorize"
	wantTokenURL   = "https://api.aircall.io/v1/oauth/token"
	wantProfileURL = "https://api.aircall.io/v1/integrations/me/"
)

func TestAircallProvider_URLs(t *testing.T) {
	t.Parallel()

	p := oauth.NewAircallProvider()

	t.Run("authorization", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, wantAuthURL, p.AuthorizationURL())
	})

	t.Run("token ignores params", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, wantTokenURL, p.TokenURL(nil))
		require.Equal(t, wantTokenURL, p.TokenURL(map[string]string{}))
		require.Equal(t, wantTokenURL, p.TokenURL(map[string]string{
			"grant_type": "authorization_code",
			"code":       "abc",
			"region":     "eu",
		}))
	})

	t.Run("profile ignores token", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, wantProfileURL, p.ProfileURL(nil))
		require.Equal(t, wantProfileURL, p.ProfileURL(&oauth2.Token{}))
		require.Equal(t, wantProfileURL, p.ProfileURL(&oauth2.Token{AccessToken: "secret", TokenType: "Bearer"}))
	})

	t.Run("custom host does not move endpoints", func(t *testing.T) {
		t.Parallel()
		custom := oauth.NewAircallProvider(oauth.WithHost("https://sandbox.example.com/v1/"))
		require.Equal(t, wantAuthURL, custom.AuthorizationURL())
		require.Equal(t, wantTokenURL, custom.TokenURL(nil))
		require.Equal(t, wantProfileURL, custom.ProfileURL(nil))
	})

	t.Run("endpoint", func(t *testing.T) {
		t.Parallel()
		e := p.Endpoint()
		require.Equal(t, wantAuthURL, e.AuthURL)
		require.Equal(t, wantTokenURL, e.TokenURL)
		require.Equal(t, oauth2.AuthStyleInParams, e.AuthStyle)
	})
}

func TestAircallProvider_Name(t *testing.T) {
	t.Parallel()
	require.Equal(t, "aircall", oauth.NewAircallProvider().Name())
}

func TestAircallProvider_Scopes(t *testing.T) {
	t.Parallel()

	p := oauth.NewAircallProvider()
	require.Equal(t, " ", p.ScopeSeparator())

	scopes := p.DefaultScopes()
	require.NotNil(t, scopes)
	require.Empty(t, scopes)

	// returned slices are independent
	scopes = append(scopes, "public_api")
	require.Len(t, scopes, 1)
	require.Empty(t, p.DefaultScopes())
	require.Empty(t, oauth.AircallDefaultScopes())
}

func TestAircallProvider_NormalizedHost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		host string
		want string
	}{
		{name: "default", host: "", want: "https://api.aircall.io/v1"},
		{name: "trailing slash", host: "https://api.aircall.io/v1/", want: "https://api.aircall.io/v1"},
		{name: "no trailing slash", host: "https://api.aircall.io/v1", want: "https://api.aircall.io/v1"},
		{name: "several trailing slashes", host: "https://api.aircall.io/v1///", want: "https://api.aircall.io/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := oauth.NewAircallProvider(oauth.WithHost(tt.host))
			require.Equal(t, tt.want, p.NormalizedHost())
		})
	}
}

func TestAircallProvider_ValidateResponse(t *testing.T) {
	t.Parallel()

	p := oauth.NewAircallProvider()

	t.Run("200 passes for any body", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, p.ValidateResponse(200, nil))
		require.NoError(t, p.ValidateResponse(200, []byte(`{"error":"looks bad"}`)))
		require.NoError(t, p.ValidateResponse(200, []byte("not json")))
	})

	for _, status := range []int{201, 204, 301, 400, 401, 403, 404, 429, 500, 503} {
		t.Run("rejects "+strconv.Itoa(status), func(t *testing.T) {
			t.Parallel()
			body := []byte(`{"error":"x"}`)

			err := p.ValidateResponse(status, body)
			require.Error(t, err)
			require.ErrorIs(t, err, oauth.ErrUnexpectedStatus)

			var statusErr *oauth.UnexpectedStatusError
			require.True(t, errors.As(err, &statusErr))
			require.Equal(t, status, statusErr.StatusCode)
			require.Equal(t, body, statusErr.Body)
		})
	}

	t.Run("body is copied", func(t *testing.T) {
		t.Parallel()
		body := []byte("boom")
		err := p.ValidateResponse(500, body)
		body[0] = 'X'

		var statusErr *oauth.UnexpectedStatusError
		require.ErrorAs(t, err, &statusErr)
		require.Equal(t, []byte("boom"), statusErr.Body)
	})

	t.Run("message names status and body", func(t *testing.T) {
		t.Parallel()
		err := p.ValidateResponse(401, []byte("unauthorized"))
		require.EqualError(t, err, "oauth: unexpected response code: status=401 body=unauthorized")
	})
}

func TestAircallProvider_BuildResourceOwner(t *testing.T) {
	t.Parallel()

	p := oauth.NewAircallProvider()

	t.Run("wraps document", func(t *testing.T) {
		t.Parallel()
		owner := p.BuildResourceOwner(map[string]any{
			"integration": map[string]any{"user": map[string]any{"id": 42}},
		})
		id, ok := owner.ID()
		require.True(t, ok)
		require.Equal(t, 42, id)
		require.IsType(t, &oauth.AircallResourceOwner{}, owner)
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()
		owner := p.BuildResourceOwner(map[string]any{})
		_, ok := owner.ID()
		require.False(t, ok)
		require.Equal(t, map[string]any{}, owner.ToMap())
	})
}
