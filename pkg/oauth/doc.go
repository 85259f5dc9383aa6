// Package oauth integrates Aircall as an OAuth2 authorization code provider.
//
// The package is split in two layers. AircallProvider is a pure adapter: it
// knows Aircall's endpoints, its scope conventions, how to judge a response and
// how to read the "integrations/me" profile document. Client is the engine
// binding: it plugs any Adapter into golang.org/x/oauth2, which does the
// actual code exchange, bearer header handling and token refresh.
//
// # Usage
//
//	client, err := oauth.NewAircallClient(oauth.AircallConfig{
//		ClientID:     os.Getenv("AIRCALL_OAUTH_CLIENT_ID"),
//		ClientSecret: os.Getenv("AIRCALL_OAUTH_CLIENT_SECRET"),
//		RedirectURL:  "https://example.com/auth/aircall/callback",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Generate authorization URL
//	url := client.AuthCodeURL("random-state-string")
//
//	// Exchange code for token (in callback handler)
//	token, err := client.Exchange(ctx, code, "")
//	if err != nil {
//		// handle error
//	}
//
//	// Fetch the resource owner
//	owner, err := client.FetchResourceOwner(ctx, token)
//	if err != nil {
//		// handle error
//	}
//	id, ok := owner.ID()
//
// # Scopes
//
// Aircall's default scope list is empty. Request what the integration needs
// through AircallConfig.Scopes; they are joined with a single space and the
// scope parameter is left out entirely when the list is empty.
//
// # Profile Fields
//
// AircallResourceOwner reads integration.user.id, integration.user.name and
// integration.user.email with LookupPath. A missing field at any level is
// reported as absent, never as an error. ToMap returns the whole document.
//
// # Error Handling
//
// Every provider response (token exchange, refresh, profile) must be 200 OK.
// Anything else is reported as *UnexpectedStatusError with the status code and
// the raw body; the body is not parsed. Use errors.As to inspect it:
//
//	var statusErr *oauth.UnexpectedStatusError
//	if errors.As(err, &statusErr) {
//		log.Printf("aircall answered %d: %s", statusErr.StatusCode, statusErr.Body)
//	}
//
// Sentinel errors, checkable with errors.Is:
//
//   - ErrMissingClientID, ErrMissingClientSecret, ErrNilAdapter: bad constructor input
//   - ErrExchangeFailed: code or refresh token exchange failed
//   - ErrFetchFailed: profile request failed
//   - ErrNilResponse: transport returned no response
//   - ErrDecodeFailed: profile body is not a JSON object
//   - ErrUnexpectedStatus: provider answered with a non-200 status
//
// # Testing
//
// Use WithHTTPClient to route provider hosts to a local handler:
//
//	client, err := oauth.NewAircallClient(cfg, oauth.WithHTTPClient(&http.Client{Transport: rt}))
package oauth
