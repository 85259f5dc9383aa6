package oauth

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingClientID is returned when the OAuth client ID is not provided.
	ErrMissingClientID = errors.New("oauth: missing client ID")

	// ErrMissingClientSecret is returned when the OAuth client secret is not provided.
	ErrMissingClientSecret = errors.New("oauth: missing client secret")

	// ErrNilAdapter is returned when a client is built without a provider adapter.
	ErrNilAdapter = errors.New("oauth: nil provider adapter")

	// ErrNilResponse is returned when the OAuth provider returns a nil response.
	ErrNilResponse = errors.New("oauth: nil response from provider")

	// ErrExchangeFailed is returned when trading an authorization code or
	// refresh token for an access token fails.
	ErrExchangeFailed = errors.New("oauth: token exchange failed")

	// ErrFetchFailed is returned when fetching data from the OAuth provider fails.
	ErrFetchFailed = errors.New("oauth: failed to fetch from provider")

	// ErrDecodeFailed is returned when decoding the OAuth provider response fails.
	ErrDecodeFailed = errors.New("oauth: failed to decode response")

	// ErrResponseTooLarge is returned when a provider response body exceeds 1MB.
	ErrResponseTooLarge = errors.New("oauth: provider response too large")

	// ErrUnexpectedStatus is returned when the provider answers with any
	// status other than 200 OK. Use errors.As with *UnexpectedStatusError
	// to get the status code and the raw body.
	ErrUnexpectedStatus = errors.New("oauth: unexpected response code")
)

// UnexpectedStatusError carries the raw provider response that failed validation.
// The body is kept verbatim; its schema is not interpreted.
type UnexpectedStatusError struct {
	Body       []byte
	StatusCode int
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("%s: status=%d body=%s", ErrUnexpectedStatus.Error(), e.StatusCode, e.Body)
}

// Unwrap allows errors.Is(err, ErrUnexpectedStatus).
func (e *UnexpectedStatusError) Unwrap() error {
	return ErrUnexpectedStatus
}
