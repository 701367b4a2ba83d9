package token

import (
	"context"
	"net/http"
)

// Source supplies bearer tokens. *Manager satisfies it.
type Source interface {
	AccessToken(ctx context.Context) (string, error)
}

// Transport is an http.RoundTripper that authenticates every request
// with a bearer token from Source. The token is looked up per request so
// a token that expired between two calls is refreshed transparently.
type Transport struct {
	Source Source
	Base   http.RoundTripper
}

// RoundTrip implements http.RoundTripper. Token failures are returned
// unchanged so callers can reach the *errors.AuthError with errors.As.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	bodyClosed := false
	if req.Body != nil {
		defer func() {
			if !bodyClosed {
				req.Body.Close()
			}
		}()
	}

	value, err := t.Source.AccessToken(req.Context())
	if err != nil {
		return nil, err
	}

	// RoundTrippers must not modify the caller's request.
	out := req.Clone(req.Context())
	out.Header.Set("Authorization", "Bearer "+value)

	// Clone shares the body, which the base transport now owns.
	bodyClosed = true

	return t.base().RoundTrip(out)
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}

	return http.DefaultTransport
}
