// Package token owns the bridge's own access token. A Manager obtains
// tokens from the authorization server with the client-credentials grant,
// caches the current one in memory and hands it out until it is within
// SafetyMargin of expiry. There is no background refresh: the next
// AccessToken call after the margin elapses performs the fetch.
//
// MCP tool calls can run concurrently, so refresh is serialized. While a
// fetch is in flight every other caller waits on it instead of starting
// its own, keeping at most one token request outstanding.
package token

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	apperrors "github.com/alexjbarnes/oauth2-admin-mcp/internal/errors"
	"github.com/dustin/go-humanize"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/singleflight"
)

// SafetyMargin is subtracted from a token's lifetime when deciding
// whether it can still be used.
const SafetyMargin = 60 * time.Second

const (
	// maxErrorBodyBytes caps how much of a failed token response is kept
	// on the AuthError.
	maxErrorBodyBytes = 4096

	flightKey = "token"
)

// Config identifies the confidential client and the token endpoint.
type Config struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
}

// AccessToken is a bearer token with its absolute expiry.
type AccessToken struct {
	Value     string
	ExpiresAt time.Time
	Scopes    []string
}

// ValidAt reports whether the token may be used at now, i.e. whether
// now + SafetyMargin is strictly before ExpiresAt.
func (t AccessToken) ValidAt(now time.Time) bool {
	return t.Value != "" && now.Add(SafetyMargin).Before(t.ExpiresAt)
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock replaces time.Now. Tests use it to move across the expiry
// margin without sleeping.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithLogger sets the logger used for token lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithHTTPClient sets the client used to reach the token endpoint.
func WithHTTPClient(c *http.Client) Option {
	return func(m *Manager) { m.httpClient = c }
}

// Manager caches a single access token. The zero value is not usable;
// create one with NewManager.
type Manager struct {
	creds      clientcredentials.Config
	httpClient *http.Client
	now        func() time.Time
	logger     *slog.Logger

	mu      sync.Mutex
	current *AccessToken

	flight singleflight.Group
}

// NewManager creates a Manager for the given client. Client id and
// secret are sent with HTTP Basic authentication.
func NewManager(cfg Config, opts ...Option) *Manager {
	m := &Manager{
		creds: clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			Scopes:       append([]string(nil), cfg.Scopes...),
			AuthStyle:    oauth2.AuthStyleInHeader,
		},
		now:    time.Now,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.httpClient == nil {
		m.httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return m
}

// AccessToken returns a usable token value, fetching a new one when the
// cache is empty or within SafetyMargin of expiry. Failures are reported
// as *errors.AuthError and leave the cache empty.
func (m *Manager) AccessToken(ctx context.Context) (string, error) {
	if tok, ok := m.Current(); ok {
		return tok.Value, nil
	}

	// The shared fetch must not die with whichever caller started it.
	fetchCtx := context.WithoutCancel(ctx)

	ch := m.flight.DoChan(flightKey, func() (any, error) {
		// Another caller may have refreshed while this one was queued.
		if tok, ok := m.Current(); ok {
			return tok, nil
		}

		return m.fetch(fetchCtx)
	})

	select {
	case <-ctx.Done():
		return "", &apperrors.AuthError{Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}

		return res.Val.(AccessToken).Value, nil
	}
}

// Current returns a copy of the cached token when it is still valid.
func (m *Manager) Current() (AccessToken, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil || !m.current.ValidAt(m.now()) {
		return AccessToken{}, false
	}

	tok := *m.current
	tok.Scopes = append([]string(nil), m.current.Scopes...)

	return tok, true
}

// Reset discards the cached token unconditionally. The next AccessToken
// call fetches a fresh one.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = nil
	m.logger.Info("access token reset")
}

func (m *Manager) fetch(ctx context.Context) (AccessToken, error) {
	started := m.now()

	m.logger.Debug("requesting access token",
		slog.String("token_url", m.creds.TokenURL),
		slog.String("client_id", m.creds.ClientID),
		slog.String("scopes", strings.Join(m.creds.Scopes, " ")),
	)

	ctx = context.WithValue(ctx, oauth2.HTTPClient, m.httpClient)

	tok, err := m.creds.Token(ctx)
	if err != nil {
		authErr := toAuthError(err)
		m.logger.Warn("access token request failed",
			slog.Int("status", authErr.Status),
			slog.String("error", authErr.Error()),
		)

		return AccessToken{}, authErr
	}

	at := AccessToken{
		Value:     tok.AccessToken,
		ExpiresAt: started.Add(lifetime(tok)),
		Scopes:    grantedScopes(tok, m.creds.Scopes),
	}

	m.mu.Lock()
	m.current = &at
	m.mu.Unlock()

	m.logger.Info("access token acquired",
		slog.String("client_id", m.creds.ClientID),
		slog.String("expires", humanize.RelTime(at.ExpiresAt, started, "ago", "from now")),
		slog.String("scopes", strings.Join(at.Scopes, " ")),
	)

	return at, nil
}

// toAuthError converts an oauth2 failure into the bridge's AuthError,
// keeping the HTTP status and body when a response was received.
func toAuthError(err error) *apperrors.AuthError {
	var rErr *oauth2.RetrieveError
	if errors.As(err, &rErr) {
		authErr := &apperrors.AuthError{Err: err}
		if rErr.Response != nil {
			authErr.Status = rErr.Response.StatusCode
		}

		body := rErr.Body
		if len(body) > maxErrorBodyBytes {
			body = body[:maxErrorBodyBytes]
		}

		authErr.Body = string(body)

		return authErr
	}

	return &apperrors.AuthError{Err: fmt.Errorf("requesting token: %w", err)}
}

// lifetime reads expires_in from the token response. JSON responses
// populate Token.ExpiresIn; form encoded ones only carry it in the raw
// extras. A response without expires_in yields a zero lifetime, so the
// token is used for the call that fetched it and refreshed on the next.
func lifetime(tok *oauth2.Token) time.Duration {
	if tok.ExpiresIn > 0 {
		return time.Duration(tok.ExpiresIn) * time.Second
	}

	switch v := tok.Extra("expires_in").(type) {
	case float64:
		return time.Duration(v * float64(time.Second))
	case int64:
		return time.Duration(v) * time.Second
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return time.Duration(n) * time.Second
		}
	}

	return 0
}

// grantedScopes prefers the scope echoed by the server and falls back
// to the requested scopes, as RFC 6749 allows the server to omit it when
// it granted exactly what was asked for.
func grantedScopes(tok *oauth2.Token, requested []string) []string {
	if s, ok := tok.Extra("scope").(string); ok && strings.TrimSpace(s) != "" {
		return strings.Fields(s)
	}

	return append([]string(nil), requested...)
}
