// Package admin binds the authorization server's admin and audit REST
// API. Requests are typed; responses are returned as raw JSON. Every
// method performs exactly one HTTP call and reports failures as
// *errors.UpstreamError.
package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/alexjbarnes/oauth2-admin-mcp/internal/errors"
	"github.com/alexjbarnes/oauth2-admin-mcp/internal/token"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	// maxRedirects is the maximum number of HTTP redirects to follow
	// before giving up, matching the default net/http limit.
	maxRedirects = 10

	// maxAPIResponseBytes caps response body reads to prevent a
	// misbehaving server from consuming unbounded memory.
	maxAPIResponseBytes = 1024 * 1024

	// maxErrorBodyLen caps how much of an error body ends up in messages.
	maxErrorBodyLen = 256
)

// Client talks to the admin API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// sameHostRedirectPolicy follows redirects only when the target host
// matches the original request host. The bearer token is attached to
// every hop, so a cross-host redirect would hand it to a third party.
func sameHostRedirectPolicy(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return errors.New("stopped after 10 redirects")
	}

	if len(via) > 0 {
		origHost := via[0].URL.Host
		if req.URL.Host != origHost {
			return fmt.Errorf("redirect to different host blocked: %s -> %s", origHost, req.URL.Host)
		}
	}

	return nil
}

// NewHTTPClient returns an http.Client that authenticates every request
// with a bearer token from src and traces it with otelhttp. A nil base
// uses http.DefaultTransport.
func NewHTTPClient(src token.Source, timeout time.Duration, base http.RoundTripper) *http.Client {
	return &http.Client{
		Timeout:       timeout,
		CheckRedirect: sameHostRedirectPolicy,
		Transport: otelhttp.NewTransport(
			&token.Transport{Source: src, Base: base},
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return "admin " + r.Method + " " + r.URL.Path
			}),
		),
	}
}

// NewClient creates an admin API client rooted at baseURL. The
// httpClient is expected to carry authentication, see NewHTTPClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// sanitizeResponseBody truncates and sanitizes a response body for
// inclusion in error messages. Limits to 256 bytes and replaces
// non-printable characters to prevent log injection.
func sanitizeResponseBody(body []byte) string {
	if len(body) > maxErrorBodyLen {
		body = body[:maxErrorBodyLen]
	}

	var clean []byte

	for len(body) > 0 {
		r, size := utf8.DecodeRune(body)
		if r == utf8.RuneError && size <= 1 {
			clean = append(clean, '?')
			body = body[1:]

			continue
		}

		if r < 0x20 && r != '\n' && r != '\r' && r != '\t' {
			clean = append(clean, '?')
		} else {
			clean = append(clean, body[:size]...)
		}

		body = body[size:]
	}

	return string(clean)
}

// do sends one request and decodes a 2xx JSON response into out. op is
// the human readable operation name used in error messages.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &apperrors.UpstreamError{Operation: op, Err: fmt.Errorf("marshalling request body: %w", err)}
		}

		reader = bytes.NewReader(payload)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return &apperrors.UpstreamError{Operation: op, Err: fmt.Errorf("creating request: %w", err)}
	}

	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &apperrors.UpstreamError{Operation: op, Err: fmt.Errorf("sending request to %s: %w", path, err)}
	}
	defer resp.Body.Close()

	// Cap response reads at 1MB. Admin payloads are small JSON documents.
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxAPIResponseBytes))
	if err != nil {
		return &apperrors.UpstreamError{Operation: op, Err: fmt.Errorf("reading response from %s: %w", path, err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &apperrors.UpstreamError{
			Operation: op,
			Status:    resp.StatusCode,
			Body:      sanitizeResponseBody(respBody),
		}
	}

	if out != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return &apperrors.UpstreamError{Operation: op, Err: fmt.Errorf("decoding response from %s: %w", path, err)}
		}
	}

	return nil
}

// fetch is do for calls whose response body is returned verbatim. The
// body must be valid JSON but is never decoded into a struct.
func (c *Client) fetch(ctx context.Context, op, method, path string, query url.Values, body any) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, op, method, path, query, body, &out); err != nil {
		return nil, err
	}

	return out, nil
}

func clientPath(clientID string) string {
	return "/api/admin/clients/" + url.PathEscape(clientID)
}

func denyRulePath(id int64) string {
	return "/api/admin/deny-rules/" + strconv.FormatInt(id, 10)
}

// ListClients returns every registered client.
func (c *Client) ListClients(ctx context.Context) (json.RawMessage, error) {
	return c.fetch(ctx, "List clients", http.MethodGet, "/api/admin/clients", nil, nil)
}

// GetClient returns a single client by id.
func (c *Client) GetClient(ctx context.Context, clientID string) (json.RawMessage, error) {
	return c.fetch(ctx, "Get client", http.MethodGet, clientPath(clientID), nil, nil)
}

// CreateClient registers a new client.
func (c *Client) CreateClient(ctx context.Context, req ClientUpsert) (json.RawMessage, error) {
	return c.fetch(ctx, "Create client", http.MethodPost, "/api/admin/clients", nil, req)
}

// UpdateClient replaces the client's registration.
func (c *Client) UpdateClient(ctx context.Context, clientID string, req ClientUpsert) (json.RawMessage, error) {
	return c.fetch(ctx, "Update client", http.MethodPut, clientPath(clientID), nil, req)
}

// DeleteClient removes a client. The server refuses system clients.
func (c *Client) DeleteClient(ctx context.Context, clientID string) error {
	return c.do(ctx, "Delete client", http.MethodDelete, clientPath(clientID), nil, nil, nil)
}

// SetClientEnabled toggles a client and returns its new state.
func (c *Client) SetClientEnabled(ctx context.Context, clientID string, enabled bool) (json.RawMessage, error) {
	query := url.Values{"enabled": {strconv.FormatBool(enabled)}}

	return c.fetch(ctx, "Set client enabled", http.MethodPost, clientPath(clientID)+"/enabled", query, nil)
}

// ListScopes returns every scope.
func (c *Client) ListScopes(ctx context.Context) (json.RawMessage, error) {
	return c.fetch(ctx, "List scopes", http.MethodGet, "/api/admin/scopes", nil, nil)
}

// CreateScope adds a scope.
func (c *Client) CreateScope(ctx context.Context, req ScopeUpsert) (json.RawMessage, error) {
	return c.fetch(ctx, "Create scope", http.MethodPost, "/api/admin/scopes", nil, req)
}

// DeleteScope removes a scope. The server refuses system scopes.
func (c *Client) DeleteScope(ctx context.Context, scope string) error {
	return c.do(ctx, "Delete scope", http.MethodDelete, "/api/admin/scopes/"+url.PathEscape(scope), nil, nil, nil)
}

// ListDenyRules returns every deny rule.
func (c *Client) ListDenyRules(ctx context.Context) (json.RawMessage, error) {
	return c.fetch(ctx, "List deny rules", http.MethodGet, "/api/admin/deny-rules", nil, nil)
}

// CreateDenyRule adds a deny rule. The server assigns the id.
func (c *Client) CreateDenyRule(ctx context.Context, req DenyRuleUpsert) (json.RawMessage, error) {
	return c.fetch(ctx, "Create deny rule", http.MethodPost, "/api/admin/deny-rules", nil, req)
}

// UpdateDenyRule replaces deny rule id.
func (c *Client) UpdateDenyRule(ctx context.Context, id int64, req DenyRuleUpsert) (json.RawMessage, error) {
	return c.fetch(ctx, "Update deny rule", http.MethodPut, denyRulePath(id), nil, req)
}

// DeleteDenyRule removes deny rule id.
func (c *Client) DeleteDenyRule(ctx context.Context, id int64) error {
	return c.do(ctx, "Delete deny rule", http.MethodDelete, denyRulePath(id), nil, nil, nil)
}

// SearchAuditEvents queries the audit log. Empty filters are omitted;
// page and size are always sent as given.
func (c *Client) SearchAuditEvents(ctx context.Context, s AuditSearch) (json.RawMessage, error) {
	query := url.Values{}

	for key, value := range map[string]string{
		"principal": s.Principal,
		"clientId":  s.ClientID,
		"eventType": s.EventType,
		"outcome":   s.Outcome,
		"startTime": s.StartTime,
		"endTime":   s.EndTime,
	} {
		if value != "" {
			query.Set(key, value)
		}
	}

	setPaging(query, s.Page, s.Size)

	return c.fetch(ctx, "Search audit events", http.MethodGet, "/api/audit/search", query, nil)
}

// ClientAuditEvents returns the audit events recorded for one client.
func (c *Client) ClientAuditEvents(ctx context.Context, clientID string, page, size int) (json.RawMessage, error) {
	query := url.Values{}
	setPaging(query, page, size)

	path := "/api/audit/client/" + url.PathEscape(clientID)

	return c.fetch(ctx, "Get audit events by client", http.MethodGet, path, query, nil)
}

// setPaging forwards the caller's paging unchanged. The server decides
// what a zero size or negative page means.
func setPaging(query url.Values, page, size int) {
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))
}
