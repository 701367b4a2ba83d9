// Package fakeupstream is an in-process stand-in for the authorization
// server: a client-credentials token endpoint plus the admin and audit
// REST API, backed by in-memory state. Tests point the bridge at it to
// exercise the full path from operation to HTTP without a network.
package fakeupstream

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/alexjbarnes/oauth2-admin-mcp/internal/admin"
)

// Default credentials accepted by the token endpoint.
const (
	ClientID     = "mcp-admin-client"
	ClientSecret = "test-secret"
)

// Server is a running fake authorization server.
type Server struct {
	*httptest.Server

	// ExpiresIn is the lifetime in seconds handed out with new tokens.
	ExpiresIn int

	mu            sync.Mutex
	tokenRequests int
	valid         map[string]bool
	clients       map[string]Client
	scopes        map[string]Scope
	denyRules     map[int64]DenyRule
	nextRuleID    int64
	audit         []AuditEvent
	requests      []string
}

// TB is the part of testing.TB the server needs.
type TB interface {
	Helper()
	Cleanup(func())
}

// New starts a fake server seeded with a system client, the OIDC scopes
// and a handful of audit events. It is closed when the test ends.
func New(t TB) *Server {
	t.Helper()

	s := &Server{
		ExpiresIn:  3600,
		valid:      make(map[string]bool),
		clients:    make(map[string]Client),
		scopes:     make(map[string]Scope),
		denyRules:  make(map[int64]DenyRule),
		nextRuleID: 1,
	}
	s.seed()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /oauth2/token", s.handleToken)

	mux.HandleFunc("GET /api/admin/clients", s.authed(s.listClients))
	mux.HandleFunc("POST /api/admin/clients", s.authed(s.createClient))
	mux.HandleFunc("GET /api/admin/clients/{clientId}", s.authed(s.getClient))
	mux.HandleFunc("PUT /api/admin/clients/{clientId}", s.authed(s.updateClient))
	mux.HandleFunc("DELETE /api/admin/clients/{clientId}", s.authed(s.deleteClient))
	mux.HandleFunc("POST /api/admin/clients/{clientId}/enabled", s.authed(s.setClientEnabled))

	mux.HandleFunc("GET /api/admin/scopes", s.authed(s.listScopes))
	mux.HandleFunc("POST /api/admin/scopes", s.authed(s.createScope))
	mux.HandleFunc("DELETE /api/admin/scopes/{scope}", s.authed(s.deleteScope))

	mux.HandleFunc("GET /api/admin/deny-rules", s.authed(s.listDenyRules))
	mux.HandleFunc("POST /api/admin/deny-rules", s.authed(s.createDenyRule))
	mux.HandleFunc("PUT /api/admin/deny-rules/{id}", s.authed(s.updateDenyRule))
	mux.HandleFunc("DELETE /api/admin/deny-rules/{id}", s.authed(s.deleteDenyRule))

	mux.HandleFunc("GET /api/audit/search", s.authed(s.searchAudit))
	mux.HandleFunc("GET /api/audit/client/{clientId}", s.authed(s.clientAudit))

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)

	return s
}

func (s *Server) seed() {
	s.clients[ClientID] = Client{
		ClientID:                    ClientID,
		ClientName:                  "MCP Admin Client",
		Enabled:                     true,
		System:                      true,
		Scopes:                      []string{"admin:read", "admin:write"},
		AuthorizationGrantTypes:     []string{"client_credentials"},
		ClientAuthenticationMethods: []string{"client_secret_basic"},
		RedirectURIs:                []string{},
		PostLogoutRedirectURIs:      []string{},
	}

	for _, sc := range []struct {
		name, desc string
		system     bool
	}{
		{"openid", "OpenID Connect authentication", true},
		{"profile", "Basic profile claims", true},
		{"email", "Email address claims", true},
		{"admin:read", "Read access to the admin API", true},
		{"admin:write", "Write access to the admin API", true},
	} {
		desc := sc.desc
		s.scopes[sc.name] = Scope{Scope: sc.name, Description: &desc, Enabled: true, System: sc.system}
	}

	clientID := ClientID
	s.audit = []AuditEvent{
		{ID: 1, Timestamp: "2026-01-10T09:00:00Z", EventType: "TOKEN_ISSUED", Principal: ClientID, ClientID: &clientID, Outcome: admin.OutcomeSuccess},
		{ID: 2, Timestamp: "2026-01-10T09:05:00Z", EventType: "LOGIN", Principal: "alice", Outcome: admin.OutcomeSuccess},
		{ID: 3, Timestamp: "2026-01-10T09:06:00Z", EventType: "LOGIN", Principal: "mallory", Outcome: admin.OutcomeFailure},
	}
}

// TokenRequests returns how many token requests have been served.
func (s *Server) TokenRequests() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.tokenRequests
}

// RevokeTokens invalidates every issued token, so the next admin call
// answers 401 until a new token is fetched.
func (s *Server) RevokeTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.valid)
}

// Requests returns "METHOD path?query" for every admin call received.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.requests)
}

// --- token endpoint ---

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokenRequests++

	id, secret, ok := r.BasicAuth()
	if !ok || id != ClientID || secret != ClientSecret {
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"error":             "invalid_client",
			"error_description": "Client authentication failed",
		})

		return
	}

	if err := r.ParseForm(); err != nil || r.PostForm.Get("grant_type") != "client_credentials" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unsupported_grant_type"})
		return
	}

	tok := fmt.Sprintf("fake-token-%d", s.tokenRequests)
	s.valid[tok] = true

	resp := map[string]any{
		"access_token": tok,
		"token_type":   "Bearer",
		"expires_in":   s.ExpiresIn,
	}
	if scope := r.PostForm.Get("scope"); scope != "" {
		resp["scope"] = scope
	}

	writeJSON(w, http.StatusOK, resp)
}

// authed rejects requests without a currently valid bearer token and
// records the ones it lets through.
func (s *Server) authed(next func(w http.ResponseWriter, r *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tok, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")

		s.mu.Lock()
		ok := found && s.valid[tok]
		if ok {
			entry := r.Method + " " + r.URL.EscapedPath()
			if r.URL.RawQuery != "" {
				entry += "?" + r.URL.RawQuery
			}
			s.requests = append(s.requests, entry)
		}
		s.mu.Unlock()

		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid_token"})
			return
		}

		next(w, r)
	}
}

// --- clients ---

func (s *Server) listClients(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Client, 0, len(s.clients))
	for _, id := range sortedKeys(s.clients) {
		out = append(out, s.clients[id])
	}

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getClient(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := r.PathValue("clientId")

	c, ok := s.clients[id]
	if !ok {
		writeMessage(w, http.StatusNotFound, "Client not found: "+id)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

func (s *Server) createClient(w http.ResponseWriter, r *http.Request) {
	var req admin.ClientUpsert
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ClientID == "" {
		writeMessage(w, http.StatusBadRequest, "Invalid client registration")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.clients[req.ClientID]; exists {
		writeMessage(w, http.StatusConflict, "Client already exists: "+req.ClientID)
		return
	}

	c := summaryFromUpsert(req)
	s.clients[c.ClientID] = c
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) updateClient(w http.ResponseWriter, r *http.Request) {
	var req admin.ClientUpsert
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid client registration")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := r.PathValue("clientId")

	existing, ok := s.clients[id]
	if !ok {
		writeMessage(w, http.StatusNotFound, "Client not found: "+id)
		return
	}

	c := summaryFromUpsert(req)
	c.ClientID = id
	c.System = existing.System
	s.clients[id] = c
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) deleteClient(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := r.PathValue("clientId")

	c, ok := s.clients[id]
	if !ok {
		writeMessage(w, http.StatusNotFound, "Client not found: "+id)
		return
	}

	if c.System {
		writeMessage(w, http.StatusForbidden, "Cannot delete system client: "+id)
		return
	}

	delete(s.clients, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) setClientEnabled(w http.ResponseWriter, r *http.Request) {
	enabled, err := strconv.ParseBool(r.URL.Query().Get("enabled"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "enabled must be true or false")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := r.PathValue("clientId")

	c, ok := s.clients[id]
	if !ok {
		writeMessage(w, http.StatusNotFound, "Client not found: "+id)
		return
	}

	c.Enabled = enabled
	s.clients[id] = c
	writeJSON(w, http.StatusOK, c)
}

func summaryFromUpsert(req admin.ClientUpsert) Client {
	c := Client{
		ClientID:                    req.ClientID,
		ClientName:                  req.ClientName,
		Enabled:                     req.Enabled,
		Scopes:                      nonNil(req.Scopes),
		AuthorizationGrantTypes:     nonNil(req.AuthorizationGrantTypes),
		ClientAuthenticationMethods: nonNil(req.ClientAuthenticationMethods),
		RedirectURIs:                nonNil(req.RedirectURIs),
		PostLogoutRedirectURIs:      nonNil(req.PostLogoutRedirectURIs),
		RequireProofKey:             req.RequireProofKey,
		RequireAuthorizationConsent: req.RequireAuthorizationConsent,
	}
	if c.ClientName == "" {
		c.ClientName = req.ClientID
	}

	if req.Notes != "" {
		notes := req.Notes
		c.Notes = &notes
	}

	return c
}

// --- scopes ---

func (s *Server) listScopes(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Scope, 0, len(s.scopes))
	for _, name := range sortedKeys(s.scopes) {
		out = append(out, s.scopes[name])
	}

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createScope(w http.ResponseWriter, r *http.Request) {
	var req admin.ScopeUpsert
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Scope == "" {
		writeMessage(w, http.StatusBadRequest, "Invalid scope")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.scopes[req.Scope]; exists {
		writeMessage(w, http.StatusConflict, "Scope already exists: "+req.Scope)
		return
	}

	sc := Scope{Scope: req.Scope, Enabled: true}
	if req.Description != "" {
		desc := req.Description
		sc.Description = &desc
	}

	s.scopes[sc.Scope] = sc
	writeJSON(w, http.StatusCreated, sc)
}

func (s *Server) deleteScope(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := r.PathValue("scope")

	sc, ok := s.scopes[name]
	if !ok {
		writeMessage(w, http.StatusNotFound, "Scope not found: "+name)
		return
	}

	if sc.System {
		writeMessage(w, http.StatusForbidden, "Cannot delete system scope: "+name)
		return
	}

	delete(s.scopes, name)
	w.WriteHeader(http.StatusNoContent)
}

// --- deny rules ---

func (s *Server) listDenyRules(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]DenyRule, 0, len(s.denyRules))
	for _, id := range sortedKeys(s.denyRules) {
		out = append(out, s.denyRules[id])
	}

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createDenyRule(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeDenyRule(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rule := denyRuleFromUpsert(s.nextRuleID, req)
	s.nextRuleID++
	s.denyRules[rule.ID] = rule
	writeJSON(w, http.StatusCreated, rule)
}

func (s *Server) updateDenyRule(w http.ResponseWriter, r *http.Request) {
	id, ok := ruleID(w, r)
	if !ok {
		return
	}

	req, ok := decodeDenyRule(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.denyRules[id]; !exists {
		writeMessage(w, http.StatusNotFound, "Deny rule not found")
		return
	}

	rule := denyRuleFromUpsert(id, req)
	s.denyRules[id] = rule
	writeJSON(w, http.StatusOK, rule)
}

func (s *Server) deleteDenyRule(w http.ResponseWriter, r *http.Request) {
	id, ok := ruleID(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.denyRules[id]; !exists {
		writeMessage(w, http.StatusNotFound, "Deny rule not found")
		return
	}

	delete(s.denyRules, id)
	w.WriteHeader(http.StatusNoContent)
}

func ruleID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid deny rule id")
		return 0, false
	}

	return id, true
}

func decodeDenyRule(w http.ResponseWriter, r *http.Request) (admin.DenyRuleUpsert, bool) {
	var req admin.DenyRuleUpsert
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Pattern == "" {
		writeMessage(w, http.StatusBadRequest, "Invalid deny rule")
		return req, false
	}

	if !slices.Contains(admin.RuleTypes, req.RuleType) {
		writeMessage(w, http.StatusBadRequest, "Invalid rule type: "+req.RuleType)
		return req, false
	}

	return req, true
}

func denyRuleFromUpsert(id int64, req admin.DenyRuleUpsert) DenyRule {
	rule := DenyRule{ID: id, Pattern: req.Pattern, RuleType: req.RuleType, Enabled: req.Enabled}
	if req.Reason != "" {
		reason := req.Reason
		rule.Reason = &reason
	}

	return rule
}

// --- audit ---

func (s *Server) searchAudit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []AuditEvent

	for _, e := range s.audit {
		if v := q.Get("principal"); v != "" && e.Principal != v {
			continue
		}

		if v := q.Get("clientId"); v != "" && (e.ClientID == nil || *e.ClientID != v) {
			continue
		}

		if v := q.Get("eventType"); v != "" && e.EventType != v {
			continue
		}

		if v := q.Get("outcome"); v != "" && e.Outcome != v {
			continue
		}

		// ISO 8601 UTC timestamps order lexically.
		if v := q.Get("startTime"); v != "" && e.Timestamp < v {
			continue
		}

		if v := q.Get("endTime"); v != "" && e.Timestamp > v {
			continue
		}

		matched = append(matched, e)
	}

	writeJSON(w, http.StatusOK, paginate(matched, q.Get("page"), q.Get("size")))
}

func (s *Server) clientAudit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("clientId")
	q := r.URL.Query()

	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []AuditEvent

	for _, e := range s.audit {
		if e.ClientID != nil && *e.ClientID == id {
			matched = append(matched, e)
		}
	}

	writeJSON(w, http.StatusOK, paginate(matched, q.Get("page"), q.Get("size")))
}

func paginate(events []AuditEvent, pageParam, sizeParam string) Page[AuditEvent] {
	page, err := strconv.Atoi(pageParam)
	if err != nil || page < 0 {
		page = admin.DefaultPage
	}

	size, err := strconv.Atoi(sizeParam)
	if err != nil || size <= 0 {
		size = admin.DefaultPageSize
	}

	total := len(events)
	start := min(page*size, total)
	end := min(start+size, total)

	return Page[AuditEvent]{
		Content:       append([]AuditEvent{}, events[start:end]...),
		TotalElements: int64(total),
		TotalPages:    (total + size - 1) / size,
		Size:          size,
		Number:        page,
	}
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"status": status, "message": msg})
}

func sortedKeys[K string | int64, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}

	return s
}
