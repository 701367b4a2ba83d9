package fakeupstream

// The fake server's own model of the admin API resources. Fields the
// bridge never interprets, such as Scope.Enabled, are included so tests
// can check that responses reach the agent unabridged.

// Client is a registered OAuth2 client. The secret is never returned.
type Client struct {
	ClientID                    string   `json:"clientId"`
	ClientName                  string   `json:"clientName"`
	Enabled                     bool     `json:"enabled"`
	System                      bool     `json:"system"`
	Scopes                      []string `json:"scopes"`
	AuthorizationGrantTypes     []string `json:"authorizationGrantTypes"`
	ClientAuthenticationMethods []string `json:"clientAuthenticationMethods"`
	RedirectURIs                []string `json:"redirectUris"`
	PostLogoutRedirectURIs      []string `json:"postLogoutRedirectUris"`
	RequireProofKey             bool     `json:"requireProofKey"`
	RequireAuthorizationConsent bool     `json:"requireAuthorizationConsent"`
	Notes                       *string  `json:"notes"`
}

// Scope is a named permission clients may request.
type Scope struct {
	Scope       string  `json:"scope"`
	Description *string `json:"description"`
	Enabled     bool    `json:"enabled"`
	System      bool    `json:"system"`
}

// DenyRule blocks authentication for identities matching Pattern.
type DenyRule struct {
	ID       int64   `json:"id"`
	Pattern  string  `json:"pattern"`
	RuleType string  `json:"ruleType"`
	Enabled  bool    `json:"enabled"`
	Reason   *string `json:"reason"`
}

// AuditEvent is one entry of the audit log.
type AuditEvent struct {
	ID         int64   `json:"id"`
	Timestamp  string  `json:"timestamp"`
	EventType  string  `json:"eventType"`
	Principal  string  `json:"principal"`
	ClientID   *string `json:"clientId"`
	ResourceID *string `json:"resourceId"`
	Outcome    string  `json:"outcome"`
	Details    *string `json:"details"`
	IPAddress  *string `json:"ipAddress"`
	UserAgent  *string `json:"userAgent"`
}

// Page is the paginated envelope. Number is 0-based.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Size          int   `json:"size"`
	Number        int   `json:"number"`
}
