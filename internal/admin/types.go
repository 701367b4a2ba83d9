package admin

// Request bodies and query parameters. Responses are not modelled; the
// client returns them as raw JSON.

// ClientUpsert is the body for creating or replacing a client. Setting
// ClientSecret on update rotates the secret.
type ClientUpsert struct {
	ClientID                    string   `json:"clientId"`
	ClientName                  string   `json:"clientName,omitempty"`
	ClientSecret                string   `json:"clientSecret,omitempty"`
	AuthorizationGrantTypes     []string `json:"authorizationGrantTypes"`
	ClientAuthenticationMethods []string `json:"clientAuthenticationMethods"`
	RedirectURIs                []string `json:"redirectUris"`
	PostLogoutRedirectURIs      []string `json:"postLogoutRedirectUris"`
	Scopes                      []string `json:"scopes"`
	RequireProofKey             bool     `json:"requireProofKey"`
	RequireAuthorizationConsent bool     `json:"requireAuthorizationConsent"`
	Enabled                     bool     `json:"enabled"`
	Notes                       string   `json:"notes,omitempty"`
}

// ScopeUpsert is the body for POST /api/admin/scopes.
type ScopeUpsert struct {
	Scope       string `json:"scope"`
	Description string `json:"description,omitempty"`
}

// Deny rule types accepted by the server.
const (
	RuleTypeUsername  = "USERNAME"
	RuleTypeEmail     = "EMAIL"
	RuleTypeIPAddress = "IP_ADDRESS"
	RuleTypeClientID  = "CLIENT_ID"
)

// RuleTypes lists every valid deny rule type.
var RuleTypes = []string{RuleTypeUsername, RuleTypeEmail, RuleTypeIPAddress, RuleTypeClientID}

// DenyRuleUpsert is the body for creating or replacing a deny rule. The
// id travels in the path, never in the body.
type DenyRuleUpsert struct {
	Pattern  string `json:"pattern"`
	RuleType string `json:"ruleType"`
	Enabled  bool   `json:"enabled"`
	Reason   string `json:"reason,omitempty"`
}

// Audit outcomes.
const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)

// Default paging for audit queries.
const (
	DefaultPage     = 0
	DefaultPageSize = 20
)

// AuditSearch filters GET /api/audit/search. Empty strings are omitted
// from the query. StartTime and EndTime are ISO 8601 and passed through
// as given.
type AuditSearch struct {
	Principal string
	ClientID  string
	EventType string
	Outcome   string
	StartTime string
	EndTime   string
	Page      int
	Size      int
}
