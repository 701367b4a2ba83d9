package operations

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/alexjbarnes/oauth2-admin-mcp/internal/admin"
	"github.com/alexjbarnes/oauth2-admin-mcp/internal/docs"
	apperrors "github.com/alexjbarnes/oauth2-admin-mcp/internal/errors"
	"github.com/tidwall/gjson"
)

// Shared field descriptions.
const (
	descGrantTypes  = "Grant types: authorization_code, refresh_token, client_credentials, etc."
	descAuthMethods = "Auth methods: client_secret_basic, client_secret_post, none"
	descPage        = "Page number (0-based)"
	descSize        = "Page size"
)

var outcomes = []string{admin.OutcomeSuccess, admin.OutcomeFailure}

// clientFields is the create/update client shape. The two operations only
// differ in wording.
func clientFields(idDesc, secretDesc string) Shape {
	return Shape{
		{Name: "clientId", Type: TypeString, Required: true, Description: idDesc},
		{Name: "clientName", Type: TypeString, Description: "Human-readable client name"},
		{Name: "clientSecret", Type: TypeString, Description: secretDesc},
		{Name: "authorizationGrantTypes", Type: TypeStringArray, Required: true, Description: descGrantTypes},
		{Name: "clientAuthenticationMethods", Type: TypeStringArray, Required: true, Description: descAuthMethods},
		{Name: "redirectUris", Type: TypeStringArray, Required: true, Description: "Authorized redirect URIs"},
		{Name: "postLogoutRedirectUris", Type: TypeStringArray, Required: true, Description: "Post-logout redirect URIs"},
		{Name: "scopes", Type: TypeStringArray, Required: true, Description: "Allowed scopes"},
		{Name: "requireProofKey", Type: TypeBoolean, Required: true, Description: "Require PKCE (recommended for public clients)"},
		{Name: "requireAuthorizationConsent", Type: TypeBoolean, Required: true, Description: "Require user consent"},
		{Name: "enabled", Type: TypeBoolean, Required: true, Description: "Enable/disable the client"},
		{Name: "notes", Type: TypeString, Description: "Admin notes about the client"},
	}
}

func denyRuleFields() Shape {
	return Shape{
		{Name: "pattern", Type: TypeString, Required: true, Description: "Pattern to match (regex or exact match)"},
		{Name: "ruleType", Type: TypeString, Required: true, Description: "Type of deny rule", Enum: admin.RuleTypes},
		{Name: "enabled", Type: TypeBoolean, Required: true, Description: "Enable the rule"},
		{Name: "reason", Type: TypeString, Description: "Reason for the deny rule"},
	}
}

func pagingFields() Shape {
	return Shape{
		{Name: "page", Type: TypeInteger, Description: descPage, Default: int64(admin.DefaultPage)},
		{Name: "size", Type: TypeInteger, Description: descSize, Default: int64(admin.DefaultPageSize)},
	}
}

func allOperations() []Operation {
	return []Operation{
		// Clients
		{
			Name:        "list_clients",
			Description: "List all OAuth2 registered clients",
			Handler:     listClients,
		},
		{
			Name:        "get_client",
			Description: "Get details of a specific OAuth2 client",
			Input:       Shape{{Name: "clientId", Type: TypeString, Required: true, Description: "The OAuth2 client ID"}},
			Handler:     getClient,
		},
		{
			Name:        "create_client",
			Description: "Create a new OAuth2 client",
			Input:       clientFields("Unique client identifier", "Client secret (optional for public clients)"),
			Handler:     createClient,
		},
		{
			Name:        "update_client",
			Description: "Update an existing OAuth2 client",
			Input:       clientFields("The OAuth2 client ID to update", "New client secret (rotates the secret)"),
			Handler:     updateClient,
		},
		{
			Name:        "delete_client",
			Description: "Delete an OAuth2 client (cannot delete system clients)",
			Input:       Shape{{Name: "clientId", Type: TypeString, Required: true, Description: "The OAuth2 client ID to delete"}},
			Handler:     deleteClient,
		},
		{
			Name:        "set_client_enabled",
			Description: "Enable or disable an OAuth2 client",
			Input: Shape{
				{Name: "clientId", Type: TypeString, Required: true, Description: "The OAuth2 client ID"},
				{Name: "enabled", Type: TypeBoolean, Required: true, Description: "Enable or disable the client"},
			},
			Handler: setClientEnabled,
		},

		// Scopes
		{
			Name:        "list_scopes",
			Description: "List all available OAuth2 scopes",
			Handler:     listScopes,
		},
		{
			Name:        "create_scope",
			Description: "Create a new OAuth2 scope",
			Input: Shape{
				{Name: "scope", Type: TypeString, Required: true, Description: "Scope identifier (e.g., read:profile, write:data)"},
				{Name: "description", Type: TypeString, Description: "Description of what this scope allows"},
			},
			Handler: createScope,
		},
		{
			Name:        "delete_scope",
			Description: "Delete an OAuth2 scope (cannot delete system scopes)",
			Input:       Shape{{Name: "scope", Type: TypeString, Required: true, Description: "The scope identifier to delete"}},
			Handler:     deleteScope,
		},

		// Deny rules
		{
			Name:        "list_deny_rules",
			Description: "List all deny rules for access control",
			Handler:     listDenyRules,
		},
		{
			Name:        "create_deny_rule",
			Description: "Create a new deny rule to block specific patterns",
			Input:       denyRuleFields(),
			Handler:     createDenyRule,
		},
		{
			Name:        "update_deny_rule",
			Description: "Update an existing deny rule",
			Input:       append(Shape{{Name: "id", Type: TypeInteger, Required: true, Description: "Deny rule ID"}}, denyRuleFields()...),
			Handler:     updateDenyRule,
		},
		{
			Name:        "delete_deny_rule",
			Description: "Delete a deny rule",
			Input:       Shape{{Name: "id", Type: TypeInteger, Required: true, Description: "Deny rule ID to delete"}},
			Handler:     deleteDenyRule,
		},

		// Audit
		{
			Name:        "search_audit_events",
			Description: "Search audit events with filters",
			Input: append(Shape{
				{Name: "principal", Type: TypeString, Description: "Filter by principal (username)"},
				{Name: "clientId", Type: TypeString, Description: "Filter by OAuth2 client ID"},
				{Name: "eventType", Type: TypeString, Description: "Filter by event type"},
				{Name: "outcome", Type: TypeString, Description: "Filter by outcome", Enum: outcomes},
				{Name: "startTime", Type: TypeString, Description: "Start time (ISO 8601 format)"},
				{Name: "endTime", Type: TypeString, Description: "End time (ISO 8601 format)"},
			}, pagingFields()...),
			Handler: searchAuditEvents,
		},
		{
			Name:        "get_client_audit_events",
			Description: "Get audit events for a specific client",
			Input: append(Shape{
				{Name: "clientId", Type: TypeString, Required: true, Description: "The OAuth2 client ID"},
			}, pagingFields()...),
			Handler: clientAuditEvents,
		},

		// Documentation and session
		{
			Name:        "get_documentation",
			Description: "Read an integration guide for the OAuth2 server",
			Input: Shape{
				{Name: "topic", Type: TypeString, Required: true, Description: "Guide to read", Enum: docs.Default().Slugs()},
			},
			Offline: true,
			Handler: getDocumentation,
		},
		{
			Name:        "get_scopes_reference",
			Description: "Render a markdown reference of the scopes currently defined on the server",
			Handler:     getScopesReference,
		},
		{
			Name:        "reset_token",
			Description: "Discard the cached admin access token so the next operation requests a new one. Use after a 401 from the admin API.",
			Offline:     true,
			Handler:     resetToken,
		},
	}
}

// prettyJSON re-indents a response body with two spaces. Only
// whitespace changes; every field the server sent is kept. An empty body
// renders as null.
func prettyJSON(raw json.RawMessage) (string, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return "null", nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return "", fmt.Errorf("formatting result: %w", err)
	}

	return buf.String(), nil
}

// withJSON prefixes a success headline to the rendered body.
func withJSON(headline string, raw json.RawMessage) (string, error) {
	body, err := prettyJSON(raw)
	if err != nil {
		return "", err
	}

	return headline + "\n\n" + body, nil
}

// responseField reads a headline value from a response body, or returns
// fallback when the server left it out.
func responseField(raw json.RawMessage, path, fallback string) string {
	if v := gjson.GetBytes(raw, path); v.Exists() && v.String() != "" {
		return v.String()
	}

	return fallback
}

func upsertFromArgs(args Args) admin.ClientUpsert {
	return admin.ClientUpsert{
		ClientID:                    args.String("clientId"),
		ClientName:                  args.String("clientName"),
		ClientSecret:                args.String("clientSecret"),
		AuthorizationGrantTypes:     args.Strings("authorizationGrantTypes"),
		ClientAuthenticationMethods: args.Strings("clientAuthenticationMethods"),
		RedirectURIs:                args.Strings("redirectUris"),
		PostLogoutRedirectURIs:      args.Strings("postLogoutRedirectUris"),
		Scopes:                      args.Strings("scopes"),
		RequireProofKey:             args.Bool("requireProofKey"),
		RequireAuthorizationConsent: args.Bool("requireAuthorizationConsent"),
		Enabled:                     args.Bool("enabled"),
		Notes:                       args.String("notes"),
	}
}

func denyRuleFromArgs(args Args) admin.DenyRuleUpsert {
	return admin.DenyRuleUpsert{
		Pattern:  args.String("pattern"),
		RuleType: args.String("ruleType"),
		Enabled:  args.Bool("enabled"),
		Reason:   args.String("reason"),
	}
}

// --- clients ---

func listClients(ctx context.Context, deps Deps, _ Args) (string, error) {
	clients, err := deps.API.ListClients(ctx)
	if err != nil {
		return "", err
	}

	return prettyJSON(clients)
}

func getClient(ctx context.Context, deps Deps, args Args) (string, error) {
	client, err := deps.API.GetClient(ctx, args.String("clientId"))
	if err != nil {
		return "", err
	}

	return prettyJSON(client)
}

func createClient(ctx context.Context, deps Deps, args Args) (string, error) {
	req := upsertFromArgs(args)

	client, err := deps.API.CreateClient(ctx, req)
	if err != nil {
		return "", err
	}

	return withJSON("Successfully created client: "+responseField(client, "clientId", req.ClientID), client)
}

func updateClient(ctx context.Context, deps Deps, args Args) (string, error) {
	req := upsertFromArgs(args)

	client, err := deps.API.UpdateClient(ctx, req.ClientID, req)
	if err != nil {
		return "", err
	}

	return withJSON("Successfully updated client: "+responseField(client, "clientId", req.ClientID), client)
}

func deleteClient(ctx context.Context, deps Deps, args Args) (string, error) {
	id := args.String("clientId")
	if err := deps.API.DeleteClient(ctx, id); err != nil {
		return "", err
	}

	return "Successfully deleted client: " + id, nil
}

func setClientEnabled(ctx context.Context, deps Deps, args Args) (string, error) {
	id, enabled := args.String("clientId"), args.Bool("enabled")

	client, err := deps.API.SetClientEnabled(ctx, id, enabled)
	if err != nil {
		return "", err
	}

	if v := gjson.GetBytes(client, "enabled"); v.Exists() {
		enabled = v.Bool()
	}

	state := "disabled"
	if enabled {
		state = "enabled"
	}

	return fmt.Sprintf("Client %s is now %s", responseField(client, "clientId", id), state), nil
}

// --- scopes ---

func listScopes(ctx context.Context, deps Deps, _ Args) (string, error) {
	scopes, err := deps.API.ListScopes(ctx)
	if err != nil {
		return "", err
	}

	return prettyJSON(scopes)
}

func createScope(ctx context.Context, deps Deps, args Args) (string, error) {
	name := args.String("scope")

	scope, err := deps.API.CreateScope(ctx, admin.ScopeUpsert{
		Scope:       name,
		Description: args.String("description"),
	})
	if err != nil {
		return "", err
	}

	return withJSON("Successfully created scope: "+responseField(scope, "scope", name), scope)
}

func deleteScope(ctx context.Context, deps Deps, args Args) (string, error) {
	name := args.String("scope")
	if err := deps.API.DeleteScope(ctx, name); err != nil {
		return "", err
	}

	return "Successfully deleted scope: " + name, nil
}

// --- deny rules ---

func listDenyRules(ctx context.Context, deps Deps, _ Args) (string, error) {
	rules, err := deps.API.ListDenyRules(ctx)
	if err != nil {
		return "", err
	}

	return prettyJSON(rules)
}

func createDenyRule(ctx context.Context, deps Deps, args Args) (string, error) {
	rule, err := deps.API.CreateDenyRule(ctx, denyRuleFromArgs(args))
	if err != nil {
		return "", err
	}

	return withJSON(fmt.Sprintf("Successfully created deny rule (ID: %s)", responseField(rule, "id", "unknown")), rule)
}

func updateDenyRule(ctx context.Context, deps Deps, args Args) (string, error) {
	id := args.Int("id")

	rule, err := deps.API.UpdateDenyRule(ctx, id, denyRuleFromArgs(args))
	if err != nil {
		return "", err
	}

	headline := fmt.Sprintf("Successfully updated deny rule (ID: %s)", responseField(rule, "id", strconv.FormatInt(id, 10)))

	return withJSON(headline, rule)
}

func deleteDenyRule(ctx context.Context, deps Deps, args Args) (string, error) {
	id := args.Int("id")
	if err := deps.API.DeleteDenyRule(ctx, id); err != nil {
		return "", err
	}

	return fmt.Sprintf("Successfully deleted deny rule (ID: %d)", id), nil
}

// --- audit ---

func searchAuditEvents(ctx context.Context, deps Deps, args Args) (string, error) {
	page, err := deps.API.SearchAuditEvents(ctx, admin.AuditSearch{
		Principal: args.String("principal"),
		ClientID:  args.String("clientId"),
		EventType: args.String("eventType"),
		Outcome:   args.String("outcome"),
		StartTime: args.String("startTime"),
		EndTime:   args.String("endTime"),
		Page:      int(args.Int("page")),
		Size:      int(args.Int("size")),
	})
	if err != nil {
		return "", err
	}

	return prettyJSON(page)
}

func clientAuditEvents(ctx context.Context, deps Deps, args Args) (string, error) {
	page, err := deps.API.ClientAuditEvents(ctx, args.String("clientId"), int(args.Int("page")), int(args.Int("size")))
	if err != nil {
		return "", err
	}

	return prettyJSON(page)
}

// --- documentation and session ---

func getDocumentation(_ context.Context, deps Deps, args Args) (string, error) {
	topic := args.String("topic")

	doc, ok := deps.Docs.Get(topic)
	if !ok {
		return "", &apperrors.ValidationError{Field: "topic", Reason: "unknown documentation topic " + topic}
	}

	return doc.Body, nil
}

func getScopesReference(ctx context.Context, deps Deps, _ Args) (string, error) {
	scopes, err := deps.API.ListScopes(ctx)
	if err != nil {
		return "", err
	}

	return docs.ScopesReference(scopes), nil
}

func resetToken(_ context.Context, deps Deps, _ Args) (string, error) {
	if deps.Tokens == nil {
		return "", errors.New("no token manager configured")
	}

	deps.Tokens.Reset()

	return "Access token cleared. The next operation will request a new one.", nil
}
