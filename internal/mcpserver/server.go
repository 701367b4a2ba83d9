// Package mcpserver exposes the dispatcher over MCP. Every registered
// operation becomes a tool whose input schema is derived from the
// operation's shape, and every guide becomes a markdown resource.
package mcpserver

import (
	"context"
	"errors"
	"strings"

	"github.com/alexjbarnes/oauth2-admin-mcp/internal/dispatch"
	"github.com/alexjbarnes/oauth2-admin-mcp/internal/docs"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Name is the implementation name reported to clients.
const Name = "oauth2-admin-mcp"

// Instructions is sent to clients during initialization.
const Instructions = `Administer an OAuth2 authorization server.

- Clients: list_clients, get_client, create_client, update_client, delete_client, set_client_enabled. System clients cannot be deleted.
- Scopes: list_scopes, create_scope, delete_scope. System scopes cannot be deleted.
- Deny rules: list_deny_rules, create_deny_rule, update_deny_rule, delete_deny_rule. Rule types are USERNAME, EMAIL, IP_ADDRESS and CLIENT_ID.
- Audit: search_audit_events, get_client_audit_events. Pages are 0-based with 20 events per page by default.
- If an operation fails with 401, call reset_token and retry once.
- Guides are available as resources under oauth2://docs/ and through get_documentation.`

// NewServer creates an MCP server with every tool and resource
// registered.
func NewServer(d *dispatch.Dispatcher, lib *docs.Library, version string) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: Name, Version: version},
		&mcp.ServerOptions{Instructions: Instructions},
	)
	Register(server, d, lib)

	return server
}

// Register adds one tool per dispatcher operation and one resource per
// guide, plus the live scopes reference.
func Register(server *mcp.Server, d *dispatch.Dispatcher, lib *docs.Library) {
	server.AddReceivingMiddleware(unknownTools(d))

	for _, op := range d.Registry().Operations() {
		server.AddTool(&mcp.Tool{
			Name:        op.Name,
			Description: op.Description,
			InputSchema: op.Input.JSONSchema(),
		}, toolHandler(d, op.Name))
	}

	for _, doc := range lib.Documents() {
		server.AddResource(&mcp.Resource{
			URI:         doc.URI(),
			Name:        doc.Slug,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    docs.MIMEType,
		}, guideHandler(lib))
	}

	server.AddResource(&mcp.Resource{
		URI:         docs.ScopesURI(),
		Name:        docs.ScopesSlug,
		Title:       docs.ScopesTitle,
		Description: docs.ScopesDescription,
		MIMEType:    docs.MIMEType,
	}, scopesHandler(d))
}

// --- Handlers ---

// toolHandler forwards the raw arguments to the dispatcher. Failures are
// tool errors, never protocol errors, so the agent can read them.
func toolHandler(d *dispatch.Dispatcher, name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args []byte
		if req != nil && req.Params != nil {
			args = req.Params.Arguments
		}

		return toolResult(d.Handle(ctx, name, args)), nil
	}
}

// unknownTools routes calls to unregistered tool names through the
// dispatcher so they come back as tool errors like every other failure.
// The SDK would otherwise answer with a JSON-RPC error.
func unknownTools(d *dispatch.Dispatcher) mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			call, ok := req.(*mcp.CallToolRequest)
			if !ok || call.Params == nil {
				return next(ctx, method, req)
			}

			if _, known := d.Registry().Lookup(call.Params.Name); known {
				return next(ctx, method, req)
			}

			return toolResult(d.Handle(ctx, call.Params.Name, call.Params.Arguments)), nil
		}
	}
}

func toolResult(res dispatch.Result) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: res.Text}},
		IsError: res.IsError,
	}
}

func guideHandler(lib *docs.Library) mcp.ResourceHandler {
	return func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		uri := requestURI(req)

		doc, ok := lib.Get(strings.TrimPrefix(uri, docs.URIPrefix))
		if !ok || !strings.HasPrefix(uri, docs.URIPrefix) {
			return nil, mcp.ResourceNotFoundError(uri)
		}

		return markdown(uri, doc.Body), nil
	}
}

// scopesHandler renders the scopes reference from the live scope list.
func scopesHandler(d *dispatch.Dispatcher) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		uri := requestURI(req)
		if uri != docs.ScopesURI() {
			return nil, mcp.ResourceNotFoundError(uri)
		}

		res := d.Handle(ctx, "get_scopes_reference", nil)
		if res.IsError {
			return nil, errors.New(strings.TrimPrefix(res.Text, "Error: "))
		}

		return markdown(uri, res.Text), nil
	}
}

func requestURI(req *mcp.ReadResourceRequest) string {
	if req == nil || req.Params == nil {
		return ""
	}

	return strings.TrimSpace(req.Params.URI)
}

func markdown(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: docs.MIMEType,
			Text:     text,
		}},
	}
}
