// Package operations declares every named operation the bridge exposes:
// its description, its input shape and the handler that turns validated
// arguments into a single admin API call. The registry is built once and
// never changes, so it can be shared across concurrent calls.
package operations

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexjbarnes/oauth2-admin-mcp/internal/admin"
	"github.com/alexjbarnes/oauth2-admin-mcp/internal/docs"
)

//go:generate mockgen -source=registry.go -destination=mock_adminapi_test.go -package=operations

// AdminAPI is the admin surface handlers call. *admin.Client satisfies
// it. Responses are the server's JSON bodies, unmodified.
type AdminAPI interface {
	ListClients(ctx context.Context) (json.RawMessage, error)
	GetClient(ctx context.Context, clientID string) (json.RawMessage, error)
	CreateClient(ctx context.Context, req admin.ClientUpsert) (json.RawMessage, error)
	UpdateClient(ctx context.Context, clientID string, req admin.ClientUpsert) (json.RawMessage, error)
	DeleteClient(ctx context.Context, clientID string) error
	SetClientEnabled(ctx context.Context, clientID string, enabled bool) (json.RawMessage, error)

	ListScopes(ctx context.Context) (json.RawMessage, error)
	CreateScope(ctx context.Context, req admin.ScopeUpsert) (json.RawMessage, error)
	DeleteScope(ctx context.Context, scope string) error

	ListDenyRules(ctx context.Context) (json.RawMessage, error)
	CreateDenyRule(ctx context.Context, req admin.DenyRuleUpsert) (json.RawMessage, error)
	UpdateDenyRule(ctx context.Context, id int64, req admin.DenyRuleUpsert) (json.RawMessage, error)
	DeleteDenyRule(ctx context.Context, id int64) error

	SearchAuditEvents(ctx context.Context, s admin.AuditSearch) (json.RawMessage, error)
	ClientAuditEvents(ctx context.Context, clientID string, page, size int) (json.RawMessage, error)
}

// TokenResetter discards the cached access token.
type TokenResetter interface {
	Reset()
}

// Deps are the collaborators a handler may use. API is nil for offline
// operations.
type Deps struct {
	API    AdminAPI
	Docs   *docs.Library
	Tokens TokenResetter
}

// Handler runs an operation with validated arguments and returns the
// text shown to the agent.
type Handler func(ctx context.Context, deps Deps, args Args) (string, error)

// Operation is the immutable descriptor of one named operation.
type Operation struct {
	Name        string
	Description string
	Input       Shape

	// Offline operations never touch the admin API, so the dispatcher
	// does not acquire a token for them.
	Offline bool

	Handler Handler
}

// Registry maps operation names to descriptors.
type Registry struct {
	ops    []Operation
	byName map[string]Operation
}

// NewRegistry builds the registry of every operation the bridge serves.
func NewRegistry() *Registry {
	r, err := newRegistry(allOperations())
	if err != nil {
		panic(err)
	}

	return r
}

func newRegistry(ops []Operation) (*Registry, error) {
	r := &Registry{byName: make(map[string]Operation, len(ops))}

	for _, op := range ops {
		if op.Name == "" || op.Handler == nil {
			return nil, fmt.Errorf("operation %q is incomplete", op.Name)
		}

		if _, dup := r.byName[op.Name]; dup {
			return nil, fmt.Errorf("duplicate operation %q", op.Name)
		}

		r.byName[op.Name] = op
		r.ops = append(r.ops, op)
	}

	return r, nil
}

// Lookup returns the operation registered under name.
func (r *Registry) Lookup(name string) (Operation, bool) {
	op, ok := r.byName[name]
	return op, ok
}

// Operations returns every operation in declaration order.
func (r *Registry) Operations() []Operation {
	out := make([]Operation, len(r.ops))
	copy(out, r.ops)

	return out
}
