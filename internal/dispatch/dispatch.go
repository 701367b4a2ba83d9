// Package dispatch executes named operations. A Dispatcher looks the
// operation up in the registry, validates its arguments, builds the admin
// API client on first use and runs the handler. Every outcome, including
// validation failures, unknown names and handler panics, comes back as a
// Result; Handle never returns an error.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"runtime/debug"
	"sync"
	"time"

	"github.com/alexjbarnes/oauth2-admin-mcp/internal/docs"
	apperrors "github.com/alexjbarnes/oauth2-admin-mcp/internal/errors"
	"github.com/alexjbarnes/oauth2-admin-mcp/internal/operations"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/semaphore"
)

//go:generate mockgen -source=dispatch.go -destination=mock_tokens_test.go -package=dispatch

const (
	tracerName = "github.com/alexjbarnes/oauth2-admin-mcp/internal/dispatch"

	// maxInFlight bounds the semaphore used for shutdown tracking. It is
	// not a concurrency limit in practice.
	maxInFlight = math.MaxInt32
)

// Tokens is the token manager surface the dispatcher needs.
// *token.Manager satisfies it.
type Tokens interface {
	AccessToken(ctx context.Context) (string, error)
	Reset()
}

// Config wires a Dispatcher.
type Config struct {
	Registry *operations.Registry
	Tokens   Tokens

	// NewAPI builds the admin API client. It is called at most once per
	// successful build, after a token has been obtained.
	NewAPI func() operations.AdminAPI

	Docs           *docs.Library
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
}

// Result is the rendered outcome of one operation.
type Result struct {
	Text    string
	IsError bool
}

// Dispatcher runs operations. It is safe for concurrent use.
type Dispatcher struct {
	registry *operations.Registry
	tokens   Tokens
	newAPI   func() operations.AdminAPI
	docs     *docs.Library
	logger   *slog.Logger
	tracer   trace.Tracer

	mu  sync.Mutex
	api operations.AdminAPI

	inflight *semaphore.Weighted
}

// New creates a Dispatcher. A nil Registry means the full operation
// registry, nil Docs the embedded guides, a nil TracerProvider the
// global one.
func New(cfg Config) *Dispatcher {
	d := &Dispatcher{
		registry: cfg.Registry,
		tokens:   cfg.Tokens,
		newAPI:   cfg.NewAPI,
		docs:     cfg.Docs,
		logger:   cfg.Logger,
		inflight: semaphore.NewWeighted(maxInFlight),
	}

	if d.registry == nil {
		d.registry = operations.NewRegistry()
	}

	if d.docs == nil {
		d.docs = docs.Default()
	}

	if d.logger == nil {
		d.logger = slog.Default()
	}

	tp := cfg.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	d.tracer = tp.Tracer(tracerName)

	return d
}

// Registry returns the registry the dispatcher serves.
func (d *Dispatcher) Registry() *operations.Registry {
	return d.registry
}

// Handle runs the named operation with raw JSON arguments.
func (d *Dispatcher) Handle(ctx context.Context, name string, raw json.RawMessage) Result {
	id := uuid.NewString()
	begin := time.Now()

	ctx, span := d.tracer.Start(ctx, "operation."+name, trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	span.SetAttributes(
		attribute.String("operation.name", name),
		attribute.String("operation.id", id),
	)

	logger := d.logger.With(slog.String("operation", name), slog.String("operation_id", id))

	text, err := d.run(ctx, logger, name, raw)

	elapsed := time.Since(begin)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		attrs := []any{slog.String("error", err.Error()), slog.Duration("elapsed", elapsed)}
		if status := apperrors.StatusOf(err); status != 0 {
			span.SetAttributes(attribute.Int("http.response.status_code", status))
			attrs = append(attrs, slog.Int("status", status))
		}

		attrs = append(attrs, errorDetail(err)...)

		logger.Warn("operation failed", attrs...)

		return Result{Text: "Error: " + err.Error(), IsError: true}
	}

	span.SetStatus(codes.Ok, "")
	logger.Info("operation completed", slog.Duration("elapsed", elapsed))

	return Result{Text: text}
}

// errorDetail pulls the server's own explanation out of an upstream or
// token endpoint error body.
func errorDetail(err error) []any {
	var attrs []any

	var ue *apperrors.UpstreamError
	if errors.As(err, &ue) {
		if reason := ue.Reason(); reason != "" {
			attrs = append(attrs, slog.String("reason", reason))
		}
	}

	var ae *apperrors.AuthError
	if errors.As(err, &ae) {
		if code := ae.Code(); code != "" {
			attrs = append(attrs, slog.String("oauth_error", code))
		}
	}

	return attrs
}

func (d *Dispatcher) run(ctx context.Context, logger *slog.Logger, name string, raw json.RawMessage) (string, error) {
	if err := d.inflight.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("operation not started: %w", err)
	}
	defer d.inflight.Release(1)

	op, ok := d.registry.Lookup(name)
	if !ok {
		return "", &apperrors.UnknownOperationError{Name: name}
	}

	args, err := op.Input.Validate(raw)
	if err != nil {
		return "", err
	}

	deps := operations.Deps{Docs: d.docs, Tokens: d.tokens}

	if !op.Offline {
		api, err := d.adminAPI(ctx)
		if err != nil {
			return "", err
		}

		deps.API = api
	}

	return invoke(ctx, logger, op, deps, args)
}

// invoke runs the handler, turning a panic into an error.
func invoke(ctx context.Context, logger *slog.Logger, op operations.Operation, deps operations.Deps, args operations.Args) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("operation panicked",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)

			err = fmt.Errorf("internal error in %s: %v", op.Name, r)
		}
	}()

	return op.Handler(ctx, deps, args)
}

// adminAPI returns the memoized admin client, building it on first use.
// The first build obtains a token so credential problems surface as an
// AuthError before any admin call. A failed build is retried on the next
// call.
func (d *Dispatcher) adminAPI(ctx context.Context) (operations.AdminAPI, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.api != nil {
		return d.api, nil
	}

	if d.tokens != nil {
		if _, err := d.tokens.AccessToken(ctx); err != nil {
			return nil, err
		}
	}

	if d.newAPI == nil {
		return nil, errors.New("admin API client is not configured")
	}

	d.api = d.newAPI()
	d.logger.Debug("admin API client ready")

	return d.api, nil
}

// Wait blocks until every operation running at the time of the call has
// finished, or ctx is done. Operations started while Wait is blocked
// queue behind it.
func (d *Dispatcher) Wait(ctx context.Context) error {
	if err := d.inflight.Acquire(ctx, maxInFlight); err != nil {
		return fmt.Errorf("waiting for in-flight operations: %w", err)
	}

	d.inflight.Release(maxInFlight)

	return nil
}
