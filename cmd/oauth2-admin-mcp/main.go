package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexjbarnes/oauth2-admin-mcp/internal/admin"
	"github.com/alexjbarnes/oauth2-admin-mcp/internal/config"
	"github.com/alexjbarnes/oauth2-admin-mcp/internal/dispatch"
	"github.com/alexjbarnes/oauth2-admin-mcp/internal/docs"
	"github.com/alexjbarnes/oauth2-admin-mcp/internal/logging"
	"github.com/alexjbarnes/oauth2-admin-mcp/internal/mcpserver"
	"github.com/alexjbarnes/oauth2-admin-mcp/internal/operations"
	"github.com/alexjbarnes/oauth2-admin-mcp/internal/token"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"
)

var Version = "dev"

// shutdownTimeout bounds how long in-flight operations may take to
// finish after a termination signal.
const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, &mcp.StdioTransport{}, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run serves MCP on transport until the client hangs up or ctx is done.
// Logs go to logOut; stdout belongs to the protocol.
func run(ctx context.Context, transport mcp.Transport, logOut io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.NewLogger(logOut, cfg.Environment, cfg.LogLevel)
	logger.Info("oauth2-admin-mcp starting",
		slog.String("version", Version),
		slog.String("server_url", cfg.ServerURL),
		slog.String("client_id", cfg.ClientID),
		slog.Any("scopes", cfg.ScopeList()),
	)

	tokens := token.NewManager(token.Config{
		TokenURL:     cfg.TokenURL(),
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Scopes:       cfg.ScopeList(),
	},
		token.WithLogger(logger.With(slog.String("component", "token"))),
		token.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
	)

	httpClient := admin.NewHTTPClient(tokens, cfg.HTTPTimeout, nil)
	lib := docs.Default()

	dispatcher := dispatch.New(dispatch.Config{
		Registry: operations.NewRegistry(),
		Tokens:   tokens,
		NewAPI: func() operations.AdminAPI {
			return admin.NewClient(cfg.ServerURL, httpClient)
		},
		Docs:   lib,
		Logger: logger.With(slog.String("component", "dispatch")),
	})

	server := mcpserver.NewServer(dispatcher, lib, Version)

	// The session outlives the signal so in-flight replies can still be
	// written; it is cancelled once they finish or the timeout expires.
	serveCtx, cancelServe := context.WithCancel(context.WithoutCancel(ctx))
	defer cancelServe()

	g, gctx := errgroup.WithContext(serveCtx)

	g.Go(func() error {
		defer cancelServe()

		err := server.Run(gctx, transport)
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("mcp server: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		select {
		case <-ctx.Done():
		case <-gctx.Done():
			return nil
		}

		logger.Info("shutting down, waiting for in-flight operations")

		waitCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := dispatcher.Wait(waitCtx); err != nil {
			logger.Warn("in-flight operations did not finish", slog.String("error", err.Error()))
		}

		cancelServe()

		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("oauth2-admin-mcp stopped")

	return nil
}
