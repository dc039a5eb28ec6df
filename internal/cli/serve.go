package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	httpadapter "github.com/aretw0/baristabot/pkg/adapters/http"
	"github.com/aretw0/baristabot/pkg/adapters/mcp"
	"github.com/aretw0/baristabot/pkg/observability"
)

// ShutdownTimeout bounds graceful shutdown of the servers.
const ShutdownTimeout = 5 * time.Second

// NewHTTPHandler builds the session API with /metrics enabled.
func (a *App) NewHTTPHandler() (http.Handler, error) {
	eng, err := a.BuildEngine(nil)
	if err != nil {
		return nil, err
	}
	return httpadapter.NewHandler(eng, a.Sessions,
		httpadapter.WithMenu(a.Menu),
		httpadapter.WithMetricsHandler(observability.Handler(a.Registry)),
		httpadapter.WithMaxInputSize(a.Config.MaxInputSize),
		httpadapter.WithLogger(a.Logger),
	), nil
}

// Serve runs the HTTP API on addr until ctx is cancelled.
func Serve(ctx context.Context, app *App, addr string) error {
	handler, err := app.NewHTTPHandler()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		app.Logger.Info("Starting BaristaBot server", "address", addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.Logger.Warn("Graceful shutdown did not complete", "timeout", ShutdownTimeout, "error", err)
			return srv.Close()
		}
		app.Logger.Info("BaristaBot server stopped gracefully")
		return nil
	}
}

// ServeMCP runs the MCP server over stdio, or over SSE on port when sse is set.
func ServeMCP(ctx context.Context, app *App, sse bool, port int) error {
	eng, err := app.BuildEngine(nil)
	if err != nil {
		return err
	}
	srv := mcp.NewServer(eng, app.Sessions, app.Menu,
		mcp.WithLogger(app.Logger),
		mcp.WithMaxInputSize(app.Config.MaxInputSize),
	)

	if !sse {
		app.Logger.Info("Starting BaristaBot MCP server (stdio)")
		return srv.ServeStdio()
	}

	app.Logger.Info("Starting BaristaBot MCP server (SSE)", "port", port)
	if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
