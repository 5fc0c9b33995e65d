package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	bakinghttp "github.com/aretw0/bakingapp/pkg/adapters/http"
)

// ServeOptions configures RunServe.
type ServeOptions struct {
	Addr    string
	Version string
	// Ready, when set, receives the bound address once the listener is open.
	Ready func(addr string)
}

// RunServe serves the HTTP API until ctx is cancelled, then shuts down gracefully.
func RunServe(ctx context.Context, app *App, opts ServeOptions) error {
	addr := opts.Addr
	if addr == "" {
		addr = app.Config.Server.Addr
	}

	handler := bakinghttp.NewHandler(app.Source, app.Sessions,
		bakinghttp.WithMetrics(app.Metrics),
		bakinghttp.WithLifecycleHooks(app.Hooks),
		bakinghttp.WithLogger(app.Logger),
		bakinghttp.WithVersion(opts.Version),
		bakinghttp.WithLocale(app.Config.UI.Locale),
	)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		app.Logger.Info("Starting bakingapp server", "addr", ln.Addr().String(), "recipes", app.Config.API.URL)
		serverErrors <- srv.Serve(ln)
	}()
	if opts.Ready != nil {
		opts.Ready(ln.Addr().String())
	}

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		timeout := app.Config.Server.ShutdownTimeout
		app.Logger.Info("Start shutdown", "timeout", timeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.Logger.Warn("Graceful shutdown did not complete", "err", err)
			return srv.Close()
		}
		app.Logger.Info("Server stopped gracefully")
		return nil
	}
}
