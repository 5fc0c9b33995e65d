package cli

import (
	"context"
	"fmt"

	bakingmcp "github.com/aretw0/bakingapp/pkg/adapters/mcp"
)

// MCP transports.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// MCPOptions configures RunMCP.
type MCPOptions struct {
	Transport string
	Addr      string
	Version   string
	// Ready, when set, receives the bound address of the SSE listener.
	Ready func(addr string)
}

// RunMCP serves the recipe and session tools to MCP clients.
func RunMCP(ctx context.Context, app *App, opts MCPOptions) error {
	srv := bakingmcp.NewServer(app.Source, app.Sessions,
		bakingmcp.WithLogger(app.Logger),
		bakingmcp.WithVersion(opts.Version),
	)

	switch opts.Transport {
	case "", TransportStdio:
		// Logs go to stderr so they never corrupt JSON-RPC on stdout.
		app.Logger.Info("Starting bakingapp MCP server (stdio)")
		return srv.ServeStdio()
	case TransportSSE:
		addr := opts.Addr
		if addr == "" {
			addr = app.Config.Server.Addr
		}
		return srv.ServeSSE(ctx, addr, opts.Ready)
	default:
		return fmt.Errorf("unknown transport %q (want stdio or sse)", opts.Transport)
	}
}
