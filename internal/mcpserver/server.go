// Package mcpserver exposes a tool registry over the Model Context Protocol.
package mcpserver

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/matiasleandrokruk/nasamini/internal/domain/tool"
	"github.com/matiasleandrokruk/nasamini/internal/version"
)

var logger = xlog.NewPackageLogger("github.com/matiasleandrokruk/nasamini/internal", "mcpserver")

// Options tunes the advertised server identity.
type Options struct {
	Name         string
	Version      string
	Instructions string
}

// New builds an MCP server with one tool per registry definition.
func New(registry *tool.ToolRegistry, opts Options) (*mcp.Server, error) {
	if registry == nil {
		return nil, errors.New("mcpserver: registry is required")
	}
	if opts.Name == "" {
		opts.Name = version.Name
	}
	if opts.Version == "" {
		opts.Version = version.Version
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: opts.Name, Version: opts.Version},
		&mcp.ServerOptions{Instructions: opts.Instructions},
	)

	for _, def := range registry.Definitions() {
		schema, err := registry.Schema(def.Name)
		if err != nil {
			return nil, errors.Wrapf(err, "mcpserver: schema for %s", def.Name)
		}
		server.AddTool(&mcp.Tool{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: schema,
		}, toolHandler(registry, def.Name))
	}

	logger.KV(xlog.DEBUG, "status", "mcp_server_ready", "tools", len(registry.Definitions()))
	return server, nil
}

// toolHandler returns the envelope both as text content and as structured content.
// IsError mirrors the envelope's ok flag.
func toolHandler(registry *tool.ToolRegistry, name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args json.RawMessage
		if req != nil && req.Params != nil {
			args = req.Params.Arguments
		}

		envelope, err := registry.Invoke(ctx, name, args)
		if err != nil {
			return nil, err
		}
		return &mcp.CallToolResult{
			Content:           []mcp.Content{&mcp.TextContent{Text: string(envelope)}},
			StructuredContent: envelope,
			IsError:           !tool.IsOK(envelope),
		}, nil
	}
}

// HTTPHandler serves server over the streamable HTTP transport.
func HTTPHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil)
}

// RunStdio serves server on stdin/stdout until ctx is done or the peer disconnects.
func RunStdio(ctx context.Context, server *mcp.Server) error {
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return errors.Wrap(err, "mcpserver: stdio")
	}
	return nil
}
