package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/effective-security/xlog"
	"github.com/spf13/cobra"

	"github.com/matiasleandrokruk/nasamini/internal/api"
	"github.com/matiasleandrokruk/nasamini/internal/domain/tool"
	"github.com/matiasleandrokruk/nasamini/internal/mcpserver"
	"github.com/matiasleandrokruk/nasamini/internal/server"
)

var logger = xlog.NewPackageLogger("github.com/matiasleandrokruk/nasamini/cmd", "nasamini")

const mcpInstructions = "Tools proxy public NASA APIs. Every result is a JSON object with ok=true and the " +
	"documented fields, or ok=false and an error."

func newServeCmd(opts *rootOptions) *cobra.Command {
	var (
		host  string
		port  int
		stdio bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tools over MCP (streamable HTTP by default, --stdio for stdin/stdout)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			// stdout carries the protocol in stdio mode
			logOut := opts.out
			if stdio {
				logOut = opts.errOut
			}
			if err := setupLogging(logOut, cfg); err != nil {
				return err
			}

			a, err := newApp(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()), os.Interrupt, syscall.SIGTERM)
			watcherDone := tool.WatchInvocations(ctx, a.bus)
			defer func() {
				stop()
				<-watcherDone
			}()

			mcpServer, err := mcpserver.New(a.registry, mcpserver.Options{Instructions: mcpInstructions})
			if err != nil {
				return err
			}

			if stdio {
				logger.KV(xlog.NOTICE, "status", "serving", "transport", "stdio")
				return mcpserver.RunStdio(ctx, mcpServer)
			}

			router := api.NewRouter(a.registry, mcpserver.HTTPHandler(mcpServer))
			srvCfg := server.DefaultConfig()
			srvCfg.Host = cfg.Host
			srvCfg.Port = cfg.Port
			logger.KV(xlog.NOTICE, "status", "serving", "transport", "http", "addr", cfg.Addr(), "mcp", api.MCPPath)
			return server.NewServer(router, srvCfg).Start(ctx)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "listen host (overrides NASAMINI_HOST)")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides NASAMINI_PORT)")
	cmd.Flags().BoolVar(&stdio, "stdio", false, "serve MCP on stdin/stdout instead of HTTP")

	return cmd
}

// contextOrBackground keeps RunE usable when cobra runs without a context.
func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
