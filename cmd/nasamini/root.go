package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/matiasleandrokruk/nasamini/internal/infra/config"
	"github.com/matiasleandrokruk/nasamini/internal/infra/logging"
	"github.com/matiasleandrokruk/nasamini/internal/version"
)

var errUsage = errors.New("usage error")

type rootOptions struct {
	configPath string
	logLevel   string
	out        io.Writer
	errOut     io.Writer
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	opts := &rootOptions{out: out, errOut: errOut}

	cmd := &cobra.Command{
		Use:           "nasamini",
		Short:         "NASA open-data tools over MCP",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(out, version.String())
			return err
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Mark(err, errUsage)
	})

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (.yaml, .yml or .toml)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override (trace, debug, info, notice, warning, error, critical)")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newToolsCmd(opts))
	cmd.AddCommand(newCallCmd(opts))
	cmd.AddCommand(newVersionCmd(opts))

	return cmd
}

func newVersionCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(opts.out, version.String())
			return err
		},
	}
}

// loadConfig layers defaults < config file < env, then applies the --log-level flag.
func (o *rootOptions) loadConfig() (config.Config, error) {
	cfg := config.Load()
	if path := strings.TrimSpace(o.configPath); path != "" {
		var err error
		if cfg, err = config.LoadFile(path); err != nil {
			return cfg, err
		}
	}
	if o.logLevel != "" {
		cfg.LogLevel = strings.ToLower(o.logLevel)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// setupLogging sends logs to w; stdio mode passes stderr.
func setupLogging(w io.Writer, cfg config.Config) error {
	return logging.Setup(w, cfg.LogLevel)
}

func isUsageError(err error) bool {
	if errors.Is(err, errUsage) {
		return true
	}
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "accepts ") ||
		strings.HasPrefix(msg, "requires at least")
}
