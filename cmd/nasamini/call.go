package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/matiasleandrokruk/nasamini/internal/domain/tool"
)

func newCallCmd(opts *rootOptions) *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "call <tool> [params-json|-]",
		Short: "Invoke one tool and print its JSON envelope",
		Long: "Invoke one tool and print its JSON envelope. Params default to {}; pass - to read them from stdin.\n" +
			"The exit code is 1 when the envelope has ok=false.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			// stdout carries the envelope
			if err := setupLogging(opts.errOut, cfg); err != nil {
				return err
			}

			params, err := readParams(args[1:], cmd.InOrStdin())
			if err != nil {
				return err
			}

			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			envelope, err := a.registry.Invoke(contextOrBackground(cmd.Context()), args[0], params)
			if err != nil {
				return errors.Mark(err, errUsage)
			}

			if pretty {
				var buf bytes.Buffer
				if err := json.Indent(&buf, envelope, "", "  "); err == nil {
					envelope = buf.Bytes()
				}
			}
			if _, err := fmt.Fprintln(opts.out, string(envelope)); err != nil {
				return err
			}
			if !tool.IsOK(envelope) {
				return errors.New("tool returned ok=false")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON output")
	return cmd
}

func readParams(args []string, stdin io.Reader) (json.RawMessage, error) {
	if len(args) == 0 {
		return json.RawMessage(`{}`), nil
	}
	raw := []byte(args[0])
	if args[0] == "-" {
		if stdin == nil {
			stdin = os.Stdin
		}
		var err error
		if raw, err = io.ReadAll(stdin); err != nil {
			return nil, errors.Wrap(err, "read params from stdin")
		}
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return json.RawMessage(`{}`), nil
	}
	if !json.Valid(raw) {
		return nil, errors.Mark(errors.New("params must be valid json"), errUsage)
	}
	return raw, nil
}
