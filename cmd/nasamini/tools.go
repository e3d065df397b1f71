package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newToolsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List available tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			for _, def := range a.registry.Definitions() {
				if _, err := fmt.Fprintf(opts.out, "%s: %s\n", def.Name, def.Description); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
