package main

import (
	"errors"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/payloadkit/pkg/result"
)

var routeCmd = &cobra.Command{
	Use:                "route [name] [--key=value ...]",
	Short:              "Print the resolved descriptor of a route",
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, positional, err := newEngine(ctx, args)
		if err != nil {
			return err
		}
		defer e.Close()

		var name string
		if len(positional) > 0 {
			name = positional[0]
		}
		desc := e.ResolveRoute(ctx, name)
		if desc.IsEmpty() {
			return errors.New(result.CodeRouteNotFound + ": " + name)
		}

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(desc.Map()); err != nil {
			return err
		}
		return enc.Close()
	},
}

func init() {
	rootCmd.AddCommand(routeCmd)
}
