package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var modulesCmd = &cobra.Command{
	Use:                "modules [--engine.projects=a;b]",
	Short:              "List the modules reachable through the project roots",
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, _, err := newEngine(cmd.Context(), args)
		if err != nil {
			return err
		}
		defer e.Close()

		for _, name := range e.Available() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modulesCmd)
}
