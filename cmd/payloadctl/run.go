package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [route] [--key=value ...]",
	Short: "Dispatch a payload",
	Long: `Dispatches the given route, or the one named by --engine.payload,
and prints its result as JSON. Exits non-zero when the result is a failure.`,
	DisableFlagParsing: true,
	RunE:               runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e, positional, err := newEngine(ctx, args)
	if err != nil {
		return err
	}
	defer e.Close()

	if len(positional) > 0 {
		e.SetParam(positional[0], "engine", "payload")
	}

	res := e.Run(ctx)
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(res.Map()); err != nil {
		return err
	}
	return res.Err()
}
