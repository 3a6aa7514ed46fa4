package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/payloadkit/pkg/config"
	"github.com/dmitrymomot/payloadkit/pkg/engine"
	"github.com/dmitrymomot/payloadkit/pkg/state"
)

// envFileParam names the parameter that selects env files.
const envFileParam = "env-file"

var rootCmd = &cobra.Command{
	Use:           "payloadctl",
	Short:         "Resolve routes and dispatch payloads",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		printError(err)
	}
	return err
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
}

// newEngine parses command line parameters, loads env files and the engine
// configuration and builds an Engine. Positional arguments are returned.
func newEngine(ctx context.Context, args []string) (*engine.Engine, []string, error) {
	params, positional := state.FromArgs(args)

	var envFiles []string
	if v, ok := params.Get(envFileParam); ok {
		if s, ok := v.(string); ok && s != "" {
			envFiles = append(envFiles, s)
		}
		params.Delete(envFileParam)
	}
	if err := config.LoadEnv(envFiles...); err != nil {
		return nil, nil, err
	}

	var cfg engine.Config
	if err := config.Load(&cfg); err != nil {
		return nil, nil, err
	}

	e, err := engine.New(ctx, cfg, engine.WithParams(params.Map()))
	if err != nil {
		return nil, nil, err
	}
	return e, positional, nil
}
