package engine

import (
	"log/slog"

	"github.com/dmitrymomot/payloadkit/pkg/module"
	"github.com/dmitrymomot/payloadkit/pkg/store"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger replaces the logger built from Config.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithParams merges params over the params file. Used for command line
// parameters.
func WithParams(params map[string]any) Option {
	return func(e *Engine) {
		e.params.MergeMap(params)
	}
}

// WithCatalog sets the module catalog. Defaults to module.Default().
func WithCatalog(c *module.Catalog) Option {
	return func(e *Engine) {
		if c != nil {
			e.catalog = c
		}
	}
}

// WithStore replaces the state store built from Config.
func WithStore(s store.Store) Option {
	return func(e *Engine) {
		e.states = s
		e.storeSet = true
	}
}

// WithInteractive overrides terminal detection.
func WithInteractive(interactive bool) Option {
	return func(e *Engine) {
		e.interactive = &interactive
	}
}
