package payload

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/payloadkit/pkg/result"
	"github.com/dmitrymomot/payloadkit/pkg/route"
	"github.com/dmitrymomot/payloadkit/pkg/state"
	"github.com/dmitrymomot/payloadkit/pkg/store"
)

// Runtime is the context every Payload is created in. Payloads hold it by
// reference and reach nothing else.
type Runtime interface {
	// ResolveRoute maps a route name to a descriptor.
	ResolveRoute(ctx context.Context, name string) route.Descriptor
	// LocateModule returns the canonical path of a module name.
	LocateModule(name string) (string, bool)
	// LoadModule loads a module once and returns the types it introduced.
	LoadModule(ctx context.Context, path string) ([]string, result.Result)
	// LookupType returns a type definition registered by a loaded module.
	LookupType(name string) (any, bool)
	// Params returns a copy of the runtime parameter tree.
	Params() *state.State
	Logger() *slog.Logger
	// Warn logs a non-ok Result.
	Warn(ctx context.Context, res result.Result, attrs ...slog.Attr)
	// Interactive reports whether the process runs in an interactive shell.
	Interactive() bool
	// EntryPoint is the method Run dispatches when none is given.
	EntryPoint() string
	// States returns the state store, or nil when none is configured.
	States() store.Store
}
