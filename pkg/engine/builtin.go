package engine

import (
	"context"

	"github.com/dmitrymomot/payloadkit/pkg/binder"
	"github.com/dmitrymomot/payloadkit/pkg/module"
	"github.com/dmitrymomot/payloadkit/pkg/payload"
	"github.com/dmitrymomot/payloadkit/pkg/route"
)

// Lister is implemented by runtimes that can list their modules.
type Lister interface {
	Available() []string
}

type defaultPayload struct{}

// DefaultType is the handler served by the built-in default module. Its
// onRun stores the available module names in the "modules" param and logs
// them.
var DefaultType = payload.NewType[defaultPayload](route.DefaultType,
	payload.FuncContext(payload.DefaultEntryPoint, func(ctx context.Context, _ *defaultPayload, p *payload.Payload, _ binder.Args) error {
		var names []string
		if l, ok := p.Runtime().(Lister); ok {
			names = l.Available()
		}
		p.SetParam(names, "modules")
		p.Logger().InfoContext(ctx, "available payloads", "modules", names)
		return nil
	}),
)

func defineDefault(_ context.Context, s *module.Scope) error {
	return s.Define(route.DefaultType, DefaultType)
}
