package payload

import (
	"context"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/dmitrymomot/payloadkit/pkg/logger"
	"github.com/dmitrymomot/payloadkit/pkg/result"
	"github.com/dmitrymomot/payloadkit/pkg/route"
	"github.com/dmitrymomot/payloadkit/pkg/state"
)

// Payload is a handler instance serving one resolved route.
type Payload struct {
	id     string
	rt     Runtime
	typ    *Type
	value  any
	route  string
	desc   route.Descriptor
	parent *Payload
	caller string
	params *state.State
	result result.Result
	status Status
	resume Status
	log    *slog.Logger
}

// Option configures Create and Mutate.
type Option func(*options)

type options struct {
	caller string
	parent *Payload
}

// WithCaller sets the caller identity checked by CheckCaller.
func WithCaller(caller string) Option {
	return func(o *options) {
		o.caller = caller
	}
}

// WithParent links the new payload to parent and copies parent's Result.
func WithParent(parent *Payload) Option {
	return func(o *options) {
		o.parent = parent
	}
}

// Create resolves routeName and instantiates its handler type. It never
// fails: when the route, module or type cannot be resolved the warning is
// logged and a Base payload carrying the failure is returned.
func Create(ctx context.Context, rt Runtime, routeName string, opts ...Option) *Payload {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	desc, typ, res := resolve(ctx, rt, routeName)
	if !res.Ok() {
		rt.Warn(ctx, res, logger.Route(routeName))
		typ = Base
	} else if o.parent != nil {
		res = o.parent.result.Clone()
	}

	p := &Payload{
		id:     uuid.NewString(),
		rt:     rt,
		typ:    typ,
		value:  typ.New(),
		route:  routeName,
		desc:   desc,
		parent: o.parent,
		caller: o.caller,
		params: &state.State{},
		result: res,
		status: StatusCreated,
	}
	p.log = rt.Logger().With(
		logger.PayloadID(p.id),
		logger.Payload(typ.Name()),
		logger.Route(routeName),
	)
	p.log.DebugContext(ctx, "payload created")

	p.Call(ctx, HookCreate, nil, true)
	if p.status == StatusCreated {
		_ = p.transition(StatusConfigured)
	}
	return p
}

// resolve walks route, module and type resolution and stops at the first
// failure.
func resolve(ctx context.Context, rt Runtime, name string) (route.Descriptor, *Type, result.Result) {
	desc := rt.ResolveRoute(ctx, name)
	if desc.IsEmpty() {
		return desc, nil, result.Failed(result.CodeRouteNotFound, map[string]any{
			"route": name,
		})
	}

	path, ok := rt.LocateModule(desc.Module)
	if !ok {
		return desc, nil, result.Failed(result.CodeLibraryNotFound, map[string]any{
			"route":   name,
			"library": desc.Module,
		})
	}

	names, res := rt.LoadModule(ctx, path)
	if !res.Ok() {
		return desc, nil, res
	}
	if len(names) == 0 {
		return desc, nil, result.Failed(result.CodeLibraryNoClasses, map[string]any{
			"route":   name,
			"library": path,
		})
	}

	typeName := selectType(desc.Type, names)
	if typeName == "" {
		return desc, nil, result.Failed(result.CodeClassNotFound, map[string]any{
			"route":   name,
			"library": path,
			"class":   desc.Type,
			"classes": names,
		})
	}

	def, _ := rt.LookupType(typeName)
	typ, ok := def.(*Type)
	if !ok || typ == nil {
		return desc, nil, result.Failed(result.CodeClassNotPayload, map[string]any{
			"route":   name,
			"library": path,
			"class":   typeName,
		})
	}
	return desc, typ, result.New()
}

// selectType picks the declared type when the module defines it. A route
// that never named a type (the built-in default is still in place) gets
// the module's first type.
func selectType(declared string, names []string) string {
	if slices.Contains(names, declared) {
		return declared
	}
	if declared == "" || declared == route.DefaultType {
		return names[0]
	}
	return ""
}

// ID returns the instance id used in log records.
func (p *Payload) ID() string { return p.id }

// Type returns the handler type.
func (p *Payload) Type() *Type { return p.typ }

// TypeName returns the handler type name.
func (p *Payload) TypeName() string { return p.typ.name }

// Value returns the handler value, a *T for a Type built with NewType[T].
func (p *Payload) Value() any { return p.value }

// Route returns the route name the payload was created for.
func (p *Payload) Route() string { return p.route }

// Descriptor returns the resolved route descriptor.
func (p *Payload) Descriptor() route.Descriptor { return p.desc }

// Parent returns the payload this one was mutated from, if any.
func (p *Payload) Parent() *Payload { return p.parent }

// Caller returns the caller identity set with WithCaller.
func (p *Payload) Caller() string { return p.caller }

// Status returns the lifecycle status.
func (p *Payload) Status() Status { return p.status }

// Runtime returns the runtime the payload was created with.
func (p *Payload) Runtime() Runtime { return p.rt }

// Logger returns the payload-scoped logger.
func (p *Payload) Logger() *slog.Logger { return p.log }

// Result returns a copy of the current Result.
func (p *Payload) Result() result.Result { return p.result.Clone() }

// Ok reports whether the Result is ok.
func (p *Payload) Ok() bool { return p.result.Ok() }

// Fail records a failure and logs it as a warning.
func (p *Payload) Fail(ctx context.Context, code string, details map[string]any) *Payload {
	p.result.Set(code, details)
	p.warn(ctx)
	return p
}

// SetOk resets the Result.
func (p *Payload) SetOk() *Payload {
	p.result.SetOk()
	return p
}

func (p *Payload) warn(ctx context.Context) {
	if p.result.Ok() {
		return
	}
	p.rt.Warn(ctx, p.result,
		logger.PayloadID(p.id),
		logger.Payload(p.typ.name),
		logger.Route(p.route),
	)
}
