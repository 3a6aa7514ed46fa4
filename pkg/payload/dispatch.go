package payload

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrymomot/payloadkit/pkg/binder"
	"github.com/dmitrymomot/payloadkit/pkg/logger"
	"github.com/dmitrymomot/payloadkit/pkg/result"
	"github.com/dmitrymomot/payloadkit/pkg/state"
)

// Call invokes method with arguments bound from the layered parameter
// source. A missing method fails with payload-method-does-not-exist unless
// silent is set. silent also skips calls into an inactive payload, which
// otherwise fail with payload-inactive.
func (p *Payload) Call(ctx context.Context, method string, extra map[string]any, silent bool) *Payload {
	name := NormalizeMethod(method)

	if !p.status.Active() {
		if !silent {
			p.Fail(ctx, result.CodeInactive, map[string]any{
				"type":   p.typ.name,
				"method": name,
				"status": string(p.status),
			})
		}
		return p
	}

	m, ok := p.typ.lookup(name)
	if !ok {
		if !silent {
			p.Fail(ctx, result.CodeMethodDoesNotExist, map[string]any{
				"type":   p.typ.name,
				"method": name,
			})
		}
		return p
	}

	args := binder.Bind(m.params, extra, p.source())

	prev := p.status
	_ = p.transition(StatusRunning)
	p.log.DebugContext(ctx, "payload call", logger.Method(m.name))

	err := p.invoke(ctx, m, args)

	if p.status == StatusRunning {
		p.status = prev
	}
	if err != nil {
		p.recordError(ctx, m.name, err)
	}
	return p
}

func (p *Payload) invoke(ctx context.Context, m *method, args binder.Args) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return m.invoke(ctx, p.value, p, args)
}

// recordError stores a method error. A *result.Error keeps its own code.
func (p *Payload) recordError(ctx context.Context, method string, err error) {
	var re *result.Error
	if errors.As(err, &re) {
		p.Fail(ctx, re.Code, re.Details)
		return
	}
	p.Fail(ctx, result.CodeMethodFailed, map[string]any{
		"type":    p.typ.name,
		"method":  method,
		"message": err.Error(),
	})
}

// source is the binding source: runtime params, route query, payload
// params, later layers winning.
func (p *Payload) source() *state.State {
	src := p.rt.Params()
	if src == nil {
		src = &state.State{}
	}
	return src.MergeMap(p.desc.Query).Merge(p.params)
}

// Run invokes onBeforeRun, then method while the Result is still ok, then
// onAfterRun. Nothing runs when the Result is already a failure. An empty
// method falls back to the route method, then the runtime entry point.
func (p *Payload) Run(ctx context.Context, method string, extra map[string]any) *Payload {
	if !p.result.Ok() {
		return p
	}
	if !p.status.Active() {
		return p.Call(ctx, method, extra, false)
	}

	if method == "" {
		method = p.desc.Method
	}
	if method == "" {
		method = p.rt.EntryPoint()
	}
	if method == "" {
		method = DefaultEntryPoint
	}

	p.Call(ctx, HookBeforeRun, nil, true)
	if p.result.Ok() {
		p.Call(ctx, method, extra, false)
	}
	p.Call(ctx, HookAfterRun, nil, true)
	return p
}

// Mutate creates a payload for routeName with p as its parent, copies p's
// params over the child's own and calls onMutate on it. p becomes Mutated
// until the child calls Unmutate. A failed p is returned unchanged.
func (p *Payload) Mutate(ctx context.Context, routeName string, opts ...Option) *Payload {
	if !p.result.Ok() {
		return p
	}
	if !p.status.Active() {
		return p.Fail(ctx, result.CodeInactive, map[string]any{
			"type":   p.typ.name,
			"route":  routeName,
			"status": string(p.status),
		})
	}

	child := Create(ctx, p.rt, routeName, append(opts, WithParent(p))...)
	child.params.Merge(p.params)

	p.resume = p.status
	_ = p.transition(StatusMutated)
	p.log.DebugContext(ctx, "payload mutated", logger.Payload(child.typ.name))

	child.Call(ctx, HookMutate, nil, true)
	return child
}

// Unmutate copies params and Result back to the parent and returns it,
// resumed in the status it had before Mutate. A payload without a parent
// returns itself.
func (p *Payload) Unmutate() *Payload {
	parent := p.parent
	if parent == nil {
		return p
	}
	parent.params = p.params.Clone()
	parent.result.From(p.result)
	if parent.status == StatusMutated {
		parent.status = parent.resume
	}
	return parent
}

// CheckCaller fails with payload-caller-invalid unless the caller identity
// equals expected.
func (p *Payload) CheckCaller(ctx context.Context, expected string) *Payload {
	if p.caller != expected {
		p.Fail(ctx, result.CodeCallerInvalid, map[string]any{
			"actual":   p.caller,
			"expected": expected,
		})
	}
	return p
}

// CLIOnly fails with payload-cli-only outside an interactive shell.
func (p *Payload) CLIOnly(ctx context.Context) *Payload {
	if !p.rt.Interactive() {
		p.Fail(ctx, result.CodeCLIOnly, map[string]any{"type": p.typ.name})
	}
	return p
}

// Terminate ends the lifecycle. Further calls fail with payload-inactive.
func (p *Payload) Terminate(ctx context.Context) *Payload {
	if err := p.transition(StatusTerminated); err != nil {
		p.log.DebugContext(ctx, "terminate ignored", logger.Error(err))
		return p
	}
	p.log.DebugContext(ctx, "payload terminated", logger.Code(p.result.Code()))
	return p
}
