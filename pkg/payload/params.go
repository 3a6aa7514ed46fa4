package payload

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrymomot/payloadkit/pkg/result"
	"github.com/dmitrymomot/payloadkit/pkg/state"
	"github.com/dmitrymomot/payloadkit/pkg/store"
)

// ConfigKey is the runtime params branch holding per-type defaults:
// engine.payloads.<Type>.<path>.
var ConfigKey = []string{"engine", "payloads"}

// Params returns a copy of the payload's parameter store.
func (p *Payload) Params() *state.State {
	return p.params.Clone()
}

// SetParam stores v at path in the payload's parameter store.
func (p *Payload) SetParam(v any, path ...string) *Payload {
	p.params.Set(v, path...)
	return p
}

// Param returns the payload parameter at path, falling back to the runtime
// params under engine.payloads.<Type>.
func (p *Payload) Param(path ...string) (any, bool) {
	if v, ok := p.params.Get(path...); ok {
		return v, true
	}
	params := p.rt.Params()
	if params == nil || len(path) == 0 {
		return nil, false
	}
	full := append(append(append([]string{}, ConfigKey...), strings.Split(p.typ.name, "/")...), path...)
	return params.Get(full...)
}

// ParamOr is Param with a default.
func (p *Payload) ParamOr(def any, path ...string) any {
	if v, ok := p.Param(path...); ok {
		return v
	}
	return def
}

// SaveState persists v under the payload type and path.
func (p *Payload) SaveState(ctx context.Context, v any, path ...string) *Payload {
	s := p.rt.States()
	if s == nil {
		return p.stateError(ctx, path, ErrNoStateStore)
	}
	if err := s.Save(ctx, store.NewKey(p.typ.name, path...), v); err != nil {
		return p.stateError(ctx, path, err)
	}
	return p
}

// LoadState decodes the value stored under path into dst. It reports false
// when nothing is stored or the read failed; only failures touch the
// Result.
func (p *Payload) LoadState(ctx context.Context, dst any, path ...string) bool {
	s := p.rt.States()
	if s == nil {
		p.stateError(ctx, path, ErrNoStateStore)
		return false
	}
	err := s.Load(ctx, store.NewKey(p.typ.name, path...), dst)
	if errors.Is(err, store.ErrNotFound) {
		return false
	}
	if err != nil {
		p.stateError(ctx, path, err)
		return false
	}
	return true
}

// DeleteState removes the value stored under path.
func (p *Payload) DeleteState(ctx context.Context, path ...string) *Payload {
	s := p.rt.States()
	if s == nil {
		return p.stateError(ctx, path, ErrNoStateStore)
	}
	if err := s.Delete(ctx, store.NewKey(p.typ.name, path...)); err != nil {
		return p.stateError(ctx, path, err)
	}
	return p
}

func (p *Payload) stateError(ctx context.Context, path []string, err error) *Payload {
	return p.Fail(ctx, result.CodeStateError, map[string]any{
		"type":    p.typ.name,
		"path":    strings.Join(path, "/"),
		"message": err.Error(),
	})
}
