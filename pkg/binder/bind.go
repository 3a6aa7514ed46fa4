package binder

import (
	"strings"

	"github.com/dmitrymomot/payloadkit/pkg/state"
)

// Bind resolves every parameter in params against source with extra layered
// on top, and returns the arguments in declaration order.
func Bind(params []Param, extra map[string]any, source *state.State) Args {
	merged := source.Clone().MergeMap(extra)

	args := Args{
		names:  make([]string, len(params)),
		values: make([]any, len(params)),
	}
	for i, p := range params {
		args.names[i] = p.Name
		args.values[i] = coerce(resolve(p, merged), p.Kind)
	}
	return args
}

// resolve finds the raw value for p: snake path, kebab path, default.
func resolve(p Param, source *state.State) any {
	path := p.Path()
	if v, ok := source.Get(path...); ok {
		return v
	}
	if kebab := kebabPath(path); kebab != nil {
		if v, ok := source.Get(kebab...); ok {
			return v
		}
	}
	if p.HasDefault {
		return p.Default
	}
	return nil
}

// kebabPath returns path with underscores replaced by hyphens, or nil when
// nothing would change.
func kebabPath(path []string) []string {
	out := make([]string, len(path))
	changed := false
	for i, seg := range path {
		out[i] = strings.ReplaceAll(seg, "_", "-")
		changed = changed || out[i] != seg
	}
	if !changed {
		return nil
	}
	return out
}
