package state

import (
	"fmt"
	"reflect"
	"strings"
)

// State is a nested parameter tree. The zero value is an empty, usable State.
type State struct {
	root map[string]any
}

// New returns a State holding a deep copy of m.
func New(m map[string]any) *State {
	return &State{root: cloneMap(m)}
}

// Get returns the value stored at path.
func (s *State) Get(path ...string) (any, bool) {
	if s == nil || len(path) == 0 {
		return nil, false
	}
	var cur any = s.root
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Lookup is Get with a default for missing paths.
func (s *State) Lookup(def any, path ...string) any {
	if v, ok := s.Get(path...); ok {
		return v
	}
	return def
}

// Set stores v at path, creating intermediate levels and replacing scalars
// that stand in the way.
func (s *State) Set(v any, path ...string) *State {
	if len(path) == 0 {
		return s
	}
	if s.root == nil {
		s.root = make(map[string]any)
	}
	cur := s.root
	for _, key := range path[:len(path)-1] {
		next, ok := cur[key].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[key] = next
		}
		cur = next
	}
	cur[path[len(path)-1]] = cloneValue(normalize(v))
	return s
}

// Delete removes the value at path.
func (s *State) Delete(path ...string) *State {
	if s == nil || s.root == nil || len(path) == 0 {
		return s
	}
	cur := s.root
	for _, key := range path[:len(path)-1] {
		next, ok := cur[key].(map[string]any)
		if !ok {
			return s
		}
		cur = next
	}
	delete(cur, path[len(path)-1])
	return s
}

// Merge deep-merges other into s. Values from other win; nested maps are
// merged key by key.
func (s *State) Merge(other *State) *State {
	if other == nil || len(other.root) == 0 {
		return s
	}
	if s.root == nil {
		s.root = make(map[string]any)
	}
	mergeInto(s.root, other.root)
	return s
}

// MergeMap is Merge for a plain map.
func (s *State) MergeMap(m map[string]any) *State {
	return s.Merge(&State{root: m})
}

// Clone returns a deep copy of s.
func (s *State) Clone() *State {
	if s == nil {
		return &State{}
	}
	return &State{root: cloneMap(s.root)}
}

// Map returns a deep copy of the tree. Never nil.
func (s *State) Map() map[string]any {
	if s == nil || s.root == nil {
		return map[string]any{}
	}
	return cloneMap(s.root)
}

// Len returns the number of top level keys.
func (s *State) Len() int {
	if s == nil {
		return 0
	}
	return len(s.root)
}

// Equal reports whether two States hold the same tree.
func (s *State) Equal(other *State) bool {
	return reflect.DeepEqual(s.Map(), other.Map())
}

// Path splits a dotted key into a path.
func Path(key string) []string {
	if key == "" {
		return nil
	}
	return strings.Split(key, ".")
}

func mergeInto(dst, src map[string]any) {
	for k, v := range src {
		v = normalize(v)
		if srcMap, ok := v.(map[string]any); ok {
			if dstMap, ok := dst[k].(map[string]any); ok {
				mergeInto(dstMap, srcMap)
				continue
			}
		}
		dst[k] = cloneValue(v)
	}
}

// normalize converts yaml-style map[any]any trees into map[string]any.
func normalize(v any) any {
	switch t := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[toKey(k)] = normalize(val)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	default:
		return v
	}
}

func toKey(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(normalize(v))
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = cloneValue(val)
		}
		return out
	default:
		return v
	}
}
