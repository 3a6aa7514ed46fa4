package route

import "github.com/dmitrymomot/payloadkit/pkg/state"

// Route file keys.
const (
	KeyLibrary = "library"
	KeyClass   = "class"
	KeyMethod  = "method"
	KeyQuery   = "query"
	KeyEnabled = "enabled"
)

// Built-in default route values.
const (
	DefaultModule = "default"
	DefaultType   = "Default"
)

// aliases maps accepted alternative keys to their canonical form.
var aliases = map[string]string{
	"module": KeyLibrary,
	"type":   KeyClass,
}

// Default is the hardcoded fallback route.
func Default() map[string]any {
	return map[string]any{
		KeyLibrary: DefaultModule,
		KeyClass:   DefaultType,
		KeyMethod:  "",
		KeyQuery:   map[string]any{},
	}
}

// Descriptor is a resolved route. The zero value is the empty descriptor.
type Descriptor struct {
	Module  string
	Type    string
	Method  string
	Query   map[string]any
	Enabled bool
}

// IsEmpty reports whether the descriptor resolves to nothing.
func (d Descriptor) IsEmpty() bool {
	return d.Module == "" && d.Type == "" && !d.Enabled
}

// Map renders the descriptor with route file keys.
func (d Descriptor) Map() map[string]any {
	if d.IsEmpty() {
		return map[string]any{}
	}
	q := state.New(d.Query).Map()
	return map[string]any{
		KeyLibrary: d.Module,
		KeyClass:   d.Type,
		KeyMethod:  d.Method,
		KeyQuery:   q,
		KeyEnabled: d.Enabled,
	}
}

// canonical rewrites alias keys. A canonical key present in m wins over its alias.
func canonical(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if _, ok := aliases[k]; ok {
			continue
		}
		out[k] = v
	}
	for alias, key := range aliases {
		if v, ok := m[alias]; ok {
			if _, exists := out[key]; !exists {
				out[key] = v
			}
		}
	}
	return out
}

// layer merges sources key by key; the first non-empty value wins.
func layer(sources ...map[string]any) map[string]any {
	out := make(map[string]any)
	for _, src := range sources {
		for k, v := range canonical(src) {
			if isEmpty(v) {
				continue
			}
			if _, ok := out[k]; !ok {
				out[k] = v
			}
		}
	}
	return out
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case map[string]any:
		return len(t) == 0
	case map[any]any:
		return len(t) == 0
	default:
		return false
	}
}

// build converts a merged route map into a descriptor, applying the
// enabled gate.
func build(m map[string]any) Descriptor {
	enabled := true
	if v, ok := m[KeyEnabled]; ok {
		enabled = truthy(v)
	}
	if !enabled {
		return Descriptor{}
	}
	d := Descriptor{
		Module:  str(m[KeyLibrary]),
		Type:    str(m[KeyClass]),
		Method:  str(m[KeyMethod]),
		Query:   query(m[KeyQuery]),
		Enabled: true,
	}
	return d
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch t {
		case "false", "0", "no", "off", "":
			return false
		}
		return true
	case int:
		return t != 0
	default:
		return v != nil
	}
}

func query(v any) map[string]any {
	out := map[string]any{}
	switch t := v.(type) {
	case map[string]any:
		return state.New(t).Map()
	case map[any]any:
		for k, val := range t {
			if ks, ok := k.(string); ok {
				out[ks] = val
			}
		}
	}
	return state.New(out).Map()
}
