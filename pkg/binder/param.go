package binder

import (
	"fmt"
	"strings"
)

// Kind is the declared primitive type of a method parameter.
type Kind int

const (
	KindUnknown Kind = iota
	KindInt
	KindFloat
	KindString
	KindBool
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Param describes one formal parameter of a handler method.
type Param struct {
	Name       string
	Kind       Kind
	Default    any
	HasDefault bool
}

// PathSeparator splits a parameter name into a nested key path.
const PathSeparator = "__"

// Path returns the parameter name as a key path.
func (p Param) Path() []string {
	return strings.Split(p.Name, PathSeparator)
}

// Int declares an integer parameter. An optional default may follow the name.
func Int(name string, def ...int) Param {
	p := Param{Name: name, Kind: KindInt}
	if len(def) > 0 {
		p.Default, p.HasDefault = def[0], true
	}
	return p
}

// Float declares a floating point parameter.
func Float(name string, def ...float64) Param {
	p := Param{Name: name, Kind: KindFloat}
	if len(def) > 0 {
		p.Default, p.HasDefault = def[0], true
	}
	return p
}

// String declares a string parameter.
func String(name string, def ...string) Param {
	p := Param{Name: name, Kind: KindString}
	if len(def) > 0 {
		p.Default, p.HasDefault = def[0], true
	}
	return p
}

// Bool declares a boolean parameter.
func Bool(name string, def ...bool) Param {
	p := Param{Name: name, Kind: KindBool}
	if len(def) > 0 {
		p.Default, p.HasDefault = def[0], true
	}
	return p
}

// Map declares a key-value mapping parameter.
func Map(name string, def ...map[string]any) Param {
	p := Param{Name: name, Kind: KindMap}
	if len(def) > 0 {
		p.Default, p.HasDefault = def[0], true
	}
	return p
}

// Any declares a parameter whose kind the binder does not know. It always
// binds to nil, whatever the source holds.
func Any(name string) Param {
	return Param{Name: name, Kind: KindUnknown}
}

// Validate checks a parameter table for empty and duplicate names.
func Validate(params []Param) error {
	seen := make(map[string]struct{}, len(params))
	for i, p := range params {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("%w: position %d", ErrEmptyParamName, i)
		}
		if _, ok := seen[p.Name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateParam, p.Name)
		}
		seen[p.Name] = struct{}{}
	}
	return nil
}
