package payload

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/dmitrymomot/payloadkit/pkg/binder"
)

// Hook and entry point method names.
const (
	HookCreate        = "onCreate"
	HookMutate        = "onMutate"
	HookBeforeRun     = "onBeforeRun"
	HookAfterRun      = "onAfterRun"
	DefaultEntryPoint = "onRun"
)

// Type is a registered handler type: a constructor plus its method table.
type Type struct {
	name    string
	newFn   func() any
	methods map[string]*method
}

type method struct {
	name   string
	params []binder.Param
	invoke func(ctx context.Context, v any, p *Payload, args binder.Args) error
}

// Method is one entry of a handler method table.
type Method[T any] struct {
	name   string
	params []binder.Param
	fn     func(ctx context.Context, h *T, p *Payload, args binder.Args) error
}

// Func declares a method. params is the ordered argument table.
func Func[T any](name string, fn func(h *T, p *Payload, args binder.Args) error, params ...binder.Param) Method[T] {
	return Method[T]{
		name:   name,
		params: params,
		fn: func(_ context.Context, h *T, p *Payload, args binder.Args) error {
			return fn(h, p, args)
		},
	}
}

// FuncContext is Func for methods that need the dispatch context.
func FuncContext[T any](name string, fn func(ctx context.Context, h *T, p *Payload, args binder.Args) error, params ...binder.Param) Method[T] {
	return Method[T]{name: name, params: params, fn: fn}
}

// NewType builds a handler type. It panics on an empty name or an invalid
// parameter table; inside a module init the panic becomes a load error.
func NewType[T any](name string, methods ...Method[T]) *Type {
	if name == "" {
		panic(ErrEmptyTypeName)
	}
	t := &Type{
		name:    name,
		newFn:   func() any { return new(T) },
		methods: make(map[string]*method, len(methods)),
	}
	for _, m := range methods {
		if err := binder.Validate(m.params); err != nil {
			panic(fmt.Errorf("payload type %s, method %s: %w", name, m.name, err))
		}
		fn := m.fn
		t.methods[methodKey(m.name)] = &method{
			name:   NormalizeMethod(m.name),
			params: m.params,
			invoke: func(ctx context.Context, v any, p *Payload, args binder.Args) error {
				return fn(ctx, v.(*T), p, args)
			},
		}
	}
	return t
}

// Base is the no-op handler type used when creation fails.
var Base = NewType[struct{}]("Payload")

// Name returns the type name.
func (t *Type) Name() string {
	return t.name
}

// New returns a fresh handler value.
func (t *Type) New() any {
	return t.newFn()
}

// Has reports whether the type defines method, after normalization.
func (t *Type) Has(name string) bool {
	_, ok := t.methods[methodKey(name)]
	return ok
}

// Params returns the argument table of a method.
func (t *Type) Params(name string) ([]binder.Param, bool) {
	m, ok := t.methods[methodKey(name)]
	if !ok {
		return nil, false
	}
	return append([]binder.Param(nil), m.params...), true
}

// Methods returns the normalized method names, sorted.
func (t *Type) Methods() []string {
	out := make([]string, 0, len(t.methods))
	for _, m := range t.methods {
		out = append(out, m.name)
	}
	sort.Strings(out)
	return out
}

func (t *Type) lookup(name string) (*method, bool) {
	m, ok := t.methods[methodKey(name)]
	return m, ok
}

// NormalizeMethod converts kebab, snake and space separated names to
// lowerCamelCase: "do-work" and "do_work" become "doWork".
func NormalizeMethod(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || unicode.IsSpace(r)
	})
	var b strings.Builder
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if i == 0 {
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(unicode.ToUpper(r))
		}
		b.WriteString(w[size:])
	}
	return b.String()
}

// methodKey is the case-folded lookup key of a method name.
func methodKey(name string) string {
	return cases.Fold().String(NormalizeMethod(name))
}
