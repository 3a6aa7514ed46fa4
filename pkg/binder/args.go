package binder

// Args is the ordered argument list produced by Bind.
type Args struct {
	names  []string
	values []any
}

// Len returns the number of bound arguments.
func (a Args) Len() int {
	return len(a.values)
}

// At returns the argument at position i, or nil when out of range.
func (a Args) At(i int) any {
	if i < 0 || i >= len(a.values) {
		return nil
	}
	return a.values[i]
}

// Values returns the arguments in declaration order.
func (a Args) Values() []any {
	out := make([]any, len(a.values))
	copy(out, a.values)
	return out
}

// Value returns the argument bound to the parameter called name.
func (a Args) Value(name string) (any, bool) {
	for i, n := range a.names {
		if n == name {
			return a.values[i], true
		}
	}
	return nil, false
}

// Int returns the named value as int, or 0 when absent.
func (a Args) Int(name string) int {
	v, _ := a.Value(name)
	n, _ := v.(int)
	return n
}

// Float returns the named value as float64, or 0 when absent.
func (a Args) Float(name string) float64 {
	v, _ := a.Value(name)
	f, _ := v.(float64)
	return f
}

// String returns the named value as string, or "" when absent.
func (a Args) String(name string) string {
	v, _ := a.Value(name)
	s, _ := v.(string)
	return s
}

// Bool returns the named value as bool, or false when absent.
func (a Args) Bool(name string) bool {
	v, _ := a.Value(name)
	b, _ := v.(bool)
	return b
}

// Map returns the named value as a map, or nil when absent.
func (a Args) Map(name string) map[string]any {
	v, _ := a.Value(name)
	m, _ := v.(map[string]any)
	return m
}
