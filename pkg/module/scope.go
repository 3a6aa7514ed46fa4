package module

import "fmt"

// Scope collects the types a module defines during its init call.
// Definitions are committed to the loader only when init succeeds.
type Scope struct {
	path   string
	loader *Loader
	names  []string
	defs   map[string]any
}

// Path returns the canonical path of the module being loaded.
func (s *Scope) Path() string {
	return s.path
}

// Define registers a type definition under name. Names are unique per
// process.
func (s *Scope) Define(name string, def any) error {
	if name == "" {
		return ErrEmptyTypeName
	}
	if _, ok := s.defs[name]; ok {
		return fmt.Errorf("%w: %s", ErrTypeExists, name)
	}
	if _, ok := s.loader.Type(name); ok {
		return fmt.Errorf("%w: %s", ErrTypeExists, name)
	}
	s.names = append(s.names, name)
	s.defs[name] = def
	return nil
}
