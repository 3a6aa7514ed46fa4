package module

import (
	"context"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"
)

// BuiltinRoot is the pseudo project root of built-in modules.
const BuiltinRoot = "builtin:"

// Dir is the module directory inside a project root.
const Dir = "payload"

// Module defines handler types when loaded.
type Module interface {
	Load(ctx context.Context, s *Scope) error
}

// Func adapts a plain function to the Module interface.
type Func func(ctx context.Context, s *Scope) error

// Load calls f.
func (f Func) Load(ctx context.Context, s *Scope) error {
	return f(ctx, s)
}

type entry struct {
	project string
	name    string
	module  Module
}

// Catalog maps canonical module paths to registered modules.
type Catalog struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[string]entry)}
}

var defaultCatalog = NewCatalog()

// Default returns the process-wide catalog used by Register.
func Default() *Catalog {
	return defaultCatalog
}

// Register adds m to the default catalog.
func Register(project, name string, m Module) string {
	return defaultCatalog.Register(project, name, m)
}

// RegisterBuiltin adds a built-in module to the default catalog.
func RegisterBuiltin(name string, m Module) string {
	return defaultCatalog.RegisterBuiltin(name, m)
}

// Register adds m under project and name and returns its canonical path.
// Registering the same path twice replaces the earlier module.
func (c *Catalog) Register(project, name string, m Module) string {
	path := Path(project, name)
	c.mu.Lock()
	c.entries[path] = entry{project: canonicalRoot(project), name: cleanName(name), module: m}
	c.mu.Unlock()
	return path
}

// RegisterBuiltin adds a module searched after every project root.
func (c *Catalog) RegisterBuiltin(name string, m Module) string {
	return c.Register(BuiltinRoot, name, m)
}

// Lookup returns the module registered at path.
func (c *Catalog) Lookup(path string) (Module, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[path]
	return e.module, ok
}

// Locate returns the canonical path of name in the first project root that
// has it registered. Built-in modules are searched last.
func (c *Catalog) Locate(name string, projects []string) (string, bool) {
	if cleanName(name) == "" {
		return "", false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, project := range append(slices.Clone(projects), BuiltinRoot) {
		if project == "" {
			continue
		}
		path := Path(project, name)
		if _, ok := c.entries[path]; ok {
			return path, true
		}
	}
	return "", false
}

// Names returns the sorted, de-duplicated module names visible through
// projects and the built-in root.
func (c *Catalog) Names(projects []string) []string {
	roots := make(map[string]struct{}, len(projects)+1)
	for _, p := range projects {
		if p != "" {
			roots[canonicalRoot(p)] = struct{}{}
		}
	}
	roots[BuiltinRoot] = struct{}{}

	c.mu.RLock()
	seen := make(map[string]struct{})
	for _, e := range c.entries {
		if _, ok := roots[e.project]; ok {
			seen[e.name] = struct{}{}
		}
	}
	c.mu.RUnlock()

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Path returns the canonical path of a module name under a project root.
func Path(project, name string) string {
	name = cleanName(name)
	if project == BuiltinRoot {
		return BuiltinRoot + name
	}
	return filepath.Join(canonicalRoot(project), Dir, filepath.FromSlash(name))
}

func canonicalRoot(project string) string {
	if project == BuiltinRoot {
		return project
	}
	abs, err := filepath.Abs(project)
	if err != nil {
		return filepath.Clean(project)
	}
	return abs
}

func cleanName(name string) string {
	return strings.Trim(strings.TrimSpace(name), "/")
}
