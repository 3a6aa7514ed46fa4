package module

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/payloadkit/pkg/result"
)

// Loader loads catalog modules at most once per process and keeps the
// registry of defined types.
type Loader struct {
	catalog *Catalog
	logger  *slog.Logger
	group   singleflight.Group

	mu     sync.RWMutex
	loaded map[string][]string
	types  map[string]any
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the loader logger.
func WithLogger(l *slog.Logger) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// NewLoader creates a loader over catalog. A nil catalog means Default().
func NewLoader(catalog *Catalog, opts ...Option) *Loader {
	if catalog == nil {
		catalog = Default()
	}
	l := &Loader{
		catalog: catalog,
		logger:  slog.Default(),
		loaded:  make(map[string][]string),
		types:   make(map[string]any),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Catalog returns the catalog the loader reads from.
func (l *Loader) Catalog() *Catalog {
	return l.catalog
}

// Locate returns the canonical path of name across projects.
func (l *Loader) Locate(name string, projects []string) (string, bool) {
	return l.catalog.Locate(name, projects)
}

// Available lists the module names reachable through projects.
func (l *Loader) Available(projects []string) []string {
	return l.catalog.Names(projects)
}

// Loaded reports whether path has been loaded successfully.
func (l *Loader) Loaded(path string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.loaded[path]
	return ok
}

// Type returns a defined type by name.
func (l *Loader) Type(name string) (any, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	def, ok := l.types[name]
	return def, ok
}

// Load makes sure the module at path has been initialized and returns the
// names of the types it introduced, in definition order.
func (l *Loader) Load(ctx context.Context, path string) ([]string, result.Result) {
	if names, ok := l.cached(path); ok {
		return names, result.New()
	}

	v, err, shared := l.group.Do(path, func() (any, error) {
		if names, ok := l.cached(path); ok {
			return names, nil
		}
		return l.load(ctx, path)
	})
	if err != nil {
		code := result.CodeLibraryLoadError
		if errors.Is(err, ErrModuleNotFound) {
			code = result.CodeLibraryNotFound
		}
		return nil, result.Failed(code, map[string]any{
			"library": path,
			"message": err.Error(),
		})
	}
	if shared {
		l.logger.DebugContext(ctx, "module load shared", slog.String("module", path))
	}
	return slices.Clone(v.([]string)), result.New()
}

func (l *Loader) cached(path string) ([]string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names, ok := l.loaded[path]
	if !ok {
		return nil, false
	}
	return slices.Clone(names), true
}

func (l *Loader) load(ctx context.Context, path string) ([]string, error) {
	m, ok := l.catalog.Lookup(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, path)
	}

	scope := &Scope{path: path, loader: l, defs: make(map[string]any)}
	if err := initModule(ctx, m, scope); err != nil {
		l.logger.WarnContext(ctx, "module load failed",
			slog.String("module", path),
			slog.Any("error", err),
		)
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	names := make([]string, 0, len(scope.names))
	for _, name := range scope.names {
		if _, exists := l.types[name]; exists {
			continue
		}
		l.types[name] = scope.defs[name]
		names = append(names, name)
	}
	l.loaded[path] = names

	l.logger.DebugContext(ctx, "module loaded",
		slog.String("module", path),
		slog.Any("types", names),
	)
	return slices.Clone(names), nil
}

func initModule(ctx context.Context, m Module, s *Scope) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrModulePanic, r)
		}
	}()
	return m.Load(ctx, s)
}
