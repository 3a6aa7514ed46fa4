package route

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/payloadkit/pkg/state"
)

// Separator splits a route name into hierarchy segments.
const Separator = "/"

// Settings supplies the configurable inputs of route resolution. The engine
// implements it on top of its parameter tree so changes are picked up on
// the next Resolve call.
type Settings interface {
	// Projects returns the project roots in search order.
	Projects() []string
	// DefaultRouteName is used when Resolve is called with an empty name.
	DefaultRouteName() string
	// DefaultRoute is the configured default route mapping.
	DefaultRoute() map[string]any
}

// Resolver builds route descriptors from route files and defaults.
type Resolver struct {
	settings Settings
	logger   *slog.Logger
	dir      string
	exts     []string
	cache    *fileCache
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for trace output.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithExtensions sets the route file extensions tried for each stem, in
// order.
func WithExtensions(exts ...string) Option {
	return func(r *Resolver) {
		if len(exts) > 0 {
			r.exts = exts
		}
	}
}

// WithDir sets the route directory relative to each project root.
func WithDir(dir string) Option {
	return func(r *Resolver) {
		if dir != "" {
			r.dir = dir
		}
	}
}

// WithCacheSize sets the number of parsed route files kept in memory.
// Zero disables caching.
func WithCacheSize(n int) Option {
	return func(r *Resolver) {
		r.cache = newFileCache(n)
	}
}

// NewResolver creates a Resolver reading settings on every call.
func NewResolver(settings Settings, opts ...Option) *Resolver {
	r := &Resolver{
		settings: settings,
		logger:   slog.Default(),
		dir:      filepath.Join("ro", "router"),
		exts:     []string{".yaml", ".yml", ".toml"},
		cache:    newFileCache(64),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the descriptor for name. An empty descriptor means the
// route does not exist or is disabled.
func (r *Resolver) Resolve(ctx context.Context, name string) Descriptor {
	if name == "" {
		name = r.settings.DefaultRouteName()
	}

	segments := strings.Split(name, Separator)
	file, found := r.Find(segments[0])
	if !found && len(segments) > 1 {
		file, found = r.Find(name)
	}

	var fromFile map[string]any
	if found {
		m, err := r.read(file)
		if err != nil {
			r.logger.WarnContext(ctx, "route file ignored",
				slog.String("route", name),
				slog.String("file", file),
				slog.Any("error", err),
			)
		} else {
			fromFile = m
		}
	} else {
		r.logger.DebugContext(ctx, "route file not found", slog.String("route", name))
	}

	d := build(layer(fromFile, r.settings.DefaultRoute(), Default()))
	if d.IsEmpty() {
		r.logger.DebugContext(ctx, "route disabled", slog.String("route", name))
	}
	return d
}

// Find returns the first route file for stem across the project roots.
func (r *Resolver) Find(stem string) (string, bool) {
	if stem == "" {
		return "", false
	}
	for _, project := range r.settings.Projects() {
		if project == "" {
			continue
		}
		base := filepath.Join(project, r.dir, filepath.FromSlash(stem))
		for _, ext := range r.exts {
			candidate := base + ext
			r.logger.Debug("looking for route", slog.String("path", candidate))
			info, err := os.Stat(candidate)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			abs, err := filepath.Abs(candidate)
			if err != nil {
				abs = candidate
			}
			r.logger.Debug("found route", slog.String("file", abs))
			return abs, true
		}
	}
	return "", false
}

// read parses a route file, serving it from the cache when unchanged.
// Callers get a deep copy; the cached tree is never handed out.
func (r *Resolver) read(path string) (map[string]any, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if m, ok := r.cache.get(path, info.ModTime(), info.Size()); ok {
		return state.New(m).Map(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := ParseFormat(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r.cache.put(&fileEntry{path: path, modTime: info.ModTime(), size: info.Size(), route: m})
	return state.New(m).Map(), nil
}

// ParseFormat decodes a route document by file extension. TOML is used for
// ".toml", YAML for everything else.
func ParseFormat(ext string, data []byte) (map[string]any, error) {
	if strings.EqualFold(ext, ".toml") {
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, errors.Join(ErrInvalidRouteFile, err)
		}
		if m == nil {
			m = map[string]any{}
		}
		return m, nil
	}
	return Parse(data)
}

// Parse decodes a YAML route document. An empty document is an empty route.
func Parse(data []byte) (map[string]any, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Join(ErrInvalidRouteFile, err)
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}
