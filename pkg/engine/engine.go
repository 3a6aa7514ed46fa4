package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/dmitrymomot/payloadkit/pkg/config"
	"github.com/dmitrymomot/payloadkit/pkg/logger"
	"github.com/dmitrymomot/payloadkit/pkg/module"
	"github.com/dmitrymomot/payloadkit/pkg/mongo"
	"github.com/dmitrymomot/payloadkit/pkg/payload"
	"github.com/dmitrymomot/payloadkit/pkg/pg"
	"github.com/dmitrymomot/payloadkit/pkg/redis"
	"github.com/dmitrymomot/payloadkit/pkg/result"
	"github.com/dmitrymomot/payloadkit/pkg/route"
	"github.com/dmitrymomot/payloadkit/pkg/secrets"
	"github.com/dmitrymomot/payloadkit/pkg/state"
	"github.com/dmitrymomot/payloadkit/pkg/store"
)

// Parameter keys read by the engine.
var (
	KeyPayload          = []string{"engine", "payload"}
	KeyPayloadShort     = []string{"payload"}
	KeyProjects         = []string{"engine", "projects"}
	KeyEntryPoint       = []string{"engine", "entry-point"}
	KeyDefaultRouteName = []string{"engine", "default", "route-name"}
	KeyDefaultRoute     = []string{"engine", "default", "route"}
)

// ProjectSeparator splits a projects string.
const ProjectSeparator = ";"

var (
	_ payload.Runtime = (*Engine)(nil)
	_ route.Settings  = (*Engine)(nil)
)

// Engine is the runtime payloads are created in.
type Engine struct {
	cfg         Config
	mu          sync.RWMutex
	params      *state.State
	logger      *slog.Logger
	catalog     *module.Catalog
	loader      *module.Loader
	resolver    *route.Resolver
	states      store.Store
	storeSet    bool
	interactive *bool
	closers     []func() error
}

// New builds an Engine from cfg. The params file named by cfg.ParamsFile is
// read first; WithParams overrides it.
func New(ctx context.Context, cfg Config, opts ...Option) (*Engine, error) {
	e := &Engine{
		cfg:     cfg,
		params:  &state.State{},
		catalog: module.Default(),
	}

	if cfg.ParamsFile != "" {
		params, err := config.ReadParams(cfg.ParamsFile)
		if err != nil {
			return nil, errors.Join(ErrParamsFile, err)
		}
		e.params.MergeMap(params)
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		format := logger.Format(strings.ToLower(cfg.LogFormat))
		if format != logger.FormatJSON {
			format = logger.FormatText
		}
		e.logger = logger.New(
			logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
			logger.WithFormat(format),
			logger.WithContextExtractors(logger.DispatchExtractor),
		)
	}

	if _, ok := e.catalog.Lookup(module.Path(module.BuiltinRoot, route.DefaultModule)); !ok {
		e.catalog.RegisterBuiltin(route.DefaultModule, module.Func(defineDefault))
	}

	e.loader = module.NewLoader(e.catalog, module.WithLogger(e.logger))
	e.resolver = route.NewResolver(e,
		route.WithLogger(e.logger),
		route.WithCacheSize(cfg.RouteCacheSize),
	)

	if !e.storeSet {
		s, err := e.openStore(ctx)
		if err != nil {
			_ = e.Close()
			return nil, err
		}
		e.states = s
	}

	if e.interactive == nil {
		tty := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		e.interactive = &tty
	}

	return e, nil
}

func (e *Engine) openStore(ctx context.Context) (store.Store, error) {
	var opts []store.Option
	if e.cfg.StateFormat != "" {
		opts = append(opts, store.WithFormat(store.Format(strings.ToLower(e.cfg.StateFormat))))
	}
	if e.cfg.StateKey != "" {
		key, err := secrets.ParseKey(e.cfg.StateKey)
		if err != nil {
			return nil, errors.Join(ErrStateKey, err)
		}
		c, err := secrets.New(key)
		if err != nil {
			return nil, errors.Join(ErrStateKey, err)
		}
		opts = append(opts, store.WithCipher(c))
	}

	switch strings.ToLower(e.cfg.StateBackend) {
	case "", BackendFile:
		dir := e.cfg.StateDir
		if dir == "" {
			dir = DefaultConfig().StateDir
		}
		return store.NewFileStore(dir, opts...), nil
	case BackendRedis:
		client, err := redis.Connect(ctx, e.cfg.Redis)
		if err != nil {
			return nil, errors.Join(ErrStateBackend, err)
		}
		e.closers = append(e.closers, client.Close)
		if e.cfg.Redis.KeyPrefix != "" {
			opts = append(opts, store.WithPrefix(e.cfg.Redis.KeyPrefix))
		}
		return store.NewRedisStore(client, opts...), nil
	case BackendPostgres:
		pool, err := pg.Connect(ctx, e.cfg.Postgres)
		if err != nil {
			return nil, errors.Join(ErrStateBackend, err)
		}
		e.closers = append(e.closers, func() error {
			pool.Close()
			return nil
		})
		if err := pg.Migrate(ctx, pool, e.cfg.Postgres, e.logger); err != nil {
			return nil, errors.Join(ErrStateBackend, err)
		}
		return store.NewPostgresStore(pool, opts...), nil
	case BackendMongo:
		coll, err := mongo.Collection(ctx, e.cfg.Mongo)
		if err != nil {
			return nil, errors.Join(ErrStateBackend, err)
		}
		e.closers = append(e.closers, func() error {
			return coll.Database().Client().Disconnect(context.Background())
		})
		return store.NewMongoStore(coll, opts...), nil
	case BackendS3:
		client, err := store.NewS3Client(ctx, e.cfg.S3)
		if err != nil {
			return nil, errors.Join(ErrStateBackend, err)
		}
		if e.cfg.S3.Prefix != "" {
			opts = append(opts, store.WithPrefix(e.cfg.S3.Prefix))
		}
		return store.NewS3Store(client, e.cfg.S3.Bucket, opts...), nil
	case BackendNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, e.cfg.StateBackend)
	}
}

// Close releases the state backend.
func (e *Engine) Close() error {
	var errs []error
	for _, c := range e.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	e.closers = nil
	return errors.Join(errs...)
}

// Catalog returns the module catalog the engine loads from.
func (e *Engine) Catalog() *module.Catalog {
	return e.catalog
}

// SetParam sets a runtime parameter.
func (e *Engine) SetParam(v any, path ...string) {
	e.mu.Lock()
	e.params.Set(v, path...)
	e.mu.Unlock()
}

// MergeParams deep-merges m over the runtime parameters.
func (e *Engine) MergeParams(m map[string]any) {
	e.mu.Lock()
	e.params.MergeMap(m)
	e.mu.Unlock()
}

func (e *Engine) param(path ...string) (any, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.params.Get(path...)
}

func (e *Engine) stringParam(path ...string) string {
	v, ok := e.param(path...)
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		s = fmt.Sprint(v)
	}
	return strings.TrimSpace(s)
}

// Projects returns the project roots: engine.projects as a ";" separated
// string or a list, else Config.Projects.
func (e *Engine) Projects() []string {
	v, _ := e.param(KeyProjects...)
	var raw []string
	switch p := v.(type) {
	case string:
		raw = strings.Split(p, ProjectSeparator)
	case []any:
		for _, item := range p {
			raw = append(raw, fmt.Sprint(item))
		}
	case []string:
		raw = p
	}
	if projects := compact(raw); len(projects) > 0 {
		return projects
	}
	if projects := compact(e.cfg.Projects); len(projects) > 0 {
		return projects
	}
	return DefaultConfig().Projects
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// DefaultRouteName is the route used for an empty name.
func (e *Engine) DefaultRouteName() string {
	if name := e.stringParam(KeyDefaultRouteName...); name != "" {
		return name
	}
	if e.cfg.DefaultRouteName != "" {
		return e.cfg.DefaultRouteName
	}
	return route.DefaultModule
}

// DefaultRoute returns a copy of the configured default route mapping.
func (e *Engine) DefaultRoute() map[string]any {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, _ := e.params.Get(KeyDefaultRoute...)
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return state.New(m).Map()
}

// ResolveRoute implements payload.Runtime.
func (e *Engine) ResolveRoute(ctx context.Context, name string) route.Descriptor {
	return e.resolver.Resolve(ctx, name)
}

// LocateModule implements payload.Runtime.
func (e *Engine) LocateModule(name string) (string, bool) {
	return e.loader.Locate(name, e.Projects())
}

// LoadModule implements payload.Runtime.
func (e *Engine) LoadModule(ctx context.Context, path string) ([]string, result.Result) {
	return e.loader.Load(ctx, path)
}

// LookupType implements payload.Runtime.
func (e *Engine) LookupType(name string) (any, bool) {
	return e.loader.Type(name)
}

// Params returns a copy of the runtime parameters.
func (e *Engine) Params() *state.State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.params.Clone()
}

func (e *Engine) Logger() *slog.Logger {
	return e.logger
}

// Warn logs a non-ok Result at warn level.
func (e *Engine) Warn(ctx context.Context, res result.Result, attrs ...slog.Attr) {
	if res.Ok() {
		return
	}
	all := append([]slog.Attr{logger.Code(res.Code()), logger.Details(res.Details())}, attrs...)
	e.logger.LogAttrs(ctx, slog.LevelWarn, "payload warning", all...)
}

func (e *Engine) Interactive() bool {
	return e.interactive != nil && *e.interactive
}

// EntryPoint is engine.entry-point, else Config.EntryPoint, else onRun.
func (e *Engine) EntryPoint() string {
	if ep := e.stringParam(KeyEntryPoint...); ep != "" {
		return ep
	}
	if e.cfg.EntryPoint != "" {
		return e.cfg.EntryPoint
	}
	return payload.DefaultEntryPoint
}

// States returns the state store, nil when the backend is "none".
func (e *Engine) States() store.Store {
	return e.states
}

// Available lists the module names reachable through the project roots.
func (e *Engine) Available() []string {
	return e.loader.Available(e.Projects())
}

// Dispatch creates the payload for routeName, runs its entry point with
// args and terminates it. Every log record of the dispatch carries the same
// dispatch_id.
func (e *Engine) Dispatch(ctx context.Context, routeName string, args map[string]any, opts ...payload.Option) *payload.Payload {
	if _, ok := logger.DispatchID(ctx); !ok {
		ctx = logger.WithDispatchID(ctx, uuid.NewString())
	}

	p := payload.Create(ctx, e, routeName, opts...)
	p.Run(ctx, "", args)
	p.Terminate(ctx)

	if res := p.Result(); res.Ok() {
		p.Logger().DebugContext(ctx, "dispatch finished")
	} else {
		p.Logger().DebugContext(ctx, "dispatch failed", logger.Code(res.Code()))
	}
	return p
}

// Run dispatches the route named by engine.payload (or payload).
func (e *Engine) Run(ctx context.Context) result.Result {
	name := e.stringParam(KeyPayload...)
	if name == "" {
		name = e.stringParam(KeyPayloadShort...)
	}
	if name == "" {
		res := result.Failed(result.CodePayloadNotFound, map[string]any{
			"message": "use --engine.payload cli argument",
		})
		e.Warn(ctx, res)
		return res
	}
	return e.Dispatch(ctx, name, nil).Result()
}
