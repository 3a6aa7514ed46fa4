package payload_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/dmitrymomot/payloadkit/pkg/binder"
	"github.com/dmitrymomot/payloadkit/pkg/module"
	"github.com/dmitrymomot/payloadkit/pkg/payload"
	"github.com/dmitrymomot/payloadkit/pkg/result"
	"github.com/dmitrymomot/payloadkit/pkg/route"
	"github.com/dmitrymomot/payloadkit/pkg/state"
	"github.com/dmitrymomot/payloadkit/pkg/store"
)

type fakeRuntime struct {
	routes      map[string]route.Descriptor
	catalog     *module.Catalog
	loader      *module.Loader
	projects    []string
	params      *state.State
	interactive bool
	entry       string
	states      store.Store
	warnings    []result.Result
	log         *slog.Logger
}

func newRuntime(t *testing.T) *fakeRuntime {
	t.Helper()
	catalog := module.NewCatalog()
	return &fakeRuntime{
		routes:   map[string]route.Descriptor{},
		catalog:  catalog,
		loader:   module.NewLoader(catalog),
		projects: []string{t.TempDir()},
		params:   &state.State{},
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (r *fakeRuntime) route(name, mod, typ, method string, query map[string]any) {
	r.routes[name] = route.Descriptor{Module: mod, Type: typ, Method: method, Query: query, Enabled: true}
}

func (r *fakeRuntime) register(name string, m module.Module) {
	r.catalog.Register(r.projects[0], name, m)
}

func (r *fakeRuntime) ResolveRoute(_ context.Context, name string) route.Descriptor {
	return r.routes[name]
}

func (r *fakeRuntime) LocateModule(name string) (string, bool) {
	return r.loader.Locate(name, r.projects)
}

func (r *fakeRuntime) LoadModule(ctx context.Context, path string) ([]string, result.Result) {
	return r.loader.Load(ctx, path)
}

func (r *fakeRuntime) LookupType(name string) (any, bool) { return r.loader.Type(name) }
func (r *fakeRuntime) Params() *state.State               { return r.params.Clone() }
func (r *fakeRuntime) Logger() *slog.Logger               { return r.log }
func (r *fakeRuntime) Interactive() bool                  { return r.interactive }
func (r *fakeRuntime) EntryPoint() string                 { return r.entry }
func (r *fakeRuntime) States() store.Store                { return r.states }

func (r *fakeRuntime) Warn(_ context.Context, res result.Result, _ ...slog.Attr) {
	r.warnings = append(r.warnings, res)
}

// worker records the methods invoked on it.
type worker struct {
	calls []string
	args  []any
}

func (w *worker) record(name string) { w.calls = append(w.calls, name) }

var errBoom = errors.New("boom")

func newWorkerType(name string) *payload.Type {
	return payload.NewType[worker](name,
		payload.Func("onCreate", func(w *worker, p *payload.Payload, _ binder.Args) error {
			w.record("onCreate")
			p.SetParam(true, "created")
			return nil
		}),
		payload.Func("onMutate", func(w *worker, p *payload.Payload, _ binder.Args) error {
			w.record("onMutate")
			return nil
		}),
		payload.Func("onBeforeRun", func(w *worker, p *payload.Payload, a binder.Args) error {
			w.record("onBeforeRun")
			if a.Bool("fail_before") {
				return errBoom
			}
			return nil
		}, binder.Bool("fail_before")),
		payload.Func("onRun", func(w *worker, p *payload.Payload, _ binder.Args) error {
			w.record("onRun")
			return nil
		}),
		payload.Func("onAfterRun", func(w *worker, p *payload.Payload, _ binder.Args) error {
			w.record("onAfterRun")
			return nil
		}),
		payload.Func("doWork", func(w *worker, p *payload.Payload, _ binder.Args) error {
			w.record("doWork")
			return nil
		}),
		payload.Func("build", func(w *worker, p *payload.Payload, _ binder.Args) error {
			w.record("build")
			return nil
		}),
		payload.Func("sum", func(w *worker, p *payload.Payload, a binder.Args) error {
			w.record("sum")
			w.args = a.Values()
			p.SetParam(a.Int("a")+a.Int("b"), "sum")
			return nil
		}, binder.Int("a"), binder.Int("b", 10)),
		payload.Func("fail", func(w *worker, p *payload.Payload, _ binder.Args) error {
			return errBoom
		}),
		payload.Func("explode", func(w *worker, p *payload.Payload, _ binder.Args) error {
			panic("kaboom")
		}),
		payload.Func("deny", func(w *worker, p *payload.Payload, _ binder.Args) error {
			return result.Failed("report-denied", map[string]any{"why": "closed"}).Err()
		}),
		payload.Func("mutateInside", func(w *worker, p *payload.Payload, _ binder.Args) error {
			w.record("mutateInside")
			child := p.Mutate(context.Background(), "other")
			child.SetParam("from child", "note")
			if child.Unmutate() != p {
				return errors.New("unmutate returned another payload")
			}
			return nil
		}),
	)
}

func calls(p *payload.Payload) []string {
	if w, ok := p.Value().(*worker); ok {
		return w.calls
	}
	return nil
}

// setup registers a "work" module defining Worker and a "jobs" route to it.
func setup(t *testing.T) *fakeRuntime {
	t.Helper()
	rt := newRuntime(t)
	rt.register("work", module.Func(func(ctx context.Context, s *module.Scope) error {
		return s.Define("Worker", newWorkerType("Worker"))
	}))
	rt.register("other", module.Func(func(ctx context.Context, s *module.Scope) error {
		return s.Define("Other", newWorkerType("Other"))
	}))
	rt.route("jobs", "work", "Worker", "", nil)
	rt.route("other", "other", "Other", "", nil)
	return rt
}
