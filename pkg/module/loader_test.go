package module_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/payloadkit/pkg/module"
	"github.com/dmitrymomot/payloadkit/pkg/result"
)

func define(names ...string) module.Func {
	return func(_ context.Context, s *module.Scope) error {
		for _, n := range names {
			if err := s.Define(n, n+"-def"); err != nil {
				return err
			}
		}
		return nil
	}
}

func TestCatalog_Locate(t *testing.T) {
	t.Parallel()

	first, second := t.TempDir(), t.TempDir()
	c := module.NewCatalog()
	c.Register(second, "reports", define("Reports"))
	c.RegisterBuiltin("default", define("Default"))

	path, ok := c.Locate("reports", []string{first, second})
	require.True(t, ok)
	assert.Equal(t, filepath.Join(second, "payload", "reports"), path)

	c.Register(first, "reports", define("Reports"))
	path, ok = c.Locate("reports", []string{first, second})
	require.True(t, ok)
	assert.Equal(t, filepath.Join(first, "payload", "reports"), path)

	path, ok = c.Locate("default", []string{first, second})
	require.True(t, ok)
	assert.Equal(t, module.BuiltinRoot+"default", path)

	_, ok = c.Locate("missing", []string{first})
	assert.False(t, ok)
	_, ok = c.Locate("", []string{first})
	assert.False(t, ok)
}

func TestCatalog_LocatePrefersProjectOverBuiltin(t *testing.T) {
	t.Parallel()

	project := t.TempDir()
	c := module.NewCatalog()
	c.RegisterBuiltin("default", define("Default"))
	want := c.Register(project, "default", define("Custom"))

	path, ok := c.Locate("default", []string{project})
	require.True(t, ok)
	assert.Equal(t, want, path)
}

func TestCatalog_Names(t *testing.T) {
	t.Parallel()

	a, b, other := t.TempDir(), t.TempDir(), t.TempDir()
	c := module.NewCatalog()
	c.Register(a, "zeta", define("Z"))
	c.Register(b, "alpha", define("A"))
	c.Register(b, "zeta", define("Z2"))
	c.Register(other, "hidden", define("H"))
	c.RegisterBuiltin("default", define("Default"))

	assert.Equal(t, []string{"alpha", "default", "zeta"}, c.Names([]string{a, b}))
}

func TestLoader_LoadOnce(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := module.NewCatalog()
	path := c.Register(t.TempDir(), "reports", module.Func(func(ctx context.Context, s *module.Scope) error {
		calls.Add(1)
		if err := s.Define("Daily", 1); err != nil {
			return err
		}
		return s.Define("Weekly", 2)
	}))

	l := module.NewLoader(c)
	first, res := l.Load(context.Background(), path)
	require.True(t, res.Ok(), res.String())
	second, res := l.Load(context.Background(), path)
	require.True(t, res.Ok())

	assert.Equal(t, []string{"Daily", "Weekly"}, first)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, l.Loaded(path))

	def, ok := l.Type("Weekly")
	require.True(t, ok)
	assert.Equal(t, 2, def)
}

func TestLoader_ConcurrentFirstLoad(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	release := make(chan struct{})
	c := module.NewCatalog()
	path := c.Register(t.TempDir(), "slow", module.Func(func(ctx context.Context, s *module.Scope) error {
		calls.Add(1)
		<-release
		return s.Define("Slow", nil)
	}))
	l := module.NewLoader(c)

	const n = 16
	var wg sync.WaitGroup
	results := make([][]string, n)
	for i := range n {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			names, res := l.Load(context.Background(), path)
			assert.True(t, res.Ok())
			results[i] = names
		}(i)
	}
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, names := range results {
		assert.Equal(t, []string{"Slow"}, names)
	}
}

func TestLoader_NotFound(t *testing.T) {
	t.Parallel()

	l := module.NewLoader(module.NewCatalog())
	names, res := l.Load(context.Background(), "/nowhere/payload/x")

	assert.Empty(t, names)
	assert.Equal(t, result.CodeLibraryNotFound, res.Code())
	v, _ := res.Detail("library")
	assert.Equal(t, "/nowhere/payload/x", v)
}

func TestLoader_FailureIsNotCached(t *testing.T) {
	t.Parallel()

	fail := true
	c := module.NewCatalog()
	path := c.Register(t.TempDir(), "flaky", module.Func(func(ctx context.Context, s *module.Scope) error {
		if err := s.Define("Flaky", nil); err != nil {
			return err
		}
		if fail {
			return errors.New("boom")
		}
		return nil
	}))
	l := module.NewLoader(c)

	names, res := l.Load(context.Background(), path)
	assert.Empty(t, names)
	assert.Equal(t, result.CodeLibraryLoadError, res.Code())
	msg, _ := res.Detail("message")
	assert.Equal(t, "boom", msg)
	assert.False(t, l.Loaded(path))
	_, ok := l.Type("Flaky")
	assert.False(t, ok, "definitions of a failed init are discarded")

	fail = false
	names, res = l.Load(context.Background(), path)
	require.True(t, res.Ok())
	assert.Equal(t, []string{"Flaky"}, names)
}

func TestLoader_PanicBecomesLoadError(t *testing.T) {
	t.Parallel()

	c := module.NewCatalog()
	path := c.Register(t.TempDir(), "bad", module.Func(func(ctx context.Context, s *module.Scope) error {
		panic("syntax error")
	}))
	l := module.NewLoader(c)

	_, res := l.Load(context.Background(), path)
	assert.Equal(t, result.CodeLibraryLoadError, res.Code())
	msg, _ := res.Detail("message")
	assert.Contains(t, msg, "syntax error")
}

func TestLoader_NoNewTypes(t *testing.T) {
	t.Parallel()

	c := module.NewCatalog()
	path := c.Register(t.TempDir(), "empty", define())
	l := module.NewLoader(c)

	names, res := l.Load(context.Background(), path)
	assert.True(t, res.Ok())
	assert.Empty(t, names)
	assert.True(t, l.Loaded(path))
}

func TestScope_DefineDuplicate(t *testing.T) {
	t.Parallel()

	project := t.TempDir()
	c := module.NewCatalog()
	first := c.Register(project, "one", define("Shared"))
	second := c.Register(project, "two", define("Shared"))
	dup := c.Register(project, "dup", define("X", "X"))
	l := module.NewLoader(c)

	_, res := l.Load(context.Background(), first)
	require.True(t, res.Ok())

	_, res = l.Load(context.Background(), second)
	assert.Equal(t, result.CodeLibraryLoadError, res.Code())

	_, res = l.Load(context.Background(), dup)
	assert.Equal(t, result.CodeLibraryLoadError, res.Code())
	msg, _ := res.Detail("message")
	assert.Contains(t, msg, module.ErrTypeExists.Error())
}
