package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/payloadkit/pkg/state"
)

func TestState_GetSet(t *testing.T) {
	t.Parallel()

	s := &state.State{}
	s.Set(42, "a", "b", "c")

	v, ok := s.Get("a", "b", "c")
	require.True(t, ok)
	assert.Equal(t, 42, v)

	_, ok = s.Get("a", "x")
	assert.False(t, ok)

	_, ok = s.Get("a", "b", "c", "d")
	assert.False(t, ok, "scalars have no children")

	assert.Equal(t, "def", s.Lookup("def", "missing"))
}

func TestState_SetReplacesScalar(t *testing.T) {
	t.Parallel()

	s := state.New(map[string]any{"a": "scalar"})
	s.Set(1, "a", "b")

	v, ok := s.Get("a", "b")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestState_Delete(t *testing.T) {
	t.Parallel()

	s := state.New(map[string]any{"a": map[string]any{"b": 1, "c": 2}})
	s.Delete("a", "b")

	_, ok := s.Get("a", "b")
	assert.False(t, ok)
	v, _ := s.Get("a", "c")
	assert.Equal(t, 2, v)
}

func TestState_MergeIsDeep(t *testing.T) {
	t.Parallel()

	dst := state.New(map[string]any{
		"db":   map[string]any{"host": "localhost", "port": 5432},
		"name": "dst",
	})
	src := state.New(map[string]any{
		"db":   map[string]any{"port": 6543},
		"only": true,
	})

	dst.Merge(src)

	assert.Equal(t, map[string]any{
		"db":   map[string]any{"host": "localhost", "port": 6543},
		"name": "dst",
		"only": true,
	}, dst.Map())
}

func TestState_CloneHasNoAliasing(t *testing.T) {
	t.Parallel()

	orig := state.New(map[string]any{"a": map[string]any{"b": []any{1, 2}}})
	clone := orig.Clone()
	clone.Set("changed", "a", "b")

	v, _ := orig.Get("a", "b")
	assert.Equal(t, []any{1, 2}, v)

	merged := &state.State{}
	merged.Merge(orig)
	merged.Set("x", "a", "new")
	_, ok := orig.Get("a", "new")
	assert.False(t, ok, "merge must copy nested maps")
}

func TestState_NormalizesYAMLMaps(t *testing.T) {
	t.Parallel()

	s := state.New(map[string]any{
		"outer": map[any]any{"inner": map[any]any{1: "one"}},
	})

	v, ok := s.Get("outer", "inner", "1")
	require.True(t, ok)
	assert.Equal(t, "one", v)
}

func TestState_Equal(t *testing.T) {
	t.Parallel()

	a := state.New(map[string]any{"k": "v"})
	b := a.Clone()
	assert.True(t, a.Equal(b))

	b.Set("w", "k")
	assert.False(t, a.Equal(b))

	assert.True(t, (&state.State{}).Equal(state.New(nil)))
}

func TestFromArgs(t *testing.T) {
	t.Parallel()

	s, positional := state.FromArgs([]string{
		"run",
		"--engine.payload=reports/daily",
		"-verbose",
		"--limit=10",
		"extra",
		"--",
		"--not-a-flag",
	})

	assert.Equal(t, []string{"run", "extra", "--not-a-flag"}, positional)

	v, _ := s.Get("engine", "payload")
	assert.Equal(t, "reports/daily", v)
	v, _ = s.Get("verbose")
	assert.Equal(t, true, v)
	v, _ = s.Get("limit")
	assert.Equal(t, "10", v)
}

func TestPath(t *testing.T) {
	t.Parallel()

	assert.Nil(t, state.Path(""))
	assert.Equal(t, []string{"a", "b"}, state.Path("a.b"))
}
