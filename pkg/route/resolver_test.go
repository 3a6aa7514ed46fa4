package route_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/payloadkit/pkg/route"
)

type settings struct {
	projects     []string
	defaultName  string
	defaultRoute map[string]any
}

func (s settings) Projects() []string           { return s.projects }
func (s settings) DefaultRouteName() string     { return s.defaultName }
func (s settings) DefaultRoute() map[string]any { return s.defaultRoute }

func writeRoute(t *testing.T, project, name, body string) string {
	t.Helper()
	path := filepath.Join(project, "ro", "router", filepath.FromSlash(name)+".yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestResolve_HardcodedDefault(t *testing.T) {
	t.Parallel()

	r := route.NewResolver(settings{projects: []string{t.TempDir()}})
	d := r.Resolve(context.Background(), "reports/daily")

	assert.Equal(t, "default", d.Module)
	assert.Equal(t, "Default", d.Type)
	assert.Empty(t, d.Method)
	assert.Empty(t, d.Query)
	assert.True(t, d.Enabled)
}

func TestResolve_ConfiguredDefaultRoute(t *testing.T) {
	t.Parallel()

	r := route.NewResolver(settings{
		projects:     []string{t.TempDir()},
		defaultRoute: map[string]any{"module": "fallback", "type": "Fallback"},
	})
	d := r.Resolve(context.Background(), "reports/daily")

	assert.Equal(t, "fallback", d.Module)
	assert.Equal(t, "Fallback", d.Type)
}

func TestResolve_HeadSegmentFile(t *testing.T) {
	t.Parallel()

	project := t.TempDir()
	writeRoute(t, project, "reports", "library: reports\nclass: Reports\nmethod: build\nquery:\n  format: csv\n")

	r := route.NewResolver(settings{projects: []string{project}})
	d := r.Resolve(context.Background(), "reports/daily")

	assert.Equal(t, "reports", d.Module)
	assert.Equal(t, "Reports", d.Type)
	assert.Equal(t, "build", d.Method)
	assert.Equal(t, map[string]any{"format": "csv"}, d.Query)
}

func TestResolve_FullNameFile(t *testing.T) {
	t.Parallel()

	project := t.TempDir()
	writeRoute(t, project, "reports/daily", "library: reports/daily\nclass: Daily\n")

	r := route.NewResolver(settings{projects: []string{project}})
	d := r.Resolve(context.Background(), "reports/daily")

	assert.Equal(t, "reports/daily", d.Module)
	assert.Equal(t, "Daily", d.Type)
}

func TestResolve_ProjectOrder(t *testing.T) {
	t.Parallel()

	first, second := t.TempDir(), t.TempDir()
	writeRoute(t, second, "jobs", "library: second\nclass: Second\n")

	r := route.NewResolver(settings{projects: []string{first, second}})
	assert.Equal(t, "second", r.Resolve(context.Background(), "jobs").Module)

	writeRoute(t, first, "jobs", "class: First\n")
	d := r.Resolve(context.Background(), "jobs")
	assert.Equal(t, "First", d.Type)
	assert.Equal(t, "default", d.Module, "roots are not merged; missing keys fall to defaults")
}

func TestResolve_PerKeyPrecedence(t *testing.T) {
	t.Parallel()

	project := t.TempDir()
	writeRoute(t, project, "partial", "method: go\n")

	r := route.NewResolver(settings{
		projects:     []string{project},
		defaultRoute: map[string]any{"library": "configured", "method": "ignored"},
	})
	d := r.Resolve(context.Background(), "partial")

	assert.Equal(t, "configured", d.Module)
	assert.Equal(t, "Default", d.Type)
	assert.Equal(t, "go", d.Method)
}

func TestResolve_Disabled(t *testing.T) {
	t.Parallel()

	project := t.TempDir()
	writeRoute(t, project, "off", "library: off\nclass: Off\nenabled: false\n")

	r := route.NewResolver(settings{projects: []string{project}})
	d := r.Resolve(context.Background(), "off")

	assert.True(t, d.IsEmpty())
	assert.Equal(t, route.Descriptor{}, d)
	assert.Empty(t, d.Map())
}

func TestResolve_DisabledByConfiguredDefault(t *testing.T) {
	t.Parallel()

	r := route.NewResolver(settings{
		projects:     []string{t.TempDir()},
		defaultRoute: map[string]any{"enabled": false},
	})
	assert.True(t, r.Resolve(context.Background(), "anything").IsEmpty())
}

func TestResolve_EmptyNameUsesDefaultRouteName(t *testing.T) {
	t.Parallel()

	project := t.TempDir()
	writeRoute(t, project, "home", "library: home\nclass: Home\n")

	r := route.NewResolver(settings{projects: []string{project}, defaultName: "home"})
	assert.Equal(t, "Home", r.Resolve(context.Background(), "").Type)
}

func TestResolve_InvalidFileFallsBack(t *testing.T) {
	t.Parallel()

	project := t.TempDir()
	writeRoute(t, project, "broken", "- not\n- a map\n")

	r := route.NewResolver(settings{projects: []string{project}})
	d := r.Resolve(context.Background(), "broken")
	assert.Equal(t, "Default", d.Type)
}

func TestResolve_CacheInvalidatedOnChange(t *testing.T) {
	t.Parallel()

	project := t.TempDir()
	path := writeRoute(t, project, "live", "class: One\n")

	r := route.NewResolver(settings{projects: []string{project}}, route.WithCacheSize(4))
	assert.Equal(t, "One", r.Resolve(context.Background(), "live").Type)

	require.NoError(t, os.WriteFile(path, []byte("class: Two\nlibrary: x\n"), 0o644))
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	assert.Equal(t, "Two", r.Resolve(context.Background(), "live").Type)
}

func TestResolve_DescriptorDoesNotShareCachedQuery(t *testing.T) {
	t.Parallel()

	project := t.TempDir()
	writeRoute(t, project, "issues", `library: tracker
query:
  filters:
    state: open
`)

	r := route.NewResolver(settings{projects: []string{project}}, route.WithCacheSize(4))
	d := r.Resolve(context.Background(), "issues")
	filters, ok := d.Query["filters"].(map[string]any)
	require.True(t, ok)
	filters["state"] = "closed"
	d.Query["extra"] = true

	again := r.Resolve(context.Background(), "issues")
	assert.Equal(t, map[string]any{"filters": map[string]any{"state": "open"}}, again.Query)

	m := again.Map()
	m["query"].(map[string]any)["filters"].(map[string]any)["state"] = "closed"
	assert.Equal(t, "open", again.Query["filters"].(map[string]any)["state"])
}

func TestResolve_TOMLRouteFile(t *testing.T) {
	t.Parallel()

	project := t.TempDir()
	path := filepath.Join(project, "ro", "router", "billing.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("module = \"billing\"\ntype = \"Invoices\"\n\n[query]\nmonth = 7\n"), 0o644))

	r := route.NewResolver(settings{projects: []string{project}})
	d := r.Resolve(context.Background(), "billing")

	assert.Equal(t, "billing", d.Module)
	assert.Equal(t, "Invoices", d.Type)
	assert.Equal(t, map[string]any{"month": int64(7)}, d.Query)
}

func TestResolve_YAMLBeforeTOML(t *testing.T) {
	t.Parallel()

	project := t.TempDir()
	writeRoute(t, project, "dual", "class: FromYAML\n")
	toml := filepath.Join(project, "ro", "router", "dual.toml")
	require.NoError(t, os.WriteFile(toml, []byte("class = \"FromTOML\"\n"), 0o644))

	r := route.NewResolver(settings{projects: []string{project}})
	assert.Equal(t, "FromYAML", r.Resolve(context.Background(), "dual").Type)
}

func TestParse(t *testing.T) {
	t.Parallel()

	m, err := route.Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, m)

	_, err = route.Parse([]byte("[1, 2]"))
	assert.ErrorIs(t, err, route.ErrInvalidRouteFile)
}
