package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/payloadkit/pkg/config"
)

type defaultsConfig struct {
	Name  string   `env:"PK_TEST_DEFAULT_NAME" envDefault:"payload"`
	Count int      `env:"PK_TEST_DEFAULT_COUNT" envDefault:"3"`
	List  []string `env:"PK_TEST_DEFAULT_LIST" envSeparator:";" envDefault:".;../default"`
}

type singletonConfig struct {
	Value string `env:"PK_TEST_SINGLETON"`
}

type requiredConfig struct {
	Value string `env:"PK_TEST_REQUIRED,required"`
}

type fileConfig struct {
	Value string `env:"PK_TEST_FROM_FILE"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "payload", cfg.Name)
	assert.Equal(t, 3, cfg.Count)
	assert.Equal(t, []string{".", "../default"}, cfg.List)
}

func TestLoad_CachedPerType(t *testing.T) {
	t.Setenv("PK_TEST_SINGLETON", "first")

	var first singletonConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("PK_TEST_SINGLETON", "second")
	var second singletonConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value)

	var parsed singletonConfig
	require.NoError(t, config.Parse(&parsed))
	assert.Equal(t, "second", parsed.Value)

	config.ResetCache()
	var reloaded singletonConfig
	require.NoError(t, config.Load(&reloaded))
	assert.Equal(t, "second", reloaded.Value)
}

func TestLoad_MissingRequiredCanRetry(t *testing.T) {
	os.Unsetenv("PK_TEST_REQUIRED")

	var cfg requiredConfig
	assert.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)

	t.Setenv("PK_TEST_REQUIRED", "set")
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "set", cfg.Value)
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *defaultsConfig
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	assert.ErrorIs(t, config.Parse(cfg), config.ErrNilPointer)
}

func TestLoadEnv(t *testing.T) {
	os.Unsetenv("PK_TEST_FROM_FILE")
	t.Cleanup(func() { os.Unsetenv("PK_TEST_FROM_FILE") })

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PK_TEST_FROM_FILE=\"from file\"\n"), 0o644))
	require.NoError(t, config.LoadEnv(path))

	var cfg fileConfig
	require.NoError(t, config.Parse(&cfg))
	assert.Equal(t, "from file", cfg.Value)

	assert.NoError(t, config.LoadEnv())
	assert.ErrorIs(t, config.LoadEnv(filepath.Join(t.TempDir(), "missing.env")), config.ErrLoadingEnvFile)
}
