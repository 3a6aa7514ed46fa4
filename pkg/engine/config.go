package engine

import (
	"github.com/dmitrymomot/payloadkit/pkg/mongo"
	"github.com/dmitrymomot/payloadkit/pkg/pg"
	"github.com/dmitrymomot/payloadkit/pkg/redis"
	"github.com/dmitrymomot/payloadkit/pkg/store"
)

// State store backends.
const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
	BackendS3       = "s3"
	BackendNone     = "none"
)

// Config is the environment configuration of an Engine.
type Config struct {
	Projects         []string `env:"ENGINE_PROJECTS" envSeparator:";" envDefault:".;../default"`
	DefaultRouteName string   `env:"ENGINE_DEFAULT_ROUTE_NAME" envDefault:"default"`
	EntryPoint       string   `env:"ENGINE_ENTRY_POINT" envDefault:"onRun"`
	ParamsFile       string   `env:"ENGINE_CONFIG_FILE"`
	RouteCacheSize   int      `env:"ENGINE_ROUTE_CACHE_SIZE" envDefault:"64"`

	StateBackend string `env:"ENGINE_STATE_BACKEND" envDefault:"file"`
	StateDir     string `env:"ENGINE_STATE_DIR" envDefault:"rw/private/store"`
	StateKey     string `env:"ENGINE_STATE_KEY"` // hex or base64, 32 bytes; empty disables encryption
	StateFormat  string `env:"ENGINE_STATE_FORMAT" envDefault:"json"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	Redis    redis.Config
	Postgres pg.Config
	Mongo    mongo.Config
	S3       store.S3Config
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Projects:         []string{".", "../default"},
		DefaultRouteName: "default",
		EntryPoint:       "onRun",
		RouteCacheSize:   64,
		StateBackend:     BackendFile,
		StateDir:         "rw/private/store",
		StateFormat:      "json",
		LogLevel:         "info",
		LogFormat:        "text",
	}
}
