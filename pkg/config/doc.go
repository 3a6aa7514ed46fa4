// Package config reads process configuration.
//
// Typed settings come from environment variables through
// github.com/caarlos0/env. A .env file in the working directory is loaded
// once with github.com/joho/godotenv before the first parse; LoadEnv loads
// additional files explicitly. Each configuration type is parsed once and
// cached for the life of the process:
//
//	var cfg engine.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Parse skips the cache, which is what tests use after t.Setenv.
//
// The params file is the free-form parameter tree handlers read their
// arguments from. ReadParams decodes it by extension (YAML, TOML or JSON).
package config
