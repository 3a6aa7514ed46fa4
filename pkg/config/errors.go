package config

import "errors"

var (
	ErrParsingConfig     = errors.New("failed to parse environment variables into config")
	ErrConfigNotLoaded   = errors.New("configuration has not been loaded")
	ErrNilPointer        = errors.New("nil pointer passed to config loader")
	ErrLoadingEnvFile    = errors.New("failed to load env file")
	ErrReadingParams     = errors.New("failed to read params file")
	ErrUnsupportedParams = errors.New("unsupported params file format")
)
