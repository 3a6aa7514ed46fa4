package engine

import "errors"

var (
	ErrUnknownBackend = errors.New("unknown state backend")
	ErrStateKey       = errors.New("invalid state key")
	ErrParamsFile     = errors.New("failed to load params file")
	ErrStateBackend   = errors.New("failed to open state backend")
)
