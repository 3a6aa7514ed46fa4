package module

import "errors"

var (
	ErrModuleNotFound = errors.New("module not found")
	ErrModulePanic    = errors.New("module init panicked")
	ErrTypeExists     = errors.New("type already defined")
	ErrEmptyTypeName  = errors.New("empty type name")
)
