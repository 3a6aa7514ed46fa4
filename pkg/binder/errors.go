package binder

import "errors"

var (
	// ErrEmptyParamName is returned when a parameter table holds an unnamed entry.
	ErrEmptyParamName = errors.New("parameter name is empty")
	// ErrDuplicateParam is returned when a parameter table declares a name twice.
	ErrDuplicateParam = errors.New("duplicate parameter name")
)
