package route

import "errors"

var (
	// ErrInvalidRouteFile is returned when a route file is not a YAML mapping.
	ErrInvalidRouteFile = errors.New("invalid route file")
)
