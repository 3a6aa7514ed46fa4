package store

import "errors"

var (
	ErrNotFound        = errors.New("state not found")
	ErrEmptyType       = errors.New("state key has no type")
	ErrEncode          = errors.New("failed to encode state")
	ErrDecode          = errors.New("failed to decode state")
	ErrStoreFailed     = errors.New("state store operation failed")
	ErrInvalidS3Config = errors.New("invalid s3 configuration: bucket and region are required")
)
