package store

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"
)

// Ext is the file extension of stored values.
const Ext = ".bin"

// Key identifies a persisted value.
type Key struct {
	Type string
	Path []string
}

// NewKey builds a key for a payload type.
func NewKey(typ string, path ...string) Key {
	return Key{Type: typ, Path: path}
}

// Hash returns the hex SHA-256 of the dash-joined type and path.
func (k Key) Hash() string {
	parts := append([]string{k.Type}, k.Path...)
	sum := sha256.Sum256([]byte(strings.Join(parts, "-")))
	return hex.EncodeToString(sum[:])
}

// File returns the scattered relative file path of the key.
func (k Key) File() string {
	h := k.Hash()
	return filepath.Join(h[0:2], h[2:4], h[4:6], h+Ext)
}

func (k Key) validate() error {
	if k.Type == "" {
		return ErrEmptyType
	}
	return nil
}
