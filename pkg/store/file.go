package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
)

// FileStore keeps values in a scattered directory tree under root.
type FileStore struct {
	root  string
	codec codec
}

// NewFileStore creates a FileStore rooted at root. Directories are created
// on first write.
func NewFileStore(root string, opts ...Option) *FileStore {
	o := newOptions(opts)
	return &FileStore{root: root, codec: codec{cipher: o.cipher, format: o.format}}
}

// Path returns the absolute file of key.
func (s *FileStore) Path(key Key) string {
	return filepath.Join(s.root, key.File())
}

func (s *FileStore) Save(ctx context.Context, key Key, v any) error {
	if err := key.validate(); err != nil {
		return err
	}
	data, err := s.codec.encode(key, v)
	if err != nil {
		return err
	}

	path := s.Path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".state-*")
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Join(ErrStoreFailed, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

func (s *FileStore) Load(ctx context.Context, key Key, dst any) error {
	if err := key.validate(); err != nil {
		return err
	}
	data, err := os.ReadFile(s.Path(key))
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return s.codec.decode(key, data, dst)
}

func (s *FileStore) Delete(ctx context.Context, key Key) error {
	if err := key.validate(); err != nil {
		return err
	}
	err := os.Remove(s.Path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}
