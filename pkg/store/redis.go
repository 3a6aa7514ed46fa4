package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps values in Redis under prefix + key hash.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	codec  codec
}

// NewRedisStore creates a RedisStore over an open client.
func NewRedisStore(client redis.UniversalClient, opts ...Option) *RedisStore {
	o := newOptions(opts)
	return &RedisStore{
		client: client,
		prefix: o.prefix,
		codec:  codec{cipher: o.cipher, format: o.format},
	}
}

// Name returns the redis key of key.
func (s *RedisStore) Name(key Key) string {
	return s.prefix + key.Hash()
}

func (s *RedisStore) Save(ctx context.Context, key Key, v any) error {
	if err := key.validate(); err != nil {
		return err
	}
	data, err := s.codec.encode(key, v)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.Name(key), data, 0).Err(); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, key Key, dst any) error {
	if err := key.validate(); err != nil {
		return err
	}
	data, err := s.client.Get(ctx, s.Name(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return s.codec.decode(key, data, dst)
}

func (s *RedisStore) Delete(ctx context.Context, key Key) error {
	if err := key.validate(); err != nil {
		return err
	}
	if err := s.client.Del(ctx, s.Name(key)).Err(); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}
