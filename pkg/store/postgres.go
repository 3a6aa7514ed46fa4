package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresTable is the table created by the pg migrations.
const PostgresTable = "payload_state"

// PgxConn is the part of *pgxpool.Pool the store uses.
type PgxConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	pgUpsert = `INSERT INTO payload_state (hash, type, data, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (hash) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`
	pgSelect = `SELECT data FROM payload_state WHERE hash = $1`
	pgDelete = `DELETE FROM payload_state WHERE hash = $1`
)

// PostgresStore keeps values in the payload_state table keyed by key hash.
type PostgresStore struct {
	conn  PgxConn
	codec codec
}

// NewPostgresStore creates a PostgresStore. The schema is created by
// pg.Migrate.
func NewPostgresStore(conn PgxConn, opts ...Option) *PostgresStore {
	o := newOptions(opts)
	return &PostgresStore{conn: conn, codec: codec{cipher: o.cipher, format: o.format}}
}

func (s *PostgresStore) Save(ctx context.Context, key Key, v any) error {
	if err := key.validate(); err != nil {
		return err
	}
	data, err := s.codec.encode(key, v)
	if err != nil {
		return err
	}
	if _, err := s.conn.Exec(ctx, pgUpsert, key.Hash(), key.Type, data); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, key Key, dst any) error {
	if err := key.validate(); err != nil {
		return err
	}
	var data []byte
	err := s.conn.QueryRow(ctx, pgSelect, key.Hash()).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return s.codec.decode(key, data, dst)
}

func (s *PostgresStore) Delete(ctx context.Context, key Key) error {
	if err := key.validate(); err != nil {
		return err
	}
	if _, err := s.conn.Exec(ctx, pgDelete, key.Hash()); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}
