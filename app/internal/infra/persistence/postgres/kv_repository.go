package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domkv "example.com/shareeghor/app/internal/domain/kv"
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type KVRepository struct {
	db querier
}

func NewKVRepository(pool *pgxpool.Pool) *KVRepository {
	return &KVRepository{db: pool}
}

func (r *KVRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS kv_entries (
            entry_key   TEXT        PRIMARY KEY,
            entry_value BYTEA       NOT NULL,
            updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
        )
    `)
	return err
}

func (r *KVRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRow(ctx, `
        SELECT entry_value FROM kv_entries WHERE entry_key = $1
    `, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domkv.ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

func (r *KVRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO kv_entries (entry_key, entry_value)
        VALUES ($1, $2)
        ON CONFLICT (entry_key) DO UPDATE
        SET entry_value = EXCLUDED.entry_value, updated_at = now()
    `, key, value)
	return err
}

func (r *KVRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM kv_entries WHERE entry_key = $1`, key)
	return err
}
