package mysql

import (
	"context"
	"database/sql"
	"errors"

	domkv "example.com/shareeghor/app/internal/domain/kv"
)

type KVRepository struct {
	db *sql.DB
}

func NewKVRepository(db *sql.DB) *KVRepository {
	return &KVRepository{db: db}
}

func (r *KVRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS kv_entries (
            entry_key   VARCHAR(255) NOT NULL PRIMARY KEY,
            entry_value MEDIUMBLOB   NOT NULL,
            updated_at  TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
        )
    `)
	return err
}

func (r *KVRepository) Get(ctx context.Context, key string) ([]byte, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT entry_value
        FROM kv_entries
        WHERE entry_key = ?
    `, key)

	var value []byte
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domkv.ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

func (r *KVRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO kv_entries (entry_key, entry_value)
        VALUES (?, ?)
        ON DUPLICATE KEY UPDATE entry_value = VALUES(entry_value)
    `, key, value)
	return err
}

func (r *KVRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE entry_key = ?`, key)
	return err
}
