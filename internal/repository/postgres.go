package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// PostgresSnapshotRepository stores snapshots in the snapshots table of a PostgreSQL database.
type PostgresSnapshotRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresSnapshotRepository creates a new PostgresSnapshotRepository with the given database connection.
// db must be a valid *sql.DB connected to a PostgreSQL instance with the snapshots schema applied.
func NewPostgresSnapshotRepository(db *sql.DB) *PostgresSnapshotRepository {
	return &PostgresSnapshotRepository{DB: db}
}

// Load fetches the snapshot stored under key.
//
//	ctx: context for cancellation and deadlines
//	key: logical snapshot name
//
// Returns ErrNotFound if the key has no row.
func (r *PostgresSnapshotRepository) Load(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.DB.QueryRowContext(ctx,
		`SELECT value FROM snapshots WHERE key = $1`,
		key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", key, err)
	}
	return value, nil
}

// Save inserts or replaces the snapshot stored under key.
//
//	ctx:  context for cancellation and deadlines
//	key:  logical snapshot name
//	data: serialized snapshot
//
// Returns an error if the upsert fails.
func (r *PostgresSnapshotRepository) Save(ctx context.Context, key string, data []byte) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO snapshots (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`, key, data)
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", key, err)
	}
	return nil
}

// Keys lists every stored snapshot key whose name is in names.
// It is used at startup to report which stores will be rehydrated.
func (r *PostgresSnapshotRepository) Keys(ctx context.Context, names []string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT key FROM snapshots WHERE key = ANY($1) ORDER BY key`,
		pq.Array(names),
	)
	if err != nil {
		return nil, fmt.Errorf("list snapshot keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
