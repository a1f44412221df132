package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores snapshots in a Postgres bucket table. Selected
// when DATABASE_URL is set; the snapshot contract is identical to the SQLite
// backend's (whole buckets, last-writer-wins).
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository connects via connStr and ensures the state table exists.
func NewPostgresRepository(ctx context.Context, connStr string) (*PostgresRepository, error) {
	config, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to parse DATABASE_URL: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BYTEA NOT NULL
	)`); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create state table: %w", err)
	}
	return &PostgresRepository{pool: pool}, nil
}

func (r *PostgresRepository) Load(ctx context.Context) (map[string][]byte, error) {
	rows, err := r.pool.Query(ctx, `SELECT bucket, payload FROM state`)
	if err != nil {
		return nil, fmt.Errorf("failed to select state: %w", err)
	}
	defer rows.Close()

	buckets := make(map[string][]byte)
	for rows.Next() {
		var bucket string
		var payload []byte
		if err := rows.Scan(&bucket, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan state row: %w", err)
		}
		buckets[bucket] = payload
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating state rows: %w", err)
	}
	return buckets, nil
}

func (r *PostgresRepository) Save(ctx context.Context, buckets map[string][]byte) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin snapshot tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for bucket, payload := range buckets {
		if _, err := tx.Exec(ctx,
			`INSERT INTO state(bucket, payload) VALUES($1, $2)
			 ON CONFLICT(bucket) DO UPDATE SET payload = EXCLUDED.payload`,
			bucket, payload,
		); err != nil {
			return fmt.Errorf("failed to upsert bucket %s: %w", bucket, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (r *PostgresRepository) Close() {
	r.pool.Close()
}
