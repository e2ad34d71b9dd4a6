package repository

import (
	"context"
	"database/sql"
	"fmt"

	// Postgres driver registration.
	_ "github.com/lib/pq"
)

// PostgresStore keeps saves in a single key/value table so several game
// instances can share one durable backend.
type PostgresStore struct {
	db    *sql.DB
	table string
}

// NewPostgresStore opens the DSN, verifies connectivity, and ensures the
// saves table exists.
func NewPostgresStore(ctx context.Context, dsn string, opts ...PostgresOption) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	s := &PostgresStore{db: db, table: "saves"}
	for _, opt := range opts {
		opt(s)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		key  TEXT PRIMARY KEY,
		data JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`, s.table)
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure saves table: %w", err)
	}
	return s, nil
}

// Load returns the blob stored under key.
func (s *PostgresStore) Load(ctx context.Context, key string) ([]byte, error) {
	q := fmt.Sprintf("SELECT data FROM %s WHERE key = $1", s.table)
	var data []byte
	err := s.db.QueryRowContext(ctx, q, key).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load save %s: %w", key, err)
	}
	return data, nil
}

// Save upserts the blob under key.
func (s *PostgresStore) Save(ctx context.Context, key string, data []byte) error {
	q := fmt.Sprintf(`INSERT INTO %s (key, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`, s.table)
	if _, err := s.db.ExecContext(ctx, q, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Delete removes the save under key.
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	q := fmt.Sprintf("DELETE FROM %s WHERE key = $1", s.table)
	if _, err := s.db.ExecContext(ctx, q, key); err != nil {
		return fmt.Errorf("delete save %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
