package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS breakdown_runs (
	id          uuid PRIMARY KEY,
	run_id      uuid NOT NULL,
	detector    text NOT NULL,
	dialogues   integer NOT NULL,
	total       integer NOT NULL,
	started_at  timestamptz NOT NULL,
	created_at  timestamptz NOT NULL DEFAULT now(),
	UNIQUE (run_id, detector)
);

CREATE TABLE IF NOT EXISTS breakdown_sequences (
	id        uuid PRIMARY KEY,
	run_id    uuid NOT NULL,
	detector  text NOT NULL,
	position  integer NOT NULL,
	intents   text[] NOT NULL,
	count     integer NOT NULL
);

CREATE TABLE IF NOT EXISTS conversational_patterns (
	id        uuid PRIMARY KEY,
	run_id    uuid NOT NULL,
	detector  text NOT NULL,
	position  integer NOT NULL,
	width     integer NOT NULL,
	members   text[] NOT NULL,
	count     integer NOT NULL
);`

// Migrate creates the breakdown tables when they do not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
