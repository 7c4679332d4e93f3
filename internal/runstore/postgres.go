// Package runstore optionally persists run/telemetry history to Postgres.
// Adapted from the teacher's internal/db/postgres.go connect/init-schema/
// insert idiom, repurposed from persisting forensics evidence to persisting
// (run_id, mode, n, d, c, result, telemetry) rows — never the graph itself,
// so this does not reopen spec.md §1's "no persistent index of the graph"
// Non-goal.
package runstore

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rawblock/graphprobe/pkg/models"
)

// Store wraps a Postgres connection pool for run history persistence.
type Store struct {
	pool *pgxpool.Pool
}

// Connect initializes the connection pool to PostgreSQL using pgx, mirroring
// the teacher's db.Connect (ping-on-connect, wrapped errors).
func Connect(connStr string) (*Store, error) {
	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		return nil, fmt.Errorf("runstore: unable to connect to database: %w", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("runstore: ping failed: %w", err)
	}
	log.Println("[runstore] connected to PostgreSQL for run history")
	return &Store{pool: pool}, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS run_history (
	run_id              TEXT PRIMARY KEY,
	mode                TEXT NOT NULL,
	n                   BIGINT NOT NULL,
	d                   BIGINT NOT NULL,
	c                   BIGINT NOT NULL,
	success             BOOLEAN NOT NULL,
	root_vertex         BIGINT,
	neighborhood_size   INT,
	wall_time_us        BIGINT NOT NULL,
	peak_bytes          BIGINT NOT NULL,
	edges_scanned       BIGINT NOT NULL,
	tiebreak_build_us   BIGINT,
	hash_table_bytes    BIGINT,
	started_at          TIMESTAMPTZ NOT NULL
);
`

// InitSchema creates the run_history table if absent.
func (s *Store) InitSchema() error {
	if _, err := s.pool.Exec(context.Background(), schemaSQL); err != nil {
		return fmt.Errorf("runstore: failed to execute schema migration: %w", err)
	}
	log.Println("[runstore] schema initialized")
	return nil
}

// SaveRun persists one run's telemetry row.
func (s *Store) SaveRun(ctx context.Context, t models.RunTelemetry) error {
	var rootVertex *int64
	var neighborhoodSize *int
	if t.Result.Ok {
		v := int64(t.Result.Neighborhood.Root)
		rootVertex = &v
		n := len(t.Result.Neighborhood.Neighbors)
		neighborhoodSize = &n
	}

	const insertSQL = `
		INSERT INTO run_history
			(run_id, mode, n, d, c, success, root_vertex, neighborhood_size,
			 wall_time_us, peak_bytes, edges_scanned, tiebreak_build_us,
			 hash_table_bytes, started_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		ON CONFLICT (run_id) DO NOTHING;
	`
	_, err := s.pool.Exec(ctx, insertSQL,
		t.RunID, t.Mode.String(), t.N, t.D, t.C, t.Result.Ok,
		rootVertex, neighborhoodSize,
		t.WallTime.Microseconds(), t.PeakBytes, t.EdgesScanned,
		t.TiebreakBuildTime.Microseconds(), t.HashTableBytes, t.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("runstore: failed to insert run_history row: %w", err)
	}
	return nil
}
