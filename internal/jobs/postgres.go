package jobs

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mediaforge/internal/pkg/errors"
)

// PostgresStore keeps async job state in a single table, giving a durable
// job history when the deployment already runs Postgres.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// EnsureSchema creates the jobs table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS media_jobs (
			id            TEXT PRIMARY KEY,
			status        TEXT NOT NULL,
			output_url    TEXT NOT NULL DEFAULT '',
			error_text    TEXT NOT NULL DEFAULT '',
			metadata_json JSONB,
			warnings_json JSONB,
			created_at    TIMESTAMPTZ NOT NULL,
			updated_at    TIMESTAMPTZ NOT NULL
		)`)
	return err
}

func (s *PostgresStore) Put(ctx context.Context, j *Job) error {
	meta, _ := json.Marshal(j.Metadata)
	warns, _ := json.Marshal(j.Warnings)

	_, err := s.pool.Exec(ctx, `
		INSERT INTO media_jobs (id, status, output_url, error_text, metadata_json, warnings_json, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (id) DO UPDATE SET
			status=EXCLUDED.status,
			output_url=EXCLUDED.output_url,
			error_text=EXCLUDED.error_text,
			metadata_json=EXCLUDED.metadata_json,
			warnings_json=EXCLUDED.warnings_json,
			updated_at=EXCLUDED.updated_at`,
		j.ID, string(j.Status), j.OutputURL, j.Error, meta, warns, j.CreatedAt, j.UpdatedAt,
	)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeStorage, "jobs.pg.put", "store job state")
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*Job, error) {
	var (
		j           Job
		status      string
		meta, warns []byte
	)
	err := s.pool.QueryRow(ctx, `
		SELECT id, status, output_url, error_text, metadata_json, warnings_json, created_at, updated_at
		FROM media_jobs WHERE id=$1`,
		id,
	).Scan(&j.ID, &status, &j.OutputURL, &j.Error, &meta, &warns, &j.CreatedAt, &j.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, errors.NotFound("job", id)
	}
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeStorage, "jobs.pg.get", "load job state")
	}

	j.Status = Status(status)
	if len(meta) > 0 {
		_ = json.Unmarshal(meta, &j.Metadata)
	}
	if len(warns) > 0 {
		_ = json.Unmarshal(warns, &j.Warnings)
	}
	return &j, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM media_jobs WHERE id=$1`, id)
	return err
}
