package database

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-jobstreet-crawler/internal/jobs"
)

// Repository archives crawled records in Postgres. Rows are keyed by a
// hash of the full persisted row, so re-running a role and re-saving the
// same batch is a no-op per row (at-least-once safe).
type Repository struct {
	db *pgxpool.Pool
}

func Connect(ctx context.Context, connString string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	// IMPORTANT: Supabase connection pooler (PgBouncer in Transaction mode)
	// does not support prepared statements easily. We MUST disable the statement cache.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	// Ping to ensure connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &Repository{db: pool}, nil
}

func (r *Repository) Close() {
	if r.db != nil {
		r.db.Close()
	}
}

// SaveRecords inserts a batch, skipping rows the archive already holds.
// Returns how many rows were actually inserted.
func (r *Repository) SaveRecords(ctx context.Context, records []jobs.JobRecord) (int, error) {
	query := `
		INSERT INTO job_records (row_hash, role, title, company, location, salary, link, description, job_type, posted_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (row_hash) DO NOTHING`

	inserted := 0
	for _, rec := range records {
		tag, err := r.db.Exec(ctx, query,
			rowHash(rec), rec.Role, rec.Title, rec.Company, rec.Location,
			rec.Salary, rec.Link, rec.Description, rec.JobType, rec.PostedDate)
		if err != nil {
			return inserted, fmt.Errorf("failed to save record %q: %w", rec.Title, err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

func rowHash(rec jobs.JobRecord) string {
	sum := sha256.Sum256([]byte(strings.Join(rec.Row(), "\x1f")))
	return hex.EncodeToString(sum[:])
}
