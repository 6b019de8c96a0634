// Package store owns all access to the job_offers table: the deduplicating
// upsert write path used by ingestion and the filtered, paginated read path
// used by the API.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salarvand/job-offer-aggregator/internal/model"
)

// ErrMalformedRecord is returned by Upsert for offers without an external id.
// No external identity means no deduplication key, so the record is never
// written.
var ErrMalformedRecord = errors.New("job offer is missing externalId")

// Outcome reports what Upsert did with a record.
type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeSkipped Outcome = "skipped"
)

// OfferStore is the sole writer of job_offers. Reads and writes go through
// the shared pgx pool; concurrent callers are safe because correctness under
// duplicate races rests on the unique index on external_id.
type OfferStore struct {
	pool *pgxpool.Pool
}

// New returns an OfferStore backed by pool.
func New(pool *pgxpool.Pool) *OfferStore {
	return &OfferStore{pool: pool}
}

// EnsureSchema creates the job_offers table and its unique external_id index
// if they do not exist yet. seq is a monotonically increasing insertion
// counter used as the stable tie-break when ordering by created_at.
func (s *OfferStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS job_offers (
			id          UUID PRIMARY KEY,
			seq         BIGSERIAL,
			title       TEXT NOT NULL,
			company     TEXT NOT NULL,
			description TEXT,
			location    TEXT,
			min_salary  NUMERIC,
			max_salary  NUMERIC,
			source_api  TEXT NOT NULL,
			external_id TEXT NOT NULL UNIQUE,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("ensure job_offers schema: %w", err)
	}
	return nil
}

// Upsert persists offer unless a row with the same external id already
// exists. First-write-wins: an existing row is never merged or updated.
//
// The lookup-then-insert pair is not atomic; a concurrent identical insert
// can slip between the two. The unique index catches that race and the
// resulting constraint violation is reported as OutcomeSkipped, not as an
// error.
func (s *OfferStore) Upsert(ctx context.Context, offer model.JobOffer) (Outcome, error) {
	if offer.ExternalID == "" {
		return "", ErrMalformedRecord
	}

	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM job_offers WHERE external_id = $1)`,
		offer.ExternalID,
	).Scan(&exists)
	if err != nil {
		return "", fmt.Errorf("lookup offer %s: %w", offer.ExternalID, err)
	}
	if exists {
		return OutcomeSkipped, nil
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO job_offers
		   (id, title, company, description, location, min_salary, max_salary,
		    source_api, external_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())`,
		uuid.NewString(), offer.Title, offer.Company, offer.Description,
		offer.Location, offer.MinSalary, offer.MaxSalary,
		offer.SourceAPI, offer.ExternalID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return OutcomeSkipped, nil
		}
		return "", fmt.Errorf("insert offer %s: %w", offer.ExternalID, err)
	}

	return OutcomeCreated, nil
}

// FindByExternalID returns the stored offer with the given external id, or
// nil when none exists.
func (s *OfferStore) FindByExternalID(ctx context.Context, externalID string) (*model.JobOffer, error) {
	var o model.JobOffer
	err := s.pool.QueryRow(ctx,
		`SELECT id, title, company, description, location, min_salary, max_salary,
		        source_api, external_id, created_at, updated_at
		 FROM job_offers
		 WHERE external_id = $1`,
		externalID,
	).Scan(
		&o.ID, &o.Title, &o.Company, &o.Description, &o.Location,
		&o.MinSalary, &o.MaxSalary, &o.SourceAPI, &o.ExternalID,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find offer %s: %w", externalID, err)
	}
	return &o, nil
}
