// Package store persists product records in Postgres. The products table is
// keyed by the ProductHunt post id; writes are idempotent native upserts.
package store

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"producthunt/ingest-service/internal/model"
)

// ErrNotConfigured is returned by the Disabled sink when storage credentials
// are absent. Callers log it and keep processing.
var ErrNotConfigured = errors.New("product store not configured (DATABASE_URL missing)")

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	tagline       TEXT,
	description   TEXT,
	url           TEXT,
	website_url   TEXT,
	thumbnail_url TEXT,
	launch_date   TEXT,
	upvotes       INTEGER NOT NULL DEFAULT 0,
	maker_ids     TEXT[] NOT NULL DEFAULT '{}',
	topics        TEXT[] NOT NULL DEFAULT '{}',
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
)`

// Store wraps the shared pgx pool with product table operations.
type Store struct {
	pool *pgxpool.Pool
}

// New wraps an already-verified pool and ensures the products table exists.
func New(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("ensure products schema: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Upsert inserts the product or, when the id already exists, overwrites every
// mutable field. created_at is set on first insert only; updated_at is
// refreshed on every write. Applying the same record twice yields the same
// row (modulo updated_at).
func (s *Store) Upsert(ctx context.Context, p model.Product) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO products
		   (id, name, tagline, description, url, website_url, thumbnail_url,
		    launch_date, upvotes, maker_ids, topics, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11, now(), now())
		 ON CONFLICT (id) DO UPDATE SET
		   name          = EXCLUDED.name,
		   tagline       = EXCLUDED.tagline,
		   description   = EXCLUDED.description,
		   url           = EXCLUDED.url,
		   website_url   = EXCLUDED.website_url,
		   thumbnail_url = EXCLUDED.thumbnail_url,
		   launch_date   = EXCLUDED.launch_date,
		   upvotes       = EXCLUDED.upvotes,
		   maker_ids     = EXCLUDED.maker_ids,
		   topics        = EXCLUDED.topics,
		   updated_at    = now()`,
		p.ID, p.Name, p.Tagline, p.Description, p.URL, p.WebsiteURL,
		p.ThumbnailURL, p.LaunchDate, p.Upvotes, p.MakerIDs, p.Topics,
	)
	if err != nil {
		return fmt.Errorf("upsert product %s: %w", p.ID, err)
	}
	return nil
}

// ProductsByDate returns products launched on the given YYYY-MM-DD date,
// highest upvotes first.
func (s *Store) ProductsByDate(ctx context.Context, date string) ([]model.Product, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, tagline, description, url, website_url, thumbnail_url,
		        launch_date, upvotes, maker_ids, topics, created_at, updated_at
		 FROM products
		 WHERE left(launch_date, 10) = $1
		 ORDER BY upvotes DESC`, date)
	if err != nil {
		return nil, fmt.Errorf("query products by date: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// TopProducts returns the highest-voted products across all dates.
func (s *Store) TopProducts(ctx context.Context, limit int) ([]model.Product, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, tagline, description, url, website_url, thumbnail_url,
		        launch_date, upvotes, maker_ids, topics, created_at, updated_at
		 FROM products
		 ORDER BY upvotes DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query top products: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// Clean removes every row from the products table. Destructive; used only by
// the clean-and-rescrape flow before a full re-ingestion.
func (s *Store) Clean(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM products`)
	if err != nil {
		return 0, fmt.Errorf("clean products: %w", err)
	}
	return tag.RowsAffected(), nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanProducts(rows rowScanner) ([]model.Product, error) {
	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Tagline, &p.Description, &p.URL, &p.WebsiteURL,
			&p.ThumbnailURL, &p.LaunchDate, &p.Upvotes, &p.MakerIDs, &p.Topics,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Disabled is the inert sink used when DATABASE_URL is not set: every call
// logs and reports failure so runs can proceed without persistence.
type Disabled struct{}

// Upsert always fails with ErrNotConfigured.
func (Disabled) Upsert(ctx context.Context, p model.Product) error {
	log.Printf("[store] dropping product %s (%s): %v", p.ID, p.Name, ErrNotConfigured)
	return ErrNotConfigured
}
