// Package cmd defines the CLI surface of the ingest service.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"producthunt/ingest-service/internal/config"
	"producthunt/ingest-service/internal/db"
	"producthunt/ingest-service/internal/scraper"
	"producthunt/ingest-service/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "ph-ingest",
	Short: "ProductHunt top-product ingest service",
	Long: "ph-ingest fetches top product listings from the ProductHunt API for a day,\n" +
		"week or date range, resolves outbound links to their final destination and\n" +
		"upserts the records into Postgres keyed by product id.",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(dailyCmd)
	rootCmd.AddCommand(weeklyCmd)
	rootCmd.AddCommand(rangeCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(daemonCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newSink opens the product store, or returns the logged inert sink when
// DATABASE_URL is not set. The returned func closes the pool.
func newSink(ctx context.Context, cfg *config.Config) (scraper.Sink, func(), error) {
	if cfg.DatabaseURL == "" {
		fmt.Fprintln(os.Stderr, "warning: DATABASE_URL not set — products will be fetched but not persisted")
		return store.Disabled{}, func() {}, nil
	}

	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect postgres: %w", err)
	}
	st, err := store.New(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	return st, pool.Close, nil
}

// newStore opens the product store for read-side and destructive commands,
// which cannot run without credentials.
func newStore(ctx context.Context, cfg *config.Config) (*store.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		return nil, nil, fmt.Errorf("DATABASE_URL is required for this command")
	}
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect postgres: %w", err)
	}
	st, err := store.New(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	return st, pool.Close, nil
}

// newWorker wires resolver, normaliser, API client and sink into a Worker.
func newWorker(ctx context.Context, cfg *config.Config) (*scraper.Worker, func(), error) {
	if err := cfg.RequireToken(); err != nil {
		return nil, nil, err
	}

	sink, closeSink, err := newSink(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	normalizer := scraper.NewNormalizer(scraper.NewLinkResolver())
	client := scraper.NewClient(cfg.Token, normalizer)
	return scraper.NewWorker(client, sink, cfg.RequestDelay), closeSink, nil
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
