package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"producthunt/ingest-service/internal/config"
	"producthunt/ingest-service/internal/scraper"
)

var (
	cleanRescrape bool
	cleanYear     int
	cleanWeek     int
	cleanLimit    int
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete every product row, optionally re-ingesting a week afterwards",
	Long: "clean removes all rows from the products table. This is destructive and\n" +
		"exists only for full re-ingestion; pass --rescrape to pull a week of\n" +
		"products back in immediately after the wipe.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		st, cleanup, err := newStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		removed, err := st.Clean(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d products.\n", removed)

		if !cleanRescrape {
			return nil
		}

		year, week := cleanYear, cleanWeek
		if year == 0 || week == 0 {
			y, w := time.Now().UTC().ISOWeek()
			if year == 0 {
				year = y
			}
			if week == 0 {
				week = w
			}
		}
		win, err := scraper.WeekWindow(year, week)
		if err != nil {
			return err
		}

		worker, closeWorker, err := newWorker(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeWorker()

		_, stats, err := worker.RunWindow(ctx, win, cleanLimit)
		if err != nil {
			return err
		}
		fmt.Printf("Re-ingested %s: %d fetched, %d saved, %d failed.\n",
			win.Label, stats.Fetched, stats.Saved, stats.Failed)
		return nil
	},
}

func init() {
	cleanCmd.Flags().BoolVar(&cleanRescrape, "rescrape", false, "re-ingest a week of products after cleaning")
	cleanCmd.Flags().IntVar(&cleanYear, "year", 0, "year to re-ingest (default: current year)")
	cleanCmd.Flags().IntVar(&cleanWeek, "week", 0, "ISO week number 1-52 to re-ingest (default: current week)")
	cleanCmd.Flags().IntVar(&cleanLimit, "limit", 20, "number of products to re-ingest")
}
