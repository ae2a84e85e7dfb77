package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"producthunt/ingest-service/internal/config"
	"producthunt/ingest-service/internal/scraper"
)

var (
	dailyDate   string
	dailyLimit  int
	dailyFormat string
	dailyOutput string
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Ingest top products for a single day",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		date := time.Now().UTC()
		if dailyDate != "" {
			date, err = scraper.ParseDate(dailyDate)
			if err != nil {
				return err
			}
		}

		ctx := cmd.Context()
		worker, cleanup, err := newWorker(ctx, cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		win := scraper.DayWindow(date)
		products, stats, err := worker.RunWindow(ctx, win, dailyLimit)
		if err != nil {
			return err
		}
		if len(products) == 0 {
			fmt.Printf("No products found for %s on ProductHunt.\n", win.Label)
			return nil
		}

		heading := fmt.Sprintf("%s's Top %d Products on ProductHunt:", win.Label, len(products))
		out, err := renderProducts(products, heading, dailyFormat)
		if err != nil {
			return err
		}
		if err := emit(out, dailyOutput); err != nil {
			return err
		}

		fmt.Printf("Saved %d of %d products (%d failed).\n", stats.Saved, stats.Fetched, stats.Failed)
		return nil
	},
}

func init() {
	dailyCmd.Flags().StringVar(&dailyDate, "date", "", "day to ingest (YYYY-MM-DD, default: today)")
	dailyCmd.Flags().IntVar(&dailyLimit, "limit", 20, "number of products to fetch")
	dailyCmd.Flags().StringVar(&dailyFormat, "format", "text", "output format: text or json")
	dailyCmd.Flags().StringVar(&dailyOutput, "output", "", "write listing to this file instead of stdout")
}
