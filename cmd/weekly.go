package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"producthunt/ingest-service/internal/config"
	"producthunt/ingest-service/internal/scraper"
)

var (
	weeklyYear   int
	weeklyWeek   int
	weeklyLimit  int
	weeklyFormat string
	weeklyOutput string
)

var weeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Ingest top products for an ISO week",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		year, week := weeklyYear, weeklyWeek
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

		ctx := cmd.Context()
		worker, cleanup, err := newWorker(ctx, cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		products, stats, err := worker.RunWindow(ctx, win, weeklyLimit)
		if err != nil {
			return err
		}
		if len(products) == 0 {
			fmt.Printf("No products found for %s on ProductHunt.\n", win.Label)
			return nil
		}

		heading := fmt.Sprintf("Top %d Products on ProductHunt for %s:", len(products), win.Label)
		out, err := renderProducts(products, heading, weeklyFormat)
		if err != nil {
			return err
		}
		if err := emit(out, weeklyOutput); err != nil {
			return err
		}

		fmt.Printf("Saved %d of %d products (%d failed).\n", stats.Saved, stats.Fetched, stats.Failed)
		return nil
	},
}

func init() {
	weeklyCmd.Flags().IntVar(&weeklyYear, "year", 0, "year to ingest (default: current year)")
	weeklyCmd.Flags().IntVar(&weeklyWeek, "week", 0, "ISO week number 1-52 (default: current week)")
	weeklyCmd.Flags().IntVar(&weeklyLimit, "limit", 20, "number of products to fetch")
	weeklyCmd.Flags().StringVar(&weeklyFormat, "format", "text", "output format: text or json")
	weeklyCmd.Flags().StringVar(&weeklyOutput, "output", "", "write listing to this file instead of stdout")
}
