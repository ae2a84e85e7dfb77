package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"producthunt/ingest-service/internal/config"
	"producthunt/ingest-service/internal/scraper"
)

var (
	rangeStart     string
	rangeEnd       string
	rangePerDay    int
	rangeMaxTotal  int
	rangeDelaySecs float64
)

var rangeCmd = &cobra.Command{
	Use:   "range",
	Short: "Ingest top products for every day in a date range",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		start, err := scraper.ParseDate(rangeStart)
		if err != nil {
			return err
		}
		end, err := scraper.ParseDate(rangeEnd)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("delay") {
			cfg.RequestDelay = secondsToDuration(rangeDelaySecs)
		}

		ctx := cmd.Context()
		worker, cleanup, err := newWorker(ctx, cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		stats, err := worker.RunRange(ctx, start, end, rangePerDay, rangeMaxTotal)
		if err != nil {
			return err
		}

		fmt.Printf("Range ingest complete: %d windows, %d fetched, %d saved, %d failed.\n",
			stats.Windows, stats.Fetched, stats.Saved, stats.Failed)
		return nil
	},
}

func init() {
	rangeCmd.Flags().StringVar(&rangeStart, "start-date", "", "start date (YYYY-MM-DD)")
	rangeCmd.Flags().StringVar(&rangeEnd, "end-date", "", "end date (YYYY-MM-DD)")
	rangeCmd.Flags().IntVar(&rangePerDay, "max-per-day", 20, "maximum products to ingest per day")
	rangeCmd.Flags().IntVar(&rangeMaxTotal, "max-total", 100, "maximum total products to ingest")
	rangeCmd.Flags().Float64Var(&rangeDelaySecs, "delay", 1.0, "delay between day windows in seconds")
	_ = rangeCmd.MarkFlagRequired("start-date")
	_ = rangeCmd.MarkFlagRequired("end-date")
}
