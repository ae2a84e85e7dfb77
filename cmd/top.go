package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"producthunt/ingest-service/internal/config"
	"producthunt/ingest-service/internal/model"
	"producthunt/ingest-service/internal/scraper"
)

var (
	topLimit  int
	topDate   string
	topFormat string
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "List stored products by upvotes (optionally for one launch date)",
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

		var products []model.Product
		heading := fmt.Sprintf("Top %d stored products:", topLimit)
		if topDate != "" {
			if _, err := scraper.ParseDate(topDate); err != nil {
				return err
			}
			products, err = st.ProductsByDate(ctx, topDate)
			heading = fmt.Sprintf("Products launched on %s:", topDate)
		} else {
			products, err = st.TopProducts(ctx, topLimit)
		}
		if err != nil {
			return err
		}
		if len(products) == 0 {
			fmt.Println("No products stored.")
			return nil
		}

		out, err := renderProducts(products, heading, topFormat)
		if err != nil {
			return err
		}
		return emit(out, "")
	},
}

func init() {
	topCmd.Flags().IntVar(&topLimit, "limit", 10, "number of products to list")
	topCmd.Flags().StringVar(&topDate, "date", "", "list products launched on this date (YYYY-MM-DD)")
	topCmd.Flags().StringVar(&topFormat, "format", "text", "output format: text or json")
}
