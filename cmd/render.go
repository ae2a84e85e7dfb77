package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"producthunt/ingest-service/internal/model"
)

// renderProducts formats a product listing as human-readable text or JSON.
func renderProducts(products []model.Product, heading, format string) (string, error) {
	if format == "json" {
		out, err := json.MarshalIndent(products, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal products: %w", err)
		}
		return string(out), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", heading)
	for i, p := range products {
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, p.Name, p.Tagline)
		fmt.Fprintf(&b, "   Votes: %d | Comments: %d\n", p.Upvotes, p.Comments)
		if p.WebsiteURL != "" {
			fmt.Fprintf(&b, "   Website: %s\n", p.WebsiteURL)
		}
		if p.URL != "" {
			fmt.Fprintf(&b, "   ProductHunt: %s\n", p.URL)
		}
		if len(p.Makers) > 0 {
			names := make([]string, 0, len(p.Makers))
			for _, m := range p.Makers {
				names = append(names, m.Name)
			}
			fmt.Fprintf(&b, "   Makers: %s\n", strings.Join(names, ", "))
		}
		if len(p.Topics) > 0 {
			fmt.Fprintf(&b, "   Topics: %s\n", strings.Join(p.Topics, ", "))
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

// emit prints the rendered listing to stdout or writes it to a file.
func emit(content, outputPath string) error {
	if outputPath == "" {
		fmt.Println(content)
		return nil
	}
	if err := os.WriteFile(outputPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}
	fmt.Printf("Results saved to %s\n", outputPath)
	return nil
}
