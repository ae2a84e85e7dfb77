package scraper

import (
	"context"

	"producthunt/ingest-service/internal/model"
)

// defaultName is used when a listing arrives without a name.
const defaultName = "Unnamed Product"

const makerProfileURL = "https://producthunt.com/@"

// URLResolver resolves a raw listing URL to its canonical form.
// *LinkResolver is the production implementation.
type URLResolver interface {
	Resolve(ctx context.Context, rawURL string) string
}

// Normalizer maps raw API post nodes into canonical product records,
// resolving the two outbound URL fields through a URLResolver.
type Normalizer struct {
	resolver URLResolver
}

// NewNormalizer constructs a Normalizer.
func NewNormalizer(resolver URLResolver) *Normalizer {
	return &Normalizer{resolver: resolver}
}

// Normalize converts one post node into a Product, or nil when the node is
// absent. Field-level extraction failures degrade to documented defaults;
// this never fails for malformed input.
func (n *Normalizer) Normalize(ctx context.Context, node *postNode) *model.Product {
	if node == nil {
		return nil
	}

	var topics []string
	for _, edge := range node.Topics.Edges {
		if edge.Node.Name != "" {
			topics = append(topics, edge.Node.Name)
		}
	}

	var makers []model.Maker
	var makerIDs []string
	for _, m := range node.Makers {
		// Entries without a name are not real maker records.
		if m.Name == "" {
			continue
		}
		profile := ""
		if m.Username != "" {
			profile = makerProfileURL + m.Username
		}
		makers = append(makers, model.Maker{Name: m.Name, Username: m.Username, ProfileURL: profile})
		makerIDs = append(makerIDs, m.Username)
	}

	name := node.Name
	if name == "" {
		name = defaultName
	}

	return &model.Product{
		ID:           node.ID,
		Name:         name,
		Tagline:      node.Tagline,
		Description:  node.Description,
		URL:          n.resolver.Resolve(ctx, node.URL),
		WebsiteURL:   n.resolver.Resolve(ctx, node.Website),
		ThumbnailURL: node.Thumbnail.URL,
		LaunchDate:   node.CreatedAt,
		Upvotes:      node.VotesCount,
		Comments:     node.Comments,
		MakerIDs:     makerIDs,
		Topics:       topics,
		Makers:       makers,
	}
}
