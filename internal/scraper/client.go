package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"producthunt/ingest-service/internal/model"
)

const (
	defaultEndpoint = "https://api.producthunt.com/v2/api/graphql"
	pageSize        = 50
	httpTimeout     = 30 * time.Second
)

// Client fetches top posts from the ProductHunt GraphQL API and normalises
// them into model.Product records.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	normalizer *Normalizer
}

// NewClient constructs a Client with a shared HTTP client. The token is the
// opaque ProductHunt API bearer token.
func NewClient(token string, normalizer *Normalizer) *Client {
	return &Client{
		endpoint:   defaultEndpoint,
		token:      token,
		httpClient: &http.Client{Timeout: httpTimeout},
		normalizer: normalizer,
	}
}

// graphQLRequest is the POST body sent to the API.
type graphQLRequest struct {
	Query string `json:"query"`
}

// graphQLResponse mirrors the top-level GraphQL envelope.
type graphQLResponse struct {
	Data struct {
		Posts struct {
			Edges []struct {
				Node *postNode `json:"node"`
			} `json:"edges"`
		} `json:"posts"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors,omitempty"`
}

// postNode mirrors a single post in the API response.
type postNode struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Tagline     string `json:"tagline"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Slug        string `json:"slug"`
	VotesCount  int    `json:"votesCount"`
	Comments    int    `json:"commentsCount"`
	Website     string `json:"website"`
	CreatedAt   string `json:"createdAt"`
	Thumbnail   struct {
		URL string `json:"url"`
	} `json:"thumbnail"`
	Topics struct {
		Edges []struct {
			Node struct {
				Name string `json:"name"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"topics"`
	Makers []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Username string `json:"username"`
	} `json:"makers"`
}

// FetchWindow retrieves up to limit posts for the given window, ordered by
// upvotes descending. The server-side VOTES ordering is re-applied locally
// before truncating, since it is not trusted as authoritative.
func (c *Client) FetchWindow(ctx context.Context, win Window, limit int) ([]model.Product, error) {
	if limit <= 0 || limit > pageSize {
		limit = pageSize
	}

	resp, err := c.query(ctx, buildPostsQuery(win))
	if err != nil {
		return nil, err
	}

	products := make([]model.Product, 0, len(resp.Data.Posts.Edges))
	for _, edge := range resp.Data.Posts.Edges {
		if p := c.normalizer.Normalize(ctx, edge.Node); p != nil {
			products = append(products, *p)
		}
	}

	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Upvotes > products[j].Upvotes
	})
	if len(products) > limit {
		products = products[:limit]
	}
	return products, nil
}

// query performs one GraphQL POST and surfaces transport failures, non-2xx
// statuses and GraphQL error payloads as *RequestError.
func (c *Client) query(ctx context.Context, query string) (*graphQLResponse, error) {
	payload, err := json.Marshal(graphQLRequest{Query: query})
	if err != nil {
		return nil, &RequestError{Message: "marshal request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &RequestError{Message: "create request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RequestError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Status: resp.StatusCode, Message: "read body", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &RequestError{Status: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	var gql graphQLResponse
	if err := json.Unmarshal(body, &gql); err != nil {
		return nil, &RequestError{Status: resp.StatusCode, Message: "unmarshal response", Err: err}
	}

	if len(gql.Errors) > 0 {
		msgs := make([]string, 0, len(gql.Errors))
		for _, e := range gql.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, &RequestError{Status: resp.StatusCode, Message: strings.Join(msgs, "; ")}
	}

	return &gql, nil
}

// buildPostsQuery renders the posts query for one window: a single page of
// up to 50 edges ordered by vote count.
func buildPostsQuery(win Window) string {
	return fmt.Sprintf(`
	query {
	  posts(first: %d, postedAfter: "%s", postedBefore: "%s", order: VOTES) {
	    edges {
	      node {
	        id
	        name
	        tagline
	        description
	        url
	        slug
	        votesCount
	        commentsCount
	        website
	        createdAt
	        thumbnail { url }
	        topics { edges { node { name } } }
	        makers { id name username }
	      }
	    }
	  }
	}`, pageSize, win.PostedAfter(), win.PostedBefore())
}
