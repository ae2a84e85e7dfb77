package scraper

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	maxRedirectHops = 5
	hopDelay        = 500 * time.Millisecond

	resolverUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/113.0.0.0 Safari/537.36"
)

// trackingParams are attribution query keys stripped from resolved URLs.
var trackingParams = map[string]bool{
	"ref":          true,
	"utm_source":   true,
	"utm_medium":   true,
	"utm_campaign": true,
	"utm_term":     true,
	"utm_content":  true,
}

// LinkResolver follows HTTP redirects manually to find the final destination
// of a listing URL, then strips tracking parameters. Resolution is
// best-effort: on any transport failure the original input is returned.
type LinkResolver struct {
	client  *http.Client
	maxHops int
	delay   time.Duration // politeness pause between hops
}

// NewLinkResolver constructs a resolver with redirect-following disabled on
// its HTTP client, so each hop is observed explicitly.
func NewLinkResolver() *LinkResolver {
	return &LinkResolver{
		client: &http.Client{
			Timeout: 15 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		maxHops: maxRedirectHops,
		delay:   hopDelay,
	}
}

// Resolve follows up to maxHops redirects from rawURL and returns the final
// URL with tracking parameters removed. An empty input returns an empty
// string without any network call; a failed hop returns rawURL unchanged.
func (r *LinkResolver) Resolve(ctx context.Context, rawURL string) string {
	if rawURL == "" {
		return ""
	}

	current := rawURL
	for hop := 0; hop < r.maxHops; hop++ {
		loc, redirected, err := r.fetchLocation(ctx, current)
		if err != nil {
			log.Printf("[resolver] %s: %v — keeping original", rawURL, err)
			return rawURL
		}
		if !redirected {
			break
		}
		current = loc
		if r.delay > 0 {
			time.Sleep(r.delay)
		}
	}

	return stripTracking(current)
}

// fetchLocation issues one GET and reports whether the response was a
// redirect, returning the absolute next URL when it was.
func (r *LinkResolver) fetchLocation(ctx context.Context, current string) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, current, nil)
	if err != nil {
		return "", false, err
	}
	req.Header.Set("User-Agent", resolverUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
	default:
		return "", false, nil
	}

	loc := resp.Header.Get("Location")
	if loc == "" {
		return "", false, nil
	}

	// Relative Location headers are resolved against the current host.
	if !strings.HasPrefix(loc, "http://") && !strings.HasPrefix(loc, "https://") {
		u, err := url.Parse(current)
		if err != nil {
			return "", false, err
		}
		loc = u.Scheme + "://" + u.Host + loc
	}

	return loc, true, nil
}

// stripTracking removes known tracking parameters from rawURL, preserving the
// order and encoding of the surviving pairs (first value wins on duplicate
// keys). If the URL cannot be parsed it is returned unchanged.
func stripTracking(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	if u.RawQuery == "" {
		return rawURL
	}

	seen := map[string]bool{}
	var kept []string
	for _, pair := range strings.Split(u.RawQuery, "&") {
		if pair == "" {
			continue
		}
		key := pair
		if i := strings.Index(pair, "="); i >= 0 {
			key = pair[:i]
		}
		if trackingParams[key] || seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, pair)
	}

	u.RawQuery = strings.Join(kept, "&")
	return u.String()
}
