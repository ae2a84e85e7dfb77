package scraper

import (
	"context"
	"testing"
)

// fakeResolver records inputs and returns them with a marker prefix, so
// tests can tell resolved fields from passthrough fields.
type fakeResolver struct {
	calls []string
}

func (f *fakeResolver) Resolve(_ context.Context, rawURL string) string {
	f.calls = append(f.calls, rawURL)
	if rawURL == "" {
		return ""
	}
	return "resolved:" + rawURL
}

func TestNormalizeNilNode(t *testing.T) {
	n := NewNormalizer(&fakeResolver{})
	if got := n.Normalize(context.Background(), nil); got != nil {
		t.Errorf("Normalize(nil) = %+v, want nil", got)
	}
}

func TestNormalizeMissingNameUsesPlaceholder(t *testing.T) {
	n := NewNormalizer(&fakeResolver{})
	node := &postNode{ID: "p1"}

	got := n.Normalize(context.Background(), node)
	if got == nil {
		t.Fatal("Normalize returned nil for a present node")
	}
	if got.Name != "Unnamed Product" {
		t.Errorf("Name = %q, want %q", got.Name, "Unnamed Product")
	}
	if got.Tagline != "" || got.Description != "" || got.Upvotes != 0 {
		t.Errorf("defaults not applied: %+v", got)
	}
}

func TestNormalizeResolvesBothURLFields(t *testing.T) {
	fr := &fakeResolver{}
	n := NewNormalizer(fr)
	node := &postNode{
		ID:      "p2",
		Name:    "Widget",
		URL:     "https://ph.example/r/abc",
		Website: "https://widget.example?ref=ph",
	}

	got := n.Normalize(context.Background(), node)
	if got.URL != "resolved:https://ph.example/r/abc" {
		t.Errorf("URL = %q, resolver not applied", got.URL)
	}
	if got.WebsiteURL != "resolved:https://widget.example?ref=ph" {
		t.Errorf("WebsiteURL = %q, resolver not applied", got.WebsiteURL)
	}
	if len(fr.calls) != 2 {
		t.Errorf("resolver called %d times, want 2", len(fr.calls))
	}
}

func TestNormalizeMakers(t *testing.T) {
	n := NewNormalizer(&fakeResolver{})
	node := &postNode{ID: "p3", Name: "Widget"}
	node.Makers = []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Username string `json:"username"`
	}{
		{ID: "m1", Name: "Ada", Username: "ada"},
		{ID: "m2", Name: "", Username: "ghost"}, // nameless entries are skipped
		{ID: "m3", Name: "Brin", Username: ""},  // kept, but no profile URL
	}

	got := n.Normalize(context.Background(), node)
	if len(got.Makers) != 2 {
		t.Fatalf("got %d makers, want 2: %+v", len(got.Makers), got.Makers)
	}
	if got.Makers[0].ProfileURL != "https://producthunt.com/@ada" {
		t.Errorf("ProfileURL = %q, want built from handle", got.Makers[0].ProfileURL)
	}
	if got.Makers[1].ProfileURL != "" {
		t.Errorf("ProfileURL for handle-less maker = %q, want empty", got.Makers[1].ProfileURL)
	}
	if len(got.MakerIDs) != 2 || got.MakerIDs[0] != "ada" {
		t.Errorf("MakerIDs = %v, want usernames in source order", got.MakerIDs)
	}
}

func TestNormalizeTopics(t *testing.T) {
	n := NewNormalizer(&fakeResolver{})
	node := &postNode{ID: "p4", Name: "Widget"}
	node.Topics.Edges = []struct {
		Node struct {
			Name string `json:"name"`
		} `json:"node"`
	}{{}, {}, {}}
	node.Topics.Edges[0].Node.Name = "AI"
	node.Topics.Edges[1].Node.Name = "" // skipped
	node.Topics.Edges[2].Node.Name = "Developer Tools"

	got := n.Normalize(context.Background(), node)
	if len(got.Topics) != 2 || got.Topics[0] != "AI" || got.Topics[1] != "Developer Tools" {
		t.Errorf("Topics = %v, want [AI, Developer Tools]", got.Topics)
	}
}
