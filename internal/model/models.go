// Package model defines shared data structures for the ingest service.
package model

import "time"

// Maker is one credited maker on a ProductHunt listing.
type Maker struct {
	Name       string `json:"name"`
	Username   string `json:"username"`
	ProfileURL string `json:"profile_url"`
}

// Product is a normalised ProductHunt listing, ready for upsert into the
// products table. ID is the ProductHunt post id and the primary key;
// URL and WebsiteURL are redirect-terminal and stripped of tracking
// parameters (or the raw value when resolution failed).
type Product struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Tagline      string   `json:"tagline"`
	Description  string   `json:"description"`
	URL          string   `json:"url"`
	WebsiteURL   string   `json:"website_url"`
	ThumbnailURL string   `json:"thumbnail_url"`
	LaunchDate   string   `json:"launch_date"`
	Upvotes      int      `json:"upvotes"`
	Comments     int      `json:"comments"`
	MakerIDs     []string `json:"maker_ids"`
	Topics       []string `json:"topics"`
	Makers       []Maker  `json:"makers,omitempty"`

	// Set by the store, never by the scraper.
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}
