// Define the listing record and the interface for site scrapers

package scraper

import (
	"context"

	"go-jobpulse/internal/browser"
)

const (
	// Unknown stands in for a missing title, company or location.
	Unknown = "Unknown"
	// NotAvailable stands in for a missing detail link.
	NotAvailable = "N/A"
)

type Listing struct {
	Title    string
	Company  string
	Location string
	Link     string
}

// Scraper drives one job board through the navigate, wait and extract steps.
type Scraper interface {
	//Name is the platform name (LinkedIn, ...)
	Name() string

	//SearchURL is the results page for the configured keyword and location
	SearchURL() string

	//Navigate loads the results page
	Navigate(ctx context.Context, page browser.Page) error

	//AwaitResults waits for the results container, tolerating slow or
	//unknown layouts. It only fails when ctx is done.
	AwaitResults(ctx context.Context, page browser.Page) error

	//Extract reads the listings from the rendered page
	Extract(ctx context.Context, page browser.Page) ([]Listing, error)
}
