// Define an interface for all scrapers
// Ensure consistency

package scraper

import (
	"context"

	"go-job-scraper/internal/browser"
	"go-job-scraper/internal/search"
)

// NotAvailable fills optional fields a listing card does not show.
const NotAvailable = "N/A"

// MaxListings caps how many result cards are read per board.
const MaxListings = 20

type JobListing struct {
	Source     search.Source
	Title      string
	Company    string
	Salary     string
	Link       string
	PostedDate string
	Summary    string
}

// Row returns the listing in export column order.
func (j JobListing) Row() []string {
	return []string{string(j.Source), j.Title, j.Company, j.Salary, j.Link, j.PostedDate, j.Summary}
}

//Scraper defines the interface that all board scrapers must implement
type Scraper interface {
	//Scrape listings for the search from the board
	Scrape(ctx context.Context, page browser.Page, f *search.Filters) ([]JobListing, error)

	//Source is the board this scraper reads
	Source() search.Source

	//Name is the board name (Indeed, LinkedIn, ...)
	Name() string
}
