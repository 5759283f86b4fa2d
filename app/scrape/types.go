package scrape

import (
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/shojha24/u-c-lotta-adipose/app/dining"
	"github.com/shojha24/u-c-lotta-adipose/app/sources"
)

// Fetcher retrieves a URL and returns its parsed HTML. The production
// implementation wraps an HTTP client; tests substitute fixture pages.
type Fetcher interface {
	FetchDocument(ctx context.Context, url string) (*goquery.Document, error)
}

// Report summarizes one collection run.
type Report struct {
	HoursOK        bool
	TrucksOK       bool
	MenusCollected int
	MenusTotal     int
	ItemsResolved  int
	ItemsFailed    int
}

// MenusOK reports whether at least one hall menu page came through.
func (r Report) MenusOK() bool {
	return r.MenusCollected > 0
}

// Success reports whether every stage succeeded. Only a successful run is
// worth persisting.
func (r Report) Success() bool {
	return r.HoursOK && r.TrucksOK && r.MenusOK()
}

// Scraper drives a collection run against the upstream pages, merging what it
// finds into the dining document. A Scraper runs one collection at a time.
type Scraper struct {
	fetcher Fetcher
	src     sources.Sources

	doc *dining.Document
	rep *Report

	// visiting holds item ids currently being resolved on the stack, so a
	// composite item referencing an ancestor does not loop.
	visiting map[string]bool

	// Now supplies the campus-local clock. Tests override it to pin the
	// weekday and the menu date window.
	Now func() time.Time
}

// NewScraper creates a scraper reading from the given source catalog.
func NewScraper(fetcher Fetcher, src sources.Sources) *Scraper {
	return &Scraper{
		fetcher: fetcher,
		src:     src,
		Now:     time.Now,
	}
}
