package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/shojha24/u-c-lotta-adipose/app/dining"
	"github.com/shojha24/u-c-lotta-adipose/app/htmlutil"
)

const weekMarker = "Week of "

// collectTrucks refreshes the food truck schedule. The page heading carries a
// week label; when it matches the stored one the tables are not re-parsed.
func (s *Scraper) collectTrucks(ctx context.Context) error {
	page, err := s.fetcher.FetchDocument(ctx, s.src.TrucksURL)
	if err != nil {
		return err
	}

	header := page.Find("h2.wp-block-heading.alignwide")
	if header.Length() == 0 {
		return fmt.Errorf("no week heading at %s", s.src.TrucksURL)
	}

	week := weekLabel(htmlutil.TrimmedText(header.Get(0)))
	if week == s.doc.TruckWeek() {
		slog.Debug("Truck schedule is current", "week", week)
		return nil
	}

	s.doc.SetTruckWeek(week)
	s.parseTruckSchedules(page)

	slog.Info("Recorded truck schedule", "week", week)
	return nil
}

// weekLabel extracts the week date from the schedule heading, so "Food Truck
// Schedule for the Week of June 23, 2025" yields "June 23, 2025". Headings
// without the marker are used whole.
func weekLabel(heading string) string {
	if i := strings.LastIndex(heading, weekMarker); i >= 0 {
		return strings.TrimSpace(heading[i+len(weekMarker):])
	}
	return heading
}

// parseTruckSchedules walks the per-location headings. Each heading is
// followed by a table whose rows are a day name and the two serving slots.
// Headings without a table (intro copy shares their styling) are skipped.
func (s *Scraper) parseTruckSchedules(page *goquery.Document) {
	page.Find("h3.wp-block-heading").Each(func(_ int, sel *goquery.Selection) {
		location := strings.ToLower(strings.TrimSpace(sel.Text()))
		if location == "" {
			return
		}

		tbody := htmlutil.Next(sel.Get(0), htmlutil.Pred{Tag: "tbody"})
		if tbody == nil {
			return
		}

		for row := tbody.FirstChild; row != nil; row = row.NextSibling {
			if row.Type != html.ElementNode {
				continue
			}
			cells := htmlutil.FindAll(row, predCell)
			if len(cells) < 3 {
				continue
			}

			day := strings.ToLower(htmlutil.TrimmedText(cells[0]))
			if len(day) > 3 {
				day = day[:3]
			}

			s.doc.SetTruckDay(location, day, dining.TruckDay{
				Evening:   htmlutil.TrimmedText(cells[1]),
				LateNight: htmlutil.TrimmedText(cells[2]),
			})
		}
	})
}
