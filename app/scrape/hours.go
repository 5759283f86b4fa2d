package scrape

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/net/html"

	"github.com/shojha24/u-c-lotta-adipose/app/dining"
	"github.com/shojha24/u-c-lotta-adipose/app/htmlutil"
)

var (
	predAnchor = htmlutil.Pred{Tag: "a", HasAttr: "href"}
	predCell   = htmlutil.Pred{Tag: "td"}
)

// collectHours records today's operating hours for every hall listed on the
// locations page. Hours for a weekday are written at most once; when today is
// already recorded the page is not fetched at all.
func (s *Scraper) collectHours(ctx context.Context) error {
	day := dining.DayCode(s.Now())

	if s.doc.HoursRecorded(day) {
		slog.Debug("Hours already recorded for today", "day", day)
		return nil
	}

	page, err := s.fetcher.FetchDocument(ctx, s.src.HoursURL)
	if err != nil {
		return err
	}

	table := page.Find("table.dining-hours-table")
	if table.Length() == 0 {
		return fmt.Errorf("no dining hours table at %s", s.src.HoursURL)
	}

	if err := s.parseHoursTable(table.Get(0), day); err != nil {
		return err
	}

	slog.Info("Recorded dining hours", "day", day)
	return nil
}

// parseHoursTable walks the hours table as a flat cursor over anchors and
// cells. Each recognized location link is followed by four cells (breakfast,
// lunch, dinner, extended dinner); links that do not resolve to a hall are
// stepped over without consuming cells.
func (s *Scraper) parseHoursTable(table *html.Node, day string) error {
	cur := htmlutil.Find(table, predAnchor)

	for cur != nil && htmlutil.Next(cur, predCell) != nil {
		code, ok := s.src.LookupHall(htmlutil.TrimmedText(cur))
		if !ok {
			cur = htmlutil.Next(cur, predAnchor)
			continue
		}

		s.doc.EnsureHall(code, htmlutil.Attr(cur, "href"))

		cells := make([]*html.Node, 4)
		node := cur
		for i := range cells {
			node = htmlutil.Next(node, predCell)
			if node == nil {
				return fmt.Errorf("hours row for %s is truncated", code)
			}
			cells[i] = node
		}

		s.doc.SetHours(code, day, dining.DayHours{
			Breakfast: htmlutil.TrimmedText(cells[0]),
			Lunch:     htmlutil.TrimmedText(cells[1]),
			Dinner:    htmlutil.TrimmedText(cells[2]),
			ExtDinner: htmlutil.TrimmedText(cells[3]),
		})

		cur = htmlutil.Next(cells[3], predAnchor)
	}

	return nil
}
