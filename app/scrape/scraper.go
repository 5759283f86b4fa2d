package scrape

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shojha24/u-c-lotta-adipose/app/dining"
	"github.com/shojha24/u-c-lotta-adipose/app/metrics"
)

// Run executes the three collection stages in order against doc: hall hours,
// food truck schedule, then the weekly menus with their items. Stage failures
// are isolated; the report tells the caller whether the result is complete
// enough to persist.
func (s *Scraper) Run(ctx context.Context, doc *dining.Document) Report {
	s.doc = doc
	s.rep = &Report{}
	s.visiting = make(map[string]bool)
	defer func() {
		s.doc = nil
		s.rep = nil
		s.visiting = nil
	}()

	if err := s.collectHours(ctx); err != nil {
		slog.Error("Hours collection failed", "error", err)
		metrics.StageFailures.WithLabelValues("hours").Inc()
	} else {
		s.rep.HoursOK = true
	}

	if err := s.collectTrucks(ctx); err != nil {
		slog.Error("Truck schedule collection failed", "error", err)
		metrics.StageFailures.WithLabelValues("trucks").Inc()
	} else {
		s.rep.TrucksOK = true
	}

	s.rep.MenusCollected, s.rep.MenusTotal = s.collectMenus(ctx)
	if !s.rep.MenusOK() {
		metrics.StageFailures.WithLabelValues("menus").Inc()
	}

	slog.Info("Collection run finished",
		"hours", s.rep.HoursOK,
		"trucks", s.rep.TrucksOK,
		"menus", fmt.Sprintf("%d/%d", s.rep.MenusCollected, s.rep.MenusTotal),
		"items_resolved", s.rep.ItemsResolved,
		"items_failed", s.rep.ItemsFailed)

	return *s.rep
}
