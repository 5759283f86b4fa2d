package scrape

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/shojha24/u-c-lotta-adipose/app/dining"
	"github.com/shojha24/u-c-lotta-adipose/app/htmlutil"
	"github.com/shojha24/u-c-lotta-adipose/app/metrics"
)

var (
	itemIDRe = regexp.MustCompile(`\d+`)
	labelRe  = regexp.MustCompile(`([^/.]*)\.svg`)
)

// itemID extracts the numeric recipe id from an item link path, or "".
func itemID(href string) string {
	return itemIDRe.FindString(href)
}

func (s *Scraper) absoluteURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return strings.TrimSuffix(s.src.BaseURL, "/") + "/" + strings.TrimPrefix(href, "/")
}

// resolveItem fetches and records the item behind a menu link. Items are
// immutable once recorded, so known ids return without a fetch. Ids currently
// being resolved further up the stack also return immediately; composite
// items can reference each other and the walk must not chase the loop.
func (s *Scraper) resolveItem(ctx context.Context, id, link string) bool {
	if s.doc.HasItem(id) {
		return true
	}
	if s.visiting[id] {
		return true
	}
	s.visiting[id] = true
	defer delete(s.visiting, id)

	page, err := s.fetcher.FetchDocument(ctx, link)
	if err != nil {
		slog.Error("Failed to fetch item", "id", id, "error", err)
		s.rep.ItemsFailed++
		metrics.ItemsResolved.WithLabelValues("error").Inc()
		return false
	}

	item, ok := parseStandardItem(page)
	if !ok {
		item, ok = s.parseCompositeItem(ctx, page)
	}
	if !ok {
		slog.Error("Failed to parse item", "id", id, "url", link)
		s.rep.ItemsFailed++
		metrics.ItemsResolved.WithLabelValues("error").Inc()
		return false
	}

	s.doc.AddItem(id, item)
	s.rep.ItemsResolved++
	metrics.ItemsResolved.WithLabelValues("ok").Inc()
	return true
}

// parseStandardItem reads an item page with a nutrition facts panel. Pages
// without one are handed to the composite parser instead.
func parseStandardItem(page *goquery.Document) (*dining.ItemRecord, bool) {
	name := strings.TrimSpace(page.Find("h2.headline-text__lg").First().Text())
	if name == "" {
		return nil, false
	}

	item := &dining.ItemRecord{Name: name}

	if content := page.Find("div.single-menu-page-content"); content.Length() > 0 {
		labels := []string{}
		content.Find("img").Each(func(_ int, icon *goquery.Selection) {
			src, _ := icon.Attr("src")
			if m := labelRe.FindStringSubmatch(src); m != nil {
				labels = append(labels, m[1])
			}
		})
		item.Labels = labels
	}

	nutrition := page.Find("div#nutrition")
	if nutrition.Length() == 0 {
		return nil, false
	}

	if strong := page.Find("strong").First(); strong.Length() > 0 {
		item.ServingSize = htmlutil.NextSiblingText(strong.Get(0))
	}

	if span := nutrition.Find("p.single-calories span").First(); span.Length() > 0 {
		item.Calories = htmlutil.NextSiblingText(span.Get(0))
	}

	nut := make(map[string]dining.Nutrient)
	nutrition.Find("span").Each(func(i int, sel *goquery.Selection) {
		if i == 0 {
			// The first span is the calories line handled above.
			return
		}
		node := sel.Get(0)

		value := htmlutil.NextSiblingText(node)
		if value == "" {
			return
		}

		var percent *string
		if td := htmlutil.Next(node, predCell); td != nil {
			p := htmlutil.TrimmedText(td)
			percent = &p
		}

		nut[strings.ToLower(strings.TrimSpace(sel.Text()))] = dining.Nutrient{
			Value:   value,
			Percent: percent,
		}
	})
	if len(nut) > 0 {
		item.Nutrition = nut
	}

	return item, true
}

// parseCompositeItem reads an item assembled from other items: named
// ingredient groups whose entries link to their own pages. Every referenced
// ingredient is resolved in turn before the composite itself is recorded.
func (s *Scraper) parseCompositeItem(ctx context.Context, page *goquery.Document) (*dining.ItemRecord, bool) {
	name := strings.TrimSpace(page.Find("h2.headline-text__lg").First().Text())
	if name == "" {
		return nil, false
	}

	item := &dining.ItemRecord{
		Name:        name,
		Ingredients: make(map[string][]string),
	}

	page.Find("div.complex-ingredient-group").Each(func(_ int, group *goquery.Selection) {
		label := strings.TrimSpace(group.Find("h4").First().Text())
		if label == "" {
			return
		}

		ids := []string{}
		group.Find("li").Each(func(_ int, li *goquery.Selection) {
			href, ok := li.Find("a[href]").First().Attr("href")
			if !ok {
				return
			}
			id := itemID(href)
			if id == "" {
				return
			}
			ids = append(ids, id)
			s.resolveItem(ctx, id, s.absoluteURL(href))
		})
		item.Ingredients[label] = ids
	})

	return item, true
}
