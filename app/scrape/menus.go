package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/shojha24/u-c-lotta-adipose/app/dining"
	"github.com/shojha24/u-c-lotta-adipose/app/htmlutil"
)

// The menu date window: yesterday through five days out. Pages outside it are
// never requested.
const (
	menuWindowStart = -1
	menuWindowEnd   = 5
)

var mealSectionIDs = []string{"breakfastmenu", "lunchmenu", "dinnermenu"}

// collectMenus walks every hall's menu pages across the date window, resolving
// the items each menu references. It returns how many hall-day menus are in
// hand out of the total attempted; dates recorded by an earlier run count
// without a fetch.
func (s *Scraper) collectMenus(ctx context.Context) (collected, total int) {
	dates := s.menuDates()

	codes := make([]string, 0, len(s.src.Halls))
	for code := range s.src.Halls {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		link := s.src.MenuURL(code)
		if hall := s.doc.Hall(code); hall != nil && hall.Link != "" {
			link = hall.Link
		}
		s.doc.EnsureHall(code, link)

		for _, date := range dates {
			total++
			if err := s.collectHallMenu(ctx, code, link, date); err != nil {
				slog.Error("Failed to collect menu", "hall", code, "date", date, "error", err)
				continue
			}
			collected++
		}
	}

	return collected, total
}

func (s *Scraper) menuDates() []string {
	now := s.Now()
	dates := make([]string, 0, menuWindowEnd-menuWindowStart+1)
	for i := menuWindowStart; i <= menuWindowEnd; i++ {
		dates = append(dates, now.AddDate(0, 0, i).Format("2006-01-02"))
	}
	return dates
}

// collectHallMenu records one hall-day menu. Recorded dates are skipped before
// any fetch; a closure notice on the page is stored as a closed day. The menu
// is built up locally and committed in one piece, so a parse failure leaves no
// half-written date behind.
func (s *Scraper) collectHallMenu(ctx context.Context, code, link, date string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.doc.MenuRecorded(code, date) {
		return nil
	}

	page, err := s.fetcher.FetchDocument(ctx, menuPageURL(link, date))
	if err != nil {
		return err
	}

	if page.Find("p.dining-status").Length() > 0 {
		s.doc.SetDayMenu(code, date, &dining.DayMenu{Open: false})
		slog.Info("Hall closed", "hall", code, "date", date)
		return nil
	}

	menu := &dining.DayMenu{
		Open:  true,
		Meals: make(map[string]dining.MealMenu),
	}

	for _, id := range mealSectionIDs {
		sel := page.Find("div#" + id)
		if sel.Length() == 0 {
			continue
		}
		node := sel.Get(0)

		h2 := htmlutil.Next(node, htmlutil.Pred{Tag: "h2"})
		if h2 == nil {
			return fmt.Errorf("menu section %s has no heading", id)
		}
		meal := squash(htmlutil.Text(h2))
		menu.Meals[meal] = make(dining.MealMenu)

		container := htmlutil.Next(node, htmlutil.Pred{Tag: "div", Class: "at-a-glance-menu__dining-location"})
		if container == nil {
			continue
		}
		s.parseMenuContainer(ctx, container, menu.Meals[meal])
	}

	s.doc.SetDayMenu(code, date, menu)
	return nil
}

// parseMenuContainer reads the station divs directly under a meal container.
// Each station has a heading and a recipe list whose cards link to the items.
func (s *Scraper) parseMenuContainer(ctx context.Context, container *html.Node, meal dining.MealMenu) {
	for child := container.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode || child.Data != "div" {
			continue
		}

		h2 := htmlutil.Find(child, htmlutil.Pred{Tag: "h2"})
		if h2 == nil {
			continue
		}
		section := squash(htmlutil.Text(h2))

		list := htmlutil.Next(child, htmlutil.Pred{Tag: "div", Class: "recipe-list"})
		if list == nil {
			continue
		}

		ids := []string{}
		for _, card := range htmlutil.FindAll(list, htmlutil.Pred{Tag: "section", Class: "recipe-card"}) {
			a := htmlutil.Find(card, predAnchor)
			if a == nil {
				continue
			}
			href := htmlutil.Attr(a, "href")
			id := itemID(href)
			if id == "" {
				continue
			}
			ids = append(ids, id)
			s.resolveItem(ctx, id, s.absoluteURL(href))
		}
		meal[section] = ids
	}
}

func menuPageURL(link, date string) string {
	return strings.TrimSuffix(link, "/") + "/?date=" + date
}

// squash normalizes a heading into a map key: whitespace removed, lowercased.
// "The Front Burner" becomes "thefrontburner".
func squash(t string) string {
	return strings.ToLower(strings.Join(strings.Fields(t), ""))
}
