package scrape

import (
	"context"
	"testing"

	"github.com/shojha24/u-c-lotta-adipose/app/dining"
)

func TestCollectMenusRecordsStations(t *testing.T) {
	s, _ := newTestScraper(bPlateOnly(), fullPages())
	doc := dining.NewDocument()
	s.Run(context.Background(), doc)

	date := testDates()[1]
	menu := doc.Hall("b-plate").Menu[date]
	if menu == nil || !menu.Open {
		t.Fatalf("Expected open menu for %s, got: %+v", date, menu)
	}

	if len(menu.Meals) != 2 {
		t.Errorf("Expected breakfast and lunch, got: %d meals", len(menu.Meals))
	}
	breakfast, ok := menu.Meals["breakfast"]
	if !ok {
		t.Fatal("Expected squashed 'breakfast' meal key")
	}
	if got := breakfast["bakery"]; len(got) != 1 || got[0] != "333333" {
		t.Errorf("Expected bakery station items, got: %v", got)
	}
	if got := breakfast["thefrontburner"]; len(got) != 2 {
		t.Errorf("Expected 2 front burner items, got: %v", got)
	}
}

func TestCollectMenusClosureRecordedAsClosed(t *testing.T) {
	s, _ := newTestScraper(bPlateOnly(), fullPages())
	doc := dining.NewDocument()
	s.Run(context.Background(), doc)

	date := testDates()[0]
	menu := doc.Hall("b-plate").Menu[date]
	if menu == nil {
		t.Fatalf("Expected a recorded menu for %s", date)
	}
	if menu.Open {
		t.Error("Expected the day to be recorded as closed")
	}
	if len(menu.Meals) != 0 {
		t.Errorf("Expected no meals on a closed day, got: %d", len(menu.Meals))
	}
}

func TestCollectMenusRecordedDateNotRefetched(t *testing.T) {
	date := testDates()[1]

	s, f := newTestScraper(bPlateOnly(), fullPages())
	doc := dining.NewDocument()
	doc.EnsureHall("b-plate", bPlateURL)
	doc.SetDayMenu("b-plate", date, &dining.DayMenu{
		Open:  true,
		Meals: map[string]dining.MealMenu{"breakfast": {"grill": {"999999"}}},
	})

	rep := s.Run(context.Background(), doc)

	if got := f.count(menuURL(date)); got != 0 {
		t.Errorf("Expected no fetch for a recorded date, got: %d", got)
	}
	if got := doc.Hall("b-plate").Menu[date].Meals["breakfast"]["grill"]; len(got) != 1 || got[0] != "999999" {
		t.Errorf("Expected stored menu to survive, got: %v", got)
	}
	if rep.MenusCollected != 7 {
		t.Errorf("Expected recorded date to count as collected, got: %d", rep.MenusCollected)
	}
}

func TestCollectMenusEmptyPageRecordsOpenDay(t *testing.T) {
	pages := fullPages()
	date := testDates()[4]
	pages[menuURL(date)] = emptyMenuPage

	s, _ := newTestScraper(bPlateOnly(), pages)
	doc := dining.NewDocument()
	s.Run(context.Background(), doc)

	menu := doc.Hall("b-plate").Menu[date]
	if menu == nil || !menu.Open {
		t.Fatalf("Expected open menu, got: %+v", menu)
	}
	if len(menu.Meals) != 0 {
		t.Errorf("Expected no meals on a page without menu sections, got: %d", len(menu.Meals))
	}
}

func TestCollectMenusBrokenPageLeavesNoPartialDate(t *testing.T) {
	pages := fullPages()
	date := testDates()[2]
	pages[menuURL(date)] = `<html><body><div id="breakfastmenu"></div></body></html>`

	s, _ := newTestScraper(bPlateOnly(), pages)
	doc := dining.NewDocument()
	rep := s.Run(context.Background(), doc)

	if rep.MenusCollected != 6 {
		t.Errorf("Expected 6 collected menus, got: %d", rep.MenusCollected)
	}
	if menu := doc.Hall("b-plate").Menu[date]; menu != nil {
		t.Errorf("Expected no record for the failed date, got: %+v", menu)
	}
}

func TestCollectMenusWithoutHoursUsesCatalogLink(t *testing.T) {
	pages := fullPages()
	delete(pages, hoursURL)

	s, _ := newTestScraper(bPlateOnly(), pages)
	doc := dining.NewDocument()
	rep := s.Run(context.Background(), doc)

	if rep.MenusCollected != 7 {
		t.Errorf("Expected menus despite failed hours stage, got: %d/%d", rep.MenusCollected, rep.MenusTotal)
	}
	if hall := doc.Hall("b-plate"); hall == nil || hall.Link != bPlateURL {
		t.Errorf("Expected hall created with its catalog link, got: %+v", hall)
	}
}
