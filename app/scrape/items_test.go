package scrape

import (
	"context"
	"testing"

	"github.com/shojha24/u-c-lotta-adipose/app/dining"
)

const comboPage = `<html><body>
<h2 class="headline-text__lg">Combo Plate</h2>
<div class="complex-ingredient-group">
  <h4>Pairs With</h4>
  <ul><li><a href="/recipe/8002/">Side Combo</a></li></ul>
</div>
</body></html>`

const sideComboPage = `<html><body>
<h2 class="headline-text__lg">Side Combo</h2>
<div class="complex-ingredient-group">
  <h4>Pairs With</h4>
  <ul><li><a href="/recipe/8001/">Combo Plate</a></li></ul>
</div>
</body></html>`

const cycleMenuPage = `<html><body>
<div id="lunchmenu">
  <h2>Lunch</h2>
  <div class="at-a-glance-menu__dining-location">
    <div>
      <div><h2>Specials</h2></div>
      <div class="recipe-list">
        <section class="recipe-card"><a href="/recipe/8001/">Combo Plate</a></section>
      </div>
    </div>
  </div>
</div>
</body></html>`

// pagesWithSingleMenu serves the given body on one date and an empty menu on
// the rest, so item behavior can be observed without cross-date memoization.
func pagesWithSingleMenu(body string) map[string]string {
	pages := fullPages()
	dates := testDates()
	for _, date := range dates {
		pages[menuURL(date)] = emptyMenuPage
	}
	pages[menuURL(dates[1])] = body
	return pages
}

func TestStandardItemFields(t *testing.T) {
	s, _ := newTestScraper(bPlateOnly(), fullPages())
	doc := dining.NewDocument()
	s.Run(context.Background(), doc)

	item := doc.Item("111111")
	if item == nil {
		t.Fatal("Expected item 111111 to be resolved")
	}
	if item.Kind() != dining.ItemStandard {
		t.Errorf("Expected a standard item, got: %s", item.Kind())
	}
	if item.Name != "Scrambled Eggs" {
		t.Errorf("Expected item name, got '%s'", item.Name)
	}
	if len(item.Labels) != 2 || item.Labels[0] != "vegan" || item.Labels[1] != "wheat" {
		t.Errorf("Expected labels from icon filenames, got: %v", item.Labels)
	}
	if item.ServingSize != "1 each" {
		t.Errorf("Expected serving size, got '%s'", item.ServingSize)
	}
	if item.Calories != "220" {
		t.Errorf("Expected calories, got '%s'", item.Calories)
	}

	if len(item.Nutrition) != 3 {
		t.Fatalf("Expected 3 nutrition rows, got: %d", len(item.Nutrition))
	}
	fat := item.Nutrition["total fat"]
	if fat.Value != "10g" || fat.Percent == nil || *fat.Percent != "15%" {
		t.Errorf("Expected total fat row, got: %+v", fat)
	}
	if sodium := item.Nutrition["sodium"]; sodium.Value != "380mg" || sodium.Percent != nil {
		t.Errorf("Expected sodium row without a percent, got: %+v", sodium)
	}
}

func TestCompositeItemFields(t *testing.T) {
	s, _ := newTestScraper(bPlateOnly(), fullPages())
	doc := dining.NewDocument()
	s.Run(context.Background(), doc)

	item := doc.Item("444444")
	if item == nil {
		t.Fatal("Expected item 444444 to be resolved")
	}
	if item.Kind() != dining.ItemComposite {
		t.Errorf("Expected a composite item, got: %s", item.Kind())
	}
	if item.Name != "Protein Bowl" {
		t.Errorf("Expected item name, got '%s'", item.Name)
	}

	protein := item.Ingredients["Choice of Protein"]
	if len(protein) != 2 || protein[0] != "1001" || protein[1] != "1002" {
		t.Errorf("Expected protein group ids in order, got: %v", protein)
	}
	if base := item.Ingredients["Choice of Base"]; len(base) != 1 || base[0] != "1003" {
		t.Errorf("Expected base group ids, got: %v", base)
	}
	if item.Nutrition != nil || item.ServingSize != "" {
		t.Errorf("Expected no nutrition fields on a composite item, got: %+v", item)
	}

	if chicken := doc.Item("1001"); chicken == nil || chicken.Name != "Grilled Chicken" {
		t.Errorf("Expected ingredient to be resolved as its own item, got: %+v", chicken)
	}
}

func TestItemsFetchedOnceAcrossDates(t *testing.T) {
	s, f := newTestScraper(bPlateOnly(), fullPages())
	doc := dining.NewDocument()
	s.Run(context.Background(), doc)

	// Six open days list the same items; each page may be fetched only on
	// first sight.
	for _, id := range []string{"111111", "222222", "333333", "444444", "1001", "1002", "1003"} {
		if got := f.count(itemURL(id)); got != 1 {
			t.Errorf("Expected one fetch for item %s, got: %d", id, got)
		}
	}

	s.Run(context.Background(), doc)
	for _, id := range []string{"111111", "444444"} {
		if got := f.count(itemURL(id)); got != 1 {
			t.Errorf("Expected no refetch for item %s on second run, got: %d", id, got)
		}
	}
}

func TestCompositeCycleTerminates(t *testing.T) {
	pages := pagesWithSingleMenu(cycleMenuPage)
	pages[itemURL("8001")] = comboPage
	pages[itemURL("8002")] = sideComboPage

	s, f := newTestScraper(bPlateOnly(), pages)
	doc := dining.NewDocument()
	rep := s.Run(context.Background(), doc)

	if !doc.HasItem("8001") || !doc.HasItem("8002") {
		t.Fatal("Expected both items of the cycle to be resolved")
	}
	if got := doc.Item("8001").Ingredients["Pairs With"]; len(got) != 1 || got[0] != "8002" {
		t.Errorf("Expected combo plate to reference its side, got: %v", got)
	}
	if got := doc.Item("8002").Ingredients["Pairs With"]; len(got) != 1 || got[0] != "8001" {
		t.Errorf("Expected side combo to reference back, got: %v", got)
	}
	if f.count(itemURL("8001")) != 1 || f.count(itemURL("8002")) != 1 {
		t.Error("Expected each item of the cycle to be fetched once")
	}
	if rep.ItemsResolved != 2 {
		t.Errorf("Expected 2 resolved items, got: %d", rep.ItemsResolved)
	}
}

func TestUnparseableItemCountedAsFailed(t *testing.T) {
	pages := pagesWithSingleMenu(menuPage)
	pages[itemURL("333333")] = `<html><body><p>Recipe decommissioned</p></body></html>`

	s, _ := newTestScraper(bPlateOnly(), pages)
	doc := dining.NewDocument()
	rep := s.Run(context.Background(), doc)

	if rep.ItemsFailed != 1 {
		t.Errorf("Expected 1 failed item, got: %d", rep.ItemsFailed)
	}
	if doc.HasItem("333333") {
		t.Error("Expected unparseable item to stay unrecorded")
	}

	// The menu still lists the id; a later run can resolve it.
	date := testDates()[1]
	bakery := doc.Hall("b-plate").Menu[date].Meals["breakfast"]["bakery"]
	if len(bakery) != 1 || bakery[0] != "333333" {
		t.Errorf("Expected menu to keep the item id, got: %v", bakery)
	}
	if !rep.Success() {
		t.Errorf("Expected item failures not to fail the run, got: %+v", rep)
	}
}
