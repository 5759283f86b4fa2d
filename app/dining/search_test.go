package dining

import (
	"testing"
)

func TestFold(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Bruin Café", "bruin cafe"},
		{"Café 1919", "cafe 1919"},
		{"De Neve Dining", "de neve dining"},
		{"JALAPEÑO", "jalapeno"},
	}
	for _, tc := range cases {
		if got := Fold(tc.in); got != tc.want {
			t.Errorf("Expected Fold(%q) = %q, got: %q", tc.in, tc.want, got)
		}
	}
}

func searchFixture() *Document {
	doc := NewDocument()
	doc.AddItem("100001", &ItemRecord{Name: "Café Mocha Muffin", Labels: []string{"V", "WHEAT"}, Calories: "320"})
	doc.AddItem("100002", &ItemRecord{Name: "Grilled Chicken Breast", Labels: []string{"HAL"}, Calories: "210"})
	doc.AddItem("100003", &ItemRecord{Name: "Vegan Chicken Tenders", Labels: []string{"VG", "SOY", "WHEAT"}})
	doc.AddItem("100004", &ItemRecord{Name: "Choice of Protein", Ingredients: map[string][]string{"Protein": {"100002"}}})
	return doc
}

func TestSearchItemsByQuery(t *testing.T) {
	doc := searchFixture()

	results := doc.SearchItems("chicken", "", "")
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got: %d", len(results))
	}
	if results[0].ID != "100002" || results[1].ID != "100003" {
		t.Errorf("Expected results ordered by id, got: %s, %s", results[0].ID, results[1].ID)
	}

	// Substring match is diacritic and case insensitive.
	results = doc.SearchItems("cafe", "", "")
	if len(results) != 1 || results[0].ID != "100001" {
		t.Errorf("Expected the café muffin, got: %v", results)
	}
}

func TestSearchItemsDietaryFilter(t *testing.T) {
	doc := searchFixture()

	results := doc.SearchItems("", "vg", "")
	if len(results) != 1 || results[0].ID != "100003" {
		t.Errorf("Expected only the VG item, got: %v", results)
	}
}

func TestSearchItemsAllergenFilter(t *testing.T) {
	doc := searchFixture()

	results := doc.SearchItems("", "", "wheat")
	if len(results) != 2 {
		t.Fatalf("Expected wheat items to be excluded, got: %v", results)
	}
	for _, r := range results {
		if r.ID == "100001" || r.ID == "100003" {
			t.Errorf("Expected %s to be filtered out", r.ID)
		}
	}
}

func TestSearchItemsCombinedFilters(t *testing.T) {
	doc := searchFixture()

	results := doc.SearchItems("chicken", "", "soy")
	if len(results) != 1 || results[0].ID != "100002" {
		t.Errorf("Expected only the grilled chicken, got: %v", results)
	}

	if got := doc.SearchItems("", "", ""); len(got) != 4 {
		t.Errorf("Expected empty filters to match everything, got: %d", len(got))
	}
}

func TestSearchResultLabelsNeverNil(t *testing.T) {
	doc := NewDocument()
	doc.AddItem("200001", &ItemRecord{Name: "Plain Rice"})

	results := doc.SearchItems("rice", "", "")
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got: %d", len(results))
	}
	if results[0].Labels == nil {
		t.Error("Expected labels to serialize as an empty list, not null")
	}
}
