package dining

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases s and strips diacritics, so "Bruin Café" and "bruin cafe"
// compare equal. Used for location name lookups and item search.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(folded)
}

// SearchResult is the slim item representation returned by searches.
type SearchResult struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Labels   []string `json:"labels"`
	Calories string   `json:"calories,omitempty"`
}

// SearchItems filters the item catalog. query is a folded substring match on
// the item name, dietary requires the label to be present, allergen requires
// it to be absent. Empty filters match everything. Results are ordered by id.
func (d *Document) SearchItems(query, dietary, allergen string) []SearchResult {
	q := Fold(strings.TrimSpace(query))

	ids := make([]string, 0, len(d.Items))
	for id := range d.Items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	results := make([]SearchResult, 0)
	for _, id := range ids {
		item := d.Items[id]
		if q != "" && !strings.Contains(Fold(item.Name), q) {
			continue
		}
		if dietary != "" && !item.HasLabel(dietary) {
			continue
		}
		if allergen != "" && item.HasLabel(allergen) {
			continue
		}
		labels := item.Labels
		if labels == nil {
			labels = []string{}
		}
		results = append(results, SearchResult{
			ID:       id,
			Name:     item.Name,
			Labels:   labels,
			Calories: item.Calories,
		})
	}
	return results
}

// HasLabel reports whether the item carries the dietary label, compared after
// folding.
func (r *ItemRecord) HasLabel(label string) bool {
	folded := Fold(label)
	for _, l := range r.Labels {
		if Fold(l) == folded {
			return true
		}
	}
	return false
}
