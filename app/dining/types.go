package dining

import "time"

// Document is the canonical dining dataset: one JSON blob holding hall hours
// and menus, the food truck schedule, and every menu item referenced by a menu.
// A collection run loads it, merges new observations into it, and persists it
// back in full.
type Document struct {
	Halls       map[string]*HallRecord `json:"halls"`
	Trucks      TruckSection           `json:"trucks"`
	Items       map[string]*ItemRecord `json:"items"`
	LastUpdated string                 `json:"last_updated"`
}

type HallRecord struct {
	Link  string               `json:"link"`
	Hours map[string]*DayHours `json:"hours"`
	Menu  map[string]*DayMenu  `json:"menu,omitempty"`
}

// DayHours holds the posted hours text for one weekday, one field per meal
// period. Values are free text as shown on the hours page ("7:00 a.m. - 10:00
// a.m.", "Closed", ...).
type DayHours struct {
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Dinner    string `json:"dinner"`
	ExtDinner string `json:"ext_dinner"`
}

// MealMenu maps a menu section name to the ordered item ids listed under it.
type MealMenu map[string][]string

// DayMenu is one date's menu for a hall. Open is false when the hall showed a
// closure notice for that date, in which case Meals is empty.
type DayMenu struct {
	Open  bool
	Meals map[string]MealMenu
}

// TruckSection is the food truck schedule for one week. WeekOf is the label
// taken from the schedule page heading and acts as the freshness token: a page
// showing the same label is not re-parsed.
type TruckSection struct {
	WeekOf    string
	Locations map[string]TruckWeek
}

// TruckWeek maps a three-letter day code to that day's truck lineup.
type TruckWeek map[string]TruckDay

// Truck slot labels as they appear in the persisted document.
const (
	TruckSlotEvening   = "5 p.m. – 8:30 p.m."
	TruckSlotLateNight = "10 p.m. – 12 a.m."
)

type TruckDay struct {
	Evening   string
	LateNight string
}

type ItemKind string

const (
	ItemStandard  ItemKind = "standard"
	ItemComposite ItemKind = "composite"
)

// ItemRecord is one menu item. It is either standard (nutrition facts) or
// composite (named ingredient groups referencing other item ids); Kind
// distinguishes the two. Items are immutable once recorded.
type ItemRecord struct {
	Name        string              `json:"name"`
	Labels      []string            `json:"labels,omitempty"`
	ServingSize string              `json:"serving_size,omitempty"`
	Calories    string              `json:"calories,omitempty"`
	Nutrition   map[string]Nutrient `json:"nutrition,omitempty"`
	Ingredients map[string][]string `json:"ingredients,omitempty"`
}

// Nutrient is one row of the nutrition facts panel. Percent is nil when the
// page shows no daily-value column for the row.
type Nutrient struct {
	Value   string
	Percent *string
}

// HallCodes is the fixed set of dining locations, in canonical order. Names
// scraped from upstream pages are mapped onto these codes; anything that does
// not map is ignored.
var HallCodes = []string{
	"b-plate", "de-neve", "epic-covel", "epic-ackerman", "drey",
	"study", "rende", "b-cafe", "cafe-1919", "feast",
}

// HallNames maps hall codes to display names for API responses.
var HallNames = map[string]string{
	"b-plate":       "Bruin Plate",
	"de-neve":       "De Neve Dining",
	"epic-covel":    "Epicuria at Covel",
	"epic-ackerman": "Epicuria at Ackerman",
	"drey":          "The Drey",
	"study":         "The Study at Hedrick",
	"rende":         "Rendezvous",
	"b-cafe":        "Bruin Cafe",
	"cafe-1919":     "Cafe 1919",
	"feast":         "Feast at Rieber",
}

// Meals lists the valid meal period keys.
var Meals = []string{"breakfast", "lunch", "dinner", "ext_dinner"}

// sentinelHall is the hall whose presence in the document marks a day's hours
// as already collected. It appears in the middle of the upstream hours table,
// so a partially parsed page from an aborted run does not count as done.
const sentinelHall = "drey"

func ValidHall(code string) bool {
	for _, c := range HallCodes {
		if c == code {
			return true
		}
	}
	return false
}

func ValidMeal(meal string) bool {
	for _, m := range Meals {
		if m == meal {
			return true
		}
	}
	return false
}

// Days lists the weekday keys used in hours maps, Monday first.
var Days = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

func ValidDay(day string) bool {
	for _, d := range Days {
		if d == day {
			return true
		}
	}
	return false
}

// HallName returns the display name for a hall code, falling back to the code
// itself for unknown values.
func HallName(code string) string {
	if name, ok := HallNames[code]; ok {
		return name
	}
	return code
}

// DayCode returns the three-letter lowercase weekday code ("mon" .. "sun")
// used as the hours key for t.
func DayCode(t time.Time) string {
	return weekdayCodes[t.Weekday()]
}

var weekdayCodes = map[time.Weekday]string{
	time.Sunday:    "sun",
	time.Monday:    "mon",
	time.Tuesday:   "tue",
	time.Wednesday: "wed",
	time.Thursday:  "thu",
	time.Friday:    "fri",
	time.Saturday:  "sat",
}
