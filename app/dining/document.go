package dining

import (
	"encoding/json"
	"fmt"
)

// NewDocument returns an empty document skeleton.
func NewDocument() *Document {
	return &Document{
		Halls:  make(map[string]*HallRecord),
		Trucks: TruckSection{Locations: make(map[string]TruckWeek)},
		Items:  make(map[string]*ItemRecord),
	}
}

// Decode parses a persisted document and validates its shape. Callers fall
// back to NewDocument when the payload is corrupt.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode dining data: %w", err)
	}
	if err := doc.validate(); err != nil {
		return nil, fmt.Errorf("invalid dining data: %w", err)
	}
	if doc.Halls == nil {
		doc.Halls = make(map[string]*HallRecord)
	}
	if doc.Trucks.Locations == nil {
		doc.Trucks.Locations = make(map[string]TruckWeek)
	}
	if doc.Items == nil {
		doc.Items = make(map[string]*ItemRecord)
	}
	return &doc, nil
}

// Encode serializes the document for persistence.
func (d *Document) Encode() ([]byte, error) {
	return json.MarshalIndent(d, "", "    ")
}

func (d *Document) validate() error {
	for code, hall := range d.Halls {
		if !ValidHall(code) {
			return fmt.Errorf("unknown hall code %q", code)
		}
		if hall == nil {
			return fmt.Errorf("hall %q has no record", code)
		}
	}
	for id, item := range d.Items {
		if item == nil {
			return fmt.Errorf("item %q has no record", id)
		}
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %q: %w", id, err)
		}
	}
	return nil
}

// Hall returns the record for a hall code, or nil when the hall has not been
// observed yet.
func (d *Document) Hall(code string) *HallRecord {
	return d.Halls[code]
}

// EnsureHall creates the hall record on first sight and returns it. An
// existing record keeps its link and data.
func (d *Document) EnsureHall(code, link string) *HallRecord {
	hall, ok := d.Halls[code]
	if !ok {
		hall = &HallRecord{
			Link:  link,
			Hours: make(map[string]*DayHours),
		}
		d.Halls[code] = hall
	}
	return hall
}

// HoursRecorded reports whether hours for the given day have already been
// collected, using the sentinel hall as the marker.
func (d *Document) HoursRecorded(day string) bool {
	hall, ok := d.Halls[sentinelHall]
	if !ok || hall.Hours == nil {
		return false
	}
	_, ok = hall.Hours[day]
	return ok
}

// SetHours records hours for a hall and day. Hours already recorded for that
// day are kept untouched; the return value reports whether a write happened.
func (d *Document) SetHours(code, day string, hours DayHours) bool {
	hall, ok := d.Halls[code]
	if !ok {
		return false
	}
	if hall.Hours == nil {
		hall.Hours = make(map[string]*DayHours)
	}
	if _, ok := hall.Hours[day]; ok {
		return false
	}
	hall.Hours[day] = &hours
	return true
}

// MenuRecorded reports whether a menu for the hall and date is already stored.
func (d *Document) MenuRecorded(code, date string) bool {
	hall, ok := d.Halls[code]
	if !ok || hall.Menu == nil {
		return false
	}
	_, ok = hall.Menu[date]
	return ok
}

// SetDayMenu records a date's menu for a hall. An existing menu for that date
// is kept untouched; the return value reports whether a write happened.
func (d *Document) SetDayMenu(code, date string, menu *DayMenu) bool {
	hall, ok := d.Halls[code]
	if !ok {
		return false
	}
	if hall.Menu == nil {
		hall.Menu = make(map[string]*DayMenu)
	}
	if _, ok := hall.Menu[date]; ok {
		return false
	}
	hall.Menu[date] = menu
	return true
}

// HasItem reports whether an item id has already been resolved.
func (d *Document) HasItem(id string) bool {
	_, ok := d.Items[id]
	return ok
}

// Item returns the record for an item id, or nil when absent.
func (d *Document) Item(id string) *ItemRecord {
	return d.Items[id]
}

// AddItem records an item under its id. The first write wins; later calls for
// the same id are no-ops.
func (d *Document) AddItem(id string, item *ItemRecord) bool {
	if _, ok := d.Items[id]; ok {
		return false
	}
	d.Items[id] = item
	return true
}

// TruckWeek returns the stored week label, or "" when no schedule has been
// collected yet.
func (d *Document) TruckWeek() string {
	return d.Trucks.WeekOf
}

// SetTruckWeek stores a new week label. Existing location entries are kept;
// the walk that follows overwrites their day slots with the new week's lineup.
func (d *Document) SetTruckWeek(label string) {
	if d.Trucks.Locations == nil {
		d.Trucks.Locations = make(map[string]TruckWeek)
	}
	d.Trucks.WeekOf = label
}

// SetTruckDay records the truck lineup for a location and day, overwriting any
// previous entry.
func (d *Document) SetTruckDay(location, day string, td TruckDay) {
	if d.Trucks.Locations == nil {
		d.Trucks.Locations = make(map[string]TruckWeek)
	}
	week, ok := d.Trucks.Locations[location]
	if !ok {
		week = make(TruckWeek)
		d.Trucks.Locations[location] = week
	}
	week[day] = td
}
