package dining

import (
	"encoding/json"
	"fmt"
)

// The persisted layout keeps a day's meal maps inline next to the "open" flag,
// and the truck week label inline next to the location maps. The custom codecs
// below preserve that layout while keeping the Go types explicit.

func (m *DayMenu) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.Meals)+1)
	out["open"] = m.Open
	for meal, sections := range m.Meals {
		out[meal] = sections
	}
	return json.Marshal(out)
}

func (m *DayMenu) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.Open = true
	m.Meals = make(map[string]MealMenu, len(raw))
	for key, val := range raw {
		if key == "open" {
			if err := json.Unmarshal(val, &m.Open); err != nil {
				return fmt.Errorf("open flag: %w", err)
			}
			continue
		}
		var sections MealMenu
		if err := json.Unmarshal(val, &sections); err != nil {
			return fmt.Errorf("meal %q: %w", key, err)
		}
		m.Meals[key] = sections
	}
	return nil
}

func (t TruckSection) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(t.Locations)+1)
	if t.WeekOf != "" {
		out["week_of"] = t.WeekOf
	}
	for name, week := range t.Locations {
		out[name] = week
	}
	return json.Marshal(out)
}

func (t *TruckSection) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.Locations = make(map[string]TruckWeek, len(raw))
	for key, val := range raw {
		if key == "week_of" {
			if err := json.Unmarshal(val, &t.WeekOf); err != nil {
				return fmt.Errorf("week_of: %w", err)
			}
			continue
		}
		var week TruckWeek
		if err := json.Unmarshal(val, &week); err != nil {
			return fmt.Errorf("truck location %q: %w", key, err)
		}
		t.Locations[key] = week
	}
	return nil
}

func (d TruckDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		TruckSlotEvening:   d.Evening,
		TruckSlotLateNight: d.LateNight,
	})
}

func (d *TruckDay) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.Evening = raw[TruckSlotEvening]
	d.LateNight = raw[TruckSlotLateNight]
	return nil
}

// Nutrient serializes as the two-element [value, percent] pair, percent null
// when absent.
func (n Nutrient) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{n.Value, n.Percent})
}

func (n *Nutrient) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("expected [value, percent] pair, got %d elements", len(raw))
	}
	if err := json.Unmarshal(raw[0], &n.Value); err != nil {
		return fmt.Errorf("value: %w", err)
	}
	if err := json.Unmarshal(raw[1], &n.Percent); err != nil {
		return fmt.Errorf("percent: %w", err)
	}
	return nil
}

// ItemRecord marshals as one of its two shapes; composite items never carry
// nutrition fields and standard items never carry ingredients.
func (r ItemRecord) MarshalJSON() ([]byte, error) {
	if r.Ingredients != nil {
		return json.Marshal(struct {
			Name        string              `json:"name"`
			Ingredients map[string][]string `json:"ingredients"`
		}{r.Name, r.Ingredients})
	}
	return json.Marshal(struct {
		Name        string              `json:"name"`
		Labels      []string            `json:"labels,omitempty"`
		ServingSize string              `json:"serving_size,omitempty"`
		Calories    string              `json:"calories,omitempty"`
		Nutrition   map[string]Nutrient `json:"nutrition,omitempty"`
	}{r.Name, r.Labels, r.ServingSize, r.Calories, r.Nutrition})
}

func (r *ItemRecord) Kind() ItemKind {
	if r.Ingredients != nil {
		return ItemComposite
	}
	return ItemStandard
}

func (r *ItemRecord) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("item name is required")
	}
	if r.Ingredients != nil && (r.Nutrition != nil || r.ServingSize != "" || r.Calories != "") {
		return fmt.Errorf("composite item carries nutrition fields")
	}
	return nil
}
