package sources

import (
	"sort"
	"strings"

	"github.com/shojha24/u-c-lotta-adipose/app/dining"
)

// LookupHall resolves a location name as posted upstream to a hall code.
// Matching is case- and accent-insensitive so cosmetic edits to the pages do
// not break the mapping.
func (s Sources) LookupHall(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if code, ok := s.Aliases[name]; ok {
		return code, true
	}

	folded := dining.Fold(name)
	for alias, code := range s.Aliases {
		if dining.Fold(alias) == folded {
			return code, true
		}
	}

	return "", false
}

// MenuURL returns the menu page URL for a hall code, or "".
func (s Sources) MenuURL(code string) string {
	return s.Halls[code]
}

// ActivityURL returns the occupancy endpoint for a location id, or "".
func (s Sources) ActivityURL(id string) string {
	return s.Activity[id]
}

// ValidActivityLocation reports whether id has an occupancy endpoint.
func (s Sources) ValidActivityLocation(id string) bool {
	_, ok := s.Activity[id]
	return ok
}

// IsGym reports whether id is a gym served by the shared counts endpoint
// rather than a dining hall activity meter.
func (s Sources) IsGym(id string) bool {
	_, ok := s.GymFacilities[id]
	return ok
}

// GymFacility returns the facility name the counts endpoint uses for a gym
// id, or "".
func (s Sources) GymFacility(id string) string {
	return s.GymFacilities[id]
}

// GymForFacility resolves a facility name from the counts endpoint back to a
// gym id.
func (s Sources) GymForFacility(name string) (string, bool) {
	for id, facility := range s.GymFacilities {
		if facility == name {
			return id, true
		}
	}
	return "", false
}

// ActivityLocations returns every location id with an occupancy endpoint, in
// sorted order.
func (s Sources) ActivityLocations() []string {
	ids := make([]string, 0, len(s.Activity))
	for id := range s.Activity {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
