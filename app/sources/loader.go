package sources

import (
	"fmt"
	"log/slog"
	"os"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"

	"github.com/shojha24/u-c-lotta-adipose/app/dining"
)

// Load returns the built-in catalog, optionally overlaid with entries from a
// YAML file. Override files are sparse: only the keys they set replace the
// defaults, everything else stays.
func Load(path string) (Sources, error) {
	src := Default()
	if path == "" {
		return src, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Sources{}, fmt.Errorf("failed to read sources file: %w", err)
	}

	var override Sources
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Sources{}, fmt.Errorf("failed to parse sources file: %w", err)
	}

	if err := mergo.Merge(&src, override, mergo.WithOverride); err != nil {
		return Sources{}, fmt.Errorf("failed to apply source overrides: %w", err)
	}

	if err := validate(src); err != nil {
		return Sources{}, fmt.Errorf("invalid sources file %s: %w", path, err)
	}

	slog.Info("Loaded source overrides", "path", path)

	return src, nil
}

// validate checks that the catalog is internally consistent
func validate(s Sources) error {
	if s.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	if s.HoursURL == "" {
		return fmt.Errorf("hours URL is required")
	}
	if s.TrucksURL == "" {
		return fmt.Errorf("trucks URL is required")
	}

	for code, url := range s.Halls {
		if !dining.ValidHall(code) {
			return fmt.Errorf("unknown hall code: %s", code)
		}
		if url == "" {
			return fmt.Errorf("empty menu URL for hall: %s", code)
		}
	}
	for _, code := range dining.HallCodes {
		if s.Halls[code] == "" {
			return fmt.Errorf("missing menu URL for hall: %s", code)
		}
	}

	for name, code := range s.Aliases {
		if !dining.ValidHall(code) {
			return fmt.Errorf("alias %q points at unknown hall code: %s", name, code)
		}
	}

	for id, url := range s.Activity {
		if url == "" {
			return fmt.Errorf("empty activity URL for location: %s", id)
		}
		if _, gym := s.GymFacilities[id]; !gym && !dining.ValidHall(id) {
			return fmt.Errorf("unknown activity location: %s", id)
		}
	}

	for id := range s.GymFacilities {
		if s.Activity[id] == "" {
			return fmt.Errorf("gym %s has no activity endpoint", id)
		}
	}

	return nil
}
