package activity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/shojha24/u-c-lotta-adipose/app/sources"
)

// ErrUnknownLocation marks a location id with no occupancy endpoint.
var ErrUnknownLocation = errors.New("unknown activity location")

// ErrNoReading marks a meter page that answered but carried no percentage.
var ErrNoReading = errors.New("no activity reading")

var percentRe = regexp.MustCompile(`\d+%`)

// AreaCount is the occupancy of one area inside a gym.
type AreaCount struct {
	LastCount int  `json:"lastCount"`
	IsClosed  bool `json:"isClosed"`
	Capacity  int  `json:"capacity"`
}

// Reading is one location's occupancy. Dining halls report a single meter
// percentage; gyms report counts per area.
type Reading struct {
	Percent string
	Areas   map[string]AreaCount
}

func (r Reading) MarshalJSON() ([]byte, error) {
	if r.Areas != nil {
		return json.Marshal(r.Areas)
	}
	return json.Marshal(r.Percent)
}

// facilityCount is one row of the shared gym counts feed.
type facilityCount struct {
	FacilityName  string `json:"FacilityName"`
	LocationName  string `json:"LocationName"`
	LastCount     int    `json:"LastCount"`
	TotalCapacity int    `json:"TotalCapacity"`
	IsClosed      bool   `json:"IsClosed"`
}

// Client reads live occupancy from the activity meters and the gym counts
// feed. Readings are fetched on demand; nothing is persisted.
type Client struct {
	client *resty.Client
	src    sources.Sources
}

func NewClient(src sources.Sources, timeout time.Duration, retries int, userAgent string) *Client {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(retries).
		SetHeader("User-Agent", userAgent)

	return &Client{client: client, src: src}
}

// All returns a reading for every known location. The gym feed is fetched
// once and split by facility; each hall meter is read individually, and a
// hall that cannot be read reports "Not available" instead of failing the
// whole set.
func (c *Client) All(ctx context.Context) map[string]Reading {
	results := make(map[string]Reading)

	counts, err := c.fetchFacilityCounts(ctx, c.gymEndpoint())
	if err != nil {
		slog.Warn("Gym occupancy unavailable", "error", err)
	}
	for _, fc := range counts {
		code, ok := c.src.GymForFacility(fc.FacilityName)
		if !ok {
			continue
		}
		r := results[code]
		if r.Areas == nil {
			r.Areas = make(map[string]AreaCount)
		}
		r.Areas[fc.LocationName] = AreaCount{
			LastCount: fc.LastCount,
			IsClosed:  fc.IsClosed,
			Capacity:  fc.TotalCapacity,
		}
		results[code] = r
	}

	for _, id := range c.src.ActivityLocations() {
		if c.src.IsGym(id) {
			continue
		}
		percent, err := c.hallPercent(ctx, id)
		if err != nil {
			slog.Warn("Activity reading unavailable", "location", id, "error", err)
			results[id] = Reading{Percent: "Not available"}
			continue
		}
		results[id] = Reading{Percent: percent}
	}

	return results
}

// One returns the reading for a single location id.
func (c *Client) One(ctx context.Context, id string) (Reading, error) {
	if !c.src.ValidActivityLocation(id) {
		return Reading{}, ErrUnknownLocation
	}

	if c.src.IsGym(id) {
		counts, err := c.fetchFacilityCounts(ctx, c.src.ActivityURL(id))
		if err != nil {
			return Reading{}, err
		}

		facility := c.src.GymFacility(id)
		areas := make(map[string]AreaCount)
		for _, fc := range counts {
			if fc.FacilityName != facility {
				continue
			}
			areas[fc.LocationName] = AreaCount{
				LastCount: fc.LastCount,
				IsClosed:  fc.IsClosed,
				Capacity:  fc.TotalCapacity,
			}
		}
		return Reading{Areas: areas}, nil
	}

	percent, err := c.hallPercent(ctx, id)
	if err != nil {
		return Reading{}, err
	}
	return Reading{Percent: percent}, nil
}

// hallPercent extracts the meter percentage from a hall's activity widget.
func (c *Client) hallPercent(ctx context.Context, id string) (string, error) {
	res, err := c.client.R().SetContext(ctx).Get(c.src.ActivityURL(id))
	if err != nil {
		return "", fmt.Errorf("failed to fetch activity for %s: %w", id, err)
	}
	if res.StatusCode() != 200 {
		return "", fmt.Errorf("failed to fetch activity for %s: status %d", id, res.StatusCode())
	}

	percent := percentRe.FindString(res.String())
	if percent == "" {
		return "", fmt.Errorf("%w for %s", ErrNoReading, id)
	}
	return percent, nil
}

func (c *Client) fetchFacilityCounts(ctx context.Context, url string) ([]facilityCount, error) {
	if url == "" {
		return nil, nil
	}

	res, err := c.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch gym counts: %w", err)
	}
	if res.StatusCode() != 200 {
		return nil, fmt.Errorf("failed to fetch gym counts: status %d", res.StatusCode())
	}

	var counts []facilityCount
	if err := json.Unmarshal(res.Body(), &counts); err != nil {
		return nil, fmt.Errorf("failed to decode gym counts: %w", err)
	}
	return counts, nil
}

// gymEndpoint returns the shared counts feed URL, or "" when no gyms are
// configured. Every gym entry points at the same feed.
func (c *Client) gymEndpoint() string {
	for _, id := range c.src.ActivityLocations() {
		if c.src.IsGym(id) {
			return c.src.ActivityURL(id)
		}
	}
	return ""
}
