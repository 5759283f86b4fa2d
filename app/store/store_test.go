package store

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shojha24/u-c-lotta-adipose/app/blob"
	"github.com/shojha24/u-c-lotta-adipose/app/dining"
)

const testKey = "dining_info.json"

// countingStore wraps a blob store and counts reads, so tests can tell a
// cache hit from a refetch.
type countingStore struct {
	blob.Store
	gets  int
	heads int
}

func (c *countingStore) Get(ctx context.Context, key string) (blob.Info, io.ReadCloser, error) {
	c.gets++
	return c.Store.Get(ctx, key)
}

func (c *countingStore) Head(ctx context.Context, key string) (blob.Info, error) {
	c.heads++
	return c.Store.Head(ctx, key)
}

// flakyStore wraps a blob store and fails all reads once tripped.
type flakyStore struct {
	blob.Store
	failing bool
}

func (f *flakyStore) Get(ctx context.Context, key string) (blob.Info, io.ReadCloser, error) {
	if f.failing {
		return blob.Info{}, nil, errors.New("connection refused")
	}
	return f.Store.Get(ctx, key)
}

func (f *flakyStore) Head(ctx context.Context, key string) (blob.Info, error) {
	if f.failing {
		return blob.Info{}, errors.New("connection refused")
	}
	return f.Store.Head(ctx, key)
}

func testDocument(day string) *dining.Document {
	doc := dining.NewDocument()
	doc.EnsureHall("b-plate", "https://dining.ucla.edu/bruin-plate/")
	doc.SetHours("b-plate", day, dining.DayHours{Breakfast: "7:00 a.m. - 10:00 a.m."})
	return doc
}

func TestLoadMissingReturnsSkeleton(t *testing.T) {
	s := New(blob.NewMemory(), testKey)

	doc, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Expected skeleton for missing blob, got error: %v", err)
	}
	if len(doc.Halls) != 0 {
		t.Errorf("Expected empty halls, got %d", len(doc.Halls))
	}
	if doc.Items == nil || doc.Trucks.Locations == nil {
		t.Error("Expected initialized maps in skeleton")
	}
}

func TestLoadCorruptReturnsSkeleton(t *testing.T) {
	mem := blob.NewMemory()
	ctx := context.Background()

	if _, err := mem.Put(ctx, testKey, strings.NewReader("{not json"), "application/json"); err != nil {
		t.Fatal(err)
	}

	s := New(mem, testKey)

	doc, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Expected skeleton for corrupt blob, got error: %v", err)
	}
	if len(doc.Halls) != 0 {
		t.Errorf("Expected empty halls, got %d", len(doc.Halls))
	}
}

func TestLoadTransportErrorIsReturned(t *testing.T) {
	flaky := &flakyStore{Store: blob.NewMemory(), failing: true}
	s := New(flaky, testKey)

	if _, err := s.Load(context.Background()); err == nil {
		t.Error("Expected error when the store is unreachable")
	}
}

func TestSaveStampsLastUpdated(t *testing.T) {
	mem := blob.NewMemory()
	ctx := context.Background()

	s := New(mem, testKey)
	stamp := time.Date(2026, 1, 5, 8, 30, 0, 0, time.UTC)
	s.now = func() time.Time { return stamp }

	if err := s.Save(ctx, testDocument("mon")); err != nil {
		t.Fatal(err)
	}

	loaded, err := s.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.LastUpdated != stamp.Format(time.RFC3339) {
		t.Errorf("Expected last updated %s, got '%s'", stamp.Format(time.RFC3339), loaded.LastUpdated)
	}
	if loaded.Hall("b-plate") == nil {
		t.Error("Expected saved hall to round-trip")
	}
}

func TestCachedServesFromCacheUntilChanged(t *testing.T) {
	mem := blob.NewMemory()
	ctx := context.Background()

	clock := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	mem.Now = func() time.Time { return clock }

	counting := &countingStore{Store: mem}
	s := New(counting, testKey)

	if err := s.Save(ctx, testDocument("mon")); err != nil {
		t.Fatal(err)
	}

	first, err := s.Cached(ctx)
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Cached(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if first != second {
		t.Error("Expected unchanged blob to be served from cache")
	}
	if counting.gets != 1 {
		t.Errorf("Expected 1 fetch, got %d", counting.gets)
	}

	// A newer blob shows up through revalidation.
	clock = clock.Add(time.Hour)
	if err := s.Save(ctx, testDocument("tue")); err != nil {
		t.Fatal(err)
	}

	third, err := s.Cached(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if third == first {
		t.Error("Expected refetch after the blob changed")
	}
	if third.Hall("b-plate").Hours["tue"] == nil {
		t.Error("Expected new document contents after refetch")
	}
	if counting.gets != 2 {
		t.Errorf("Expected 2 fetches, got %d", counting.gets)
	}
}

func TestCachedServesStaleOnStoreFailure(t *testing.T) {
	mem := blob.NewMemory()
	ctx := context.Background()

	flaky := &flakyStore{Store: mem}
	s := New(flaky, testKey)

	if err := s.Save(ctx, testDocument("mon")); err != nil {
		t.Fatal(err)
	}
	first, err := s.Cached(ctx)
	if err != nil {
		t.Fatal(err)
	}

	flaky.failing = true

	stale, err := s.Cached(ctx)
	if err != nil {
		t.Fatalf("Expected stale copy, got error: %v", err)
	}
	if stale != first {
		t.Error("Expected the cached copy while the store is down")
	}
}

func TestCachedErrorsWithoutAnyData(t *testing.T) {
	s := New(blob.NewMemory(), testKey)

	if _, err := s.Cached(context.Background()); err == nil {
		t.Error("Expected error when nothing is stored and nothing is cached")
	}
}
