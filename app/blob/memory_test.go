package blob

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func TestMemoryPutGetRoundTrip(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	info, err := store.Put(ctx, "dining_info.json", strings.NewReader("{}"), "application/json")
	if err != nil {
		t.Fatal(err)
	}
	if info.Size != 2 {
		t.Errorf("Expected size 2, got %d", info.Size)
	}

	got, body, err := store.Get(ctx, "dining_info.json")
	if err != nil {
		t.Fatal(err)
	}
	defer body.Close()

	data, _ := io.ReadAll(body)
	if string(data) != "{}" {
		t.Errorf("Expected payload {}, got %q", string(data))
	}
	if got.ETag != info.ETag {
		t.Errorf("Expected etag %s, got %s", info.ETag, got.ETag)
	}
}

func TestMemoryOverwrite(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	stamp := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	store.Now = func() time.Time { return stamp }

	first, err := store.Put(ctx, "k", strings.NewReader("v1"), "")
	if err != nil {
		t.Fatal(err)
	}

	stamp = stamp.Add(time.Hour)
	second, err := store.Put(ctx, "k", strings.NewReader("v2"), "")
	if err != nil {
		t.Fatal(err)
	}

	if first.ETag == second.ETag {
		t.Error("Expected etag to change on overwrite")
	}
	if !second.LastModified.After(first.LastModified) {
		t.Errorf("Expected later timestamp, got %v then %v", first.LastModified, second.LastModified)
	}

	_, body, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	defer body.Close()

	data, _ := io.ReadAll(body)
	if string(data) != "v2" {
		t.Errorf("Expected second payload, got %q", string(data))
	}
}

func TestMemoryMissingKey(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	if _, err := store.Head(ctx, "absent"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound from Head, got: %v", err)
	}
	if _, _, err := store.Get(ctx, "absent"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound from Get, got: %v", err)
	}
}

func TestMemoryGetReturnsCopy(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	if _, err := store.Put(ctx, "k", strings.NewReader("original"), ""); err != nil {
		t.Fatal(err)
	}

	_, body, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	data, _ := io.ReadAll(body)
	body.Close()
	for i := range data {
		data[i] = 'x'
	}

	_, body, err = store.Get(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	defer body.Close()

	again, _ := io.ReadAll(body)
	if string(again) != "original" {
		t.Errorf("Expected stored blob to be unchanged, got %q", string(again))
	}
}
