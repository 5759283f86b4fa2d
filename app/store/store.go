package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/shojha24/u-c-lotta-adipose/app/blob"
	"github.com/shojha24/u-c-lotta-adipose/app/dining"
)

const contentType = "application/json"

// errCorrupt marks a stored payload that fetched fine but would not decode.
var errCorrupt = errors.New("dining document corrupt")

// DocumentStore persists the dining document as a single blob and serves read
// traffic from an in-process cache. The cache is revalidated with a cheap
// Head call; when the store is unreachable the last good copy keeps serving.
type DocumentStore struct {
	blobs blob.Store
	key   string

	mu     sync.Mutex
	cached *dining.Document
	info   blob.Info

	now func() time.Time
}

// New creates a DocumentStore over the given blob store and object key.
func New(blobs blob.Store, key string) *DocumentStore {
	return &DocumentStore{blobs: blobs, key: key, now: time.Now}
}

// Load fetches the current document for a collection run, bypassing the read
// cache. A missing or undecodable blob yields a fresh skeleton; transport
// errors are returned as-is so a run never starts from scratch just because
// the store was unreachable.
func (s *DocumentStore) Load(ctx context.Context) (*dining.Document, error) {
	doc, _, err := s.fetch(ctx)
	if err != nil {
		switch {
		case errors.Is(err, blob.ErrNotFound):
			slog.Info("No stored dining document, starting fresh", "key", s.key)
			return dining.NewDocument(), nil
		case errors.Is(err, errCorrupt):
			slog.Warn("Stored dining document is unreadable, starting fresh", "key", s.key, "error", err)
			return dining.NewDocument(), nil
		}
		return nil, err
	}
	return doc, nil
}

// Save stamps the document and writes it back in full. Readers pick the new
// version up through revalidation.
func (s *DocumentStore) Save(ctx context.Context, doc *dining.Document) error {
	doc.LastUpdated = s.now().Format(time.RFC3339)

	data, err := doc.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode dining document: %w", err)
	}

	info, err := s.blobs.Put(ctx, s.key, bytes.NewReader(data), contentType)
	if err != nil {
		return fmt.Errorf("failed to store dining document: %w", err)
	}

	slog.Info("Stored dining document", "key", s.key, "size", info.Size)

	return nil
}

// Cached returns the document for read traffic. The cached copy is returned
// when the stored blob has not changed since it was fetched; a newer blob is
// fetched and cached. When the store cannot be reached the stale copy is
// served rather than failing the request.
func (s *DocumentStore) Cached(ctx context.Context) (*dining.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil {
		info, err := s.blobs.Head(ctx, s.key)
		if err == nil && !info.LastModified.After(s.info.LastModified) {
			return s.cached, nil
		}
		if err != nil {
			slog.Warn("Serving stale dining data", "key", s.key, "error", err)
			return s.cached, nil
		}
	}

	doc, info, err := s.fetch(ctx)
	if err != nil {
		if s.cached != nil {
			slog.Warn("Serving stale dining data", "key", s.key, "error", err)
			return s.cached, nil
		}
		return nil, fmt.Errorf("failed to fetch dining data: %w", err)
	}

	s.cached = doc
	s.info = info

	return doc, nil
}

// fetch reads and decodes the stored document.
func (s *DocumentStore) fetch(ctx context.Context) (*dining.Document, blob.Info, error) {
	info, body, err := s.blobs.Get(ctx, s.key)
	if err != nil {
		return nil, blob.Info{}, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, blob.Info{}, fmt.Errorf("failed to read dining document: %w", err)
	}

	doc, err := dining.Decode(data)
	if err != nil {
		return nil, blob.Info{}, fmt.Errorf("%w: %v", errCorrupt, err)
	}

	return doc, info, nil
}
